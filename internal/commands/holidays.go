package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/logging"
	"github.com/klabast/wb-services/yearcal/internal/params"
)

func newHolidaysCommand(c *cli) *cobra.Command {
	var (
		format      string
		offline     bool
		holidaysURL string
	)

	cmd := &cobra.Command{
		Use:   "holidays <year> <country>",
		Short: "Export public holidays as JSON, CSV or ICS",
		Long: "Prints the public holidays of a country (ISO 3166 alpha-2 code).\n" +
			"The JSON output can be passed back with --special-days.",
		Example: "  yearcal holidays 2025 SE --format ics > holidays.ics",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("%w: year must be an integer, got '%s'", params.ErrInvalidParameter, args[0])
			}
			if err := calendar.ValidateYear(year); err != nil {
				return err
			}
			country := strings.ToUpper(strings.TrimSpace(args[1]))
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case holidays.FormatJSON, holidays.FormatCSV, holidays.FormatICS:
			default:
				return holidays.ErrUnknownFormat
			}

			logger, err := c.logger(logging.EncodingConsole, "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var source holidays.Source = holidays.Offline{}
			if !offline {
				if holidaysURL == "" {
					holidaysURL = os.Getenv("HOLIDAYS_API_URL")
				}
				source = holidays.NewClient(holidaysURL, holidays.DefaultTimeout, logger.Named("holidays"))
			}

			days, err := source.PublicHolidays(contextOf(cmd), year, country)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("Public holidays %s %d", country, year)
			return holidays.Write(cmd.OutOrStdout(), format, name, days, time.Now())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", holidays.FormatJSON, "output format: json, csv or ics")
	cmd.Flags().BoolVar(&offline, "offline", false, "use built-in rules instead of the Nager.Date API")
	cmd.Flags().StringVar(&holidaysURL, "holidays-url", "", "base URL of the Nager.Date API")
	return cmd
}
