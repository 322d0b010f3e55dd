// Package commands wires the yearcal command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/logging"
	"github.com/klabast/wb-services/yearcal/internal/params"
	"github.com/klabast/wb-services/yearcal/internal/themes"
)

type cli struct {
	logLevel  string
	indexHTML []byte
}

type generateOptions struct {
	locale             string
	dayNameCharacters  int
	specialDays        string
	theme              string
	publicHolidays     bool
	offlineHolidays    bool
	holidaysURL        string
	dayFontSize        float64
	monthFontSize      float64
	weekNumberFontSize float64
	specialDayFontSize float64
	notesSpace         float64
	highlightHolidays  bool
	notes              string
	output             string
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, indexHTML []byte) int {
	cmd := NewRootCommand(indexHTML)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the yearcal command tree. indexHTML is the page
// served at / by the serve subcommand.
func NewRootCommand(indexHTML []byte) *cobra.Command {
	c := &cli{indexHTML: indexHTML}
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "yearcal <year>",
		Short: "Render a printable one-year calendar as HTML",
		Long: "Renders the twelve months of a year on a single page, with localized\n" +
			"month and weekday names, ISO week numbers and optional special days.",
		Example: "  yearcal 2025 --locale sv-SE --public-holidays --output 2025.html\n" +
			"  yearcal 2025 --special-days days.json --theme retro > 2025.html",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, args[0], opts)
		},
	}

	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL or info")

	f := cmd.Flags()
	f.StringVar(&opts.locale, "locale", params.DefaultLocale, "locale for month and weekday names, e.g. en-GB, sv-SE, de-DE")
	f.IntVar(&opts.dayNameCharacters, "day-name-characters", params.DefaultDayNameCharacters, "number of weekday name characters to show")
	f.StringVar(&opts.specialDays, "special-days", "", "JSON file with special days")
	f.StringVar(&opts.theme, "theme", themes.Default, "bundled theme ("+strings.Join(themes.Names(), ", ")+") or path to a CSS file")
	f.BoolVar(&opts.publicHolidays, "public-holidays", false, "add public holidays for the locale's country")
	f.BoolVar(&opts.offlineHolidays, "offline-holidays", false, "add public holidays from built-in rules instead of the Nager.Date API")
	f.StringVar(&opts.holidaysURL, "holidays-url", "", "base URL of the Nager.Date API; defaults to HOLIDAYS_API_URL or "+holidays.DefaultBaseURL)
	f.Float64Var(&opts.dayFontSize, "day-font-size", calendar.DefaultDayFontSizePt, "day font size in pt")
	f.Float64Var(&opts.monthFontSize, "month-font-size", calendar.DefaultMonthFontSizePt, "month name font size in pt")
	f.Float64Var(&opts.weekNumberFontSize, "week-number-font-size", calendar.DefaultWeekNumberFontSizePt, "week number font size in pt")
	f.Float64Var(&opts.specialDayFontSize, "special-day-font-size", calendar.DefaultSpecialDayFontSizePt, "special day font size in pt")
	f.Float64Var(&opts.notesSpace, "notes-space", calendar.DefaultNotesSpaceMM, "space reserved for notes per day in mm")
	f.BoolVar(&opts.highlightHolidays, "highlight-holidays", true, "highlight holidays")
	f.StringVar(&opts.notes, "notes", "", "Markdown file rendered as a footer")
	f.StringVarP(&opts.output, "output", "o", "", "write the HTML to this file instead of stdout")

	cmd.AddCommand(
		newServeCommand(c),
		newHolidaysCommand(c),
		newHashPasswordCommand(),
	)
	return cmd
}

func (c *cli) logger(encoding, output string) (*zap.Logger, error) {
	logger, err := logging.New(c.logLevel, encoding, output)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func (c *cli) generate(cmd *cobra.Command, yearArg string, opts generateOptions) error {
	logger, err := c.logger(logging.EncodingConsole, "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	year, err := strconv.Atoi(strings.TrimSpace(yearArg))
	if err != nil {
		return fmt.Errorf("%w: year must be an integer, got '%s'", params.ErrInvalidParameter, yearArg)
	}

	p := params.Defaults(time.Now())
	p.Year = year
	p.Locale = opts.locale
	p.DayNameCharacters = opts.dayNameCharacters
	p.Theme = opts.theme
	p.PublicHolidays = opts.publicHolidays || opts.offlineHolidays
	p.Offline = opts.offlineHolidays
	p.DayFontSize = opts.dayFontSize
	p.MonthFontSize = opts.monthFontSize
	p.WeekNumberFontSize = opts.weekNumberFontSize
	p.SpecialDayFontSize = opts.specialDayFontSize
	p.NotesSpace = opts.notesSpace
	p.HighlightHolidays = opts.highlightHolidays

	if opts.specialDays != "" {
		if p.SpecialDays, err = params.ReadSpecialDaysFile(opts.specialDays); err != nil {
			return err
		}
		logger.Debug("loaded special days", zap.String("file", opts.specialDays), zap.Int("count", len(p.SpecialDays)))
	}
	if opts.notes != "" {
		data, err := os.ReadFile(opts.notes)
		if err != nil {
			return fmt.Errorf("unable to read notes file '%s': %w", opts.notes, err)
		}
		p.Notes = string(data)
	}

	baseURL := opts.holidaysURL
	if baseURL == "" {
		baseURL = os.Getenv("HOLIDAYS_API_URL")
	}
	resolver := params.Resolver{
		Holidays:  holidays.NewClient(baseURL, holidays.DefaultTimeout, logger.Named("holidays")),
		Offline:   holidays.Offline{},
		LoadTheme: themes.Load,
	}
	req, err := resolver.Resolve(cmd.Context(), p)
	if err != nil {
		return err
	}

	html, err := calendar.Generate(req)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(html), 0644); err != nil {
			return fmt.Errorf("unable to write '%s': %w", opts.output, err)
		}
		logger.Info("calendar written", zap.String("file", opts.output), zap.Int("year", year), zap.String("locale", p.Locale))
		return nil
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		logger.Warn("writing HTML to the terminal; use --output or redirect to a file")
	}
	_, err = io.WriteString(out, html)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
