package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/yearcal/internal/app"
	"github.com/klabast/wb-services/yearcal/internal/logging"
)

func newServeCommand(c *cli) *cobra.Command {
	var (
		port        int
		auth        bool
		holidaysURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve calendars over HTTP",
		Long: "Starts an HTTP server with a parameter form at / and the rendered\n" +
			"calendar at /calendar. Environment: PORT, AUTH_FILE, HOLIDAYS_API_URL,\n" +
			"HOLIDAYS_TIMEOUT, LOG_LEVEL.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("holidays-url") {
				cfg.HolidaysURL = holidaysURL
			}
			cfg.AuthEnabled = auth
			if c.logLevel == "" {
				c.logLevel = cfg.LogLevel
			}

			logger, err := c.logger(logging.EncodingJSON, "stdout")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts := []app.Option{app.WithIndexHTML(c.indexHTML)}
			if cfg.AuthEnabled {
				authenticator, err := app.LoadAuthenticator(cfg.AuthFile, logger)
				if err != nil {
					return err
				}
				opts = append(opts, app.WithAuthenticator(authenticator))
			}

			server, err := app.NewServer(cfg, logger, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.Run(ctx); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", app.DefaultPort, "port to listen on")
	cmd.Flags().BoolVar(&auth, "auth", false, "require HTTP Basic Auth (credentials from AUTH_FILE or auth.secret)")
	cmd.Flags().StringVar(&holidaysURL, "holidays-url", "", "base URL of the Nager.Date API")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
