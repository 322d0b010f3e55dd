package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/params"
)

const shutdownTimeout = 10 * time.Second

// Server serves the calendar over HTTP.
type Server struct {
	cfg       Config
	logger    *zap.Logger
	auth      *Authenticator
	online    holidays.Source
	offline   holidays.Source
	resolver  params.Resolver
	indexHTML []byte
	now       func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithAuthenticator protects every route except /healthz.
func WithAuthenticator(a *Authenticator) Option {
	return func(s *Server) { s.auth = a }
}

// WithHolidaySource replaces the Nager.Date client.
func WithHolidaySource(src holidays.Source) Option {
	return func(s *Server) { s.online = src }
}

// WithIndexHTML sets the page served at /.
func WithIndexHTML(page []byte) Option {
	return func(s *Server) { s.indexHTML = page }
}

// WithClock overrides the time used for default years and export stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer builds a Server. The calendar template is validated here so a
// broken build fails at startup rather than on the first request.
func NewServer(cfg Config, logger *zap.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := calendar.ValidateTemplate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		online:  holidays.NewClient(cfg.HolidaysURL, cfg.HolidaysTimeout, logger.Named("holidays")),
		offline: holidays.Offline{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = params.Resolver{Holidays: s.online, Offline: s.offline}
	return s, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Get("/", s.ServeIndex)
		r.Get("/calendar", s.HandleCalendar)
		r.Get("/holidays", s.HandleHolidays)
		r.Get("/api/config", s.GetConfig)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting yearcal server",
			zap.String("url", fmt.Sprintf("http://localhost:%d", s.cfg.Port)),
			zap.Bool("auth", s.auth != nil))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
