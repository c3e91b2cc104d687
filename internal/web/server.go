// Package web provides the HTTP server, JSON API and HTML summary page for the order desk.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/orderdesk/internal/config"
	"github.com/JonMunkholm/orderdesk/internal/core"
	"github.com/JonMunkholm/orderdesk/internal/metrics"
	mw "github.com/JonMunkholm/orderdesk/internal/web/middleware"
)

// Options wires a Server to its collaborators.
type Options struct {
	Config  *config.Config
	Session *core.Session

	// Imports bounds concurrent imports; built from Config.Import when nil.
	Imports *core.ImportLimiter

	// Metrics may be nil. Gatherer backs /metrics; the route is not mounted when it is nil.
	Metrics  *metrics.Recorder
	Gatherer prometheus.Gatherer

	// Now is the clock used for export file names; time.Now when nil.
	Now func() time.Time
}

// Server is the HTTP server for the order desk.
type Server struct {
	cfg      *config.Config
	session  *core.Session
	imports  *core.ImportLimiter
	metrics  *metrics.Recorder
	gatherer prometheus.Gatherer
	now      func() time.Time

	validate *validator.Validate
	limiters []*rateLimiter
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a Server with its middleware and routes installed.
func NewServer(opts Options) *Server {
	s := &Server{
		cfg:      opts.Config,
		session:  opts.Session,
		imports:  opts.Imports,
		metrics:  opts.Metrics,
		gatherer: opts.Gatherer,
		now:      opts.Now,
		validate: newValidator(),
		router:   chi.NewRouter(),
	}
	if s.imports == nil {
		s.imports = core.NewImportLimiter(s.cfg.Import.MaxConcurrent, s.cfg.Import.MaxWait)
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// newValidator reports field names by their JSON tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleSummaryPage)
	s.router.Get("/summary", s.handleSummaryPage)
	s.router.Get("/healthz", s.handleHealth)

	if s.cfg.Metrics.Enabled && s.gatherer != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleAddProduct)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Delete("/products/{id}", s.handleRemoveProduct)
		r.Get("/products/import/template", s.handleImportTemplate)

		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				r.Use(s.newRateLimiter(s.cfg.Rate.ImportLimit, time.Minute).middleware)
			}
			r.Post("/products/import", s.handleImport)
			r.Post("/products/import/preview", s.handleImportPreview)
		})

		r.Get("/users", s.handleListUsers)
		r.Put("/users/{index}", s.handleRenameUser)

		r.Get("/orders", s.handleListOrders)
		r.Post("/orders", s.handleRecordOrder)

		r.Get("/summary", s.handleSummary)
		r.Get("/audit", s.handleAuditLog)
		r.Get("/export", s.handleExport)
	})
}

// Start listens on the configured address and blocks until the server stops.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight requests and
// imports, and stops background limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, l := range s.limiters {
		l.stop()
	}

	var errs []error
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.imports.WaitForDrain(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// securityHeaders adds hardening headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				// the summary page uses inline styles only
				h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}
