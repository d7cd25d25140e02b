// Package server assembles the HTTP service hosting the API documentation
// viewer and the specification document it renders.
package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"libdb.so/hserve"

	chiswagger "github.com/webasoo/specview/chi-swagger"
	"github.com/webasoo/specview/config"
	"github.com/webasoo/specview/specdoc"
	"github.com/webasoo/specview/swagger"
)

// Server is the documentation HTTP server.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	router   *chi.Mux
	store    *specdoc.Store
	viewer   *swagger.Handler
	slot     *swagger.Slot
	registry *prometheus.Registry
	metrics  *metrics
	landing  template.HTML
	version  string
}

// Option configures optional Server features.
type Option func(*Server)

// WithSlot sets the slot viewer handles are stored in. It defaults to a
// slot private to the server.
func WithSlot(slot *swagger.Slot) Option {
	return func(s *Server) { s.slot = slot }
}

// WithRegistry sets the prometheus registry metrics are registered with.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithVersion sets the server version shown on the landing page.
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// New loads the specification document and builds the router.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		version: config.Version,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slot == nil {
		s.slot = &swagger.Slot{}
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	s.metrics = newMetrics(s.registry)

	store, err := specdoc.Open(cfg.SpecFile, logger.With("component", "specdoc"),
		specdoc.WithReloadHook(s.metrics.observeReload))
	if err != nil {
		return nil, fmt.Errorf("server: load specification document: %w", err)
	}
	s.store = store

	landing, err := renderLanding(cfg.LandingFile)
	if err != nil {
		return nil, err
	}
	s.landing = landing

	viewerOpts := cfg.Viewer.Options()
	viewerOpts.Title = s.title()
	scripts := swagger.NewScriptFactory(viewerOpts, viewerOpts.SpecURL != "")
	factory := swagger.FactoryFunc(func(vc swagger.ViewerConfiguration) (*swagger.Handle, error) {
		s.metrics.bootstraps.Inc()
		return scripts.New(vc)
	})
	initializer := swagger.NewInitializer(factory, s.slot, viewerOpts)

	s.viewer, err = swagger.NewHandler(initializer, logger.With("component", "viewer"))
	if err != nil {
		return nil, fmt.Errorf("server: build viewer: %w", err)
	}
	s.viewer.SetTitleSource(s.title)

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:         int((24 * time.Hour).Seconds()),
	}))

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/debug/viewer", s.handleDebugViewer)

	r.Method(http.MethodGet, s.cfg.Viewer.SpecPath, s.store)
	r.Method(http.MethodHead, s.cfg.Viewer.SpecPath, s.store)
	if s.cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.cfg.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	chiswagger.Register(r, s.viewer)
	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the specification document store.
func (s *Server) Store() *specdoc.Store {
	return s.store
}

// Run serves HTTP on the configured address and, when enabled, watches the
// specification document. It returns once ctx is canceled or either fails.
func (s *Server) Run(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	if s.cfg.WatchSpec {
		errg.Go(func() error {
			return s.store.Watch(ctx)
		})
	}

	errg.Go(func() error {
		s.logger.Info("starting HTTP server",
			"addr", s.cfg.ListenAddr,
			"spec_file", s.store.Path(),
			"docs", s.viewer.MountPath())

		if err := hserve.ListenAndServe(ctx, s.cfg.ListenAddr, s.router); err != nil {
			s.logger.Error("failed to start HTTP server",
				"addr", s.cfg.ListenAddr,
				"err", err)
			return err
		}
		return nil
	})

	return errg.Wait()
}
