package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	"github.com/goliatone/go-leads-dashboard/components/dashboard"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-leads-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-leads-dashboard/pkg/logging"
)

type serveCmd struct {
	Addr          string        `name:"addr" env:"LEADS_ADDR" default:":8080" help:"Listen address."`
	Transport     string        `enum:"chi,fiber" default:"chi" help:"HTTP stack: chi (net/http) or fiber (go-router)."`
	BasePath      string        `name:"base-path" default:"" help:"URL prefix for every route. The fiber transport defaults to /admin."`
	SessionTTL    time.Duration `name:"session-ttl" env:"LEADS_SESSION_TTL" default:"30m" help:"Idle time before a page session is dropped."`
	SweepInterval time.Duration `name:"sweep-interval" default:"1m" help:"How often idle sessions and stale charts are swept."`

	Source SourceFlags `embed:""`
	Charts ChartFlags  `embed:""`
}

// app holds everything serve builds, so both transports share one wiring.
type app struct {
	logger     *zap.Logger
	service    *dashboard.Service
	cache      *dashboard.ChartCache
	broadcast  *dashboard.BroadcastHook
	renderer   dashboard.Renderer
	validator  *dashboard.JSONSchemaValidator
	executor   *httpapi.CommandExecutor
	basePath   string
	sweepEvery time.Duration
}

func (c *serveCmd) Run(ctx context.Context, root *cli) error {
	logger, err := newLogger(root)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := c.build(logger)
	if err != nil {
		return err
	}
	go a.sweep(ctx)

	logger.Info("serving leads dashboard",
		zap.String("addr", c.Addr),
		zap.String("transport", c.Transport),
		zap.String("base_path", a.basePath),
		zap.Duration("session_ttl", c.SessionTTL),
	)
	if c.Transport == "fiber" {
		return a.serveFiber(ctx, c.Addr)
	}
	return a.serveChi(ctx, c.Addr)
}

func (c *serveCmd) build(logger *zap.Logger) (*app, error) {
	validator := dashboard.NewJSONSchemaValidator()
	source, err := c.Source.load(validator)
	if err != nil {
		return nil, err
	}
	charts, cache := c.Charts.build()
	broadcast := dashboard.NewBroadcastHook()
	opts := serviceOptions(logger, source, charts)
	opts.Sessions = dashboard.NewSessionStore(c.SessionTTL)
	opts.RefreshHook = broadcast
	service := dashboard.NewService(opts)

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	if err := dashboard.WarmCharts(context.Background(), service); err != nil {
		logger.Warn("warming charts failed", zap.Error(err))
	}
	return &app{
		logger:     logger,
		service:    service,
		cache:      cache,
		broadcast:  broadcast,
		renderer:   renderer,
		validator:  validator,
		executor:   httpapi.NewCommandExecutor(service, logging.NewTelemetry(logger)),
		basePath:   strings.TrimRight(c.BasePath, "/"),
		sweepEvery: c.SweepInterval,
	}, nil
}

func (a *app) sweep(ctx context.Context) {
	if a.sweepEvery <= 0 {
		return
	}
	ticker := time.NewTicker(a.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pages := a.service.Sweep(ctx)
			charts := a.cache.Sweep()
			if pages > 0 || charts > 0 {
				a.logger.Debug("swept", zap.Int("pages", pages), zap.Int("charts", charts))
			}
		}
	}
}

func (a *app) chiHandler() http.Handler {
	handlers := &httpapi.Handlers{
		Executor: a.executor,
		Renderer: dashboard.NewController(dashboard.ControllerOptions{
			Service:  a.service,
			Renderer: a.renderer,
			BasePath: a.basePath,
		}),
		Broadcast: a.broadcast,
		Validator: a.validator,
	}
	mw := []func(http.Handler) http.Handler{
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		logging.RequestLogger(a.logger),
		chimiddleware.Recoverer,
	}
	if a.basePath == "" {
		return handlers.Router(mw...)
	}
	root := chi.NewRouter()
	root.Mount(a.basePath, handlers.Router(mw...))
	return root
}

func (a *app) serveChi(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           a.chiHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func (a *app) fiberServer() (router.Server[*fiber.App], error) {
	server := router.NewFiberAdapter()
	base := a.basePath
	if base == "" {
		base = "/admin"
	}
	htmlBase := base + "/dashboard"
	err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router: server.Router(),
		Controller: dashboard.NewController(dashboard.ControllerOptions{
			Service:  a.service,
			Renderer: a.renderer,
			BasePath: htmlBase,
		}),
		API:       a.executor,
		Broadcast: a.broadcast,
		Validator: a.validator,
		BasePath:  base,
	})
	return server, err
}

func (a *app) serveFiber(ctx context.Context, addr string) error {
	server, err := a.fiberServer()
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(addr) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
