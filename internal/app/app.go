// Package app builds the application object explicitly from its dependencies
// and runs its servers and startup tasks under one lifecycle.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hellodemo/docs"
	"hellodemo/internal/config"
	handlers "hellodemo/internal/http/handler"
	"hellodemo/internal/http/middleware"
	"hellodemo/internal/home"
	"hellodemo/internal/repository"
	"hellodemo/internal/repository/cache"
	"hellodemo/internal/repository/sqldb"
	"hellodemo/internal/service"
	"hellodemo/internal/task"
)

// Task is a background job spawned when the application starts.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// Deps are the already-opened resources the application is built from.
// Redis and Metrics are optional. DB may be nil only when the application is
// built for introspection and never served.
type Deps struct {
	DB      *sql.DB
	Redis   cache.Cmdable
	Metrics *prometheus.Registry
}

// Application holds every component explicitly; nothing is looked up globally.
type Application struct {
	cfg      *config.AppConfig
	log      *logrus.Logger
	db       *sql.DB
	registry *Registry
	user     *User
	hello    service.HelloService
	http     *fiber.App
	home     *home.Server
	tasks    []Task
	closers  []func(context.Context) error
}

// New wires the application. The hello controller is registered only when
// the User component is present.
func New(cfg *config.AppConfig, log *logrus.Logger, deps Deps) (*Application, error) {
	a := &Application{
		cfg:      cfg,
		log:      log,
		db:       deps.DB,
		registry: NewRegistry(),
	}
	a.registry.Register(ComponentConfig)
	a.registry.Register(ComponentLogger)
	a.registry.Register(ComponentDatabase)

	var repo repository.DemoRepository = sqldb.NewDemoSQL(deps.DB, cfg.Database.Driver)
	a.registry.Register(ComponentDemoRepository)

	if deps.Redis != nil {
		repo = cache.NewDemoCache(repo, deps.Redis, cfg.Redis.TTL, cfg.Redis.Prefix, log)
		a.registry.Register(ComponentCountCache)
	}

	a.hello = service.NewHelloService(repo)
	a.registry.Register(ComponentHelloService)

	if cfg.Features.EnableUser {
		a.user = EnableUser(a.registry, cfg.Features.UserName, log)
	}

	var helloRoute service.HelloService
	if a.registry.Has(ComponentUser) {
		helloRoute = a.hello
		a.registry.Register(ComponentHelloController)
	}

	metrics := deps.Metrics
	if metrics == nil {
		metrics = prometheus.NewRegistry()
		metrics.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(metrics)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	a.http = fiber.New(fiber.Config{
		AppName:               "hellodemo",
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	a.http.Use(middleware.RequestID())
	// Structured request logs; sits outside recover so panics are logged as 500s
	a.http.Use(middleware.Logger(log))
	a.http.Use(recover.New())
	a.http.Use(otelfiber.Middleware())
	a.http.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(a.http, handlers.Routes{
		DB:         deps.DB,
		Hello:      helloRoute,
		Metrics:    metrics,
		Components: a.registry.Names,
	})
	a.http.Get("/swagger/*", swaggerHandler(cfg.AppHost))

	if cfg.StartupTask.Enabled {
		t := task.NewCounter(cfg.StartupTask.Iterations, log)
		a.tasks = append(a.tasks, t)
		a.registry.Register(t.Name())
	}

	if cfg.HomeServer.Enabled {
		a.home = home.NewServer(cfg.HomeServer.Port, log)
		a.registry.Register(ComponentHomeServer)
	}

	return a, nil
}

// Swagger UI with dynamic host and scheme
func swaggerHandler(defaultHost string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		host := c.Get("Host")
		if host == "" {
			host = defaultHost
		}
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}

// HTTP exposes the Fiber app, mainly for app.Test in tests.
func (a *Application) HTTP() *fiber.App { return a.http }

// Components returns the registered component names in registration order.
func (a *Application) Components() []string { return a.registry.Names() }

// User returns the imported User component, or nil when the import is disabled.
func (a *Application) User() *User { return a.user }

// OnClose registers fn to run during Close, in reverse registration order.
func (a *Application) OnClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Run listens on the configured port and blocks until ctx is cancelled or a
// server fails.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on :%s: %w", a.cfg.Port, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the HTTP app on ln together with the home server and the startup
// tasks. When ctx ends or any server fails, everything is shut down and the
// tasks are awaited before Serve returns.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if a.db == nil {
		_ = ln.Close()
		return errors.New("app: database is required to serve")
	}
	if ctx.Err() != nil {
		_ = ln.Close()
		a.log.Info("server_not_started_context_done")
		return nil
	}

	ln = &onceCloseListener{Listener: ln}
	g, gctx := errgroup.WithContext(ctx)

	a.log.WithFields(logrus.Fields{
		"addr":       ln.Addr().String(),
		"components": a.registry.Names(),
	}).Info("server_starting")

	g.Go(func() error {
		// A listener closed by shutdown before Fiber accepted on it is a clean stop.
		if err := a.http.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.home != nil {
		g.Go(func() error {
			if err := a.home.ListenAndServe(); err != nil {
				return fmt.Errorf("home server: %w", err)
			}
			return nil
		})
	}

	for _, t := range a.tasks {
		t := t
		g.Go(func() error {
			// Task failures stay off the request path.
			if err := t.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.WithError(err).WithField("task", t.Name()).Error("startup_task_failed")
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(ln)
	})

	return g.Wait()
}

// shutdown closes ln itself so a Listener call that has not registered ln
// with Fiber yet still returns; ShutdownWithContext alone only stops
// listeners Fiber already serves.
func (a *Application) shutdown(ln net.Listener) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout())
	defer cancel()

	a.log.Info("server_shutting_down")
	_ = ln.Close()

	var errs []error
	if err := a.http.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if a.home != nil {
		if err := a.home.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("home shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// onceCloseListener lets shutdown and Fiber both close the listener; only the
// first call reaches the socket.
type onceCloseListener struct {
	net.Listener
	once sync.Once
	err  error
}

func (l *onceCloseListener) Close() error {
	l.once.Do(func() { l.err = l.Listener.Close() })
	return l.err
}

// Close releases the resources registered with OnClose.
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
