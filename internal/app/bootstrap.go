package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"hellodemo/internal/config"
	"hellodemo/internal/database"
	"hellodemo/internal/database/migration"
	"hellodemo/internal/otel"
	"hellodemo/internal/repository/cache"
)

var openDB = database.Open

// Bootstrap opens tracing, the database and the optional Redis client, runs
// the migration when enabled and builds the Application. Everything opened
// here is released by Application.Close; on error it is released before
// returning.
func Bootstrap(ctx context.Context, cfg *config.AppConfig, log *logrus.Logger) (app *Application, err error) {
	var closers []func(context.Context) error
	defer func() {
		if err == nil {
			return
		}
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i](context.Background())
		}
	}()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	closers = append(closers, shutdownTracing)

	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	closers = append(closers, func(context.Context) error { return db.Close() })

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, log, cfg.Database.Host); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	deps := Deps{DB: db}

	if cfg.Redis.Addr != "" {
		rdb, rerr := cache.NewRedisClient(cfg.Redis)
		if rerr != nil {
			log.WithError(rerr).WithField("addr", cfg.Redis.Addr).Warn("redis_unavailable_cache_disabled")
		} else {
			deps.Redis = rdb
			closers = append(closers, func(context.Context) error { return rdb.Close() })
		}
	}

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	deps.Metrics = metrics

	app, err = New(cfg, log, deps)
	if err != nil {
		return nil, err
	}
	for _, c := range closers {
		app.OnClose(c)
	}

	log.WithField("components", app.Components()).Info("components_registered")
	return app, nil
}
