package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chores-app-go/internal/config"
	"chores-app-go/internal/db"
	admindomain "chores-app-go/internal/domain/admin"
	choresdomain "chores-app-go/internal/domain/chores"
	groupdomain "chores-app-go/internal/domain/group"
	userdomain "chores-app-go/internal/domain/user"
	"chores-app-go/internal/repository/inmemory"
	adminrepo "chores-app-go/internal/repository/postgres/admin"
	choresrepo "chores-app-go/internal/repository/postgres/chores"
	grouprepo "chores-app-go/internal/repository/postgres/group"
	userrepo "chores-app-go/internal/repository/postgres/user"
	"chores-app-go/internal/telemetry"
	"chores-app-go/internal/transport/httpserver"
	"chores-app-go/internal/transport/httpserver/handler"
	authmw "chores-app-go/internal/transport/httpserver/middleware"
	"chores-app-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg           config.Config
	log           logger.Logger
	httpServer    *http.Server
	db            *gorm.DB
	redis         *redis.Client
	traceShutdown telemetry.ShutdownFunc
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	log.Info("app: initializing tracing", "enabled", cfg.Tracing.Enabled())
	a.traceShutdown, err = telemetry.InitTracing(ctx, cfg.Tracing, cfg.Env)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	a.db, err = db.NewPostgres(cfg.DB, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(ctx, a.db); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	opts := httpserver.Options{}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts.Metrics = authmw.NewMetrics(reg)
		opts.Gatherer = reg
	}

	if cfg.RateLimit.Enabled() {
		log.Info("app: connecting to redis", "addr", cfg.RateLimit.RedisAddr)
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.RedisAddr,
			Password: cfg.RateLimit.RedisPassword,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		opts.Limiter = authmw.NewRedisLimiter(a.redis)
	}

	users := userdomain.NewService(userrepo.NewPostgres(a.db))
	groups := groupdomain.NewService(grouprepo.NewPostgres(a.db)).
		WithCache(inmemory.NewGroupCache(), cfg.GroupCacheTTL)
	chores := choresdomain.NewService(choresrepo.NewPostgres(a.db))
	admin := admindomain.NewService(adminrepo.NewPostgres(a.db))
	opts.Identity = users

	log.Info("app: initializing router")
	handlers := handler.New(users, groups, chores, admin, cfg.Reminders.LookaheadHours, log)
	router := httpserver.NewRouter(cfg, handlers, opts, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}

	if a.traceShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.traceShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
