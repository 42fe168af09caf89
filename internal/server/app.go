// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/alumni/internal/logging"
	"github.com/dmitrijs2005/alumni/internal/server/config"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/alumni/internal/server/rest"
	"github.com/dmitrijs2005/alumni/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const sessionSweepInterval = 10 * time.Minute

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	sessions sessions.Repository
	users    *services.UserService
	intros   *services.IntroductionService
	registry *prometheus.Registry
}

// NewApp builds the storage backends and services selected by c, runs the
// schema migrations and seeds the administrator account.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(c.LogBackend, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger, registry: prometheus.NewRegistry()}
	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var rm repomanager.RepositoryManager
	switch c.StorageBackend {
	case config.BackendPostgres:
		db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.db = db
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			app.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	default:
		rm = repomanager.NewInMemoryRepositoryManager()
	}

	if c.SessionBackend == config.BackendRedis || c.RateLimitPerMinute > 0 {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPassword})
		if c.SessionBackend == config.BackendRedis {
			if err := app.redis.Ping(ctx).Err(); err != nil {
				app.Close()
				return nil, fmt.Errorf("redis init error: %w", err)
			}
		}
	}

	if c.SessionBackend == config.BackendRedis {
		app.sessions = sessions.NewRedisRepository(app.redis)
	} else {
		app.sessions = sessions.NewInMemoryRepository()
	}

	app.users = services.NewUserService(app.db, rm, app.sessions, c)
	app.intros = services.NewIntroductionService(app.db, rm)

	if err := app.users.SeedAdmin(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	return app, nil
}

// Handler returns the HTTP API handler.
func (app *App) Handler() http.Handler {
	h := rest.NewHandler(app.users, app.intros, app.logger, rest.CookieConfig{
		Secure: app.config.CookieSecure,
		MaxAge: app.config.SessionValidityDuration,
	})
	opts := rest.RouterOptions{
		Logger:             app.logger,
		AllowedOrigins:     app.config.AllowedOrigins,
		Registry:           app.registry,
		RateLimitPerMinute: app.config.RateLimitPerMinute,
	}
	if app.redis != nil {
		opts.Redis = app.redis
	}
	return rest.NewRouter(h, opts)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.Handler())
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"storage", app.config.StorageBackend,
		"sessions", app.config.SessionBackend,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if mem, ok := app.sessions.(*sessions.InMemoryRepository); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mem.RunSweeper(ctx, sessionSweepInterval)
		}()
	}

	wg.Wait()
	app.Close()
	app.logger.Info(context.Background(), "App stopped")
}

// Close releases the database and Redis connections.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
		app.db = nil
	}
	if app.redis != nil {
		_ = app.redis.Close()
		app.redis = nil
	}
}
