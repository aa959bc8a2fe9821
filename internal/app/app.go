// Package app assembles the service from configuration and runs it until
// the process is signalled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/api"
	"github.com/99minutos/todo-list/internal/api/handler"
	"github.com/99minutos/todo-list/internal/api/metrics"
	"github.com/99minutos/todo-list/internal/api/session"
	"github.com/99minutos/todo-list/internal/core/ports"
	"github.com/99minutos/todo-list/internal/core/service"
	mongostore "github.com/99minutos/todo-list/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/todo-list/internal/infrastructure/db/redis"
	"github.com/99minutos/todo-list/internal/infrastructure/db/sqlite"
	"github.com/99minutos/todo-list/internal/pkg/config"
)

// stores bundles the repositories for the configured driver.
type stores struct {
	users ports.UserRepository
	todos ports.TodoRepository
	ping  handler.Pinger
	close func(context.Context) error
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// within cfg.ShutdownTimeout.
func Run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	checks := []handler.Check{{Name: cfg.Store.Driver, Pinger: st.ping}}
	sessions, closeSessions, err := openSessions(ctx, cfg, log, &checks)
	if err != nil {
		return err
	}
	defer closeSessions()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	router, err := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(st.users, rec, log),
		Todos:    service.NewTodoService(st.todos, rec, log),
		Sessions: sessions,
		Checks:   checks,
		Metrics:  reg,
		Log:      log,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Str("sessions", cfg.Session.Backend).Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	log.Info().Msg("shut down http server")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		todos := mongostore.NewTodoRepository(db)
		return &stores{
			users: mongostore.NewUserRepository(db),
			todos: todos,
			ping:  todos,
			close: client.Disconnect,
		}, nil

	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Store.SQLitePath})
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("opened sqlite database")
		todos := sqlite.NewTodoRepository(db)
		return &stores{
			users: sqlite.NewUserRepository(db),
			todos: todos,
			ping:  todos,
			close: func(context.Context) error { return sqlite.Close(db) },
		}, nil
	}
}

// openSessions builds the session manager; the redis backend also adds its
// readiness check.
func openSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks *[]handler.Check) (session.Manager, func(), error) {
	opts := session.CookieOptions{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	}

	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewCookie(cfg.Session.Secret, opts), func() {}, nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	store := redisstore.NewSessionStore(client)
	*checks = append(*checks, handler.Check{Name: "redis", Pinger: store})
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
	return session.NewServer(store, opts, log), closeFn, nil
}
