package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/talenthub/job-board/internal/api"
	"github.com/talenthub/job-board/internal/infrastructure/config"
	mongodb "github.com/talenthub/job-board/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthub/job-board/internal/infrastructure/db/redis"
	"github.com/talenthub/job-board/internal/infrastructure/queue"
	"github.com/talenthub/job-board/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure user indexes")
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), logger.Component("audit"))
	dispatcher.Start()

	e := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		BackendBaseURL: cfg.BackendBaseURL,
		Production:     cfg.Production(),
		Audit:          dispatcher,
		Log:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("job board listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// No requests are in flight anymore; flush the audit queue.
	dispatcher.Stop()
}
