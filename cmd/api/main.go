package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"bodycomp-notion/internal/adapters/auth/static"
	"bodycomp-notion/internal/adapters/ingest/mqtt"
	mem "bodycomp-notion/internal/adapters/storage/memory"
	pg "bodycomp-notion/internal/adapters/storage/postgres"
	"bodycomp-notion/internal/adapters/store/notion"
	"bodycomp-notion/internal/config"
	"bodycomp-notion/internal/domain/journal"
	"bodycomp-notion/internal/middleware/ratelimit"
	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
	"bodycomp-notion/internal/ports/auth"
	"bodycomp-notion/internal/router"
)

// @title bodycomp-notion API
// @version 1.0
// @description Relay de mediciones de composición corporal hacia una database de Notion.
// @BasePath /
func main() {
	boot := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		boot.Error("config load failed", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := cfg.Validate(); err != nil {
		log.Error(err.Error(), nil)
		os.Exit(1)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	client, err := notion.NewClient(notion.Config{
		BaseURL: cfg.NotionBaseURL,
		APIKey:  cfg.NotionAPIKey,
		Version: cfg.NotionVersion,
		Timeout: cfg.NotionTimeout,
	})
	if err != nil {
		log.Error("notion client", map[string]any{"err": err})
		os.Exit(1)
	}
	st, err := notion.NewStore(client, log)
	if err != nil {
		log.Error("notion store", map[string]any{"err": err})
		os.Exit(1)
	}

	// Journal: Postgres si hay DB_DSN, si no in-memory
	var journalRepo journal.Repository
	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("postgres schema failed", map[string]any{"err": err})
			os.Exit(1)
		}
		journalRepo = pg.NewJournalRepo(db)
		log.Info("journal on postgres", nil)
	} else {
		journalRepo = mem.NewJournalRepo(0)
	}

	// Rate limit: Redis si hay REDIS_URL, si no in-memory; 0 lo desactiva
	var limiter ratelimit.Limiter
	if cfg.RateLimitPerMinute > 0 {
		if cfg.RedisURL != "" {
			rc, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				log.Error("redis connect failed", map[string]any{"err": err})
				os.Exit(1)
			}
			defer rc.Close()
			limiter = ratelimit.NewRedisLimiter(rc, cfg.RateLimitPerMinute)
		} else {
			ml := ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute)
			defer ml.Close()
			limiter = ml
		}
	}

	var verifier auth.AuthVerifier
	if cfg.IngestToken != "" {
		v, err := static.NewVerifier(cfg.IngestToken)
		if err != nil {
			log.Error("ingest token", map[string]any{"err": err})
			os.Exit(1)
		}
		verifier = v
	}

	h := router.NewRouter(router.Options{
		Store:             st,
		DefaultCollection: cfg.NotionDatabase,
		Journal:           journalRepo,
		Limiter:           limiter,
		AuthVerifier:      verifier,
		Logger:            log,
		Registry:          reg,
	})

	if cfg.MQTTBroker != "" {
		sub, err := mqtt.NewSubscriber(mqtt.Options{
			BrokerURL: cfg.MQTTBroker,
			ClientID:  cfg.MQTTClientID,
			Topic:     cfg.MQTTTopic,
			QoS:       1,
		}, h.Measurements, log)
		if err != nil {
			log.Error("mqtt subscriber", map[string]any{"err": err})
			os.Exit(1)
		}
		// no bloquea: con el broker caído el HTTP arranca igual
		sub.Start(ctx)
		defer sub.Close()
	}

	// WriteTimeout cubre hasta 3 llamadas a Notion por request
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      45 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Server listening", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
	log.Info("Server stopped", nil)
}
