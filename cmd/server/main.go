package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kgo"

	"zaakregister/internal/audittrail"
	"zaakregister/internal/autorisaties"
	"zaakregister/internal/autorisaties/token"
	"zaakregister/internal/besluiten"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/platform/config"
	"zaakregister/internal/platform/httpserver"
	"zaakregister/internal/platform/logger"
	"zaakregister/internal/platform/metrics"
	"zaakregister/internal/platform/middleware"
	"zaakregister/internal/platform/postgres"
	"zaakregister/internal/platform/redis"
	"zaakregister/internal/referentie"
	"zaakregister/internal/zaken/handler"
	"zaakregister/internal/zaken/service"
	"zaakregister/internal/zaken/store"
)

const apiPrefix = "/zaken/api/v1"

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{ConnString: cfg.DatabaseURL})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Error("failed to apply database schema", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Notifications go to Kafka when brokers are configured, with Redis as
	// the park-and-retry buffer. Without brokers they are only logged.
	var publisher notificaties.Publisher = &notificaties.LogPublisher{Logger: log}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.KafkaBrokers...),
			kgo.DefaultProduceTopic(cfg.NotificationTopic),
		)
		if err != nil {
			log.Error("failed to build kafka client", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()

		rdb, err := redis.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, notifications retry buffer disabled", "error", err)
			rdb = nil
		}
		kafkaPublisher := notificaties.NewKafkaPublisher(kafkaClient, rdb, cfg.NotificationTopic, log, m)
		go kafkaPublisher.RetryLoop(ctx, 30*time.Second)
		publisher = kafkaPublisher
	}

	apiRoot := cfg.APIRoot + apiPrefix
	peerServices := make([]referentie.Service, 0, len(cfg.Services))
	for _, svc := range cfg.Services {
		peerServices = append(peerServices, referentie.Service{
			Label:     svc.Label,
			APIRoot:   svc.APIRoot,
			AuthToken: svc.Token,
		})
	}
	resolver := referentie.NewResolver(cfg.APIRoot, cfg.AllowedHosts, peerServices, cfg.RemoteTimeout, m)

	catalog := referentie.NewCatalog(catalogi.NewPostgresStore(pool), resolver)
	documents := referentie.NewDocuments(documenten.NewPostgresStore(pool), resolver)
	besluitenReader := referentie.NewBesluiten(besluiten.NewPostgresStore(pool), resolver)
	peerZaken := referentie.NewZaken(resolver)
	links := referentie.NewObjectLinks(resolver)

	authStore := autorisaties.NewPostgresStore(pool)
	validator := token.NewValidator(cfg.JWTSigningKey, cfg.JWTExpiry)
	filter := autorisaties.NewFilter(catalog)

	svc := service.New(service.Config{
		Store:     store.NewPostgresStore(pool, cfg.CountCap),
		Catalog:   catalog,
		Documents: documents,
		Besluiten: besluitenReader,
		PeerZaken: peerZaken,
		Links:     links,
		Refs:      resolver,
		Filter:    filter,
		Publisher: publisher,
		Audit:     audittrail.NewRecorder(audittrail.NewPostgresStore(pool), log),
		Logger:    log,
		Metrics:   m,
		APIRoot:   apiRoot,
		Timezone:  cfg.Timezone,
	})

	h := handler.New(svc, log, apiRoot)

	root := chi.NewRouter()
	root.Use(middleware.RequestID)
	root.Use(middleware.Logger(log))
	root.Use(middleware.Recovery(log))
	root.Use(middleware.Latency(m))
	root.Handle("/metrics", promhttp.Handler())
	root.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	root.Route(apiPrefix, func(r chi.Router) {
		r.Use(autorisaties.RequireAuth(validator, authStore, log))
		r.Mount("/", h.Routes())
	})

	srv := httpserver.New(cfg.Addr, root)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
