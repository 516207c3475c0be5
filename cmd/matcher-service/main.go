package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/catalog"
	"github.com/pharmakart/platform/pkg/common/config"
	"github.com/pharmakart/platform/pkg/common/database"
	"github.com/pharmakart/platform/pkg/common/kafka"
	"github.com/pharmakart/platform/pkg/common/logger"
	"github.com/pharmakart/platform/pkg/common/models"
	"github.com/pharmakart/platform/pkg/matcher"
	"github.com/pharmakart/platform/pkg/observability/metrics"
)

type MatcherApp struct {
	service  *matcher.Service
	consumer *kafka.Consumer
}

func main() {
	logger.Init()
	metrics.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := catalog.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate catalog tables")
	}
	if err := repo.Seed(context.Background()); err != nil {
		logger.Log.WithError(err).Fatal("failed to seed catalog")
	}

	aliasTable, err := brand.Load(cfg.BrandAliasPath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to built-in brand alias table")
	}
	if len(aliasTable.Entries) == 0 {
		aliasTable = brand.DefaultTable()
	}

	resolver := brand.NewResolver(aliasTable)
	locator := matcher.NewLocator(repo, cfg.MatcherLocateCap)
	scorer := matcher.NewScorer(matcher.Weights{
		Name:     cfg.MatcherNameWeight,
		Generic:  cfg.MatcherGenericWeight,
		Strength: cfg.MatcherDoseWeight,
		Form:     cfg.MatcherFormWeight,
	})
	cache := matcher.NewCache(database.GetRedis(), cfg.MatchCacheTTL)

	producer := kafka.NewProducer(cfg.MatchOutputTopic)
	defer producer.Close()

	var dlq *kafka.Producer
	if cfg.MatchDLQTopic != "" {
		dlq = kafka.NewProducer(cfg.MatchDLQTopic)
		defer dlq.Close()
	}

	svc := matcher.NewService(resolver, locator, scorer, repo, cache, producer, dlq, matcher.OptionsFromConfig(cfg))

	app := &MatcherApp{service: svc}
	app.consumer = kafka.NewConsumer(cfg.ExtractionInputTopic, "matcher-service")
	defer app.consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := app.consumer.Consume(ctx, app.handleEvent); err != nil && err != context.Canceled {
			logger.Log.WithError(err).Fatal("consumer error")
		}
	}()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	matcher.NewHandler(svc).Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      http.MaxBytesHandler(router, cfg.MaxRequestBody),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Matcher Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Matcher Service...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Matcher Service stopped")
}

func (a *MatcherApp) handleEvent(ctx context.Context, event models.Event) error {
	req, err := parseMatchRequest(event.Data)
	if err != nil {
		return err
	}
	_, err = a.service.MatchAll(ctx, *req)
	return err
}

func parseMatchRequest(data map[string]interface{}) (*models.MatchRequest, error) {
	payload, ok := data["match_request"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("match_request payload missing")
	}
	bytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var req models.MatchRequest
	if err := json.Unmarshal(bytes, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
