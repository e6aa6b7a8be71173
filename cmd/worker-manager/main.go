// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ecotourism-workers/internal/analytics"
	"ecotourism-workers/internal/common/camunda"
	"ecotourism-workers/internal/common/config"
	"ecotourism-workers/internal/common/database"
	"ecotourism-workers/internal/common/logger"
	"ecotourism-workers/internal/common/observability"
	"ecotourism-workers/internal/translator"
	"ecotourism-workers/internal/translator/sparql"

	cq "ecotourism-workers/internal/workers/ai-conversation/classify-question"
	tq "ecotourism-workers/internal/workers/ai-conversation/translate-question"
	ss "ecotourism-workers/internal/workers/data-access/synthesize-sparql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if err := config.ValidateForWorkers(cfg); err != nil {
		zapLog.Fatal("invalid worker configuration", zap.Error(err))
	}

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.Bool("genai", cfg.APIs.GenAI.Enabled()),
		zap.Bool("analytics", cfg.Analytics.Enabled),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, vocab, err := translator.Build(cfg, log, translator.Options{})
	if err != nil {
		zapLog.Fatal("translator init failed", zap.Error(err))
	}
	zapLog.Info("Vocabulary loaded", zap.String("version", vocab.Version()))

	// --- Redis analytics (optional) ---
	var redis *database.RedisClient
	var recorder tq.Recorder
	if cfg.Analytics.Enabled {
		redis = database.NewRedis(cfg.Database.Redis)
		err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "redis connection", log, redis.Ping)
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		recorder = analytics.NewRecorder(redis.Client, cfg.Analytics.RecentLimit)
		zapLog.Info("Redis connected successfully", zap.String("address", redis.Addr()))
	}

	// --- Zeebe ---
	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebeClient.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Workers ---
	translateHandler := tq.NewHandler(tq.HandlerOptions{
		Config:        &tq.Config{Deadline: config.GetDuration(cfg.Translator.RequestDeadline)},
		Translator:    tr,
		Recorder:      recorder,
		Observability: obs,
		Logger:        log,
	})
	classifyHandler := cq.NewHandler(
		&cq.Config{Timeout: config.GetDuration(config.GetWorkerConfig(cfg, cq.TaskType).Timeout)},
		tr, log,
	)
	synthesizeHandler := ss.NewHandler(
		&ss.Config{Timeout: config.GetDuration(config.GetWorkerConfig(cfg, ss.TaskType).Timeout)},
		sparql.NewSynthesizer(cfg.Translator.OntologyNamespace, vocab), log,
	)

	pool := camunda.Start(zeebeClient, camunda.Plan(cfg, []camunda.Registration{
		{TaskType: tq.TaskType, Handler: translateHandler.Handle},
		{TaskType: cq.TaskType, Handler: classifyHandler.Handle},
		{TaskType: ss.TaskType, Handler: synthesizeHandler.Handle},
	}), log)
	zapLog.Info("Workers registered", zap.Int("count", pool.Len()))

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newMux(zeebeClient, redis, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func newMux(zeebeClient zbc.Client, redis *database.RedisClient, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"zeebe": "ok"}
		status := http.StatusOK

		if err := camunda.HealthCheck(r.Context(), zeebeClient, config.GetDuration(cfg.Camunda.RequestTimeout)); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if redis != nil {
			checks["redis"] = "ok"
			if err := redis.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
			checks["redisPool"] = redis.PoolStats()
		}

		checks["status"] = "ready"
		if status != http.StatusOK {
			checks["status"] = "not ready"
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	body["time"] = time.Now().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
