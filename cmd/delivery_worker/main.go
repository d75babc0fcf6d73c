package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/morrisonak/uta-notify-sub000/cmd/delivery_worker/worker"
	"github.com/morrisonak/uta-notify-sub000/logger"
	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/channels"
	"github.com/morrisonak/uta-notify-sub000/pkg/config"
	"github.com/morrisonak/uta-notify-sub000/pkg/database"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"github.com/morrisonak/uta-notify-sub000/pkg/utils"
	"github.com/morrisonak/uta-notify-sub000/tracing"
)

func main() {
	_ = godotenv.Load()

	logr, err := logger.InitLogger()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	defer logr.Sync()

	db, err := database.InitDB(utils.GetEnv("DATABASE_URL"))
	if err != nil {
		logr.Fatal("failed to initialize database", zap.Error(err))
	}

	cfg, err := config.LoadConfig(utils.GetEnvOr("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logr.Warn("Config file not loaded, using defaults", zap.Error(err))
		cfg = config.Default()
	}

	logr.Info("Starting delivery worker",
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Duration("poll_interval", cfg.PollInterval()))

	metrics.InitWorkerMetrics()
	metrics.InitKafkaMetrics()
	shutdownTracer := tracing.InitTracer("delivery-worker", logr)
	defer shutdownTracer()

	redisClient := database.InitRedis(utils.GetEnvOr("REDIS_ADDR", "localhost:6379"))

	var producer *kafka.Producer
	if broker := utils.GetEnv("KAFKA_BROKER"); broker != "" {
		producer = kafka.NewProducerFromEnv()
		logr.Info("Kafka producer initialized", zap.String("broker", broker))
	}

	auditor := audit.NewRecorder(repositories.NewAuditLogRepository(db), logr)
	registry := channels.NewRegistry(logr)
	svc := services.NewDeliveryService(db, cfg, registry, auditor, producer, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleShutdown(cancel, producer, logr)

	go worker.New(svc, redisClient, cfg.PollInterval(), logr).Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	wrappedMux := middlewares.MetricsMiddleware(mux)
	if err := http.ListenAndServe(":3001", wrappedMux); err != nil {
		logr.Fatal("metrics server failed", zap.Error(err))
	}
}

func handleShutdown(cancel context.CancelFunc, producer *kafka.Producer, logr *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logr.Info("Shutdown signal received", zap.String("signal", sig.String()))
	cancel()

	if producer != nil {
		if err := producer.Close(); err != nil {
			logr.Error("Error closing Kafka producer", zap.Error(err))
		}
	}
	os.Exit(0)
}
