package main

import (
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/morrisonak/uta-notify-sub000/cmd/notify_api/app/routes"
	"github.com/morrisonak/uta-notify-sub000/logger"
	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/config"
	"github.com/morrisonak/uta-notify-sub000/pkg/database"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/utils"
	"github.com/morrisonak/uta-notify-sub000/tracing"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found, using system env")
	}

	log, err := logger.InitLogger()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
	defer log.Sync()

	db, err := database.InitDB(utils.GetEnv("DATABASE_URL"))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDB(db,
		&models.Incident{},
		&models.Subscriber{},
		&models.NotificationChannel{},
		&models.Message{},
		&models.Delivery{},
		&models.SubscriberDelivery{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	cfg, err := config.LoadConfig(utils.GetEnvOr("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Warn("Config file not loaded, using defaults", zap.Error(err))
		cfg = config.Default()
	}

	redisClient := database.InitRedis(utils.GetEnvOr("REDIS_ADDR", "localhost:6379"))

	var producer *kafka.Producer
	if broker := utils.GetEnv("KAFKA_BROKER"); broker != "" {
		producer = kafka.NewProducerFromEnv()
		log.Info("Kafka producer initialized", zap.String("broker", broker))
	} else {
		log.Warn("KAFKA_BROKER not set, event publishing disabled")
	}

	metrics.InitAPIMetrics()
	metrics.InitKafkaMetrics()
	shutdownTracer := tracing.InitTracer("notify-api", log)
	defer shutdownTracer()

	auditor := audit.NewRecorder(repositories.NewAuditLogRepository(db), log)
	limiter := middlewares.NewRateLimiter(rate.Limit(10), 30)

	router := gin.Default()
	router.Use(middlewares.GinMetricsMiddleware())

	// Health checks and scrapes stay outside the keyed rate limiter.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api")
	v1.Use(middlewares.ActorMiddleware())
	v1.Use(limiter.Middleware())
	routes.Incidents(v1.Group("/incidents"), db, auditor, producer, redisClient, log)
	routes.Messages(v1.Group("/messages"), db, cfg, auditor, producer, redisClient, log)
	routes.Deliveries(v1.Group("/deliveries"), db, cfg, auditor, producer, log)
	routes.Recipients(v1.Group("/recipients"), db, cfg, auditor, producer, log)
	routes.Subscribers(v1.Group("/subscribers"), db, auditor)
	routes.Channels(v1.Group("/channels"), db, auditor)
	routes.AuditTrail(v1.Group("/audit"), db)

	go handleShutdown(producer, log)
	if err := router.Run(":3000"); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

func handleShutdown(producer *kafka.Producer, log *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", zap.String("signal", sig.String()))

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Error closing Kafka producer", zap.Error(err))
		} else {
			log.Info("Kafka producer closed cleanly")
		}
	}

	os.Exit(0)
}
