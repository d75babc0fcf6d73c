package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/morrisonak/uta-notify-sub000/cmd/notify_api/app/internal/handler"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/config"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Incidents(r *gin.RouterGroup, db *gorm.DB, auditor *audit.Recorder, producer *kafka.Producer, redisClient *redis.Client, log *zap.Logger) {
	incidentHandler := handler.NewIncidentHandler(db, auditor, producer, log)
	idempotent := middlewares.IdempotencyMiddleware(&middlewares.MiddlewareConfig{
		RedisClient: redisClient,
	})

	r.POST("/", incidentHandler.CreateIncident)
	r.GET("/", incidentHandler.ListIncidents)
	r.GET("/:id", incidentHandler.GetIncident)
	r.POST("/:id/publish", idempotent, incidentHandler.PublishIncident)
	r.POST("/:id/resolve", incidentHandler.ResolveIncident)
	r.GET("/:id/messages", incidentHandler.ListMessages)
}

func Deliveries(r *gin.RouterGroup, db *gorm.DB, cfg *config.Config, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) {
	deliveryHandler := handler.NewDeliveryHandler(db, cfg, auditor, producer, log)

	r.GET("/", deliveryHandler.ListByStatus)
	r.GET("/:id", deliveryHandler.GetDelivery)
	r.GET("/:id/recipients", deliveryHandler.ListRecipients)
	r.POST("/:id/retry", deliveryHandler.RetryDelivery)
}

func Messages(r *gin.RouterGroup, db *gorm.DB, cfg *config.Config, auditor *audit.Recorder, producer *kafka.Producer, redisClient *redis.Client, log *zap.Logger) {
	incidentHandler := handler.NewIncidentHandler(db, auditor, producer, log)
	deliveryHandler := handler.NewDeliveryHandler(db, cfg, auditor, producer, log)
	idempotent := middlewares.IdempotencyMiddleware(&middlewares.MiddlewareConfig{
		RedisClient: redisClient,
	})

	r.POST("/:id/queue", idempotent, incidentHandler.QueueMessage)
	r.GET("/:id/deliveries", deliveryHandler.ListByMessage)
}

func Recipients(r *gin.RouterGroup, db *gorm.DB, cfg *config.Config, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) {
	deliveryHandler := handler.NewDeliveryHandler(db, cfg, auditor, producer, log)

	r.POST("/:id/engagement", deliveryHandler.RecordEngagement)
}

func Subscribers(r *gin.RouterGroup, db *gorm.DB, auditor *audit.Recorder) {
	subscriberHandler := handler.NewSubscriberHandler(db, auditor)

	r.POST("/", subscriberHandler.CreateSubscriber)
	r.GET("/", subscriberHandler.ListSubscribers)
	r.GET("/:id", subscriberHandler.GetSubscriber)
	r.POST("/:id/unsubscribe", subscriberHandler.Unsubscribe)
	r.POST("/:id/bounce", subscriberHandler.MarkBounced)
	r.DELETE("/:id", subscriberHandler.DeleteSubscriber)
}

func Channels(r *gin.RouterGroup, db *gorm.DB, auditor *audit.Recorder) {
	channelHandler := handler.NewChannelHandler(db, auditor)

	r.POST("/", channelHandler.CreateChannel)
	r.GET("/", channelHandler.ListChannels)
	r.GET("/:id", channelHandler.GetChannel)
	r.PATCH("/:id/enabled", channelHandler.SetEnabled)
	r.DELETE("/:id", channelHandler.DeleteChannel)
}

func AuditTrail(r *gin.RouterGroup, db *gorm.DB) {
	auditHandler := handler.NewAuditHandler(db)

	r.GET("/", auditHandler.ListByResource)
}
