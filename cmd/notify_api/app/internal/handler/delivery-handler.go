package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/channels"
	"github.com/morrisonak/uta-notify-sub000/pkg/config"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DeliveryHandler struct {
	service *services.DeliveryService
}

func NewDeliveryHandler(db *gorm.DB, cfg *config.Config, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) *DeliveryHandler {
	registry := channels.NewRegistry(log)
	return &DeliveryHandler{service: services.NewDeliveryService(db, cfg, registry, auditor, producer, log)}
}

func (h *DeliveryHandler) GetDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	delivery, err := h.service.GetDelivery(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// ListByStatus lists the queue by delivery status, for example every
// delivery currently sitting in failed.
func (h *DeliveryHandler) ListByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status query parameter is required"})
		return
	}
	deliveries, err := h.service.ListDeliveriesByStatus(status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *DeliveryHandler) ListByMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	deliveries, err := h.service.ListDeliveriesByMessage(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *DeliveryHandler) ListRecipients(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	recipients, err := h.service.ListRecipients(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipients)
}

// RetryDelivery is the manual redrive path for operators: it requeues a
// failed delivery even after the automatic retry budget ran out.
func (h *DeliveryHandler) RetryDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	delivery, err := h.service.RetryDelivery(middlewares.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// RecordEngagement receives provider callback updates (delivered,
// opened, clicked) for a single recipient row.
func (h *DeliveryHandler) RecordEngagement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	var req types.EngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.RecordEngagement(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
