package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IncidentHandler struct {
	service *services.IncidentService
}

func NewIncidentHandler(db *gorm.DB, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) *IncidentHandler {
	return &IncidentHandler{service: services.NewIncidentService(db, auditor, producer, log)}
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req types.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	incident, err := h.service.CreateIncident(middlewares.ActorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, incident)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	incident, err := h.service.GetIncident(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	incidents, err := h.service.ListIncidents(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) ResolveIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	incident, err := h.service.ResolveIncident(middlewares.ActorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) PublishIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	var req types.PublishIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.service.PublishIncident(c.Request.Context(), middlewares.ActorFrom(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QueueMessage re-queues an existing message snapshot onto the enabled
// channels, optionally restricted to a subset of channel types.
func (h *IncidentHandler) QueueMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	var req types.QueueMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	queued, err := h.service.QueueMessageDelivery(middlewares.ActorFrom(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"message_id": id,
		"queued":     queued,
	})
}

func (h *IncidentHandler) ListMessages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	messages, err := h.service.ListMessages(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
