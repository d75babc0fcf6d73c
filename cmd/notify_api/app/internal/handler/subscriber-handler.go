package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/middlewares"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"gorm.io/gorm"
)

type SubscriberHandler struct {
	service *services.SubscriberService
}

func NewSubscriberHandler(db *gorm.DB, auditor *audit.Recorder) *SubscriberHandler {
	return &SubscriberHandler{service: services.NewSubscriberService(db, auditor)}
}

func (h *SubscriberHandler) CreateSubscriber(c *gin.Context) {
	var req types.CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.service.CreateSubscriber(middlewares.ActorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriberHandler) GetSubscriber(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	sub, err := h.service.GetSubscriber(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubscriberHandler) ListSubscribers(c *gin.Context) {
	subs, err := h.service.ListSubscribers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if err := h.service.Unsubscribe(middlewares.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SubscriberHandler) MarkBounced(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if err := h.service.MarkBounced(middlewares.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SubscriberHandler) DeleteSubscriber(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if err := h.service.DeleteSubscriber(middlewares.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
