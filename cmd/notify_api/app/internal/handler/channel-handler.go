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

type ChannelHandler struct {
	service *services.ChannelService
}

func NewChannelHandler(db *gorm.DB, auditor *audit.Recorder) *ChannelHandler {
	return &ChannelHandler{service: services.NewChannelService(db, auditor)}
}

func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req types.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	channel, err := h.service.CreateChannel(middlewares.ActorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, channel)
}

func (h *ChannelHandler) GetChannel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	channel, err := h.service.GetChannel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.service.ListChannels()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	if err := h.service.DeleteChannel(middlewares.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChannelHandler) SetEnabled(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.SetChannelEnabled(middlewares.ActorFrom(c), id, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
