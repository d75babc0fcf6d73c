package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"gorm.io/gorm"
)

type AuditHandler struct {
	service *services.AuditService
}

func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{service: services.NewAuditService(db)}
}

// ListByResource returns the audit trail for one resource, newest
// first. resource_type and resource_id are required query params.
func (h *AuditHandler) ListByResource(c *gin.Context) {
	resourceType := c.Query("resource_type")
	resourceID := c.Query("resource_id")
	if resourceType == "" || resourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource_type and resource_id are required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.service.ListByResource(resourceType, resourceID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
