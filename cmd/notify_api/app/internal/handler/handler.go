package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
)

// respondError maps engine sentinel errors onto HTTP statuses. Anything
// unrecognized is an internal error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrIncidentNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrDeliveryNotFound),
		errors.Is(err, services.ErrSubscriberNotFound),
		errors.Is(err, services.ErrChannelNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrNotDraft),
		errors.Is(err, services.ErrNotActive),
		errors.Is(err, services.ErrNotFailed):
		status = http.StatusConflict
	case errors.Is(err, services.ErrBadSeverity),
		errors.Is(err, services.ErrBadChannelType),
		errors.Is(err, services.ErrBadEngagement),
		errors.Is(err, services.ErrBadStatus),
		errors.Is(err, services.ErrNoContact):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
