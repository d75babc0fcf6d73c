package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicIncidentPublished = "incident.published"
	TopicDeliveryStatus    = "delivery.status"
)

// IncidentPublishedEvent is emitted on the incident.published topic so
// downstream consumers (signage boards, dashboards) can react without
// polling the API.
type IncidentPublishedEvent struct {
	IncidentID     uuid.UUID `json:"incident_id"`
	MessageID      uuid.UUID `json:"message_id,omitempty"`
	Severity       string    `json:"severity"`
	AffectedRoutes []string  `json:"affected_routes"`
	AffectedModes  []string  `json:"affected_modes"`
	PublishedAt    time.Time `json:"published_at"`
}

type DeliveryStatusEvent struct {
	DeliveryID  uuid.UUID `json:"delivery_id"`
	MessageID   uuid.UUID `json:"message_id"`
	ChannelType string    `json:"channel_type"`
	Status      string    `json:"status"`
	RetryCount  int       `json:"retry_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
