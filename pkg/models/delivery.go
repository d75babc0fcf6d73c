package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryQueued    = "queued"
	DeliverySending   = "sending"
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
	DeliveryPartial   = "partial"
)

const MaxRetries = 3

func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryQueued, DeliverySending, DeliveryDelivered, DeliveryFailed, DeliveryPartial:
		return true
	}
	return false
}

type Delivery struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MessageID   uuid.UUID `gorm:"type:uuid;not null;index" json:"message_id"`
	ChannelID   uuid.UUID `gorm:"type:uuid;not null;index" json:"channel_id"`
	ChannelType string    `gorm:"size:20;not null" json:"channel_type"`
	Status      string    `gorm:"size:20;not null;index" json:"status"`

	RetryCount  int        `gorm:"not null;default:0" json:"retry_count"`
	NextRetryAt *time.Time `gorm:"index" json:"next_retry_at,omitempty"`

	ProviderMessageID string                 `gorm:"size:255" json:"provider_message_id"`
	ProviderResponse  map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"provider_response,omitempty"`
	FailureReason     string                 `gorm:"type:text" json:"failure_reason"`

	QueuedAt    time.Time  `gorm:"not null;index" json:"queued_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`

	Message Message             `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	Channel NotificationChannel `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	SubscriberDeliveryPending   = "pending"
	SubscriberDeliverySent      = "sent"
	SubscriberDeliveryDelivered = "delivered"
	SubscriberDeliveryFailed    = "failed"
	SubscriberDeliveryOpened    = "opened"
	SubscriberDeliveryClicked   = "clicked"
)

// SubscriberDelivery tracks a single recipient under a Delivery. One
// Delivery may fan out to many recipients.
type SubscriberDelivery struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeliveryID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"delivery_id"`
	SubscriberID uuid.UUID  `gorm:"type:uuid;not null;index" json:"subscriber_id"`
	Recipient    string     `gorm:"size:255;not null" json:"recipient"`
	Status       string     `gorm:"size:20;not null" json:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	FailedAt     *time.Time `json:"failed_at,omitempty"`
	OpenedAt     *time.Time `json:"opened_at,omitempty"`
	ClickedAt    *time.Time `json:"clicked_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Delivery   Delivery   `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE" json:"-"`
	Subscriber Subscriber `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-"`
}
