package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriberActive       = "active"
	SubscriberUnsubscribed = "unsubscribed"
	SubscriberBounced      = "bounced"
	SubscriberComplained   = "complained"
)

type Subscriber struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"size:254;index" json:"email"`
	Phone     string    `gorm:"size:20;index" json:"phone"`
	PushToken string    `gorm:"size:255" json:"push_token"`
	Status    string    `gorm:"size:20;not null;index" json:"status"`

	// Empty preference sets mean "no restriction".
	Routes     []string `gorm:"type:jsonb;serializer:json" json:"routes"`
	Modes      []string `gorm:"type:jsonb;serializer:json" json:"modes"`
	Severities []string `gorm:"type:jsonb;serializer:json" json:"severities"`
	Channels   []string `gorm:"type:jsonb;serializer:json" json:"channels"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HandleFor returns the contact handle a subscriber uses on the given
// channel type, or "" when the subscriber cannot receive it.
func (s *Subscriber) HandleFor(channelType string) string {
	switch channelType {
	case ChannelEmail:
		return s.Email
	case ChannelSMS:
		return s.Phone
	case ChannelPush:
		return s.PushToken
	default:
		return ""
	}
}
