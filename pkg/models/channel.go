package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelEmail   = "email"
	ChannelSMS     = "sms"
	ChannelPush    = "push"
	ChannelSocial  = "social"
	ChannelSignage = "signage"
)

// ChannelConfig is stored as jsonb and parsed once at the data-access
// boundary. Which fields matter depends on the provider.
type ChannelConfig struct {
	Provider   string `json:"provider" yaml:"provider"`
	APIKey     string `json:"api_key,omitempty" yaml:"api_key"`
	FromEmail  string `json:"from_email,omitempty" yaml:"from_email"`
	FromName   string `json:"from_name,omitempty" yaml:"from_name"`
	FromNumber string `json:"from_number,omitempty" yaml:"from_number"`
	AccountSID string `json:"account_sid,omitempty" yaml:"account_sid"`
	AuthToken  string `json:"auth_token,omitempty" yaml:"auth_token"`

	SMTPHost     string `json:"smtp_host,omitempty" yaml:"smtp_host"`
	SMTPPort     int    `json:"smtp_port,omitempty" yaml:"smtp_port"`
	SMTPUsername string `json:"smtp_username,omitempty" yaml:"smtp_username"`
	SMTPPassword string `json:"smtp_password,omitempty" yaml:"smtp_password"`
	SMTPUseAuth  bool   `json:"smtp_use_auth,omitempty" yaml:"smtp_use_auth"`
}

type NotificationChannel struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string        `gorm:"size:100;not null" json:"name"`
	Type      string        `gorm:"size:20;not null;index" json:"type"`
	Enabled   bool          `gorm:"not null;default:true;index" json:"enabled"`
	Config    ChannelConfig `gorm:"type:jsonb;serializer:json" json:"config"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func ValidChannelType(t string) bool {
	switch t {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelSocial, ChannelSignage:
		return true
	}
	return false
}

// Broadcast channel types address an audience rather than individual
// contact handles, so publish fan-out queues one delivery per channel
// instead of one per subscriber.
func BroadcastChannelType(t string) bool {
	return t == ChannelSocial || t == ChannelSignage
}
