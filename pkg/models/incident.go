package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

const (
	IncidentDraft    = "draft"
	IncidentActive   = "active"
	IncidentUpdated  = "updated"
	IncidentResolved = "resolved"
	IncidentArchived = "archived"
)

type Incident struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Severity       string     `gorm:"size:20;not null;index" json:"severity"`
	Status         string     `gorm:"size:20;not null;index" json:"status"`
	AffectedModes  []string   `gorm:"type:jsonb;serializer:json" json:"affected_modes"`
	AffectedRoutes []string   `gorm:"type:jsonb;serializer:json" json:"affected_routes"`
	PublicMessage  string     `gorm:"type:text" json:"public_message"`
	Version        int        `gorm:"not null;default:1" json:"version"`
	CreatedBy      string     `gorm:"size:100" json:"created_by"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ValidIncidentStatus(s string) bool {
	switch s {
	case IncidentDraft, IncidentActive, IncidentUpdated, IncidentResolved, IncidentArchived:
		return true
	}
	return false
}

func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
