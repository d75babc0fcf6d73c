package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable snapshot of notification content. Edits to an
// incident after publish produce a new Message, never an update.
type Message struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	IncidentID      uuid.UUID `gorm:"type:uuid;not null;index" json:"incident_id"`
	IncidentVersion int       `gorm:"not null" json:"incident_version"`
	Subject         string    `gorm:"size:200;not null" json:"subject"`
	Body            string    `gorm:"type:text;not null" json:"body"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Incident Incident `gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE" json:"-"`
}
