package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorUser       = "user"
	ActorSystem     = "system"
	ActorAutomation = "automation"
	ActorAPI        = "api"
)

type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// AuditLog entries are append-only. Normal operation never mutates or
// deletes them.
type AuditLog struct {
	ID           uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorType    string                 `gorm:"size:20;not null" json:"actor_type"`
	ActorID      string                 `gorm:"size:100" json:"actor_id"`
	ActorName    string                 `gorm:"size:100" json:"actor_name"`
	Action       string                 `gorm:"size:100;not null;index" json:"action"`
	ResourceType string                 `gorm:"size:50;not null;index:idx_audit_resource" json:"resource_type"`
	ResourceID   string                 `gorm:"size:100;index:idx_audit_resource" json:"resource_id"`
	Details      map[string]interface{} `gorm:"type:jsonb;serializer:json" json:"details,omitempty"`
	Changes      map[string]FieldChange `gorm:"type:jsonb;serializer:json" json:"changes,omitempty"`
	CreatedAt    time.Time              `gorm:"autoCreateTime;index" json:"created_at"`
}
