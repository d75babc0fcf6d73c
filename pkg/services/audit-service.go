package services

import (
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"gorm.io/gorm"
)

const defaultAuditLimit = 100

type auditQueryStore interface {
	ListByResource(resourceType, resourceID string, limit int) ([]models.AuditLog, error)
}

// AuditService is the read side of the audit trail. Writes go through
// audit.Recorder from inside the other services.
type AuditService struct {
	store auditQueryStore
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{store: repositories.NewAuditLogRepository(db)}
}

func (s *AuditService) ListByResource(resourceType, resourceID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultAuditLimit
	}
	return s.store.ListByResource(resourceType, resourceID, limit)
}
