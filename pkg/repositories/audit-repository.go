package repositories

import (
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

// AuditLogRepository is append-only. There is deliberately no update or
// delete method.
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditLogRepository) ListByResource(resourceType, resourceID string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	q := r.db.Where("resource_type = ?", resourceType).
		Order("created_at desc")
	if resourceID != "" {
		q = q.Where("resource_id = ?", resourceID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
