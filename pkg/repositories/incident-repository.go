package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(incident *models.Incident) error {
	return r.db.Create(incident).Error
}

func (r *IncidentRepository) GetByID(id uuid.UUID) (*models.Incident, error) {
	var incident models.Incident
	if err := r.db.First(&incident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *IncidentRepository) List() ([]models.Incident, error) {
	var incidents []models.Incident
	if err := r.db.Order("created_at desc").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *IncidentRepository) ListByStatus(status string) ([]models.Incident, error) {
	var incidents []models.Incident
	if err := r.db.Where("status = ?", status).
		Order("created_at desc").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *IncidentRepository) MarkPublished(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Incident{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.IncidentActive,
			"published_at": at,
		}).Error
}

func (r *IncidentRepository) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Incident{}).
		Where("id = ?", id).
		Update("status", status).Error
}
