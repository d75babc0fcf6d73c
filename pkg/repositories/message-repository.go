package repositories

import (
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create is the only write path. Messages are immutable snapshots, so
// there is no update method on this repository.
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) GetByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) ListByIncident(incidentID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Where("incident_id = ?", incidentID).
		Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
