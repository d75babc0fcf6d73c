package repositories

import (
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Create(sub *models.Subscriber) error {
	return r.db.Create(sub).Error
}

func (r *SubscriberRepository) GetByID(id uuid.UUID) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriberRepository) ListActive() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := r.db.Where("status = ?", models.SubscriberActive).
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriberRepository) List() ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := r.db.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubscriberRepository) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Subscriber{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SubscriberRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Subscriber{}, "id = ?", id).Error
}
