package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type SubscriberDeliveryRepository struct {
	db *gorm.DB
}

func NewSubscriberDeliveryRepository(db *gorm.DB) *SubscriberDeliveryRepository {
	return &SubscriberDeliveryRepository{db: db}
}

func (r *SubscriberDeliveryRepository) Create(sd *models.SubscriberDelivery) error {
	return r.db.Create(sd).Error
}

func (r *SubscriberDeliveryRepository) GetByID(id uuid.UUID) (*models.SubscriberDelivery, error) {
	var sd models.SubscriberDelivery
	if err := r.db.First(&sd, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sd, nil
}

func (r *SubscriberDeliveryRepository) ListByDelivery(deliveryID uuid.UUID) ([]models.SubscriberDelivery, error) {
	var sds []models.SubscriberDelivery
	if err := r.db.Where("delivery_id = ?", deliveryID).
		Find(&sds).Error; err != nil {
		return nil, err
	}
	return sds, nil
}

func (r *SubscriberDeliveryRepository) MarkSent(deliveryID uuid.UUID, at time.Time) error {
	return r.db.Model(&models.SubscriberDelivery{}).
		Where("delivery_id = ?", deliveryID).
		Updates(map[string]interface{}{
			"status":  models.SubscriberDeliverySent,
			"sent_at": at,
		}).Error
}

func (r *SubscriberDeliveryRepository) MarkFailed(deliveryID uuid.UUID, at time.Time) error {
	return r.db.Model(&models.SubscriberDelivery{}).
		Where("delivery_id = ?", deliveryID).
		Updates(map[string]interface{}{
			"status":    models.SubscriberDeliveryFailed,
			"failed_at": at,
		}).Error
}

// UpdateEngagement records per-recipient tracking callbacks
// (delivered/opened/clicked) reported by providers.
func (r *SubscriberDeliveryRepository) UpdateEngagement(id uuid.UUID, status string, at time.Time) error {
	updates := map[string]interface{}{"status": status}
	switch status {
	case models.SubscriberDeliveryDelivered:
		updates["delivered_at"] = at
	case models.SubscriberDeliveryOpened:
		updates["opened_at"] = at
	case models.SubscriberDeliveryClicked:
		updates["clicked_at"] = at
	}
	return r.db.Model(&models.SubscriberDelivery{}).
		Where("id = ?", id).
		Updates(updates).Error
}
