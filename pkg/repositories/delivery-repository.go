package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *DeliveryRepository) GetByID(id uuid.UUID) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.First(&delivery, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *DeliveryRepository) ListByMessage(messageID uuid.UUID) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.Where("message_id = ?", messageID).
		Order("queued_at asc").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *DeliveryRepository) ListByStatus(status string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.Where("status = ?", status).
		Order("queued_at asc").Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindDue selects deliveries the batch processor should pick up: freshly
// queued rows plus failed rows whose retry is due and whose retry budget
// is not exhausted. Oldest queue time first.
func (r *DeliveryRepository) FindDue(now time.Time, limit int) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.
		Where("status = ?", models.DeliveryQueued).
		Or("status = ? AND retry_count < ? AND next_retry_at <= ?",
			models.DeliveryFailed, models.MaxRetries, now).
		Order("queued_at asc").
		Limit(limit).
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// MarkSending records intent to send, not success. SentAt is set here so
// stale rows can be reclaimed if the adapter call never returns.
func (r *DeliveryRepository) MarkSending(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.DeliverySending,
			"sent_at": at,
		}).Error
}

func (r *DeliveryRepository) MarkDelivered(id uuid.UUID, at time.Time, providerMessageID string, response map[string]interface{}) error {
	return r.db.Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              models.DeliveryDelivered,
			"delivered_at":        at,
			"provider_message_id": providerMessageID,
			"provider_response":   response,
			"next_retry_at":       nil,
			"failure_reason":      "",
			"failed_at":           nil,
		}).Error
}

func (r *DeliveryRepository) MarkFailed(id uuid.UUID, at time.Time, reason string, retryCount int, nextRetryAt *time.Time) error {
	return r.db.Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.DeliveryFailed,
			"failed_at":      at,
			"failure_reason": reason,
			"retry_count":    retryCount,
			"next_retry_at":  nextRetryAt,
		}).Error
}

// Requeue is the manual retry path for terminal failures. Reason and
// next-retry are cleared; the retry count is kept, so a requeued
// delivery that fails again goes straight back to terminal.
func (r *DeliveryRepository) Requeue(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Delivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.DeliveryQueued,
			"queued_at":      at,
			"next_retry_at":  nil,
			"failure_reason": "",
			"failed_at":      nil,
		}).Error
}

// ReclaimStale resets deliveries stuck in sending longer than the
// staleness cutoff back to queued so a later pass can pick them up.
func (r *DeliveryRepository) ReclaimStale(before time.Time) (int64, error) {
	res := r.db.Model(&models.Delivery{}).
		Where("status = ? AND sent_at < ?", models.DeliverySending, before).
		Updates(map[string]interface{}{
			"status":  models.DeliveryQueued,
			"sent_at": nil,
		})
	return res.RowsAffected, res.Error
}
