package repositories

import (
	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Create(channel *models.NotificationChannel) error {
	return r.db.Create(channel).Error
}

func (r *ChannelRepository) GetByID(id uuid.UUID) (*models.NotificationChannel, error) {
	var channel models.NotificationChannel
	if err := r.db.First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) List() ([]models.NotificationChannel, error) {
	var channels []models.NotificationChannel
	if err := r.db.Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) ListEnabled() ([]models.NotificationChannel, error) {
	var channels []models.NotificationChannel
	if err := r.db.Where("enabled = ?", true).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) ListEnabledByTypes(types []string) ([]models.NotificationChannel, error) {
	var channels []models.NotificationChannel
	q := r.db.Where("enabled = ?", true)
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	if err := q.Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepository) SetEnabled(id uuid.UUID, enabled bool) error {
	return r.db.Model(&models.NotificationChannel{}).
		Where("id = ?", id).
		Update("enabled", enabled).Error
}

func (r *ChannelRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.NotificationChannel{}, "id = ?", id).Error
}
