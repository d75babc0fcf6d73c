package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"gorm.io/gorm"
)

type ChannelService struct {
	channels channelStore
	auditor  *audit.Recorder
}

func NewChannelService(db *gorm.DB, auditor *audit.Recorder) *ChannelService {
	return &ChannelService{
		channels: repositories.NewChannelRepository(db),
		auditor:  auditor,
	}
}

func (s *ChannelService) CreateChannel(actor *audit.Actor, req *types.CreateChannelRequest) (*models.NotificationChannel, error) {
	if !models.ValidChannelType(req.Type) {
		return nil, ErrBadChannelType
	}

	var cfg models.ChannelConfig
	if req.Config != nil {
		raw, err := json.Marshal(req.Config)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	channel := &models.NotificationChannel{
		Name:    req.Name,
		Type:    req.Type,
		Enabled: enabled,
		Config:  cfg,
	}
	if err := s.channels.Create(channel); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "channel.create", "channel", channel.ID.String(), map[string]interface{}{
		"name":    channel.Name,
		"type":    channel.Type,
		"enabled": channel.Enabled,
	}, nil)
	return channel, nil
}

func (s *ChannelService) GetChannel(id uuid.UUID) (*models.NotificationChannel, error) {
	channel, err := s.channels.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChannelNotFound
	}
	return channel, err
}

func (s *ChannelService) ListChannels() ([]models.NotificationChannel, error) {
	return s.channels.List()
}

// DeleteChannel removes a channel. Deliveries already queued
// against it fail their channel lookup at process time.
func (s *ChannelService) DeleteChannel(actor *audit.Actor, id uuid.UUID) error {
	channel, err := s.channels.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChannelNotFound
	}
	if err != nil {
		return err
	}
	if err := s.channels.Delete(id); err != nil {
		return err
	}
	s.auditor.Record(actor, "channel.delete", "channel", id.String(), map[string]interface{}{
		"name": channel.Name,
		"type": channel.Type,
	}, nil)
	return nil
}

// SetChannelEnabled toggles a channel in or out of the publish fan-out.
// Already-queued deliveries on a disabled channel fail at process time
// rather than being dropped silently.
func (s *ChannelService) SetChannelEnabled(actor *audit.Actor, id uuid.UUID, enabled bool) error {
	channel, err := s.channels.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrChannelNotFound
	}
	if err != nil {
		return err
	}
	old := channel.Enabled
	if old == enabled {
		return nil
	}
	if err := s.channels.SetEnabled(id, enabled); err != nil {
		return err
	}
	s.auditor.Record(actor, "channel.toggle", "channel", id.String(), map[string]interface{}{
		"name": channel.Name,
	}, map[string]models.FieldChange{
		"enabled": {Old: old, New: enabled},
	})
	return nil
}
