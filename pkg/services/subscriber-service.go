package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/gosms"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"gorm.io/gorm"
)

type SubscriberService struct {
	subscribers subscriberStore
	auditor     *audit.Recorder
}

func NewSubscriberService(db *gorm.DB, auditor *audit.Recorder) *SubscriberService {
	return &SubscriberService{
		subscribers: repositories.NewSubscriberRepository(db),
		auditor:     auditor,
	}
}

// CreateSubscriber registers a new recipient. At least one contact
// handle is required; phone numbers are normalized to E.164 on the way
// in so matching against provider callbacks stays exact.
func (s *SubscriberService) CreateSubscriber(actor *audit.Actor, req *types.CreateSubscriberRequest) (*models.Subscriber, error) {
	if req.Email == "" && req.Phone == "" && req.PushToken == "" {
		return nil, ErrNoContact
	}
	for _, sev := range req.Severities {
		if !models.ValidSeverity(sev) {
			return nil, ErrBadSeverity
		}
	}
	for _, ch := range req.Channels {
		if !models.ValidChannelType(ch) {
			return nil, ErrBadChannelType
		}
	}

	phone := req.Phone
	if phone != "" {
		normalized, err := gosms.NormalizeSMS(phone)
		if err != nil {
			return nil, err
		}
		phone = normalized
	}

	sub := &models.Subscriber{
		Email:      req.Email,
		Phone:      phone,
		PushToken:  req.PushToken,
		Status:     models.SubscriberActive,
		Routes:     req.Routes,
		Modes:      req.Modes,
		Severities: req.Severities,
		Channels:   req.Channels,
	}
	if err := s.subscribers.Create(sub); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "subscriber.create", "subscriber", sub.ID.String(), map[string]interface{}{
		"email": audit.MaskEmail(sub.Email),
		"phone": audit.MaskPhone(sub.Phone),
	}, nil)
	return sub, nil
}

func (s *SubscriberService) GetSubscriber(id uuid.UUID) (*models.Subscriber, error) {
	sub, err := s.subscribers.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriberNotFound
	}
	return sub, err
}

func (s *SubscriberService) ListSubscribers() ([]models.Subscriber, error) {
	return s.subscribers.List()
}

// Unsubscribe flips the subscriber out of active status. The row is
// kept so past deliveries stay attributable.
func (s *SubscriberService) Unsubscribe(actor *audit.Actor, id uuid.UUID) error {
	return s.setStatus(actor, id, models.SubscriberUnsubscribed)
}

// MarkBounced is the hard-bounce path from provider webhooks.
func (s *SubscriberService) MarkBounced(actor *audit.Actor, id uuid.UUID) error {
	return s.setStatus(actor, id, models.SubscriberBounced)
}

func (s *SubscriberService) setStatus(actor *audit.Actor, id uuid.UUID, status string) error {
	sub, err := s.subscribers.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubscriberNotFound
	}
	if err != nil {
		return err
	}
	if sub.Status == status {
		return nil
	}
	if err := s.subscribers.UpdateStatus(id, status); err != nil {
		return err
	}
	s.auditor.Record(actor, "subscriber.status", "subscriber", id.String(), nil, map[string]models.FieldChange{
		"status": {Old: sub.Status, New: status},
	})
	return nil
}

func (s *SubscriberService) DeleteSubscriber(actor *audit.Actor, id uuid.UUID) error {
	sub, err := s.subscribers.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSubscriberNotFound
	}
	if err != nil {
		return err
	}
	if err := s.subscribers.Delete(id); err != nil {
		return err
	}
	s.auditor.Record(actor, "subscriber.delete", "subscriber", id.String(), map[string]interface{}{
		"email": audit.MaskEmail(sub.Email),
	}, nil)
	return nil
}
