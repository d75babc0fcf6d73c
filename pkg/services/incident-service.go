package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/retry"
	"github.com/morrisonak/uta-notify-sub000/pkg/targeting"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IncidentService owns the incident lifecycle and the publish fan-out
// that turns an incident into queued deliveries.
type IncidentService struct {
	incidents   incidentStore
	subscribers subscriberStore
	channels    channelStore
	messages    messageStore
	deliveries  deliveryStore
	recipients  subscriberDeliveryStore
	auditor     *audit.Recorder
	producer    eventPublisher
	clock       retry.Clock
	log         *zap.Logger
}

func NewIncidentService(db *gorm.DB, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) *IncidentService {
	s := &IncidentService{
		incidents:   repositories.NewIncidentRepository(db),
		subscribers: repositories.NewSubscriberRepository(db),
		channels:    repositories.NewChannelRepository(db),
		messages:    repositories.NewMessageRepository(db),
		deliveries:  repositories.NewDeliveryRepository(db),
		recipients:  repositories.NewSubscriberDeliveryRepository(db),
		auditor:     auditor,
		clock:       retry.SystemClock{},
		log:         log,
	}
	if producer != nil {
		s.producer = producer
	}
	return s
}

func (s *IncidentService) CreateIncident(actor *audit.Actor, req *types.CreateIncidentRequest) (*models.Incident, error) {
	if !models.ValidSeverity(req.Severity) {
		return nil, ErrBadSeverity
	}
	incident := &models.Incident{
		Title:          req.Title,
		Severity:       req.Severity,
		Status:         models.IncidentDraft,
		AffectedModes:  req.AffectedModes,
		AffectedRoutes: req.AffectedRoutes,
		PublicMessage:  req.PublicMessage,
		Version:        1,
	}
	if actor != nil {
		incident.CreatedBy = actor.Name
	}
	if err := s.incidents.Create(incident); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "incident.create", "incident", incident.ID.String(), map[string]interface{}{
		"title":    incident.Title,
		"severity": incident.Severity,
	}, nil)
	return incident, nil
}

func (s *IncidentService) GetIncident(id uuid.UUID) (*models.Incident, error) {
	incident, err := s.incidents.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIncidentNotFound
	}
	return incident, err
}

// ListIncidents returns all incidents, or only those in the given
// lifecycle status when one is supplied.
func (s *IncidentService) ListIncidents(status string) ([]models.Incident, error) {
	if status == "" {
		return s.incidents.List()
	}
	if !models.ValidIncidentStatus(status) {
		return nil, ErrBadStatus
	}
	return s.incidents.ListByStatus(status)
}

// ResolveIncident closes out an incident that has been published.
// Notifications already queued are unaffected.
func (s *IncidentService) ResolveIncident(actor *audit.Actor, id uuid.UUID) (*models.Incident, error) {
	incident, err := s.incidents.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, err
	}
	old := incident.Status
	if old != models.IncidentActive && old != models.IncidentUpdated {
		return nil, ErrNotActive
	}
	if err := s.incidents.UpdateStatus(id, models.IncidentResolved); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "incident.resolve", "incident", id.String(), map[string]interface{}{
		"title": incident.Title,
	}, map[string]models.FieldChange{
		"status": {Old: old, New: models.IncidentResolved},
	})
	return s.incidents.GetByID(id)
}

func (s *IncidentService) ListMessages(incidentID uuid.UUID) ([]models.Message, error) {
	return s.messages.ListByIncident(incidentID)
}

// PublishIncident moves a draft incident to active and, when asked,
// snapshots its content into a Message and queues one delivery per
// matched recipient-channel pair. Channel fan-out errors are logged and
// skipped so one broken channel cannot block the rest.
func (s *IncidentService) PublishIncident(ctx context.Context, actor *audit.Actor, id uuid.UUID, req *types.PublishIncidentRequest) (*types.PublishIncidentResponse, error) {
	incident, err := s.incidents.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIncidentNotFound
	}
	if err != nil {
		return nil, err
	}
	if incident.Status != models.IncidentDraft {
		return nil, ErrNotDraft
	}

	now := s.clock.Now()
	if err := s.incidents.MarkPublished(id, now); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "incident.publish", "incident", id.String(), map[string]interface{}{
		"title":    incident.Title,
		"severity": incident.Severity,
	}, map[string]models.FieldChange{
		"status": {Old: models.IncidentDraft, New: models.IncidentActive},
	})

	resp := &types.PublishIncidentResponse{}
	var messageID uuid.UUID
	if req.SendNotifications {
		body := incident.PublicMessage
		if req.OverrideMessage != "" {
			body = req.OverrideMessage
		}
		message := &models.Message{
			IncidentID:      incident.ID,
			IncidentVersion: incident.Version,
			Subject:         incident.Title,
			Body:            body,
		}
		if err := s.messages.Create(message); err != nil {
			return nil, err
		}
		messageID = message.ID
		resp.MessageID = message.ID.String()

		queued, err := s.fanOut(actor, incident, message, nil, false)
		if err != nil {
			return nil, err
		}
		resp.NotificationsSent = queued
	}

	s.publishEvent(ctx, types.TopicIncidentPublished, id.String(), types.IncidentPublishedEvent{
		IncidentID:     incident.ID,
		MessageID:      messageID,
		Severity:       incident.Severity,
		AffectedRoutes: incident.AffectedRoutes,
		AffectedModes:  incident.AffectedModes,
		PublishedAt:    now,
	})
	return resp, nil
}

// QueueMessageDelivery re-queues an existing message snapshot, one
// delivery per enabled channel with the matched recipients grouped
// under it. This is the re-send path for content that already went out
// once, or for pushing a message to channels added after publish.
func (s *IncidentService) QueueMessageDelivery(actor *audit.Actor, messageID uuid.UUID, req *types.QueueMessageRequest) (int, error) {
	message, err := s.messages.GetByID(messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrMessageNotFound
	}
	if err != nil {
		return 0, err
	}
	incident, err := s.incidents.GetByID(message.IncidentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrIncidentNotFound
	}
	if err != nil {
		return 0, err
	}

	return s.fanOut(actor, incident, message, req.ChannelTypes, true)
}

// fanOut queues deliveries for a message. With perChannel false, handle
// channels (email, sms, push) get one delivery per eligible subscriber;
// with perChannel true they get a single delivery per channel carrying
// every recipient, where a later partial outcome stays attributable.
// Broadcast channels (social, signage) always get one delivery each.
func (s *IncidentService) fanOut(actor *audit.Actor, incident *models.Incident, message *models.Message, channelTypes []string, perChannel bool) (int, error) {
	var (
		enabled []models.NotificationChannel
		err     error
	)
	if len(channelTypes) > 0 {
		enabled, err = s.channels.ListEnabledByTypes(channelTypes)
	} else {
		enabled, err = s.channels.ListEnabled()
	}
	if err != nil {
		return 0, err
	}
	if len(enabled) == 0 {
		s.log.Warn("no enabled channels, nothing queued",
			zap.String("incident_id", incident.ID.String()))
		return 0, nil
	}

	active, err := s.subscribers.ListActive()
	if err != nil {
		return 0, err
	}
	matched := targeting.Match(incident, active)

	now := s.clock.Now()
	queued := 0
	for _, channel := range enabled {
		if models.BroadcastChannelType(channel.Type) {
			delivery := &models.Delivery{
				MessageID:   message.ID,
				ChannelID:   channel.ID,
				ChannelType: channel.Type,
				Status:      models.DeliveryQueued,
				QueuedAt:    now,
			}
			if err := s.deliveries.Create(delivery); err != nil {
				s.log.Error("failed to queue broadcast delivery",
					zap.String("channel", channel.Name), zap.Error(err))
				continue
			}
			metrics.DeliveriesQueuedTotal.WithLabelValues(channel.Type).Inc()
			queued++
			continue
		}

		recipients := make([]models.Subscriber, 0, len(matched))
		for i := range matched {
			sub := &matched[i]
			if targeting.WantsChannel(sub, channel.Type) && sub.HandleFor(channel.Type) != "" {
				recipients = append(recipients, *sub)
			}
		}
		if len(recipients) == 0 {
			continue
		}

		if perChannel {
			delivery := &models.Delivery{
				MessageID:   message.ID,
				ChannelID:   channel.ID,
				ChannelType: channel.Type,
				Status:      models.DeliveryQueued,
				QueuedAt:    now,
			}
			if err := s.deliveries.Create(delivery); err != nil {
				s.log.Error("failed to queue channel delivery",
					zap.String("channel", channel.Name), zap.Error(err))
				continue
			}
			for i := range recipients {
				s.attachRecipient(delivery.ID, &recipients[i], channel.Type)
			}
			metrics.DeliveriesQueuedTotal.WithLabelValues(channel.Type).Inc()
			queued++
			continue
		}

		for i := range recipients {
			sub := &recipients[i]
			delivery := &models.Delivery{
				MessageID:   message.ID,
				ChannelID:   channel.ID,
				ChannelType: channel.Type,
				Status:      models.DeliveryQueued,
				QueuedAt:    now,
			}
			if err := s.deliveries.Create(delivery); err != nil {
				s.log.Error("failed to queue delivery",
					zap.String("channel", channel.Name),
					zap.String("subscriber_id", sub.ID.String()),
					zap.Error(err))
				continue
			}
			s.attachRecipient(delivery.ID, sub, channel.Type)
			metrics.DeliveriesQueuedTotal.WithLabelValues(channel.Type).Inc()
			queued++
		}
	}

	s.auditor.Record(actor, "message.queue", "message", message.ID.String(), map[string]interface{}{
		"incident_id":      incident.ID.String(),
		"deliveries":       queued,
		"matched_subs":     len(matched),
		"enabled_channels": len(enabled),
	}, nil)
	return queued, nil
}

func (s *IncidentService) attachRecipient(deliveryID uuid.UUID, sub *models.Subscriber, channelType string) {
	sd := &models.SubscriberDelivery{
		DeliveryID:   deliveryID,
		SubscriberID: sub.ID,
		Recipient:    sub.HandleFor(channelType),
		Status:       models.SubscriberDeliveryPending,
	}
	if err := s.recipients.Create(sd); err != nil {
		s.log.Error("failed to attach recipient",
			zap.String("delivery_id", deliveryID.String()),
			zap.String("subscriber_id", sub.ID.String()),
			zap.Error(err))
	}
}

func (s *IncidentService) publishEvent(ctx context.Context, topic, key string, event interface{}) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to encode event", zap.String("topic", topic), zap.Error(err))
		return
	}
	if err := s.producer.Publish(ctx, topic, []byte(key), payload); err != nil {
		s.log.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
