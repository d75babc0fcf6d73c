package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/channels"
	"github.com/morrisonak/uta-notify-sub000/pkg/config"
	"github.com/morrisonak/uta-notify-sub000/pkg/kafka"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/repositories"
	"github.com/morrisonak/uta-notify-sub000/pkg/retry"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeliveryService drains the delivery queue and drives each row through
// its state machine: queued, sending, then delivered or failed with a
// scheduled retry until the retry budget runs out.
type DeliveryService struct {
	deliveries deliveryStore
	recipients subscriberDeliveryStore
	messages   messageStore
	channels   channelStore
	registry   *channels.Registry
	cfg        *config.Config
	auditor    *audit.Recorder
	producer   eventPublisher
	clock      retry.Clock
	log        *zap.Logger
}

func NewDeliveryService(db *gorm.DB, cfg *config.Config, registry *channels.Registry, auditor *audit.Recorder, producer *kafka.Producer, log *zap.Logger) *DeliveryService {
	s := &DeliveryService{
		deliveries: repositories.NewDeliveryRepository(db),
		recipients: repositories.NewSubscriberDeliveryRepository(db),
		messages:   repositories.NewMessageRepository(db),
		channels:   repositories.NewChannelRepository(db),
		registry:   registry,
		cfg:        cfg,
		auditor:    auditor,
		clock:      retry.SystemClock{},
		log:        log,
	}
	if producer != nil {
		s.producer = producer
	}
	return s
}

func workerActor() *audit.Actor {
	return &audit.Actor{Type: models.ActorAutomation, Name: "delivery-worker"}
}

// ProcessQueuedDeliveries runs one batch pass. Deliveries stuck in
// sending past the staleness cutoff are reclaimed first, then up to
// BatchSize due rows are processed in queue order. A failure on one
// delivery never stops the rest of the batch.
func (s *DeliveryService) ProcessQueuedDeliveries(ctx context.Context) (int, error) {
	now := s.clock.Now()

	reclaimed, err := s.deliveries.ReclaimStale(now.Add(-s.cfg.StaleAfter()))
	if err != nil {
		s.log.Error("failed to reclaim stale deliveries", zap.Error(err))
	} else if reclaimed > 0 {
		metrics.StaleDeliveriesReclaimedTotal.Add(float64(reclaimed))
		s.log.Warn("reclaimed stale deliveries", zap.Int64("count", reclaimed))
	}

	due, err := s.deliveries.FindDue(now, s.cfg.Worker.BatchSize)
	if err != nil {
		return 0, err
	}
	for i := range due {
		s.processOne(ctx, &due[i])
	}
	return len(due), nil
}

func (s *DeliveryService) processOne(ctx context.Context, delivery *models.Delivery) {
	channel, err := s.channels.GetByID(delivery.ChannelID)
	if err != nil {
		s.failSetup(ctx, delivery, "", "channel lookup failed: "+err.Error())
		return
	}
	if !channel.Enabled {
		s.failSetup(ctx, delivery, "", "channel is disabled")
		return
	}
	message, err := s.messages.GetByID(delivery.MessageID)
	if err != nil {
		s.failSetup(ctx, delivery, "", "message lookup failed: "+err.Error())
		return
	}

	merged := s.cfg.MergeChannelConfig(channel.Type, channel.Config)
	provider := merged.Provider
	if provider == "" {
		provider = "simulated"
	}

	adapter := s.registry.AdapterFor(channel.Type)
	content := channels.Content{
		Subject: message.Subject,
		Body:    adapter.FormatContent(message.Body),
	}

	recipients, err := s.resolveRecipients(delivery, channel)
	if err != nil {
		s.failSetup(ctx, delivery, provider, err.Error())
		return
	}

	now := s.clock.Now()
	if err := s.deliveries.MarkSending(delivery.ID, now); err != nil {
		s.log.Error("failed to mark delivery sending",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		return
	}

	start := time.Now()
	result, err := adapter.Send(ctx, content, recipients, merged)
	metrics.DeliverySendDuration.WithLabelValues(provider, channel.Type).Observe(time.Since(start).Seconds())
	if err != nil {
		s.failDelivery(ctx, delivery, provider, err.Error())
		return
	}

	now = s.clock.Now()
	if err := s.deliveries.MarkDelivered(delivery.ID, now, result.ProviderMessageID, result.Response); err != nil {
		s.log.Error("failed to mark delivery delivered",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		return
	}
	if err := s.recipients.MarkSent(delivery.ID, now); err != nil {
		s.log.Error("failed to mark recipients sent",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
	}

	metrics.DeliveriesProcessedTotal.WithLabelValues(channel.Type, models.DeliveryDelivered, provider).Inc()
	s.auditor.Record(workerActor(), "delivery.delivered", "delivery", delivery.ID.String(), map[string]interface{}{
		"channel":             channel.Name,
		"channel_type":        channel.Type,
		"provider_message_id": result.ProviderMessageID,
		"recipients":          len(recipients),
	}, nil)
	s.publishStatus(ctx, delivery, models.DeliveryDelivered, delivery.RetryCount, now)
	s.log.Info("delivery sent",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("channel", channel.Name),
		zap.Int("recipients", len(recipients)))
}

// resolveRecipients returns the attached recipient handles, or the
// channel name itself for broadcast channels with no per-recipient rows.
func (s *DeliveryService) resolveRecipients(delivery *models.Delivery, channel *models.NotificationChannel) ([]string, error) {
	rows, err := s.recipients.ListByDelivery(delivery.ID)
	if err != nil {
		return nil, errors.New("recipient lookup failed: " + err.Error())
	}
	if len(rows) == 0 {
		if models.BroadcastChannelType(channel.Type) {
			return []string{channel.Name}, nil
		}
		return nil, errors.New("delivery has no recipients")
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Recipient)
	}
	return out, nil
}

// failSetup fails a delivery that never reached its adapter. The row
// still passes through sending so failed is only ever entered from
// sending, and the failure stays retryable since lookup errors and
// disabled channels can clear up before the next attempt.
func (s *DeliveryService) failSetup(ctx context.Context, delivery *models.Delivery, provider, reason string) {
	if err := s.deliveries.MarkSending(delivery.ID, s.clock.Now()); err != nil {
		s.log.Error("failed to mark delivery sending",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		return
	}
	s.failDelivery(ctx, delivery, provider, reason)
}

// failDelivery applies the retry policy: while the retry budget allows,
// the count is bumped and the next attempt scheduled with exponential
// backoff; once exhausted the delivery is terminal and its recipients
// are marked failed.
func (s *DeliveryService) failDelivery(ctx context.Context, delivery *models.Delivery, provider, reason string) {
	now := s.clock.Now()
	if provider == "" {
		provider = "unknown"
	}

	count := delivery.RetryCount
	var nextRetryAt *time.Time
	if retry.ShouldRetry(count) {
		count++
		next := retry.NextRetryAt(s.clock, count)
		nextRetryAt = &next
		metrics.DeliveryRetriesTotal.WithLabelValues(delivery.ChannelType).Inc()
	} else {
		metrics.DeliveriesTerminalTotal.WithLabelValues(delivery.ChannelType).Inc()
	}

	if err := s.deliveries.MarkFailed(delivery.ID, now, reason, count, nextRetryAt); err != nil {
		s.log.Error("failed to mark delivery failed",
			zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		return
	}
	if nextRetryAt == nil {
		if err := s.recipients.MarkFailed(delivery.ID, now); err != nil {
			s.log.Error("failed to mark recipients failed",
				zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
		}
	}

	metrics.DeliveriesProcessedTotal.WithLabelValues(delivery.ChannelType, models.DeliveryFailed, provider).Inc()
	details := map[string]interface{}{
		"channel_type": delivery.ChannelType,
		"reason":       audit.TruncateDetail(reason),
		"retry_count":  count,
	}
	if nextRetryAt != nil {
		details["next_retry_at"] = nextRetryAt.Format(time.RFC3339)
	} else {
		details["terminal"] = true
	}
	s.auditor.Record(workerActor(), "delivery.failed", "delivery", delivery.ID.String(), details, nil)
	s.publishStatus(ctx, delivery, models.DeliveryFailed, count, now)
	s.log.Warn("delivery failed",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("channel_type", delivery.ChannelType),
		zap.String("reason", reason),
		zap.Int("retry_count", count),
		zap.Bool("terminal", nextRetryAt == nil))
}

// RetryDelivery puts a failed delivery back on the queue regardless of
// its retry count. The count is kept so audit history stays truthful
// about how many automatic attempts were made.
func (s *DeliveryService) RetryDelivery(actor *audit.Actor, id uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.deliveries.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeliveryNotFound
	}
	if err != nil {
		return nil, err
	}
	if delivery.Status != models.DeliveryFailed {
		return nil, ErrNotFailed
	}
	now := s.clock.Now()
	if err := s.deliveries.Requeue(id, now); err != nil {
		return nil, err
	}
	s.auditor.Record(actor, "delivery.retry", "delivery", id.String(), map[string]interface{}{
		"channel_type": delivery.ChannelType,
		"retry_count":  delivery.RetryCount,
	}, map[string]models.FieldChange{
		"status": {Old: models.DeliveryFailed, New: models.DeliveryQueued},
	})
	return s.deliveries.GetByID(id)
}

func (s *DeliveryService) GetDelivery(id uuid.UUID) (*models.Delivery, error) {
	delivery, err := s.deliveries.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeliveryNotFound
	}
	return delivery, err
}

func (s *DeliveryService) ListDeliveriesByMessage(messageID uuid.UUID) ([]models.Delivery, error) {
	return s.deliveries.ListByMessage(messageID)
}

// ListDeliveriesByStatus is the ops view of the queue: everything stuck
// in failed, waiting in queued, and so on.
func (s *DeliveryService) ListDeliveriesByStatus(status string) ([]models.Delivery, error) {
	if !models.ValidDeliveryStatus(status) {
		return nil, ErrBadStatus
	}
	return s.deliveries.ListByStatus(status)
}

func (s *DeliveryService) ListRecipients(deliveryID uuid.UUID) ([]models.SubscriberDelivery, error) {
	return s.recipients.ListByDelivery(deliveryID)
}

// RecordEngagement tracks provider callbacks (opens, clicks, per
// recipient delivery confirmations) against a recipient row.
func (s *DeliveryService) RecordEngagement(id uuid.UUID, status string) error {
	switch status {
	case models.SubscriberDeliveryDelivered, models.SubscriberDeliveryOpened, models.SubscriberDeliveryClicked:
	default:
		return ErrBadEngagement
	}
	row, err := s.recipients.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryNotFound
		}
		return err
	}
	if err := s.recipients.UpdateEngagement(id, status, s.clock.Now()); err != nil {
		return err
	}
	s.auditor.Record(nil, "recipient."+status, "subscriber_delivery", id.String(), map[string]interface{}{
		"delivery_id": row.DeliveryID.String(),
	}, nil)
	return nil
}

func (s *DeliveryService) publishStatus(ctx context.Context, delivery *models.Delivery, status string, retryCount int, at time.Time) {
	if s.producer == nil {
		return
	}
	event := types.DeliveryStatusEvent{
		DeliveryID:  delivery.ID,
		MessageID:   delivery.MessageID,
		ChannelType: delivery.ChannelType,
		Status:      status,
		RetryCount:  retryCount,
		OccurredAt:  at,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to encode status event", zap.Error(err))
		return
	}
	if err := s.producer.Publish(ctx, types.TopicDeliveryStatus, []byte(delivery.ID.String()), payload); err != nil {
		s.log.Error("failed to publish status event", zap.Error(err))
	}
}
