package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

// The store interfaces cover just what the engine services call on the
// gorm repositories, so tests can stand in fakes without a database.

type incidentStore interface {
	Create(incident *models.Incident) error
	GetByID(id uuid.UUID) (*models.Incident, error)
	List() ([]models.Incident, error)
	ListByStatus(status string) ([]models.Incident, error)
	MarkPublished(id uuid.UUID, at time.Time) error
	UpdateStatus(id uuid.UUID, status string) error
}

type subscriberStore interface {
	Create(sub *models.Subscriber) error
	GetByID(id uuid.UUID) (*models.Subscriber, error)
	List() ([]models.Subscriber, error)
	ListActive() ([]models.Subscriber, error)
	UpdateStatus(id uuid.UUID, status string) error
	Delete(id uuid.UUID) error
}

type channelStore interface {
	Create(channel *models.NotificationChannel) error
	GetByID(id uuid.UUID) (*models.NotificationChannel, error)
	List() ([]models.NotificationChannel, error)
	ListEnabled() ([]models.NotificationChannel, error)
	ListEnabledByTypes(types []string) ([]models.NotificationChannel, error)
	SetEnabled(id uuid.UUID, enabled bool) error
	Delete(id uuid.UUID) error
}

type messageStore interface {
	Create(message *models.Message) error
	GetByID(id uuid.UUID) (*models.Message, error)
	ListByIncident(incidentID uuid.UUID) ([]models.Message, error)
}

type deliveryStore interface {
	Create(delivery *models.Delivery) error
	GetByID(id uuid.UUID) (*models.Delivery, error)
	ListByMessage(messageID uuid.UUID) ([]models.Delivery, error)
	ListByStatus(status string) ([]models.Delivery, error)
	FindDue(now time.Time, limit int) ([]models.Delivery, error)
	MarkSending(id uuid.UUID, at time.Time) error
	MarkDelivered(id uuid.UUID, at time.Time, providerMessageID string, response map[string]interface{}) error
	MarkFailed(id uuid.UUID, at time.Time, reason string, retryCount int, nextRetryAt *time.Time) error
	Requeue(id uuid.UUID, at time.Time) error
	ReclaimStale(before time.Time) (int64, error)
}

type subscriberDeliveryStore interface {
	Create(sd *models.SubscriberDelivery) error
	GetByID(id uuid.UUID) (*models.SubscriberDelivery, error)
	ListByDelivery(deliveryID uuid.UUID) ([]models.SubscriberDelivery, error)
	MarkSent(deliveryID uuid.UUID, at time.Time) error
	MarkFailed(deliveryID uuid.UUID, at time.Time) error
	UpdateEngagement(id uuid.UUID, status string, at time.Time) error
}

// eventPublisher is satisfied by kafka.Producer. A nil publisher means
// event emission is disabled.
type eventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}
