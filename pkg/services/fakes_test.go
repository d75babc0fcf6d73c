package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"gorm.io/gorm"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeIncidentStore struct {
	incidents map[uuid.UUID]*models.Incident
}

func newFakeIncidentStore(incidents ...*models.Incident) *fakeIncidentStore {
	s := &fakeIncidentStore{incidents: map[uuid.UUID]*models.Incident{}}
	for _, inc := range incidents {
		s.incidents[inc.ID] = inc
	}
	return s
}

func (s *fakeIncidentStore) Create(incident *models.Incident) error {
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	s.incidents[incident.ID] = incident
	return nil
}

func (s *fakeIncidentStore) GetByID(id uuid.UUID) (*models.Incident, error) {
	inc, ok := s.incidents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inc, nil
}

func (s *fakeIncidentStore) List() ([]models.Incident, error) {
	out := make([]models.Incident, 0, len(s.incidents))
	for _, inc := range s.incidents {
		out = append(out, *inc)
	}
	return out, nil
}

func (s *fakeIncidentStore) ListByStatus(status string) ([]models.Incident, error) {
	var out []models.Incident
	for _, inc := range s.incidents {
		if inc.Status == status {
			out = append(out, *inc)
		}
	}
	return out, nil
}

func (s *fakeIncidentStore) MarkPublished(id uuid.UUID, at time.Time) error {
	inc, ok := s.incidents[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inc.Status = models.IncidentActive
	inc.PublishedAt = &at
	return nil
}

func (s *fakeIncidentStore) UpdateStatus(id uuid.UUID, status string) error {
	inc, ok := s.incidents[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inc.Status = status
	return nil
}

type fakeSubscriberStore struct {
	subscribers map[uuid.UUID]*models.Subscriber
}

func newFakeSubscriberStore(subs ...*models.Subscriber) *fakeSubscriberStore {
	s := &fakeSubscriberStore{subscribers: map[uuid.UUID]*models.Subscriber{}}
	for _, sub := range subs {
		if sub.ID == uuid.Nil {
			sub.ID = uuid.New()
		}
		s.subscribers[sub.ID] = sub
	}
	return s
}

func (s *fakeSubscriberStore) Create(sub *models.Subscriber) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	s.subscribers[sub.ID] = sub
	return nil
}

func (s *fakeSubscriberStore) GetByID(id uuid.UUID) (*models.Subscriber, error) {
	sub, ok := s.subscribers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}

func (s *fakeSubscriberStore) List() ([]models.Subscriber, error) {
	out := make([]models.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		out = append(out, *sub)
	}
	return out, nil
}

func (s *fakeSubscriberStore) ListActive() ([]models.Subscriber, error) {
	var out []models.Subscriber
	for _, sub := range s.subscribers {
		if sub.Status == models.SubscriberActive {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (s *fakeSubscriberStore) UpdateStatus(id uuid.UUID, status string) error {
	sub, ok := s.subscribers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sub.Status = status
	return nil
}

func (s *fakeSubscriberStore) Delete(id uuid.UUID) error {
	delete(s.subscribers, id)
	return nil
}

type fakeChannelStore struct {
	channels map[uuid.UUID]*models.NotificationChannel
	order    []uuid.UUID
}

func newFakeChannelStore(chans ...*models.NotificationChannel) *fakeChannelStore {
	s := &fakeChannelStore{channels: map[uuid.UUID]*models.NotificationChannel{}}
	for _, ch := range chans {
		if ch.ID == uuid.Nil {
			ch.ID = uuid.New()
		}
		s.channels[ch.ID] = ch
		s.order = append(s.order, ch.ID)
	}
	return s
}

func (s *fakeChannelStore) Create(ch *models.NotificationChannel) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	s.channels[ch.ID] = ch
	s.order = append(s.order, ch.ID)
	return nil
}

func (s *fakeChannelStore) GetByID(id uuid.UUID) (*models.NotificationChannel, error) {
	ch, ok := s.channels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ch, nil
}

func (s *fakeChannelStore) List() ([]models.NotificationChannel, error) {
	out := make([]models.NotificationChannel, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.channels[id])
	}
	return out, nil
}

func (s *fakeChannelStore) ListEnabled() ([]models.NotificationChannel, error) {
	var out []models.NotificationChannel
	for _, id := range s.order {
		if s.channels[id].Enabled {
			out = append(out, *s.channels[id])
		}
	}
	return out, nil
}

func (s *fakeChannelStore) ListEnabledByTypes(types []string) ([]models.NotificationChannel, error) {
	var out []models.NotificationChannel
	for _, id := range s.order {
		ch := s.channels[id]
		if !ch.Enabled {
			continue
		}
		for _, t := range types {
			if ch.Type == t {
				out = append(out, *ch)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeChannelStore) SetEnabled(id uuid.UUID, enabled bool) error {
	ch, ok := s.channels[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ch.Enabled = enabled
	return nil
}

func (s *fakeChannelStore) Delete(id uuid.UUID) error {
	delete(s.channels, id)
	for i, chID := range s.order {
		if chID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeMessageStore struct {
	messages map[uuid.UUID]*models.Message
}

func newFakeMessageStore(messages ...*models.Message) *fakeMessageStore {
	s := &fakeMessageStore{messages: map[uuid.UUID]*models.Message{}}
	for _, m := range messages {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		s.messages[m.ID] = m
	}
	return s
}

func (s *fakeMessageStore) Create(m *models.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.messages[m.ID] = m
	return nil
}

func (s *fakeMessageStore) GetByID(id uuid.UUID) (*models.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *fakeMessageStore) ListByIncident(incidentID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.messages {
		if m.IncidentID == incidentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeDeliveryStore struct {
	deliveries map[uuid.UUID]*models.Delivery
	order      []uuid.UUID
	reclaimed  int64
}

func newFakeDeliveryStore(deliveries ...*models.Delivery) *fakeDeliveryStore {
	s := &fakeDeliveryStore{deliveries: map[uuid.UUID]*models.Delivery{}}
	for _, d := range deliveries {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		s.deliveries[d.ID] = d
		s.order = append(s.order, d.ID)
	}
	return s
}

func (s *fakeDeliveryStore) Create(d *models.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.deliveries[d.ID] = d
	s.order = append(s.order, d.ID)
	return nil
}

func (s *fakeDeliveryStore) GetByID(id uuid.UUID) (*models.Delivery, error) {
	d, ok := s.deliveries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (s *fakeDeliveryStore) ListByMessage(messageID uuid.UUID) ([]models.Delivery, error) {
	var out []models.Delivery
	for _, id := range s.order {
		if s.deliveries[id].MessageID == messageID {
			out = append(out, *s.deliveries[id])
		}
	}
	return out, nil
}

func (s *fakeDeliveryStore) ListByStatus(status string) ([]models.Delivery, error) {
	var out []models.Delivery
	for _, id := range s.order {
		if s.deliveries[id].Status == status {
			out = append(out, *s.deliveries[id])
		}
	}
	return out, nil
}

func (s *fakeDeliveryStore) FindDue(now time.Time, limit int) ([]models.Delivery, error) {
	var out []models.Delivery
	for _, id := range s.order {
		d := s.deliveries[id]
		due := d.Status == models.DeliveryQueued ||
			(d.Status == models.DeliveryFailed && d.RetryCount < models.MaxRetries &&
				d.NextRetryAt != nil && !d.NextRetryAt.After(now))
		if due {
			out = append(out, *d)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeDeliveryStore) MarkSending(id uuid.UUID, at time.Time) error {
	d, ok := s.deliveries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = models.DeliverySending
	d.SentAt = &at
	return nil
}

func (s *fakeDeliveryStore) MarkDelivered(id uuid.UUID, at time.Time, providerMessageID string, response map[string]interface{}) error {
	d, ok := s.deliveries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = models.DeliveryDelivered
	d.DeliveredAt = &at
	d.ProviderMessageID = providerMessageID
	d.ProviderResponse = response
	d.NextRetryAt = nil
	d.FailureReason = ""
	d.FailedAt = nil
	return nil
}

func (s *fakeDeliveryStore) MarkFailed(id uuid.UUID, at time.Time, reason string, retryCount int, nextRetryAt *time.Time) error {
	d, ok := s.deliveries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = models.DeliveryFailed
	d.FailedAt = &at
	d.FailureReason = reason
	d.RetryCount = retryCount
	d.NextRetryAt = nextRetryAt
	return nil
}

func (s *fakeDeliveryStore) Requeue(id uuid.UUID, at time.Time) error {
	d, ok := s.deliveries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Status = models.DeliveryQueued
	d.QueuedAt = at
	d.NextRetryAt = nil
	d.FailureReason = ""
	d.FailedAt = nil
	return nil
}

func (s *fakeDeliveryStore) ReclaimStale(before time.Time) (int64, error) {
	var n int64
	for _, d := range s.deliveries {
		if d.Status == models.DeliverySending && d.SentAt != nil && d.SentAt.Before(before) {
			d.Status = models.DeliveryQueued
			n++
		}
	}
	s.reclaimed += n
	return n, nil
}

type fakeRecipientStore struct {
	rows map[uuid.UUID]*models.SubscriberDelivery
}

func newFakeRecipientStore(rows ...*models.SubscriberDelivery) *fakeRecipientStore {
	s := &fakeRecipientStore{rows: map[uuid.UUID]*models.SubscriberDelivery{}}
	for _, r := range rows {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		s.rows[r.ID] = r
	}
	return s
}

func (s *fakeRecipientStore) Create(sd *models.SubscriberDelivery) error {
	if sd.ID == uuid.Nil {
		sd.ID = uuid.New()
	}
	s.rows[sd.ID] = sd
	return nil
}

func (s *fakeRecipientStore) GetByID(id uuid.UUID) (*models.SubscriberDelivery, error) {
	r, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (s *fakeRecipientStore) ListByDelivery(deliveryID uuid.UUID) ([]models.SubscriberDelivery, error) {
	var out []models.SubscriberDelivery
	for _, r := range s.rows {
		if r.DeliveryID == deliveryID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeRecipientStore) MarkSent(deliveryID uuid.UUID, at time.Time) error {
	for _, r := range s.rows {
		if r.DeliveryID == deliveryID {
			r.Status = models.SubscriberDeliverySent
			r.SentAt = &at
		}
	}
	return nil
}

func (s *fakeRecipientStore) MarkFailed(deliveryID uuid.UUID, at time.Time) error {
	for _, r := range s.rows {
		if r.DeliveryID == deliveryID {
			r.Status = models.SubscriberDeliveryFailed
			r.FailedAt = &at
		}
	}
	return nil
}

func (s *fakeRecipientStore) UpdateEngagement(id uuid.UUID, status string, at time.Time) error {
	r, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	switch status {
	case models.SubscriberDeliveryDelivered:
		r.DeliveredAt = &at
	case models.SubscriberDeliveryOpened:
		r.OpenedAt = &at
	case models.SubscriberDeliveryClicked:
		r.ClickedAt = &at
	}
	return nil
}

type capturingAuditStore struct {
	entries []*models.AuditLog
}

func (s *capturingAuditStore) Create(entry *models.AuditLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *capturingAuditStore) actions() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}
