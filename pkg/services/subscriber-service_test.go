package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/morrisonak/uta-notify-sub000/pkg/types"
	"go.uber.org/zap"
)

func newTestSubscriberService(store *fakeSubscriberStore, auditStore *capturingAuditStore) *SubscriberService {
	return &SubscriberService{
		subscribers: store,
		auditor:     audit.NewRecorder(auditStore, zap.NewNop()),
	}
}

func TestCreateSubscriberRequiresContactHandle(t *testing.T) {
	svc := newTestSubscriberService(newFakeSubscriberStore(), &capturingAuditStore{})
	_, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{
		Routes: []string{"red"},
	})
	if err != ErrNoContact {
		t.Fatalf("expected ErrNoContact, got %v", err)
	}
}

func TestCreateSubscriberValidatesPreferences(t *testing.T) {
	svc := newTestSubscriberService(newFakeSubscriberStore(), &capturingAuditStore{})
	_, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{
		Email:      "rider@example.com",
		Severities: []string{"catastrophic"},
	})
	if err != ErrBadSeverity {
		t.Fatalf("expected ErrBadSeverity, got %v", err)
	}
	_, err = svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{
		Email:    "rider@example.com",
		Channels: []string{"carrier-pigeon"},
	})
	if err != ErrBadChannelType {
		t.Fatalf("expected ErrBadChannelType, got %v", err)
	}
}

func TestCreateSubscriberNormalizesPhone(t *testing.T) {
	svc := newTestSubscriberService(newFakeSubscriberStore(), &capturingAuditStore{})
	sub, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{
		Phone: "+1 801 555 0100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Phone != "+18015550100" {
		t.Errorf("expected normalized phone, got %q", sub.Phone)
	}
	if sub.Status != models.SubscriberActive {
		t.Errorf("expected active status, got %q", sub.Status)
	}
}

func TestCreateSubscriberRejectsBadPhone(t *testing.T) {
	svc := newTestSubscriberService(newFakeSubscriberStore(), &capturingAuditStore{})
	if _, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{Phone: "8015550100"}); err == nil {
		t.Error("expected error for phone without country code")
	}
}

func TestUnsubscribeKeepsRow(t *testing.T) {
	store := newFakeSubscriberStore()
	auditStore := &capturingAuditStore{}
	svc := newTestSubscriberService(store, auditStore)
	sub, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Unsubscribe(nil, sub.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.GetSubscriber(sub.ID)
	if err != nil {
		t.Fatalf("expected row to survive unsubscribe: %v", err)
	}
	if got.Status != models.SubscriberUnsubscribed {
		t.Errorf("expected unsubscribed, got %q", got.Status)
	}

	// A second unsubscribe is a no-op and writes no extra audit entry.
	if err := svc.Unsubscribe(nil, sub.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	actions := auditStore.actions()
	if len(actions) != 2 || actions[1] != "subscriber.status" {
		t.Errorf("unexpected audit trail: %v", actions)
	}
}

func TestSubscriberStatusChangesUnknownID(t *testing.T) {
	svc := newTestSubscriberService(newFakeSubscriberStore(), &capturingAuditStore{})
	if err := svc.Unsubscribe(nil, uuid.New()); err != ErrSubscriberNotFound {
		t.Errorf("expected ErrSubscriberNotFound, got %v", err)
	}
	if err := svc.MarkBounced(nil, uuid.New()); err != ErrSubscriberNotFound {
		t.Errorf("expected ErrSubscriberNotFound, got %v", err)
	}
}

func TestAuditMasksContactHandles(t *testing.T) {
	auditStore := &capturingAuditStore{}
	svc := newTestSubscriberService(newFakeSubscriberStore(), auditStore)
	_, err := svc.CreateSubscriber(nil, &types.CreateSubscriberRequest{
		Email: "rider@example.com",
		Phone: "+18015550100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	details := auditStore.entries[0].Details
	if details["email"] == "rider@example.com" {
		t.Error("audit entry leaked full email address")
	}
	if details["phone"] == "+18015550100" {
		t.Error("audit entry leaked full phone number")
	}
}
