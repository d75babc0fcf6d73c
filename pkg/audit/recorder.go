package audit

import (
	"strings"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"go.uber.org/zap"
)

// Actor is resolved by the caller (the API boundary) and passed in
// explicitly. The recorder never looks up a "current user" itself.
type Actor struct {
	Type string
	ID   string
	Name string
}

func SystemActor() *Actor {
	return &Actor{Type: models.ActorSystem, Name: "system"}
}

type Store interface {
	Create(entry *models.AuditLog) error
}

type Recorder struct {
	store Store
	log   *zap.Logger
}

func NewRecorder(store Store, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record appends one audit entry. Persistence errors are logged and
// swallowed: auditing must never fail the business operation that
// triggered it. A nil actor is recorded as a system action.
func (r *Recorder) Record(actor *Actor, action, resourceType, resourceID string, details map[string]interface{}, changes map[string]models.FieldChange) {
	if actor == nil {
		actor = SystemActor()
	}
	entry := &models.AuditLog{
		ActorType:    actor.Type,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		Changes:      changes,
	}
	if err := r.store.Create(entry); err != nil {
		r.log.Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}
}

const maxDetailLen = 120

// Placeholder used instead of storing large content fields in full.
const contentPlaceholder = "[content omitted]"

// TruncateDetail keeps audit rows small; callers use it for message
// bodies and other large content fields.
func TruncateDetail(s string) string {
	if len(s) > maxDetailLen {
		return contentPlaceholder
	}
	return s
}

// MaskEmail keeps the first character of the local part and the domain:
// rider@example.com -> r***@example.com.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps only the last four digits.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "***"
	}
	return "***" + phone[len(phone)-4:]
}
