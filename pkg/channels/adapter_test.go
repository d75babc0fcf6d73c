package channels

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"go.uber.org/zap"
)

func TestValidateContentEmptyAlwaysInvalid(t *testing.T) {
	adapters := []Adapter{
		&EmailAdapter{},
		&SMSAdapter{},
		NewSimulatedAdapter(models.ChannelPush, zap.NewNop()),
	}
	for _, a := range adapters {
		res := a.ValidateContent("")
		if res.Valid {
			t.Errorf("%s: empty content should be invalid", a.Type())
		}
		if len(res.Errors) == 0 {
			t.Errorf("%s: expected a validation error", a.Type())
		}
	}
}

func TestValidateContentOverLimit(t *testing.T) {
	a := &SMSAdapter{}
	long := strings.Repeat("x", 200)

	res := a.ValidateContent(long)
	if res.Valid {
		t.Fatal("content over the sms limit should be invalid")
	}
	if !strings.Contains(res.Errors[0], "160") {
		t.Errorf("error should name the limit, got %q", res.Errors[0])
	}
}

func TestFormatContentTruncatesWithMarker(t *testing.T) {
	a := &SMSAdapter{}
	long := strings.Repeat("x", 200)

	got := a.FormatContent(long)
	if len(got) != 160 {
		t.Errorf("formatted length = %d, want 160", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated content should end with marker, got %q", got[len(got)-5:])
	}
}

func TestFormatContentCutsOnRuneBoundary(t *testing.T) {
	a := &SMSAdapter{}

	// Multi-byte runes straddling the cut point must not be split.
	long := strings.Repeat("é", 200)
	got := a.FormatContent(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated content is not valid UTF-8: %q", got)
	}
	if len(got) > 160 {
		t.Errorf("formatted length = %d, want at most 160", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated content should end with marker, got %q", got)
	}
}

func TestFormatContentIdempotent(t *testing.T) {
	a := &SMSAdapter{}

	short := "Route 4 detoured at 400 South"
	if got := a.FormatContent(short); got != short {
		t.Errorf("within-limit content must pass through unchanged, got %q", got)
	}

	once := a.FormatContent(strings.Repeat("x", 500))
	twice := a.FormatContent(once)
	if once != twice {
		t.Error("formatting already-formatted content must be a no-op")
	}
}

func TestEmailSendMissingAPIKeyFailsFast(t *testing.T) {
	a := &EmailAdapter{}
	cfg := models.ChannelConfig{
		Provider:  "sendgrid",
		FromEmail: "alerts@transit.example",
	}

	// No test server is running: if the adapter tried the network this
	// would fail differently. The config check has to come first.
	_, err := a.Send(context.Background(), Content{Subject: "s", Body: "b"},
		[]string{"rider@example.com"}, cfg)
	if err == nil {
		t.Fatal("expected config error")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("error should mention the API key, got %q", err.Error())
	}
}

func TestEmailSendUnknownProvider(t *testing.T) {
	a := &EmailAdapter{}
	cfg := models.ChannelConfig{Provider: "pigeon"}

	_, err := a.Send(context.Background(), Content{Body: "b"},
		[]string{"rider@example.com"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown email provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}

func TestEmailSendEmptyRecipients(t *testing.T) {
	a := &EmailAdapter{}
	cfg := models.ChannelConfig{
		Provider:  "sendgrid",
		APIKey:    "SG.test",
		FromEmail: "alerts@transit.example",
	}

	_, err := a.Send(context.Background(), Content{Body: "b"}, nil, cfg)
	if err == nil || !strings.Contains(err.Error(), "recipients") {
		t.Errorf("expected empty recipients error, got %v", err)
	}
}

func TestSMSSendMissingTwilioCreds(t *testing.T) {
	a := &SMSAdapter{}
	cfg := models.ChannelConfig{Provider: "twilio", FromNumber: "+18015550100"}

	_, err := a.Send(context.Background(), Content{Body: "b"}, []string{"+18015550199"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "account SID") {
		t.Errorf("expected missing credential error, got %v", err)
	}
}

func TestSimulatedSendMarksResponse(t *testing.T) {
	a := NewSimulatedAdapter(models.ChannelSignage, zap.NewNop())

	res, err := a.Send(context.Background(), Content{Body: "Route 101 suspended"},
		[]string{"platform-3"}, models.ChannelConfig{Provider: "none"})
	if err != nil {
		t.Fatalf("simulated send should succeed: %v", err)
	}
	if sim, ok := res.Response["simulated"].(bool); !ok || !sim {
		t.Errorf("simulated send must set response simulated=true, got %v", res.Response)
	}
	if res.ProviderMessageID == "" {
		t.Error("simulated send should still produce a provider message id")
	}
}

func TestRegistryClosedDispatchAndFallback(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	if _, ok := r.AdapterFor(models.ChannelEmail).(*EmailAdapter); !ok {
		t.Error("email should resolve to the email adapter")
	}
	if _, ok := r.AdapterFor(models.ChannelSMS).(*SMSAdapter); !ok {
		t.Error("sms should resolve to the sms adapter")
	}
	if _, ok := r.AdapterFor("carrier-pigeon").(*SimulatedAdapter); !ok {
		t.Error("unknown types should fall back to the simulated adapter")
	}
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	custom := NewSimulatedAdapter(models.ChannelEmail, zap.NewNop())
	r.Register(models.ChannelEmail, custom)

	if got := r.AdapterFor(models.ChannelEmail); got != custom {
		t.Error("registered adapter should take precedence over built-ins")
	}
}
