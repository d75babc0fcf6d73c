package gomailer

import "testing"

func TestNewEmailOptions(t *testing.T) {
	e := NewEmail(
		"alerts@transit.example",
		[]string{"rider@example.com"},
		WithSubject("Service alert"),
		WithText("Route 101 is delayed"),
		WithHTML("<p>Route 101 is delayed</p>"),
		WithHeader("X-Alert-Id", "abc"),
	)

	if e.Subject != "Service alert" {
		t.Errorf("subject = %q", e.Subject)
	}
	if e.Text == "" || e.HTML == "" {
		t.Error("expected both text and html content to be set")
	}
	if e.Headers["X-Alert-Id"] != "abc" {
		t.Errorf("header not set: %v", e.Headers)
	}
	if len(e.To) != 1 || e.To[0] != "rider@example.com" {
		t.Errorf("recipients = %v", e.To)
	}
}
