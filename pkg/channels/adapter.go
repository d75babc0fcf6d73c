package channels

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

// Constraints describe what a channel can carry. FormatContent and
// ValidateContent enforce MaxLength.
type Constraints struct {
	MaxLength     int
	SupportsMedia bool
	SupportsHTML  bool
}

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Content is the channel-agnostic payload handed to an adapter. Subject
// is only meaningful for channels that support one (email).
type Content struct {
	Subject string
	Body    string
}

type SendResult struct {
	ProviderMessageID string
	Response          map[string]interface{}
}

// Adapter is the uniform send/validate/format contract every channel
// implements. Send must validate its config and recipients before
// attempting any network call and fail fast with a specific error.
type Adapter interface {
	Type() string
	Constraints() Constraints
	ValidateContent(content string) ValidationResult
	FormatContent(content string) string
	Send(ctx context.Context, msg Content, recipients []string, cfg models.ChannelConfig) (*SendResult, error)
}

const truncationMarker = "..."

// validateAgainst applies the shared content rules: empty content is
// always invalid, and content over the channel limit is invalid.
func validateAgainst(c Constraints, content string) ValidationResult {
	var errs []string
	if strings.TrimSpace(content) == "" {
		errs = append(errs, "content is empty")
	}
	if c.MaxLength > 0 && len(content) > c.MaxLength {
		errs = append(errs, fmt.Sprintf("content length %d exceeds channel limit of %d", len(content), c.MaxLength))
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// formatAgainst truncates content to the channel limit, appending the
// marker when truncation occurs. The cut backs up to a rune boundary so
// truncation never produces invalid UTF-8. Within-limit content passes
// through unchanged, which makes the operation idempotent.
func formatAgainst(c Constraints, content string) string {
	if c.MaxLength <= 0 || len(content) <= c.MaxLength {
		return content
	}
	cut := c.MaxLength - len(truncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + truncationMarker
}

func requireRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients provided")
	}
	return nil
}
