package channels

import (
	"context"
	"fmt"
	"time"

	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/pkg/gosms"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

type SMSAdapter struct{}

func (a *SMSAdapter) Type() string { return models.ChannelSMS }

func (a *SMSAdapter) Constraints() Constraints {
	return Constraints{
		MaxLength:     160,
		SupportsMedia: false,
		SupportsHTML:  false,
	}
}

func (a *SMSAdapter) ValidateContent(content string) ValidationResult {
	return validateAgainst(a.Constraints(), content)
}

func (a *SMSAdapter) FormatContent(content string) string {
	return formatAgainst(a.Constraints(), content)
}

func (a *SMSAdapter) Send(ctx context.Context, msg Content, recipients []string, cfg models.ChannelConfig) (*SendResult, error) {
	sender, err := a.buildSender(cfg)
	if err != nil {
		return nil, err
	}
	if err := requireRecipients(recipients); err != nil {
		return nil, err
	}

	var lastSid string
	sent := 0
	for _, to := range recipients {
		normalized, err := gosms.NormalizeSMS(to)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient %s: %w", to, err)
		}
		start := time.Now()
		sid, err := sender.Send(gosms.NewSMS(normalized, msg.Body))
		metrics.ExternalAPIDuration.WithLabelValues(cfg.Provider, "sms").Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		lastSid = sid
		sent++
	}

	return &SendResult{
		ProviderMessageID: lastSid,
		Response: map[string]interface{}{
			"provider":   cfg.Provider,
			"recipients": sent,
		},
	}, nil
}

func (a *SMSAdapter) buildSender(cfg models.ChannelConfig) (gosms.Sender, error) {
	switch cfg.Provider {
	case "twilio":
		if cfg.AccountSID == "" || cfg.AuthToken == "" {
			return nil, fmt.Errorf("sms config missing account SID or auth token for twilio")
		}
		if cfg.FromNumber == "" {
			return nil, fmt.Errorf("sms config missing from number")
		}
		return gosms.NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.FromNumber), nil

	case "":
		return nil, fmt.Errorf("sms config missing provider")

	default:
		return nil, fmt.Errorf("unknown sms provider: %s", cfg.Provider)
	}
}
