package channels

import (
	"context"
	"fmt"
	"time"

	"github.com/morrisonak/uta-notify-sub000/metrics"
	"github.com/morrisonak/uta-notify-sub000/pkg/gomailer"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

type EmailAdapter struct{}

func (a *EmailAdapter) Type() string { return models.ChannelEmail }

func (a *EmailAdapter) Constraints() Constraints {
	return Constraints{
		MaxLength:     50000,
		SupportsMedia: true,
		SupportsHTML:  true,
	}
}

func (a *EmailAdapter) ValidateContent(content string) ValidationResult {
	return validateAgainst(a.Constraints(), content)
}

func (a *EmailAdapter) FormatContent(content string) string {
	return formatAgainst(a.Constraints(), content)
}

func (a *EmailAdapter) Send(ctx context.Context, msg Content, recipients []string, cfg models.ChannelConfig) (*SendResult, error) {
	mailer, err := a.buildMailer(cfg)
	if err != nil {
		return nil, err
	}
	if err := requireRecipients(recipients); err != nil {
		return nil, err
	}

	email := gomailer.NewEmail(
		cfg.FromEmail,
		recipients,
		gomailer.WithSubject(msg.Subject),
		gomailer.WithText(msg.Body),
	)

	start := time.Now()
	providerID, err := mailer.Send(email)
	metrics.ExternalAPIDuration.WithLabelValues(cfg.Provider, "email").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return &SendResult{
		ProviderMessageID: providerID,
		Response: map[string]interface{}{
			"provider":   cfg.Provider,
			"recipients": len(recipients),
		},
	}, nil
}

// buildMailer validates the provider config before any network call is
// made, so a misconfigured channel fails fast with a specific error.
func (a *EmailAdapter) buildMailer(cfg models.ChannelConfig) (gomailer.Mailer, error) {
	switch cfg.Provider {
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("email config missing API key for sendgrid")
		}
		if cfg.FromEmail == "" {
			return nil, fmt.Errorf("email config missing from address")
		}
		return gomailer.NewSendGridMailer(cfg.APIKey, cfg.FromName, cfg.FromEmail), nil

	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
			return nil, fmt.Errorf("email config missing smtp host/port")
		}
		if cfg.FromEmail == "" {
			return nil, fmt.Errorf("email config missing from address")
		}
		return &gomailer.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			UseAuth:  cfg.SMTPUseAuth,
		}, nil

	case "":
		return nil, fmt.Errorf("email config missing provider")

	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
