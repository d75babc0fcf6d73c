package channels

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"go.uber.org/zap"
)

// SimulatedAdapter stands in for channels that have no real provider
// integration yet (push, social, signage, and any type the registry
// does not recognize). It logs the intended send and reports success
// with response["simulated"] = true, so a simulated delivery is always
// distinguishable from a real one in the Delivery record.
type SimulatedAdapter struct {
	channelType string
	constraints Constraints
	log         *zap.Logger
}

func NewSimulatedAdapter(channelType string, log *zap.Logger) *SimulatedAdapter {
	return &SimulatedAdapter{
		channelType: channelType,
		constraints: simulatedConstraints(channelType),
		log:         log,
	}
}

func simulatedConstraints(channelType string) Constraints {
	switch channelType {
	case models.ChannelPush:
		return Constraints{MaxLength: 240, SupportsMedia: false, SupportsHTML: false}
	case models.ChannelSocial:
		return Constraints{MaxLength: 280, SupportsMedia: true, SupportsHTML: false}
	case models.ChannelSignage:
		return Constraints{MaxLength: 500, SupportsMedia: false, SupportsHTML: false}
	default:
		return Constraints{MaxLength: 1000, SupportsMedia: false, SupportsHTML: false}
	}
}

func (a *SimulatedAdapter) Type() string { return a.channelType }

func (a *SimulatedAdapter) Constraints() Constraints { return a.constraints }

func (a *SimulatedAdapter) ValidateContent(content string) ValidationResult {
	return validateAgainst(a.constraints, content)
}

func (a *SimulatedAdapter) FormatContent(content string) string {
	return formatAgainst(a.constraints, content)
}

func (a *SimulatedAdapter) Send(ctx context.Context, msg Content, recipients []string, cfg models.ChannelConfig) (*SendResult, error) {
	if err := requireRecipients(recipients); err != nil {
		return nil, err
	}

	if a.log != nil {
		a.log.Info("simulated send",
			zap.String("channel_type", a.channelType),
			zap.String("provider", cfg.Provider),
			zap.Int("recipients", len(recipients)),
			zap.String("subject", msg.Subject),
		)
	}

	return &SendResult{
		ProviderMessageID: fmt.Sprintf("sim-%s", uuid.NewString()),
		Response: map[string]interface{}{
			"simulated":  true,
			"provider":   cfg.Provider,
			"recipients": len(recipients),
			"sent_at":    time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
