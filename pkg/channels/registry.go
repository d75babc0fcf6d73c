package channels

import (
	"sync"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"go.uber.org/zap"
)

// Registry resolves adapters with a closed switch over the known
// channel kinds. Register is the extension point for adapters built
// outside this package; anything unrecognized falls back to a
// simulated-send adapter rather than failing.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Adapter
	log    *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		custom: make(map[string]Adapter),
		log:    log,
	}
}

func (r *Registry) Register(channelType string, adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[channelType] = adapter
}

func (r *Registry) AdapterFor(channelType string) Adapter {
	r.mu.RLock()
	if adapter, ok := r.custom[channelType]; ok {
		r.mu.RUnlock()
		return adapter
	}
	r.mu.RUnlock()

	switch channelType {
	case models.ChannelEmail:
		return &EmailAdapter{}
	case models.ChannelSMS:
		return &SMSAdapter{}
	case models.ChannelPush, models.ChannelSocial, models.ChannelSignage:
		return NewSimulatedAdapter(channelType, r.log)
	default:
		if r.log != nil {
			r.log.Warn("no adapter for channel type, using simulated fallback",
				zap.String("channel_type", channelType))
		}
		return NewSimulatedAdapter(channelType, r.log)
	}
}
