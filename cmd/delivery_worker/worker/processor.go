package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/morrisonak/uta-notify-sub000/pkg/services"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const lockKey = "delivery-worker:lock"

// Processor drives the delivery queue on a fixed interval. A redis
// lock keeps concurrent worker replicas from draining the same batch;
// if redis is unreachable the pass runs anyway, since double-sending a
// batch is better than sending nothing during an incident.
type Processor struct {
	svc        *services.DeliveryService
	redis      *redis.Client
	interval   time.Duration
	instanceID string
	log        *zap.Logger
}

func New(svc *services.DeliveryService, redisClient *redis.Client, interval time.Duration, log *zap.Logger) *Processor {
	return &Processor{
		svc:        svc,
		redis:      redisClient,
		interval:   interval,
		instanceID: uuid.NewString(),
		log:        log,
	}
}

func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pass(ctx)
	for {
		select {
		case <-ctx.Done():
			p.log.Info("Delivery processor shutting down")
			return
		case <-ticker.C:
			p.pass(ctx)
		}
	}
}

func (p *Processor) pass(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("Recovered from panic in delivery pass", zap.Any("panic", r))
		}
	}()

	if !p.acquireLock(ctx) {
		p.log.Debug("Another worker holds the batch lock, skipping pass")
		return
	}
	defer p.releaseLock(ctx)

	ctx, span := otel.Tracer("delivery-worker").Start(ctx, "delivery.pass")
	defer span.End()

	processed, err := p.svc.ProcessQueuedDeliveries(ctx)
	if err != nil {
		span.RecordError(err)
		p.log.Error("Delivery pass failed", zap.Error(err))
		return
	}
	span.SetAttributes(attribute.Int("deliveries.processed", processed))
	if processed > 0 {
		p.log.Info("Delivery pass complete", zap.Int("processed", processed))
	}
}

func (p *Processor) acquireLock(ctx context.Context) bool {
	if p.redis == nil {
		return true
	}
	ok, err := p.redis.SetNX(ctx, lockKey, p.instanceID, 2*p.interval).Result()
	if err != nil {
		p.log.Warn("Redis lock unavailable, proceeding without it", zap.Error(err))
		return true
	}
	return ok
}

func (p *Processor) releaseLock(ctx context.Context) {
	if p.redis == nil {
		return
	}
	held, err := p.redis.Get(ctx, lockKey).Result()
	if err != nil || held != p.instanceID {
		return
	}
	p.redis.Del(ctx, lockKey)
}
