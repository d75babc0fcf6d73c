package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morrisonak/uta-notify-sub000/pkg/audit"
	"github.com/morrisonak/uta-notify-sub000/pkg/models"
	"github.com/redis/go-redis/v9"
)

type MiddlewareConfig struct {
	RedisClient *redis.Client
}

type bodyWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// ActorMiddleware resolves the acting user from headers injected by the
// upstream auth layer and stores it for handlers to pass into the
// engine. Access control itself happens before requests reach us; a
// request with no actor headers is attributed to the api actor type.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := &audit.Actor{
			Type: c.GetHeader("X-Actor-Type"),
			ID:   c.GetHeader("X-Actor-Id"),
			Name: c.GetHeader("X-Actor-Name"),
		}
		if actor.Type == "" {
			actor.Type = models.ActorAPI
		}
		c.Set("actor", actor)
		c.Next()
	}
}

// ActorFrom pulls the resolved actor back out of the gin context.
func ActorFrom(c *gin.Context) *audit.Actor {
	if v, ok := c.Get("actor"); ok {
		if actor, ok := v.(*audit.Actor); ok {
			return actor
		}
	}
	return nil
}

// IdempotencyMiddleware replays cached responses for repeated
// X-Idempotency-Key values. Publishing a non-draft incident is already
// rejected by the engine; this catches double-submits at the API edge
// before they hit the database at all.
func IdempotencyMiddleware(cfg *MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader("X-Idempotency-Key")
		if idempotencyKey == "" || cfg.RedisClient == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := fmt.Sprintf("idempotency:%s:%s", c.FullPath(), idempotencyKey)
		resp, err := cfg.RedisClient.Get(ctx, redisKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(resp))
			c.Abort()
			return
		}

		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		if c.Writer.Status() < 400 {
			cfg.RedisClient.Set(ctx, redisKey, bw.body, 24*time.Hour)
		}
	}
}
