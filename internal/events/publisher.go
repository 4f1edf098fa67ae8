package events

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// channelPrefix namespaces per-kanban event channels in redis
const channelPrefix = "kanban:events:"

// channelFor returns the redis channel for a kanban's events
func channelFor(kanbanID uuid.UUID) string {
	return channelPrefix + kanbanID.String()
}

// RedisPublisher fans out board events over redis pub/sub so every API
// instance sees mutations performed on any of them
type RedisPublisher struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewRedisPublisher creates a new RedisPublisher
func NewRedisPublisher(redisClient *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{redis: redisClient, logger: logger}
}

// Publish sends an event to the kanban's channel. Publishing is best effort;
// a failure is logged and never fails the mutation that triggered it.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal board event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return
	}
	if err := p.redis.Publish(ctx, channelFor(event.KanbanID), payload).Err(); err != nil {
		p.logger.Warn("Failed to publish board event",
			zap.String("type", event.Type),
			zap.String("kanban_id", event.KanbanID.String()),
			zap.Error(err),
		)
	}
}
