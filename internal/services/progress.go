package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reclip-backend/internal/models"
)

// ProgressPublisher pushes pipeline stage events to Redis pub/sub; the
// WebSocket hub relays them to any client watching the request.
type ProgressPublisher struct {
	redis *redis.Client
}

func NewProgressPublisher(redisClient *redis.Client) *ProgressPublisher {
	return &ProgressPublisher{redis: redisClient}
}

func ProgressChannel(requestID uuid.UUID) string {
	return fmt.Sprintf("repurpose_updates:%s", requestID.String())
}

func (p *ProgressPublisher) Publish(ctx context.Context, requestID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	p.redis.Publish(ctx, ProgressChannel(requestID), string(data))
}

func (p *ProgressPublisher) Stage(ctx context.Context, requestID uuid.UUID, stage string, step int, detail string) {
	p.Publish(ctx, requestID, models.WSMessage{
		Type: "stage_update",
		Payload: models.StageUpdate{
			RequestID: requestID,
			Stage:     stage,
			Step:      step,
			Detail:    detail,
		},
	})
}

func (p *ProgressPublisher) Completed(ctx context.Context, requestID uuid.UUID) {
	p.Publish(ctx, requestID, models.WSMessage{
		Type:    "completed",
		Payload: models.CompletedEvent{RequestID: requestID},
	})
}

func (p *ProgressPublisher) Failed(ctx context.Context, requestID uuid.UUID, code, message string) {
	p.Publish(ctx, requestID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			RequestID:    requestID,
			ErrorCode:    code,
			ErrorMessage: message,
		},
	})
}
