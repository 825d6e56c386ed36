package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/ajo-backend/internal/domain/ajo"
	"github.com/yungbote/ajo-backend/internal/events"
	"github.com/yungbote/ajo-backend/internal/pkg/logger"
	"github.com/yungbote/ajo-backend/internal/requestdata"
)

// requireCaller enforces the authenticator contract: the invoking principal
// must control the address the operation acts for.
func requireCaller(ctx context.Context, address string) error {
	if address == "" || requestdata.Caller(ctx) != address {
		return ajo.ErrUnauthorized
	}
	return nil
}

// emit publishes fire-and-forget: a sink failure is logged and swallowed so
// it can never roll back a committed operation.
func emit(ctx context.Context, log *logger.Logger, sink events.Sink, eventType string, groupID uint64, at int64, payload map[string]any) {
	event := events.Event{
		ID:      uuid.New(),
		Type:    eventType,
		GroupID: groupID,
		At:      at,
		Payload: payload,
	}
	if err := sink.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish event", "type", eventType, "group_id", groupID, "error", err)
	}
}
