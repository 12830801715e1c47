package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

const (
	// StreamName is the name of the intake events stream.
	StreamName = "INTAKE"

	// SubjectPrefix is the prefix for all intake subjects.
	SubjectPrefix = "intake"
)

// Publisher publishes intake lifecycle events. A nil *Publisher is valid
// and publishes nothing.
type Publisher struct {
	client *Client
	logger *logger.Logger
}

// NewPublisher creates a publisher over an established client.
func NewPublisher(client *Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, logger: log.WithComponent("events")}
}

// Subject returns the JetStream subject for a user/type pair.
func Subject(userID string, eventType model.EventType) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, userID, eventType)
}

// Publish emits one lifecycle event. Failures are logged, not returned:
// event publishing is observability, never part of the reply path.
func (p *Publisher) Publish(ctx context.Context, userID string, eventType model.EventType, detail string) {
	if p == nil {
		return
	}

	event := model.IntakeEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    userID,
		Type:      eventType,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("failed to marshal intake event", zap.Error(err))
		return
	}

	if _, err := p.client.JetStream().Publish(ctx, Subject(userID, eventType), data); err != nil {
		p.logger.Warn("failed to publish intake event",
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
	}
}
