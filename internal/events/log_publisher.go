package events

import (
	"context"

	"eventhire_backend/internal/logger"
)

// LogPublisher используется, когда брокер не настроен: события только пишутся в лог.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	logger.CtxInfo(ctx, "event published", "routing_key", routingKey, "payload", string(body))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
