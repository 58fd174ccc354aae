package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"rental-crm/domain/ports"
	"rental-crm/pkg/logger"
)

// jsPublisher คือส่วนของ jetstream.JetStream ที่ Publisher ใช้
type jsPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher publishes CRM events to JetStream
type Publisher struct {
	js jsPublisher
}

func NewPublisher(client *Client) ports.EventPublisher {
	return &Publisher{js: client.js}
}

func (p *Publisher) Publish(ctx context.Context, event ports.CRMEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, event.Subject(), data)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}

	logger.DebugContext(ctx, "CRM event published",
		"subject", event.Subject(),
		"id", event.ID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
