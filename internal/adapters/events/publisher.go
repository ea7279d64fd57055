package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is the envelope written to a stream entry
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Publisher appends domain events to Redis streams
type Publisher struct {
	client *redis.Client
	maxLen int64
}

// NewPublisher creates a stream publisher. maxLen caps each stream
// approximately; zero leaves streams unbounded.
func NewPublisher(client *redis.Client, maxLen int64) *Publisher {
	return &Publisher{client: client, maxLen: maxLen}
}

// Publish writes one event to stream
func (p *Publisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := encode(eventType, data, time.Now())
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"type":  eventType,
			"event": payload,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func encode(eventType string, data any, at time.Time) ([]byte, error) {
	event := Event{
		Type:      eventType,
		Timestamp: at.UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return payload, nil
}

// NopPublisher drops events. Used when Redis is not configured.
type NopPublisher struct {
	Verbose bool
}

// Publish discards the event
func (n NopPublisher) Publish(_ context.Context, stream, eventType string, _ any) error {
	if n.Verbose {
		log.Printf("📭 Event %s on %s dropped (no broker configured)", eventType, stream)
	}
	return nil
}
