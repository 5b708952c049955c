package testutil

import (
	"context"
	"sync"

	"github.com/RKmodz24/studio/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

type PublishedMessage struct {
	Topic string
	Pack  *pubsub.Pack
}

// RecordPublisher keeps every published message.
type RecordPublisher struct {
	mu       sync.Mutex
	messages []PublishedMessage
}

func (r *RecordPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, PublishedMessage{Topic: topic, Pack: pack})
	return nil
}

func (r *RecordPublisher) Messages(topic string) []PublishedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []PublishedMessage
	for _, m := range r.messages {
		if m.Topic == topic {
			result = append(result, m)
		}
	}
	return result
}
