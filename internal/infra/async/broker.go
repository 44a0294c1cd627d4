package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const defaultSubscriptionBuffer = 32

type Topic string

type Message struct {
	Event string
	Value any
	Span  trace.Span
}

type Broker interface {
	Subscribe(topic Topic) Subscription
	Unsubscribe(topic Topic, subscription Subscription) error
	Publish(ctx context.Context, topic Topic, msg Message) error
	Stop()
}

var (
	ErrTopicNotFound        = errors.New("topic not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrBrokerStopped        = errors.New("broker stopped")
)

var _ Broker = (*LocalBroker)(nil)

type Subscription struct {
	ID       string
	Receiver <-chan Message
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		topics: make(map[Topic]map[string]chan Message),
		buffer: defaultSubscriptionBuffer,
	}
}

// LocalBroker fans messages out to in-process subscribers. Slow subscribers
// lose messages instead of blocking the publisher.
type LocalBroker struct {
	mu      sync.RWMutex
	topics  map[Topic]map[string]chan Message
	buffer  int
	stopped bool
}

func (b *LocalBroker) WithBuffer(size int) *LocalBroker {
	b.buffer = size
	return b
}

func (b *LocalBroker) Subscribe(topic Topic) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	receiver := make(chan Message, b.buffer)
	subscription := Subscription{ID: uuid.NewString(), Receiver: receiver}
	if b.stopped {
		close(receiver)
		return subscription
	}

	subscribers, ok := b.topics[topic]
	if !ok {
		subscribers = make(map[string]chan Message)
		b.topics[topic] = subscribers
	}
	subscribers[subscription.ID] = receiver

	return subscription
}

func (b *LocalBroker) Unsubscribe(topic Topic, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, ok := b.topics[topic]
	if !ok {
		return ErrTopicNotFound
	}

	receiver, ok := subscribers[subscription.ID]
	if !ok {
		return ErrSubscriptionNotFound
	}

	delete(subscribers, subscription.ID)
	close(receiver)
	if len(subscribers) == 0 {
		delete(b.topics, topic)
	}

	return nil
}

// Publish delivers msg to every current subscriber of topic.
func (b *LocalBroker) Publish(ctx context.Context, topic Topic, msg Message) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.stopped {
		return ErrBrokerStopped
	}

	subscribers, ok := b.topics[topic]
	if !ok {
		return ErrTopicNotFound
	}

	for id, receiver := range subscribers {
		select {
		case receiver <- msg:
		default:
			slog.Warn("dropping message for slow subscriber",
				slog.String("topic", string(topic)),
				slog.String("subscription", id),
				slog.String("event", msg.Event))
		}
	}

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return
	}
	b.stopped = true

	for topic, subscribers := range b.topics {
		for _, receiver := range subscribers {
			close(receiver)
		}
		delete(b.topics, topic)
	}
}
