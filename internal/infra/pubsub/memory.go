package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// MemoryBroker runs topics in process. Messages still go through the codec
// so consumers observe the same decoded types as with kafka.
type MemoryBroker struct {
	mu       sync.RWMutex
	handlers map[Topic][]memoryHandler
}

type memoryHandler struct {
	ctx     context.Context
	codec   Codec
	handler MessageHandler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		handlers: make(map[Topic][]memoryHandler),
	}
}

func (b *MemoryBroker) publish(ctx context.Context, topic Topic, key Key, data []byte) {
	b.mu.RLock()
	handlers := append([]memoryHandler(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if h.ctx.Err() != nil {
			continue
		}

		value, err := h.codec.Decode(data)
		if err != nil {
			slog.Error("decoding message", slog.String("topic", string(topic)), slog.String("error", err.Error()))
			continue
		}

		if err := h.handler(ctx, key, value); err != nil {
			slog.Error("handling message",
				slog.String("topic", string(topic)),
				slog.String("key", string(key)),
				slog.String("error", err.Error()))
		}
	}
}

func (b *MemoryBroker) subscribe(ctx context.Context, topic Topic, codec Codec, handler MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], memoryHandler{ctx: ctx, codec: codec, handler: handler})
}

var _ PublisherFactory = (*MemoryPublisherFactory)(nil)

type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory(broker *MemoryBroker) *MemoryPublisherFactory {
	return &MemoryPublisherFactory{broker: broker}
}

func (f *MemoryPublisherFactory) New(topic Topic, codec Codec) (Publisher, error) {
	return &MemoryPublisher{broker: f.broker, topic: topic, codec: codec}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
	codec  Codec
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	data, err := p.codec.Encode(message)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	p.broker.publish(ctx, p.topic, key, data)
	return nil
}

var _ ConsumerFactory = (*MemoryConsumerFactory)(nil)

type MemoryConsumerFactory struct {
	broker *MemoryBroker
}

func NewMemoryConsumerFactory(broker *MemoryBroker) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{broker: broker}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{broker: f.broker}
}

type MemoryConsumer struct {
	broker *MemoryBroker
}

// Consume registers handler and blocks until ctx is done.
func (c *MemoryConsumer) Consume(ctx context.Context, topic Topic, codec Codec, handler MessageHandler) error {
	c.broker.subscribe(ctx, topic, codec, handler)
	<-ctx.Done()
	return nil
}
