package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lovoo/goka"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

func NewKafkaPublisherFactory(brokers []string) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{brokers: brokers}
}

type KafkaPublisherFactory struct {
	brokers []string
}

func (f *KafkaPublisherFactory) New(topic Topic, codec Codec) (Publisher, error) {
	var lastErr error
	for try := range maxRetries {
		slog.Debug("connecting to kafka brokers",
			slog.String("brokers", strings.Join(f.brokers, ",")),
			slog.String("topic", string(topic)),
			slog.Int("try", try))

		emitter, err := goka.NewEmitter(f.brokers, goka.Stream(topic), codec)
		if err == nil {
			return &KafkaPublisher{emitter: emitter}, nil
		}

		lastErr = err
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("connecting to kafka after %d retries: %w", maxRetries, lastErr)
}

type KafkaPublisher struct {
	emitter *goka.Emitter
}

func (p *KafkaPublisher) Publish(_ context.Context, key Key, message Message) error {
	slog.Debug("publishing message", slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		return fmt.Errorf("emitting message: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.emitter.Finish()
}

var _ ConsumerFactory = (*KafkaConsumerFactory)(nil)

func NewKafkaConsumerFactory(brokers []string, group string) *KafkaConsumerFactory {
	return &KafkaConsumerFactory{brokers: brokers, group: group}
}

type KafkaConsumerFactory struct {
	brokers []string
	group   string
}

func (f *KafkaConsumerFactory) New() Consumer {
	return &KafkaConsumer{brokers: f.brokers, group: goka.Group(f.group)}
}

var _ Consumer = (*KafkaConsumer)(nil)

type KafkaConsumer struct {
	brokers []string
	group   goka.Group
}

func (c *KafkaConsumer) Consume(ctx context.Context, topic Topic, codec Codec, handler MessageHandler) error {
	callback := func(gctx goka.Context, msg any) {
		key := Key(gctx.Key())
		if err := handler(gctx.Context(), key, msg); err != nil {
			slog.Error("handling message",
				slog.String("topic", string(topic)),
				slog.String("key", string(key)),
				slog.String("error", err.Error()))
		}
	}

	graph := goka.DefineGroup(c.group, goka.Input(goka.Stream(topic), codec, callback))
	processor, err := goka.NewProcessor(c.brokers, graph)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	return processor.Run(ctx)
}
