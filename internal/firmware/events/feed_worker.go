package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/pubsub"

	"go.opentelemetry.io/otel"
)

// FeedTopic is the in-process topic live clients subscribe to for builds.
const FeedTopic async.Topic = "builds"

const EventBuildCreated = "build.created"

func NewBuildFeedWorker(consumers pubsub.ConsumerFactory, broker async.Broker) (*BuildFeedWorker, error) {
	codec, err := NewBuildEventCodec()
	if err != nil {
		return nil, err
	}

	return &BuildFeedWorker{
		consumer: consumers.New(),
		codec:    codec,
		broker:   broker,
		stop:     make(chan struct{}),
	}, nil
}

var _ async.Worker = (*BuildFeedWorker)(nil)

// BuildFeedWorker relays build events from the message bus to the local
// broker.
type BuildFeedWorker struct {
	consumer pubsub.Consumer
	codec    pubsub.Codec
	broker   async.Broker
	stop     chan struct{}
	stopOnce sync.Once
}

func (w *BuildFeedWorker) Run(ctx context.Context, done func()) {
	defer done()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	slog.Debug("build feed worker started")

	err := w.consumer.Consume(ctx, BuildsTopic, w.codec, w.handle)
	if err != nil {
		slog.Error("consuming build events", slog.String("error", err.Error()))
	}
}

func (w *BuildFeedWorker) Shutdown() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *BuildFeedWorker) handle(ctx context.Context, _ pubsub.Key, msg pubsub.Message) error {
	event, ok := msg.(*BuildEvent)
	if !ok {
		return fmt.Errorf("unexpected build message %T", msg)
	}

	ctx = pubsub.InjectTraceIntoContext(ctx, event.Trace)
	ctx, span := otel.Tracer("firmgen_server").Start(ctx, "build.feed")
	defer span.End()

	err := w.broker.Publish(ctx, FeedTopic, async.Message{Event: EventBuildCreated, Value: *event})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		return fmt.Errorf("forwarding build %s: %w", event.BuildID, err)
	}

	return nil
}
