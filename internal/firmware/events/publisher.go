package events

import (
	"context"
	"fmt"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/infra/pubsub"
)

func NewBuildEventPublisher(factory pubsub.PublisherFactory) (*SimpleBuildEventPublisher, error) {
	codec, err := NewBuildEventCodec()
	if err != nil {
		return nil, err
	}

	publisher, err := factory.New(BuildsTopic, codec)
	if err != nil {
		return nil, fmt.Errorf("creating build publisher: %w", err)
	}

	return &SimpleBuildEventPublisher{publisher: publisher}, nil
}

var _ usecases.BuildEventPublisher = (*SimpleBuildEventPublisher)(nil)

type SimpleBuildEventPublisher struct {
	publisher pubsub.Publisher
}

func (p *SimpleBuildEventPublisher) PublishBuild(ctx context.Context, record domain.BuildRecord) error {
	event := fromBuildRecord(record)
	event.Trace = pubsub.ExtractTraceFromContext(ctx)

	err := p.publisher.Publish(ctx, pubsub.Key(event.BuildID), event)
	if err != nil {
		return fmt.Errorf("publishing build %s: %w", event.BuildID, err)
	}

	return nil
}
