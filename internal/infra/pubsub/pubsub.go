package pubsub

import "context"

//go:generate mockgen -source=pubsub.go -destination=../../../test/unit/doubles/infra/pubsub/pubsub_mock.go -package=pubsub -mock_names=ConsumerFactory=MockConsumerFactory,Consumer=MockConsumer,PublisherFactory=MockPublisherFactory,Publisher=MockPublisher

type PublisherFactory interface {
	New(Topic, Codec) (Publisher, error)
}

type Publisher interface {
	Publish(context.Context, Key, Message) error
}

type ConsumerFactory interface {
	New() Consumer
}

// Consumer delivers every message on a topic to handler until ctx is done.
type Consumer interface {
	Consume(context.Context, Topic, Codec, MessageHandler) error
}

type Topic string
type Key string
type Message any
type MessageHandler func(context.Context, Key, Message) error
