package pubsub

import "fmt"

const (
	EngineMemory = "memory"
	EngineKafka  = "kafka"
)

type FactoryOptions struct {
	Engine        string
	KafkaBrokers  []string
	ConsumerGroup string
}

// Factory pairs the publisher and consumer side of one engine.
type Factory struct {
	Publishers PublisherFactory
	Consumers  ConsumerFactory
}

func NewFactory(opts FactoryOptions) (*Factory, error) {
	switch opts.Engine {
	case EngineMemory, "":
		broker := NewMemoryBroker()
		return &Factory{
			Publishers: NewMemoryPublisherFactory(broker),
			Consumers:  NewMemoryConsumerFactory(broker),
		}, nil
	case EngineKafka:
		if len(opts.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka engine requires at least one broker")
		}
		return &Factory{
			Publishers: NewKafkaPublisherFactory(opts.KafkaBrokers),
			Consumers:  NewKafkaConsumerFactory(opts.KafkaBrokers, opts.ConsumerGroup),
		}, nil
	default:
		return nil, fmt.Errorf("unknown pubsub engine %q", opts.Engine)
	}
}
