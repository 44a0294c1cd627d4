package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"firmgen-server/internal/data_plane/dto"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/mqtt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	BrokerTopicSamples async.Topic = "telemetry_samples"
	EventSample                    = "sample"

	DefaultSubscriptionTopic = "daq/+/sensors"

	qos byte = 0
)

func NewTelemetryIngestWorker(
	mqttClient mqtt.Client,
	broker async.Broker,
	topic string,
) *TelemetryIngestWorker {
	if topic == "" {
		topic = DefaultSubscriptionTopic
	}

	return &TelemetryIngestWorker{
		mqttClient: mqttClient,
		broker:     broker,
		topic:      topic,
		inbound:    make(chan mqtt.Message, 64),
		now:        time.Now,
	}
}

var _ async.Worker = &TelemetryIngestWorker{}

// TelemetryIngestWorker decodes samples published by generated firmware and
// republishes them on the internal broker.
type TelemetryIngestWorker struct {
	mqttClient mqtt.Client
	broker     async.Broker
	topic      string
	inbound    chan mqtt.Message
	now        func() time.Time
	counter    metric.Int64Counter
}

func (w *TelemetryIngestWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.setupOtelCounter()

	err := w.mqttClient.Subscribe(w.topic, qos, w.enqueue)
	if err != nil {
		slog.Error("subscribing to telemetry", slog.String("topic", w.topic), slog.String("error", err.Error()))
		return
	}
	slog.Debug("telemetry ingest worker started", slog.String("topic", w.topic))

	for {
		select {
		case <-ctx.Done():
			slog.Info("telemetry ingest worker cancelled")
			return
		case msg := <-w.inbound:
			w.handle(ctx, msg)
		}
	}
}

func (w *TelemetryIngestWorker) Shutdown() {
	if err := w.mqttClient.Unsubscribe(w.topic); err != nil {
		slog.Warn("unsubscribing from telemetry", slog.String("error", err.Error()))
	}
}

// enqueue runs on the mqtt client's goroutine and never blocks it.
func (w *TelemetryIngestWorker) enqueue(msg mqtt.Message) {
	select {
	case w.inbound <- msg:
	default:
		slog.Warn("telemetry queue full, dropping message", slog.String("topic", msg.Topic()))
	}
}

func (w *TelemetryIngestWorker) handle(ctx context.Context, msg mqtt.Message) {
	sample, err := dto.DecodeSample(msg.Topic(), msg.Payload(), w.now())
	if err != nil {
		w.count(ctx, "rejected")
		slog.Warn("decoding telemetry sample", slog.String("topic", msg.Topic()), slog.String("error", err.Error()))
		return
	}

	w.count(ctx, "accepted")
	err = w.broker.Publish(ctx, BrokerTopicSamples, async.Message{Event: EventSample, Value: sample})
	if err != nil && !errors.Is(err, async.ErrTopicNotFound) {
		slog.Error("publishing telemetry sample", slog.String("device_id", sample.DeviceID), slog.String("error", err.Error()))
	}
}

func (w *TelemetryIngestWorker) setupOtelCounter() {
	meter := otel.Meter("firmgen_server")
	w.counter, _ = meter.Int64Counter(
		fmt.Sprintf("%s.%s", "firmgen_server", "telemetry.samples"),
		metric.WithDescription("firmgen_server telemetry samples received"),
	)
}

func (w *TelemetryIngestWorker) count(ctx context.Context, result string) {
	if w.counter != nil {
		w.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

// WithClock replaces the worker's time source.
func (w *TelemetryIngestWorker) WithClock(now func() time.Time) *TelemetryIngestWorker {
	w.now = now
	return w
}
