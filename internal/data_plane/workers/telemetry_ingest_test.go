package workers_test

import (
	"context"
	"errors"
	"time"

	"firmgen-server/internal/data_plane/dto"
	"firmgen-server/internal/data_plane/workers"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/mqtt"
	mockmqtt "firmgen-server/test/unit/doubles/infra/mqtt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Topic() string { return m.topic }
func (m fakeMessage) Payload() []byte { return m.payload }

var _ = Describe("TelemetryIngestWorker", func() {
	var (
		ctrl       *gomock.Controller
		mqttClient *mockmqtt.MockClient
		broker     *async.LocalBroker
		worker     *workers.TelemetryIngestWorker
		handler    chan mqtt.MessageHandler
		ctx        context.Context
		cancel     context.CancelFunc
		now        time.Time
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mqttClient = mockmqtt.NewMockClient(ctrl)
		broker = async.NewLocalBroker()
		handler = make(chan mqtt.MessageHandler, 1)
		now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
		ctx, cancel = context.WithCancel(context.Background())

		worker = workers.NewTelemetryIngestWorker(mqttClient, broker, "").
			WithClock(func() time.Time { return now })
	})

	AfterEach(func() {
		cancel()
		ctrl.Finish()
	})

	When("the subscription succeeds", func() {
		var stop func()

		BeforeEach(func() {
			mqttClient.EXPECT().
				Subscribe(workers.DefaultSubscriptionTopic, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ string, _ byte, h mqtt.MessageHandler) error {
					handler <- h
					return nil
				})
			mqttClient.EXPECT().Unsubscribe(workers.DefaultSubscriptionTopic).Return(nil)
			stop = async.Start(ctx, worker)
		})

		AfterEach(func() {
			cancel()
			stop()
		})

		It("should republish decoded samples", func() {
			samples := broker.Subscribe(workers.BrokerTopicSamples)
			var h mqtt.MessageHandler
			Eventually(handler).Should(Receive(&h))

			h(fakeMessage{topic: "daq/a1b2/sensors", payload: []byte(`{"device_id":"esp32-a1b2","temperature":22.5}`)})

			var msg async.Message
			Eventually(samples.Receiver).Should(Receive(&msg))
			Expect(msg.Event).To(Equal(workers.EventSample))
			sample := msg.Value.(dto.Sample)
			Expect(sample.DeviceID).To(Equal("esp32-a1b2"))
			Expect(sample.ReceivedAt).To(Equal(now))
			Expect(*sample.Temperature).To(BeNumerically("~", 22.5))
			Expect(sample.Humidity).To(BeNil())
		})

		It("should drop undecodable messages", func() {
			samples := broker.Subscribe(workers.BrokerTopicSamples)
			var h mqtt.MessageHandler
			Eventually(handler).Should(Receive(&h))

			h(fakeMessage{topic: "daq/a1b2/sensors", payload: []byte(`not json`)})
			h(fakeMessage{topic: "other/topic", payload: []byte(`{}`)})

			Consistently(samples.Receiver, 100*time.Millisecond).ShouldNot(Receive())
		})
	})

	When("the subscription fails", func() {
		It("should stop the worker", func() {
			mqttClient.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("not connected"))

			finished := make(chan struct{})
			go worker.Run(ctx, func() { close(finished) })

			Eventually(finished).Should(BeClosed())
		})
	})
})
