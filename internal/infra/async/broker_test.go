package async_test

import (
	"context"
	"sync"

	"firmgen-server/internal/infra/async"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalBroker", func() {
	var (
		broker *async.LocalBroker
		ctx    context.Context
	)

	const topic = async.Topic("telemetry.samples")

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		ctx = context.Background()
	})

	Context("Publish", func() {
		It("should deliver to every subscriber", func() {
			first := broker.Subscribe(topic)
			second := broker.Subscribe(topic)

			Expect(broker.Publish(ctx, topic, async.Message{Event: "sample", Value: 21.5})).To(Succeed())

			Eventually(first.Receiver).Should(Receive(And(
				HaveField("Event", "sample"),
				HaveField("Value", 21.5),
			)))
			Eventually(second.Receiver).Should(Receive(HaveField("Event", "sample")))
		})

		It("should fail for topics without subscribers", func() {
			err := broker.Publish(ctx, "unknown", async.Message{})
			Expect(err).To(MatchError(async.ErrTopicNotFound))
		})

		It("should drop messages for a full subscriber without blocking", func() {
			broker.WithBuffer(1)
			subscription := broker.Subscribe(topic)

			Expect(broker.Publish(ctx, topic, async.Message{Event: "first"})).To(Succeed())
			Expect(broker.Publish(ctx, topic, async.Message{Event: "second"})).To(Succeed())

			Expect(subscription.Receiver).To(Receive(HaveField("Event", "first")))
			Consistently(subscription.Receiver).ShouldNot(Receive())
		})

		It("should tolerate concurrent publish and stop", func() {
			broker.Subscribe(topic)

			var wg sync.WaitGroup
			for range 10 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = broker.Publish(ctx, topic, async.Message{Event: "sample"})
				}()
			}
			broker.Stop()
			wg.Wait()

			Expect(broker.Publish(ctx, topic, async.Message{})).To(MatchError(async.ErrBrokerStopped))
		})
	})

	Context("Unsubscribe", func() {
		It("should fail for unknown topics", func() {
			err := broker.Unsubscribe("unknown", async.Subscription{ID: "x"})
			Expect(err).To(MatchError(async.ErrTopicNotFound))
		})

		It("should fail for unknown subscriptions", func() {
			broker.Subscribe(topic)
			err := broker.Unsubscribe(topic, async.Subscription{ID: "x"})
			Expect(err).To(MatchError(async.ErrSubscriptionNotFound))
		})

		It("should close the receiver and stop delivery", func() {
			subscription := broker.Subscribe(topic)
			Expect(broker.Unsubscribe(topic, subscription)).To(Succeed())

			Eventually(subscription.Receiver).Should(BeClosed())
			Expect(broker.Publish(ctx, topic, async.Message{})).To(MatchError(async.ErrTopicNotFound))
		})
	})

	Context("Stop", func() {
		It("should close every receiver", func() {
			subscription := broker.Subscribe(topic)
			broker.Stop()

			Eventually(subscription.Receiver).Should(BeClosed())
		})

		It("should hand out closed receivers afterwards", func() {
			broker.Stop()
			subscription := broker.Subscribe(topic)

			Eventually(subscription.Receiver).Should(BeClosed())
		})
	})
})

type countingWorker struct {
	mu       sync.Mutex
	runs     int
	shutdown int
}

func (w *countingWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()
	<-ctx.Done()
}

func (w *countingWorker) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shutdown++
}

var _ = Describe("Start", func() {
	It("should run workers and wait for them on stop", func() {
		ctx, cancel := context.WithCancel(context.Background())
		first, second := &countingWorker{}, &countingWorker{}

		stop := async.Start(ctx, first, second)
		cancel()
		stop()

		Expect(first.runs).To(Equal(1))
		Expect(second.runs).To(Equal(1))
		Expect(first.shutdown).To(Equal(1))
		Expect(second.shutdown).To(Equal(1))
	})
})
