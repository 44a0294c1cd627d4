package events_test

import (
	"context"
	"errors"
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/events"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/pubsub"
	mockpubsub "firmgen-server/test/unit/doubles/infra/pubsub"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("Build events", func() {
	var (
		factory *pubsub.Factory
		broker  *async.LocalBroker
		ctx     context.Context
		record  domain.BuildRecord
	)

	ginkgo.BeforeEach(func() {
		var err error
		factory, err = pubsub.NewFactory(pubsub.FactoryOptions{Engine: pubsub.EngineMemory})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		broker = async.NewLocalBroker()
		ctx = context.Background()
		record = domain.BuildRecord{
			ID:          "b-1",
			Fingerprint: "abc",
			BoardID:     "ESP32",
			Sensors:     []string{"DHT22"},
			MQTTEnabled: true,
			CreatedAt:   time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		}
	})

	ginkgo.It("should relay published builds to the local feed", func() {
		feed := broker.Subscribe(events.FeedTopic)

		worker, err := events.NewBuildFeedWorker(factory.Consumers, broker)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		stop := async.Start(ctx, worker)
		defer stop()

		publisher, err := events.NewBuildEventPublisher(factory.Publishers)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		gomega.Eventually(func() <-chan async.Message {
			gomega.Expect(publisher.PublishBuild(ctx, record)).To(gomega.Succeed())
			return feed.Receiver
		}).Should(gomega.Receive(gomega.And(
			gomega.HaveField("Event", events.EventBuildCreated),
			gomega.HaveField("Value", gomega.And(
				gomega.HaveField("BuildID", "b-1"),
				gomega.HaveField("BoardID", "ESP32"),
				gomega.HaveField("Sensors", []string{"DHT22"}),
				gomega.HaveField("MQTTEnabled", true),
			)),
		)))
	})

	ginkgo.Context("with a failing transport", func() {
		var ctrl *gomock.Controller

		ginkgo.BeforeEach(func() {
			ctrl = gomock.NewController(ginkgo.GinkgoT())
		})

		ginkgo.It("should wrap publish errors", func() {
			publishers := mockpubsub.NewMockPublisherFactory(ctrl)
			publisher := mockpubsub.NewMockPublisher(ctrl)
			publishers.EXPECT().New(events.BuildsTopic, gomock.Any()).Return(publisher, nil)
			publisher.EXPECT().Publish(gomock.Any(), pubsub.Key("b-1"), gomock.Any()).Return(errors.New("unreachable"))

			buildPublisher, err := events.NewBuildEventPublisher(publishers)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			err = buildPublisher.PublishBuild(ctx, record)
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("b-1")))
		})

		ginkgo.It("should fail when the topic cannot be opened", func() {
			publishers := mockpubsub.NewMockPublisherFactory(ctrl)
			publishers.EXPECT().New(events.BuildsTopic, gomock.Any()).Return(nil, errors.New("no brokers"))

			_, err := events.NewBuildEventPublisher(publishers)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
