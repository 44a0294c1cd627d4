package persistence_test

import (
	"context"
	"errors"
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/persistence"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/infra/sql"
	mocksql "firmgen-server/test/unit/doubles/infra/sql"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("BuildRecordRepository", func() {
	var (
		repository *persistence.SimpleBuildRecordRepository
		ctx        context.Context
	)

	newRecord := func(createdAt time.Time) domain.BuildRecord {
		record, err := domain.NewBuildRecordBuilder().
			WithFingerprint("f1").
			WithConfig(domain.NormalizedConfig{
				Board: domain.BoardProfile{ID: "ESP32", SupportsNetworking: true},
				Sensors: []domain.ResolvedSensor{
					{Descriptor: domain.SensorDescriptor{Type: "DHT22"}},
					{Descriptor: domain.SensorDescriptor{Type: "BMP280"}},
				},
			}).
			WithArtifact(domain.GeneratedArtifact{Source: "void loop() {}"}, "[env:esp32dev]").
			WithCreatedAt(createdAt).
			Build()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return record
	}

	ginkgo.BeforeEach(func() {
		orm, err := sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		repository, err = persistence.NewBuildRecordRepository(orm)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.Context("Create and Get", func() {
		ginkgo.It("should round trip a record", func() {
			record := newRecord(time.Now().UTC().Truncate(time.Second))
			gomega.Expect(repository.Create(ctx, record)).To(gomega.Succeed())

			stored, err := repository.Get(ctx, record.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(stored.ID).To(gomega.Equal(record.ID))
			gomega.Expect(stored.Sensors).To(gomega.Equal([]string{"DHT22", "BMP280"}))
			gomega.Expect(stored.Source).To(gomega.Equal("void loop() {}"))
			gomega.Expect(stored.CreatedAt).To(gomega.BeTemporally("==", record.CreatedAt))
		})

		ginkgo.It("should return ErrBuildNotFound for unknown ids", func() {
			_, err := repository.Get(ctx, domain.ID("missing"))
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrBuildNotFound))
		})
	})

	ginkgo.Context("DeleteCreatedBefore", func() {
		ginkgo.It("should only delete older records", func() {
			old := newRecord(time.Now().Add(-72 * time.Hour))
			recent := newRecord(time.Now())
			gomega.Expect(repository.Create(ctx, old)).To(gomega.Succeed())
			gomega.Expect(repository.Create(ctx, recent)).To(gomega.Succeed())

			deleted, err := repository.DeleteCreatedBefore(ctx, time.Now().Add(-24*time.Hour))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(deleted).To(gomega.Equal(int64(1)))

			_, err = repository.Get(ctx, old.ID)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrBuildNotFound))
			_, err = repository.Get(ctx, recent.ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})

	ginkgo.Context("with a failing database", func() {
		var (
			ctrl    *gomock.Controller
			mockORM *mocksql.MockORM
		)

		ginkgo.BeforeEach(func() {
			ctrl = gomock.NewController(ginkgo.GinkgoT())
			mockORM = mocksql.NewMockORM(ctrl)
			mockORM.EXPECT().AutoMigrate(gomock.Any()).Return(nil)

			var err error
			repository, err = persistence.NewBuildRecordRepository(mockORM)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.AfterEach(func() {
			ctrl.Finish()
		})

		ginkgo.It("should wrap create errors", func() {
			mockORM.EXPECT().WithContext(gomock.Any()).Return(mockORM)
			mockORM.EXPECT().Create(gomock.Any()).Return(mockORM)
			mockORM.EXPECT().Error().Return(errors.New("disk full"))

			err := repository.Create(ctx, newRecord(time.Now()))
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("creating build record")))
		})
	})
})
