package sql_test

import (
	"context"
	"time"

	"firmgen-server/internal/infra/sql"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type testModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	CreatedAt time.Time
}

var _ = ginkgo.Describe("ORM", func() {
	var (
		orm sql.ORM
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		orm, err = sql.NewMemoryORM()
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(orm.AutoMigrate(&testModel{})).To(gomega.Succeed())
		ctx = context.Background()
	})

	ginkgo.Context("NewMemoryORM", func() {
		ginkgo.It("should isolate databases between instances", func() {
			err := orm.WithContext(ctx).Create(&testModel{ID: "a", Name: "first"}).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			other, err := sql.NewMemoryORM()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(other.AutoMigrate(&testModel{})).To(gomega.Succeed())

			var found []testModel
			gomega.Expect(other.WithContext(ctx).Find(&found).Error()).To(gomega.Succeed())
			gomega.Expect(found).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("First", func() {
		ginkgo.It("should map missing rows to ErrRecordNotFound", func() {
			var model testModel
			err := orm.WithContext(ctx).First(&model, "id = ?", "missing").Error()
			gomega.Expect(err).To(gomega.MatchError(sql.ErrRecordNotFound))
		})
	})

	ginkgo.Context("Delete", func() {
		ginkgo.It("should report affected rows", func() {
			old := time.Now().Add(-48 * time.Hour)
			gomega.Expect(orm.WithContext(ctx).Create(&testModel{ID: "old", CreatedAt: old}).Error()).To(gomega.Succeed())
			gomega.Expect(orm.WithContext(ctx).Create(&testModel{ID: "new", CreatedAt: time.Now()}).Error()).To(gomega.Succeed())

			result := orm.WithContext(ctx).Where("created_at < ?", time.Now().Add(-24*time.Hour)).Delete(&testModel{})
			gomega.Expect(result.Error()).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.RowsAffected()).To(gomega.Equal(int64(1)))
		})
	})

	ginkgo.Context("Order and Limit", func() {
		ginkgo.It("should apply both", func() {
			for _, id := range []string{"b", "a", "c"} {
				gomega.Expect(orm.WithContext(ctx).Create(&testModel{ID: id}).Error()).To(gomega.Succeed())
			}

			var found []testModel
			err := orm.WithContext(ctx).Order("id").Limit(2).Find(&found).Error()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.HaveLen(2))
			gomega.Expect(found[0].ID).To(gomega.Equal("a"))
		})
	})
})
