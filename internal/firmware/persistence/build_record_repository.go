package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firmgen-server/internal/firmware/domain"
	"firmgen-server/internal/firmware/persistence/internal"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/infra/sql"
)

func NewBuildRecordRepository(orm sql.ORM) (*SimpleBuildRecordRepository, error) {
	err := orm.AutoMigrate(&internal.BuildRecord{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleBuildRecordRepository{
		orm: orm,
	}, nil
}

var _ usecases.BuildRecordRepository = (*SimpleBuildRecordRepository)(nil)

type SimpleBuildRecordRepository struct {
	orm sql.ORM
}

func (s *SimpleBuildRecordRepository) Create(ctx context.Context, record domain.BuildRecord) error {
	data := internal.FromBuildRecord(record)
	err := s.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating build record: %w", err)
	}

	return nil
}

func (s *SimpleBuildRecordRepository) Get(ctx context.Context, id domain.ID) (domain.BuildRecord, error) {
	var result internal.BuildRecord
	err := s.orm.WithContext(ctx).First(&result, "id = ?", id.String()).Error()
	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.BuildRecord{}, usecases.ErrBuildNotFound
	}

	if err != nil {
		return domain.BuildRecord{}, fmt.Errorf("getting build record: %w", err)
	}

	return result.ToDomain(), nil
}

func (s *SimpleBuildRecordRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.orm.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&internal.BuildRecord{})
	if err := result.Error(); err != nil {
		return 0, fmt.Errorf("deleting build records: %w", err)
	}

	return result.RowsAffected(), nil
}
