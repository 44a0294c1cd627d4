package usecases

import (
	"context"
	"errors"
	"time"

	"firmgen-server/internal/firmware/domain"
)

//go:generate mockgen -source=port.go -destination=../../../test/unit/doubles/firmware/usecases/port_mock.go -package=usecases

var (
	ErrBuildNotFound = errors.New("build not found")
)

type Catalog interface {
	ListSensors() []domain.SensorDescriptor
	ListBoards() []domain.BoardProfile
}

type Validator interface {
	Validate(domain.SelectionRequest) domain.ValidationOutcome
}

type Synthesizer interface {
	Synthesize(domain.NormalizedConfig) domain.GeneratedArtifact
	Manifest(domain.NormalizedConfig) string
}

type BuildRecordRepository interface {
	Create(context.Context, domain.BuildRecord) error
	Get(context.Context, domain.ID) (domain.BuildRecord, error)
	DeleteCreatedBefore(context.Context, time.Time) (int64, error)
}

type BuildEventPublisher interface {
	PublishBuild(context.Context, domain.BuildRecord) error
}
