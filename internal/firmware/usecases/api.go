package usecases

import (
	"context"

	"firmgen-server/internal/firmware/domain"
)

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/firmware/usecases/api_mock.go -package=usecases

type GenerationService interface {
	ListSensors(context.Context) []domain.SensorDescriptor
	ListBoards(context.Context) []domain.BoardProfile
	Generate(context.Context, domain.SelectionRequest) (domain.BuildRecord, error)
	GetBuild(context.Context, domain.ID) (domain.BuildRecord, error)
}
