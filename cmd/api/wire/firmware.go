//go:build wireinject
// +build wireinject

package wire

import (
	"firmgen-server/internal/data_plane/workers"
	"firmgen-server/internal/firmware/events"
	"firmgen-server/internal/firmware/httpapi"
	"firmgen-server/internal/firmware/persistence"
	"firmgen-server/internal/firmware/registry"
	"firmgen-server/internal/firmware/synthesis"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/firmware/validator"
	"firmgen-server/internal/infra/async"

	"github.com/google/wire"
)

var CatalogSet = wire.NewSet(
	registry.Catalog,
	synthesis.NewSynthesizer,
	wire.Bind(new(registry.StrategyTable), new(*synthesis.Synthesizer)),
	registry.New,
	wire.Bind(new(validator.Catalog), new(*registry.Registry)),
	validator.NewValidator,
)

var GenerationServiceSet = wire.NewSet(
	CatalogSet,
	wire.Bind(new(usecases.Catalog), new(*registry.Registry)),
	wire.Bind(new(usecases.Validator), new(*validator.Validator)),
	wire.Bind(new(usecases.Synthesizer), new(*synthesis.Synthesizer)),
	provideArtifactCache,
	provideArtifactTTL,
	persistence.NewBuildRecordRepository,
	wire.Bind(new(usecases.BuildRecordRepository), new(*persistence.SimpleBuildRecordRepository)),
	events.NewBuildEventPublisher,
	wire.Bind(new(usecases.BuildEventPublisher), new(*events.SimpleBuildEventPublisher)),
	usecases.NewGenerationService,
	wire.Bind(new(usecases.GenerationService), new(*usecases.SimpleGenerationService)),
)

func InitializeApplication(broker async.Broker) (*Application, error) {
	wire.Build(
		provideAppConfig,
		provideDatabase,
		providePubSubFactory,
		providePublisherFactory,
		provideConsumerFactory,
		GenerationServiceSet,
		httpapi.NewGenerationController,
		httpapi.NewLiveFeedController,
		provideRetentionTicker,
		provideRetentionPolicy,
		usecases.NewRetentionWorker,
		events.NewBuildFeedWorker,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func InitializeTelemetryIngestWorker(broker async.Broker) (*workers.TelemetryIngestWorker, error) {
	wire.Build(
		provideAppConfig,
		provideMQTTClient,
		provideTelemetryIngestWorker,
	)
	return nil, nil
}
