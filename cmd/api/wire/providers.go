package wire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"firmgen-server/cmd/config"
	"firmgen-server/internal/data_plane/workers"
	"firmgen-server/internal/firmware/events"
	"firmgen-server/internal/firmware/httpapi"
	"firmgen-server/internal/firmware/usecases"
	"firmgen-server/internal/infra/async"
	"firmgen-server/internal/infra/cache"
	"firmgen-server/internal/infra/mqtt"
	"firmgen-server/internal/infra/pubsub"
	"firmgen-server/internal/infra/sql"
)

const (
	databaseEngineSqlite   = "sqlite"
	databaseEnginePostgres = "postgres"
	cacheEngineMemory      = "memory"
	cacheEngineRedis       = "redis"

	_retentionTickPeriod = time.Minute
)

// Application groups everything cmd/api starts: HTTP controllers and the
// background workers sharing their stores.
type Application struct {
	GenerationController *httpapi.GenerationController
	LiveFeedController   *httpapi.LiveFeedController
	RetentionWorker      *usecases.RetentionWorker
	BuildFeedWorker      *events.BuildFeedWorker
}

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideDatabase(cfg config.AppConfig) (sql.ORM, error) {
	switch cfg.Database.Engine {
	case databaseEngineSqlite, "":
		return sql.NewMemoryORM()
	case databaseEnginePostgres:
		return sql.NewPostgresORM(context.Background(), cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unknown database engine %q", cfg.Database.Engine)
	}
}

func provideArtifactCache(cfg config.AppConfig) (cache.Cache, error) {
	switch cfg.Cache.Engine {
	case cacheEngineMemory, "":
		cacheConfig := cache.DefaultConfig()
		if cfg.Cache.MaxEntries > 0 {
			cacheConfig.MaxEntries = cfg.Cache.MaxEntries
		}
		return cache.New(cacheConfig)
	case cacheEngineRedis:
		redisConfig := cache.DefaultRedisConfig()
		redisConfig.Addr = cfg.Redis.Addr
		redisConfig.Password = cfg.Redis.Password //pragma: allowlist secret
		redisConfig.DB = cfg.Redis.DB
		return cache.NewRedisCache(redisConfig)
	default:
		return nil, fmt.Errorf("unknown cache engine %q", cfg.Cache.Engine)
	}
}

func provideArtifactTTL(cfg config.AppConfig) usecases.ArtifactTTL {
	return usecases.ArtifactTTL(cfg.Cache.TTL)
}

func providePubSubFactory(cfg config.AppConfig) (*pubsub.Factory, error) {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Engine:        cfg.PubSub.Engine,
		KafkaBrokers:  cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.Group,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.Publishers
}

func provideConsumerFactory(factory *pubsub.Factory) pubsub.ConsumerFactory {
	return factory.Consumers
}

func provideRetentionTicker() *time.Ticker {
	return time.NewTicker(_retentionTickPeriod)
}

func provideRetentionPolicy(cfg config.AppConfig) usecases.RetentionPolicy {
	return usecases.RetentionPolicy{
		Schedule: cfg.Retention.Schedule,
		MaxAge:   cfg.Retention.MaxAge,
	}
}

func provideMQTTClient(cfg config.AppConfig) (mqtt.Client, error) {
	slog.Info("connecting telemetry mqtt client", slog.String("broker", cfg.MQTTClient.Broker))
	return mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
		Broker:   cfg.MQTTClient.Broker,
		ClientID: cfg.MQTTClient.ClientID,
		Username: cfg.MQTTClient.Username,
		Password: cfg.MQTTClient.Password, //pragma: allowlist secret
	})
}

func provideTelemetryIngestWorker(cfg config.AppConfig, client mqtt.Client, broker async.Broker) *workers.TelemetryIngestWorker {
	return workers.NewTelemetryIngestWorker(client, broker, cfg.Telemetry.Topic)
}
