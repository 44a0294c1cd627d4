package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "firmgen_server"

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads server.yaml from ./config or /config once per process.
// Environment variables such as FIRMGEN_SERVER_HTTP_ADDRESS override the file.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		v := viper.New()
		v.SetConfigName("server")
		v.AddConfigPath("config")
		v.AddConfigPath("/config")

		cfg, err := Load(v)
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

// Load builds an AppConfig from v. A missing config file is not an error.
func Load(v *viper.Viper) (AppConfig, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, err
		}
	}

	return AppConfig{
		General: GeneralConfig{
			LogLevel:    v.GetString("general.log_level"),
			Environment: v.GetString("general.environment"),
		},
		HTTP: HTTPConfig{
			Address:        v.GetString("http.address"),
			AllowedOrigins: v.GetStringSlice("http.allowed_origins"),
		},
		Database: DatabaseConfig{
			Engine: v.GetString("database.engine"),
			DSN:    v.GetString("database.dsn"),
		},
		Cache: CacheConfig{
			Engine:     v.GetString("cache.engine"),
			TTL:        v.GetDuration("cache.ttl"),
			MaxEntries: v.GetInt64("cache.max_entries"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		MQTTClient: MQTTClientConfig{
			Broker:   v.GetString("mqtt_client.broker"),
			ClientID: v.GetString("mqtt_client.client_id"),
			Username: v.GetString("mqtt_client.username"),
			Password: v.GetString("mqtt_client.password"),
		},
		Telemetry: TelemetryConfig{
			Enabled: v.GetBool("telemetry.enabled"),
			Topic:   v.GetString("telemetry.topic"),
		},
		PubSub: PubSubConfig{
			Engine: v.GetString("pubsub.engine"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetStringSlice("kafka.brokers"),
			Group:   v.GetString("kafka.group"),
		},
		Retention: RetentionConfig{
			Enabled:  v.GetBool("retention.enabled"),
			Schedule: v.GetString("retention.schedule"),
			MaxAge:   v.GetDuration("retention.max_age"),
		},
		OTel: OTelConfig{
			Enabled:  v.GetBool("otel.enabled"),
			Endpoint: v.GetString("otel.endpoint"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.environment", "local")
	v.SetDefault("http.address", ":3000")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("cache.engine", "memory")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.max_entries", 10_000)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("mqtt_client.client_id", "firmgen_server")
	v.SetDefault("telemetry.topic", "daq/+/sensors")
	v.SetDefault("pubsub.engine", "memory")
	v.SetDefault("kafka.group", "firmgen-server")
	v.SetDefault("retention.schedule", "0 3 * * *")
	v.SetDefault("retention.max_age", 30*24*time.Hour)
	v.SetDefault("otel.endpoint", "localhost:4317")
}

type AppConfig struct {
	General    GeneralConfig
	HTTP       HTTPConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Redis      RedisConfig
	MQTTClient MQTTClientConfig
	Telemetry  TelemetryConfig
	PubSub     PubSubConfig
	Kafka      KafkaConfig
	Retention  RetentionConfig
	OTel       OTelConfig
}

type GeneralConfig struct {
	LogLevel    string
	Environment string
}

type HTTPConfig struct {
	Address        string
	AllowedOrigins []string
}

// DatabaseConfig selects the build record store: sqlite keeps records in
// memory, postgres requires DSN.
type DatabaseConfig struct {
	Engine string
	DSN    string
}

type CacheConfig struct {
	// Engine is memory or redis.
	Engine     string
	TTL        time.Duration
	MaxEntries int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MQTTClientConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

type TelemetryConfig struct {
	Enabled bool
	Topic   string
}

type PubSubConfig struct {
	// Engine is memory or kafka.
	Engine string
}

type KafkaConfig struct {
	Brokers []string
	Group   string
}

type RetentionConfig struct {
	Enabled  bool
	Schedule string
	MaxAge   time.Duration
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}
