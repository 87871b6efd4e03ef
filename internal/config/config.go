package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"
	"github.com/go-playground/validator/v10"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Kafka      KafkaConfig
	PubSub     PubSubConfig
	Temporal   TemporalConfig
	Sentry     SentryConfig
	Cache      CacheConfig
	Pyroscope  PyroscopeConfig
	Fees       FeesConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" default:"10"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" default:"5"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" default:"60"`
	// AutoMigrate applies pending migrations when the server starts
	AutoMigrate bool `mapstructure:"auto_migrate"`
	// LockTimeout bounds how long a synchronization pass waits for the order row lock
	LockTimeout time.Duration `mapstructure:"lock_timeout" default:"5s"`
}

type KafkaConfig struct {
	Brokers       []string             `mapstructure:"brokers"`
	ConsumerGroup string               `mapstructure:"consumer_group"`
	ClientID      string               `mapstructure:"client_id"`
	TLS           bool                 `mapstructure:"tls"`
	UseSASL       bool                 `mapstructure:"use_sasl"`
	SASLMechanism sarama.SASLMechanism `mapstructure:"sasl_mechanism"`
	SASLUser      string               `mapstructure:"sasl_user"`
	SASLPassword  string               `mapstructure:"sasl_password"`
}

type PubSubConfig struct {
	// Backend selects the watermill implementation: "memory" or "kafka"
	Backend types.PubSubBackend `mapstructure:"backend" default:"memory"`
	// retry policy of subscribers, see the watermill retry middleware
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

type TemporalConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
	APIKey    string `mapstructure:"api_key"`
	TLS       bool   `mapstructure:"tls"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// PyroscopeConfig drives continuous profiling. ProfileTypes left empty means cpu,
// memory and goroutine profiles.
type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address" validate:"required_if=Enabled true"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type FeesConfig struct {
	// RoundingPlaces is the scale money is rounded to when persisted as tax
	RoundingPlaces int32 `mapstructure:"rounding_places" validate:"gte=0"`
	// RecalculationConcurrency bounds how many orders a background recalculation touches at once
	RecalculationConcurrency int `mapstructure:"recalculation_concurrency" validate:"gte=1"`
	// EventTopic receives a message after each committed synchronization pass
	EventTopic string `mapstructure:"event_topic" validate:"required"`
	// FeeChangeTopic carries enterprise fee edits to the recalculation subscriber
	FeeChangeTopic string `mapstructure:"fee_change_topic" validate:"required"`
	// PublishTimeout bounds the retries of a single post-commit publish
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

func NewConfig() (*Configuration, error) {
	// a missing .env is fine, real deployments inject the environment directly
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/backoffice")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("postgres.lock_timeout", 5*time.Second)
	v.SetDefault("pubsub.backend", types.PubSubBackendMemory)
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "fee-recalculation")
	v.SetDefault("fees.rounding_places", 2)
	v.SetDefault("fees.recalculation_concurrency", 4)
	v.SetDefault("fees.event_topic", "order.fees.updated")
	v.SetDefault("fees.fee_change_topic", "enterprise_fee.saved")
	v.SetDefault("fees.publish_timeout", 10*time.Second)
	v.SetDefault("kafka.client_id", "backoffice")
	v.SetDefault("pubsub.max_retries", 3)
	v.SetDefault("pubsub.initial_interval", time.Second)
	v.SetDefault("pubsub.max_interval", 10*time.Second)
	v.SetDefault("pubsub.multiplier", 2.0)
	v.SetDefault("pubsub.max_elapsed_time", time.Minute)
	v.SetDefault("pyroscope.application_name", "backoffice")
	v.SetDefault("pyroscope.sample_rate", 100)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		PubSub: PubSubConfig{
			Backend:         types.PubSubBackendMemory,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2.0,
			MaxElapsedTime:  time.Minute,
		},
		Temporal: TemporalConfig{Namespace: "default", TaskQueue: "fee-recalculation"},
		Cache:    CacheConfig{Enabled: true},
		Fees: FeesConfig{
			RoundingPlaces:           2,
			RecalculationConcurrency: 4,
			EventTopic:               "order.fees.updated",
			FeeChangeTopic:           "enterprise_fee.saved",
			PublishTimeout:           10 * time.Second,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
