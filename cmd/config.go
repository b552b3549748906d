package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	EventSinkLog      = "log"
	EventSinkRabbitMQ = "rabbitmq"
	EventSinkKafka    = "kafka"
)

type Config struct {
	HTTPPort string     `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`

	Storage    string `envconfig:"STORAGE" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	LockTimeout time.Duration `envconfig:"LOCK_TIMEOUT" default:"5s"`

	EventSink        string   `envconfig:"EVENT_SINK" default:"log"`
	RabbitMQURL      string   `envconfig:"RABBITMQ_URL"`
	RabbitMQExchange string   `envconfig:"RABBITMQ_EXCHANGE" default:"fulfillment_events"`
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic       string   `envconfig:"KAFKA_TOPIC" default:"fulfillment.events"`

	NotifierWorkers        int           `envconfig:"NOTIFIER_WORKERS" default:"4"`
	NotifierQueueSize      int           `envconfig:"NOTIFIER_QUEUE_SIZE" default:"256"`
	NotifierPublishTimeout time.Duration `envconfig:"NOTIFIER_PUBLISH_TIMEOUT" default:"5s"`
	RedeliveryCapacity     int           `envconfig:"REDELIVERY_CAPACITY" default:"1024"`
	RedeliverySchedule     string        `envconfig:"REDELIVERY_SCHEDULE" default:"*/10 * * * * *"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errList []error
	switch c.Storage {
	case StoragePostgres:
		if c.DBUser == "" || c.DBName == "" {
			errList = append(errList, errors.New("DB_USER and DB_NAME are required for postgres storage"))
		}
	case StorageMemory:
	default:
		errList = append(errList, fmt.Errorf("unknown STORAGE %q", c.Storage))
	}

	switch c.EventSink {
	case EventSinkLog:
	case EventSinkRabbitMQ:
		if c.RabbitMQURL == "" {
			errList = append(errList, errors.New("RABBITMQ_URL is required for the rabbitmq event sink"))
		}
	case EventSinkKafka:
		if len(c.KafkaBrokers) == 0 {
			errList = append(errList, errors.New("KAFKA_BROKERS is required for the kafka event sink"))
		}
	default:
		errList = append(errList, fmt.Errorf("unknown EVENT_SINK %q", c.EventSink))
	}

	if c.LockTimeout <= 0 {
		errList = append(errList, errors.New("LOCK_TIMEOUT must be positive"))
	}
	return errors.Join(errList...)
}

// DSN returns the libpq connection string of the order database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
