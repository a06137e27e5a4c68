// Package config provides configuration structures and validation for the
// vending services. Settings come from defaults, an optional .env file and
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vending-controller/internal/domain/vending"
)

// Config holds the complete application configuration, one section per subsystem.
// It is validated once during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Vending     VendingConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// VendingConfig describes the coins every machine accepts and how machines
// are stocked at startup
type VendingConfig struct {
	Denominations    string // NAME:VALUE pairs, e.g. "DOLLAR:100,QUARTER:25"
	BalanceCap       int64  // Most money a machine holds for one transaction, in minor units
	Currency         string
	PlanogramEnabled bool // Seed machines from the planogram table on startup
}

// MachineConfig parses the denomination list into the configuration shared by all machines
func (c VendingConfig) MachineConfig() (vending.Config, error) {
	denominations, err := vending.ParseDenominations(c.Denominations)
	if err != nil {
		return vending.Config{}, err
	}
	return vending.Config{
		Denominations: denominations,
		BalanceCap:    vending.Amount(c.BalanceCap),
	}, nil
}

// KafkaConfig contains Kafka configuration
type KafkaConfig struct {
	Brokers           string
	SaleEventTopic    string
	NumPartitions     int
	ReplicationFactor int
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
	DLQTopic          string // Topic for Dead Letter Queue
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of workers in the pool
}

// validate collects every invalid setting into a single error
func (c *Config) validate() error {
	var problems []string
	require := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	require(c.Server.Port > 0, "SERVER_PORT must be greater than 0")
	require(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	require(c.Server.ReadTimeout > 0, "SERVER_READ_TIMEOUT must be greater than 0")
	require(c.Server.WriteTimeout > 0, "SERVER_WRITE_TIMEOUT must be greater than 0")
	require(c.Server.IdleTimeout > 0, "SERVER_IDLE_TIMEOUT must be greater than 0")

	if machineCfg, err := c.Vending.MachineConfig(); err != nil {
		problems = append(problems, fmt.Sprintf("VENDING_DENOMINATIONS is invalid: %v", err))
	} else if _, err := vending.NewLedger(machineCfg.Denominations, machineCfg.BalanceCap); err != nil {
		problems = append(problems, fmt.Sprintf("VENDING_BALANCE_CAP is invalid: %v", err))
	}
	require(len(c.Vending.Currency) == 3, "VENDING_CURRENCY must be a 3-letter code")

	require(c.Kafka.Brokers != "", "KAFKA_BROKERS is required")
	require(c.Kafka.SaleEventTopic != "", "KAFKA_SALE_EVENT_TOPIC is required")
	require(c.Kafka.ConsumerGroup != "", "KAFKA_CONSUMER_GROUP is required")
	require(c.Kafka.MinBytes > 0, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	require(c.Kafka.MaxBytes > 0, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
	require(c.Kafka.MaxWait > 0, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	require(c.Kafka.DLQTopic != "", "KAFKA_DLQ_TOPIC is required")

	require(c.Postgres.URL != "", "POSTGRES_URL is required")
	require(c.Postgres.MaxConns > 0, "POSTGRES_MAX_CONNS must be greater than 0")
	require(c.Postgres.MinConns > 0, "POSTGRES_MIN_CONNS must be greater than 0")
	require(c.Postgres.ConnMaxLifetime > 0, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	require(c.Postgres.ConnMaxIdleTime > 0, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")

	require(c.MongoDB.URI != "", "MONGO_URI is required")
	require(c.MongoDB.Database != "", "MONGO_DATABASE is required")
	require(c.MongoDB.Timeout > 0, "MONGO_TIMEOUT must be greater than 0")
	require(c.MongoDB.MaxPoolSize > 0, "MONGO_MAX_POOL_SIZE must be greater than 0")
	require(c.MongoDB.MinPoolSize > 0, "MONGO_MIN_POOL_SIZE must be greater than 0")
	require(c.MongoDB.MaxConnIdleTime > 0, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")

	require(c.WorkerPool.Size > 0, "WORKER_POOL_SIZE must be greater than 0")

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, ", "))
	}
	return nil
}
