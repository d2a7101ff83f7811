// Package config loads process configuration with precedence ENV > file > defaults.
//
// The optional YAML file is named by TRAINHUB_CONFIG. Unknown keys in the file are
// rejected so typos fail at startup instead of silently using defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the optional YAML overlay.
const EnvConfigPath = "TRAINHUB_CONFIG"

// Config is the full process configuration.
type Config struct {
	Server     Server           `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Log        LogConfig        `yaml:"log"`
	Enrollment EnrollmentConfig `yaml:"enrollment"`
	Seed       SeedConfig       `yaml:"seed"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string        `yaml:"addr"`
	JWTSigningKey      string        `yaml:"jwt_signing_key"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the persistence engine. An empty URL runs the in-memory engine.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	TxTimeout       time.Duration `yaml:"tx_timeout"`
}

// RedisConfig configures the settings store. An empty URL keeps settings in process.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// KafkaConfig configures the audit outbox relay. No brokers disables the relay.
type KafkaConfig struct {
	Brokers            []string      `yaml:"brokers"`
	AuditTopic         string        `yaml:"audit_topic"`
	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
	OutboxBatchSize    int           `yaml:"outbox_batch_size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type EnrollmentConfig struct {
	// CoachValidationOnly is the default used until RH changes it at runtime.
	CoachValidationOnly bool `yaml:"coach_validation_only"`
}

// SeedConfig provisions users and sessions into the in-memory engine.
type SeedConfig struct {
	Users    []SeedUser    `yaml:"users"`
	Sessions []SeedSession `yaml:"sessions"`
}

type SeedUser struct {
	ID      string   `yaml:"id"`
	Roles   []string `yaml:"roles"`
	CoachID string   `yaml:"coach_id"`
}

type SeedSession struct {
	ID          string    `yaml:"id"`
	FormationID string    `yaml:"formation_id"`
	Capacity    int       `yaml:"capacity"`
	StartDate   time.Time `yaml:"start_date"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:               ":8080",
			JWTSigningKey:      "dev-secret-key-change-in-production",
			RateLimitPerMinute: 120,
			ShutdownTimeout:    10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			TxTimeout:       5 * time.Second,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			AuditTopic:         "trainhub.audit",
			OutboxPollInterval: time.Second,
			OutboxBatchSize:    100,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from defaults, the optional file and the environment.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}
	// #nosec G304 -- the path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return decode(data, cfg)
}

// decode overlays YAML onto cfg; keys absent from the document keep their value.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid integer %q", key, v))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid duration %q", key, v))
				return
			}
			*dst = d
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid boolean %q", key, v))
				return
			}
			*dst = b
		}
	}

	str("TRAINHUB_ADDR", &cfg.Server.Addr)
	str("JWT_SIGNING_KEY", &cfg.Server.JWTSigningKey)
	num("RATE_LIMIT_PER_MINUTE", &cfg.Server.RateLimitPerMinute)
	str("DATABASE_URL", &cfg.Database.URL)
	dur("TX_TIMEOUT", &cfg.Database.TxTimeout)
	str("REDIS_URL", &cfg.Redis.URL)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	str("KAFKA_AUDIT_TOPIC", &cfg.Kafka.AuditTopic)
	dur("OUTBOX_POLL_INTERVAL", &cfg.Kafka.OutboxPollInterval)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	flag("COACH_VALIDATION_ONLY", &cfg.Enrollment.CoachValidationOnly)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.JWTSigningKey == "" {
		errs = append(errs, errors.New("server.jwt_signing_key is required"))
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("server.rate_limit_per_minute must be >= 0"))
	}
	if c.Database.TxTimeout <= 0 {
		errs = append(errs, errors.New("database.tx_timeout must be positive"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		errs = append(errs, errors.New("kafka.audit_topic is required when brokers are set"))
	}
	if c.Kafka.OutboxPollInterval <= 0 {
		errs = append(errs, errors.New("kafka.outbox_poll_interval must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
