package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	GinMode        string   `yaml:"gin_mode"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	EventsTopic        string   `yaml:"events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	Enabled         bool   `yaml:"enabled"`
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type StoreConfig struct {
	Seed         bool `yaml:"seed"`
	PasswordCost int  `yaml:"password_cost"`
}

type WorkerConfig struct {
	AuditRetentionDays  int    `yaml:"audit_retention_days"`
	RetentionSweepHours int    `yaml:"retention_sweep_hours"`
	MetricsAddress      string `yaml:"metrics_address"`
}

func defaults() Config {
	return Config{
		HTTP:  HTTPConfig{Address: ":8080"},
		GRPC:  GRPCConfig{Address: ":9090"},
		Kafka: KafkaConfig{EventsTopic: "booking_events", NotificationsTopic: "notifications", GroupID: "safaribooking-worker"},
		Auth:  AuthConfig{TokenTTLMinutes: 12 * 60},
		Store: StoreConfig{Seed: true},
		Worker: WorkerConfig{
			AuditRetentionDays:  90,
			RetentionSweepHours: 24,
			MetricsAddress:      ":9102",
		},
	}
}

// LoadConfig reads path on top of the defaults. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c Config) validate() error {
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.token_ttl_minutes must be positive")
	}
	if c.Worker.AuditRetentionDays <= 0 || c.Worker.RetentionSweepHours <= 0 {
		return fmt.Errorf("worker.audit_retention_days and worker.retention_sweep_hours must be positive")
	}
	return nil
}
