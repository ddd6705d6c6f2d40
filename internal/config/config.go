package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	Session   SessionConfig
	Quiz      QuizConfig
	Analytics AnalyticsConfig
	Mailchimp MailchimpConfig
	Share     ShareConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// SessionConfig selects the session store backend and its retention.
type SessionConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

// QuizConfig points at the question source document. Source may be a
// filesystem path or an http(s) URL.
type QuizConfig struct {
	Source string
}

type AnalyticsConfig struct {
	MeasurementID string
	APISecret     string
	Endpoint      string
}

func (c AnalyticsConfig) Enabled() bool {
	return c.MeasurementID != "" && c.APISecret != ""
}

type MailchimpConfig struct {
	APIKey       string
	ServerPrefix string
	ListID       string
}

func (c MailchimpConfig) Enabled() bool {
	return c.APIKey != "" && c.ServerPrefix != "" && c.ListID != ""
}

// ShareConfig controls the signed share-link tokens attached to results.
type ShareConfig struct {
	Secret  string
	TTL     time.Duration
	BaseURL string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("quiz.source", "data/questions.json")
	v.SetDefault("analytics.endpoint", "https://www.google-analytics.com/mp/collect")
	v.SetDefault("share.ttl", "720h")
	v.SetDefault("share.base_url", "")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			Backend: v.GetString("session.backend"),
			TTL:     v.GetDuration("session.ttl"),
		},
		Quiz: QuizConfig{
			Source: v.GetString("quiz.source"),
		},
		Analytics: AnalyticsConfig{
			MeasurementID: v.GetString("analytics.measurement_id"),
			APISecret:     v.GetString("analytics.api_secret"),
			Endpoint:      v.GetString("analytics.endpoint"),
		},
		Mailchimp: MailchimpConfig{
			APIKey:       v.GetString("mailchimp.api_key"),
			ServerPrefix: v.GetString("mailchimp.server_prefix"),
			ListID:       v.GetString("mailchimp.list_id"),
		},
		Share: ShareConfig{
			Secret:  v.GetString("share.secret"),
			TTL:     v.GetDuration("share.ttl"),
			BaseURL: v.GetString("share.base_url"),
		},
	}

	if cfg.Session.Backend != "memory" && cfg.Session.Backend != "redis" {
		return nil, fmt.Errorf("unsupported session backend: %q", cfg.Session.Backend)
	}
	if cfg.Session.Backend == "redis" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("session backend is redis but redis.address is empty")
	}

	return cfg, nil
}
