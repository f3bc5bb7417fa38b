package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session store backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

type Config struct {
	Env string

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Log     LogConfig
	Export  ExportConfig
	Metrics MetricsConfig
}

// APIConfig points the transport client at the backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig selects and parameterises the persisted session store.
type SessionConfig struct {
	Backend string
	File    string
	Secret  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls where result reports are written.
type ExportConfig struct {
	Dir string
}

// MetricsConfig exposes the Prometheus registry when Addr is set.
type MetricsConfig struct {
	Addr string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing .env is fine, the defaults and environment cover it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 30*time.Second),
	}

	cfg.Session = SessionConfig{
		Backend: v.GetString("SESSION_BACKEND"),
		File:    v.GetString("SESSION_FILE"),
		Secret:  v.GetString("SESSION_SECRET"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Dir: v.GetString("EXPORT_DIR"),
	}

	cfg.Metrics = MetricsConfig{
		Addr: v.GetString("METRICS_ADDR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_TIMEOUT", "30s")

	v.SetDefault("SESSION_BACKEND", SessionBackendFile)
	v.SetDefault("SESSION_FILE", ".smarteval/session")
	v.SetDefault("SESSION_SECRET", "dev_session_secret")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("METRICS_ADDR", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
