// ==============================================================================
// CONFIG PACKAGE - pkg/config/config.go
// ==============================================================================
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "http://auwalk.us-east-2.elasticbeanstalk.com"
	DefaultLoginPath = "/auth/login"
	DefaultJWTSecret = "MinhaChaveSuperSecretaDe32Caracteres!"
)

type Config struct {
	Probe    ProbeConfig
	History  HistoryConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
}

type ProbeConfig struct {
	BaseURL   string        `validate:"required,url"`
	LoginPath string        `validate:"required,startswith=/"`
	Timeout   time.Duration `validate:"gte=0"`
	Valid     CredentialConfig
	Invalid   CredentialConfig
}

type CredentialConfig struct {
	Email string `validate:"required,nonblank"`
	Senha string `validate:"required,nonblank"`
}

// HistoryConfig is disabled when RedisURL is empty. RedisURL may be a bare
// host:port or a redis://, rediss:// or redis+tls:// URL. Password and DB
// override the URL only when set; DB is -1 when unset.
type HistoryConfig struct {
	RedisURL string
	Password string
	DB       int    `validate:"gte=-1"`
	Key      string `validate:"required"`
	Limit    int64  `validate:"gt=0"`
}

type ServerConfig struct {
	Host         string
	Port         string `validate:"required,numeric"`
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type JWTConfig struct {
	Secret     string        `validate:"required,min=32"`
	Expiration time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Probe: ProbeConfig{
			BaseURL:   strings.TrimRight(getEnv("PROBE_BASE_URL", DefaultBaseURL), "/"),
			LoginPath: getEnv("PROBE_LOGIN_PATH", DefaultLoginPath),
			Timeout:   getDurationEnv("PROBE_TIMEOUT", 0),
			Valid: CredentialConfig{
				Email: getEnv("PROBE_VALID_EMAIL", "usuario@exemplo.com"),
				Senha: getEnv("PROBE_VALID_SENHA", "senha123"),
			},
			Invalid: CredentialConfig{
				Email: getEnv("PROBE_INVALID_EMAIL", "bob@email.com"),
				Senha: getEnv("PROBE_INVALID_SENHA", "1234"),
			},
		},
		History: HistoryConfig{
			RedisURL: getEnv("PROBE_HISTORY_REDIS_URL", ""),
			Password: getEnv("PROBE_HISTORY_REDIS_PASSWORD", ""),
			DB:       getIntEnv("PROBE_HISTORY_REDIS_DB", -1),
			Key:      getEnv("PROBE_HISTORY_KEY", "auwalk:probe:history"),
			Limit:    int64(getIntEnv("PROBE_HISTORY_LIMIT", 50)),
		},
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			AutoMigrate:     getBoolEnv("STUB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", DefaultJWTSecret),
			Expiration: getDurationEnv("JWT_EXPIRATION", time.Hour),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}
}

// LoginURL is the full address of the login endpoint.
func (p ProbeConfig) LoginURL() string {
	return p.BaseURL + p.LoginPath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
