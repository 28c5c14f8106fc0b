package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig конфигурация БД
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
}

// Load загружает конфигурацию из окружения (и .env, если он есть)
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	defaultDriver := DriverMemory
	if env == "production" {
		defaultDriver = ""
	}

	cfg := &Config{
		Environment: env,
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Timezone:    getEnv("TIMEZONE", "Asia/Seoul"),
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", defaultDriver)),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "hamcrew"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Username: getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "hamcrew"),
			SSLMode:  getSSLMode(env),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			AwardTTL: time.Duration(getEnvAsInt("AWARD_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Bot: BotConfig{
			Enabled: getEnvAsBool("BOT_ENABLED", false),
			Token:   getEnv("BOT_TOKEN", ""),
			Debug:   getEnvAsBool("BOT_DEBUG", env != "production"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat(env)),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет обязательные параметры
func validate(cfg *Config) error {
	var errors []string

	switch cfg.Store.Driver {
	case DriverMongo:
		if cfg.Mongo.URI == "" {
			errors = append(errors, "MONGO_URI is required for mongo store")
		}
	case DriverPostgres:
		if cfg.Database.Username == "" {
			errors = append(errors, "DB_USER is required for postgres store")
		}
		if cfg.Database.Password == "" && cfg.IsProduction() {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	case DriverMemory:
	case "":
		errors = append(errors, "STORE_DRIVER is required")
	default:
		errors = append(errors, fmt.Sprintf("unknown STORE_DRIVER %q", cfg.Store.Driver))
	}

	if cfg.Bot.Enabled && cfg.Bot.Token == "" {
		errors = append(errors, "BOT_TOKEN is required when BOT_ENABLED")
	}

	if cfg.Redis.AwardTTL <= 0 {
		errors = append(errors, "AWARD_CACHE_TTL_SECONDS must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

// getSSLMode возвращает режим SSL в зависимости от окружения
func getSSLMode(env string) string {
	if env == "production" {
		return "require"
	}
	return "disable"
}

func defaultLogFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "console"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
