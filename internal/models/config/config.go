package config

import "time"

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config основной конфиг
type Config struct {
	Environment string
	HTTPPort    string
	Timezone    string
	Store       StoreConfig
	Mongo       MongoConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Bot         BotConfig
	Log         LogConfig
}

type StoreConfig struct {
	Driver string // mongo | postgres | memory
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	AwardTTL time.Duration
}

type BotConfig struct {
	Enabled bool
	Token   string
	Debug   bool
}

type LogConfig struct {
	Level  string
	Format string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location возвращает часовой пояс для "сегодня"
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
