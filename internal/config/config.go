package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Shortener  `yaml:"shortener"`
	Tracker    `yaml:"tracker"`
	Cache      `yaml:"cache"`
	Enrichment `yaml:"enrichment"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Port               string        `yaml:"port" env:"PORT" env-default:"8080"`
	BaseURL            string        `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"RATE_LIMIT" env-default:"100"`
}

// Storage holds SQLite settings.
type Storage struct {
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH" env-default:"data/shortlink.db"`
}

// Shortener holds code generation settings.
type Shortener struct {
	CodeLength  int `yaml:"code_length" env:"CODE_LENGTH" env-default:"7"`
	MaxAttempts int `yaml:"max_attempts" env:"CODE_MAX_ATTEMPTS" env-default:"5"`
}

// Tracker holds click pipeline consumer settings.
type Tracker struct {
	BatchSize    int           `yaml:"batch_size" env:"TRACKER_BATCH_SIZE" env-default:"25"`
	BatchTimeout time.Duration `yaml:"batch_timeout" env:"TRACKER_BATCH_TIMEOUT" env-default:"500ms"`
	BatchBudget  time.Duration `yaml:"batch_budget" env:"TRACKER_BATCH_BUDGET" env-default:"30s"`
}

// Cache holds optional Redis settings. Empty address disables caching.
type Cache struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:""`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD" env-default:""`
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"10m"`
}

// Enrichment holds optional GeoIP settings. Missing database disables
// country resolution.
type Enrichment struct {
	GeoIPDBPath string `yaml:"geoip_db_path" env:"GEOIP_DB_PATH" env-default:""`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml"
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}
