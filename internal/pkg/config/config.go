package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// PhoneRegion is the default region used to parse national phone numbers.
	PhoneRegion string `env:"PHONE_REGION, default=GH"`

	// ImageDir is where uploaded report images are stored.
	ImageDir string `env:"IMAGE_DIR, default=./data/images"`

	// AssessmentWorkers is the severity-assessment worker pool size.
	AssessmentWorkers int `env:"ASSESSMENT_WORKERS, default=4"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
}

// DashboardConfig holds the settings for the operator dashboard process.
type DashboardConfig struct {
	Port       string `env:"DASHBOARD_PORT, default=3000"`
	APIBaseURL string `env:"API_BASE_URL,   default=http://localhost:8080"`
	TokenPath  string `env:"TOKEN_PATH,     default=./data/token"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agriscan"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
