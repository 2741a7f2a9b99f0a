package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration (MySQL, feed items)
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (GridFS, generated media assets)
	MongoDB MongoDBConfig `json:"mongodb"`

	// Video pipeline configuration
	Video VideoConfig `json:"video"`

	// Analysis / AI endpoint configuration
	Analysis AnalysisConfig `json:"analysis"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	FeedServicePort  string `json:"feed_service_port"`
	MediaServicePort string `json:"media_service_port"`
	MediaBaseURL     string `json:"media_base_url"`
	Environment      string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoDBConfig contains MongoDB/GridFS configuration
type MongoDBConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// VideoConfig contains video generation pipeline configuration
type VideoConfig struct {
	TempDir         string `json:"temp_dir"`          // scratch space for intermediate audio
	StageTimeoutSec int    `json:"stage_timeout_sec"` // per-stage budget; a timeout fails the attempt
	WordsPerSecond  int    `json:"words_per_second"`  // narration pacing for duration estimates
}

// AnalysisConfig bounds the text analysis endpoints
type AnalysisConfig struct {
	CheckRatePerMinute int `json:"check_rate_per_minute"` // realtime check budget per actor
	CheckBurst         int `json:"check_burst"`
}

// LoadConfig builds the configuration from environment variables with
// development defaults. Call godotenv.Load() in main before this.
func LoadConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			FeedServicePort:  getEnvOrDefault("FEED_SERVICE_PORT", "7002"),
			MediaServicePort: getEnvOrDefault("MEDIA_SERVICE_PORT", "8080"),
			Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "edufeed"),
			Password:     getEnvOrDefault("DB_PASSWORD", "edufeed123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "edufeed"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USER", "admin"),
			Password: getEnvOrDefault("MONGO_PASSWORD", "admin123"),
			Database: getEnvOrDefault("MONGO_DB", "edufeed"),
		},
		Video: VideoConfig{
			TempDir:         getEnvOrDefault("VIDEO_TEMP_DIR", os.TempDir()),
			StageTimeoutSec: getEnvIntOrDefault("VIDEO_STAGE_TIMEOUT_SEC", 120),
			WordsPerSecond:  getEnvIntOrDefault("VIDEO_WORDS_PER_SECOND", 3),
		},
		Analysis: AnalysisConfig{
			CheckRatePerMinute: getEnvIntOrDefault("AI_CHECK_RATE_PER_MINUTE", 60),
			CheckBurst:         getEnvIntOrDefault("AI_CHECK_BURST", 10),
		},
	}

	cfg.Server.MediaBaseURL = getEnvOrDefault(
		"MEDIA_BASE_URL",
		fmt.Sprintf("http://localhost:%s/media", cfg.Server.MediaServicePort),
	)

	return cfg
}

// DSN builds the MySQL connection string
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// GetMongoURI builds the MongoDB connection string
func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
