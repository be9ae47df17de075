package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Chat       ChatConfig
	Ranking    RankingConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, wins over the parts below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// ChatConfig holds chat endpoint configuration
type ChatConfig struct {
	MaxResults    int     // listing summaries returned per reply
	CacheSize     int     // refinement LRU entries
	CacheTTLSec   int     // refinement LRU entry lifetime
	RateLimitRPS  float64 // token bucket refill rate
	RateLimitBurst int
}

// RankingConfig holds ranking weights configuration
type RankingConfig struct {
	WeightPrice   float64
	WeightRecency float64
	WeightMatch   float64
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds the LLM provider configuration
type OpenAIConfig struct {
	APIKey              string
	APIBase             string
	ChatModel           string
	ChatTemperature     float64
	ChatMaxTokens       int
	EmbeddingModel      string
	EmbeddingDimensions int
	TimeoutSeconds      int
	MaxRetries          int
	Enabled             bool
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                v.GetString("DATABASE_URL"),
			Host:               v.GetString("PG_HOST"),
			Port:               v.GetInt("PG_PORT"),
			User:               v.GetString("PG_USER"),
			Password:           v.GetString("PG_PASSWORD"),
			Database:           v.GetString("PG_DATABASE"),
			SSLMode:            v.GetString("PG_SSLMODE"),
			MaxConnections:     v.GetInt("PG_MAX_CONNECTIONS"),
			MaxIdleConnections: v.GetInt("PG_MAX_IDLE_CONNECTIONS"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			GinMode:        v.GetString("GIN_MODE"),
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Chat: ChatConfig{
			MaxResults:     v.GetInt("CHAT_MAX_RESULTS"),
			CacheSize:      v.GetInt("CHAT_CACHE_SIZE"),
			CacheTTLSec:    v.GetInt("CHAT_CACHE_TTL_SECONDS"),
			RateLimitRPS:   v.GetFloat64("CHAT_RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("CHAT_RATE_LIMIT_BURST"),
		},
		Ranking: RankingConfig{
			WeightPrice:   v.GetFloat64("RANK_WEIGHT_PRICE"),
			WeightRecency: v.GetFloat64("RANK_WEIGHT_RECENCY"),
			WeightMatch:   v.GetFloat64("RANK_WEIGHT_MATCH"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		OpenAI: OpenAIConfig{
			APIKey:              v.GetString("OPENAI_API_KEY"),
			APIBase:             v.GetString("OPENAI_API_BASE"),
			ChatModel:           v.GetString("OPENAI_CHAT_MODEL"),
			ChatTemperature:     v.GetFloat64("OPENAI_CHAT_TEMPERATURE"),
			ChatMaxTokens:       v.GetInt("OPENAI_CHAT_MAX_TOKENS"),
			EmbeddingModel:      v.GetString("OPENAI_EMBEDDING_MODEL"),
			EmbeddingDimensions: v.GetInt("OPENAI_EMBEDDING_DIMENSIONS"),
			TimeoutSeconds:      v.GetInt("OPENAI_TIMEOUT"),
			MaxRetries:          v.GetInt("OPENAI_MAX_RETRIES"),
			Enabled:             v.GetString("OPENAI_API_KEY") != "",
		},
	}

	if cfg.Chat.MaxResults < 1 {
		return nil, fmt.Errorf("CHAT_MAX_RESULTS must be at least 1")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PG_HOST", "localhost")
	v.SetDefault("PG_PORT", 5432)
	v.SetDefault("PG_USER", "postgres")
	v.SetDefault("PG_PASSWORD", "")
	v.SetDefault("PG_DATABASE", "home254")
	v.SetDefault("PG_SSLMODE", "disable")
	v.SetDefault("PG_MAX_CONNECTIONS", 25)
	v.SetDefault("PG_MAX_IDLE_CONNECTIONS", 5)

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("CHAT_MAX_RESULTS", 5)
	v.SetDefault("CHAT_CACHE_SIZE", 256)
	v.SetDefault("CHAT_CACHE_TTL_SECONDS", 300)
	v.SetDefault("CHAT_RATE_LIMIT_RPS", 2.0)
	v.SetDefault("CHAT_RATE_LIMIT_BURST", 5)

	v.SetDefault("RANK_WEIGHT_PRICE", 0.4)
	v.SetDefault("RANK_WEIGHT_RECENCY", 0.3)
	v.SetDefault("RANK_WEIGHT_MATCH", 0.3)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_CHAT_TEMPERATURE", 0.2)
	v.SetDefault("OPENAI_CHAT_MAX_TOKENS", 1024)
	v.SetDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	v.SetDefault("OPENAI_EMBEDDING_DIMENSIONS", 1536)
	v.SetDefault("OPENAI_TIMEOUT", 5)
	v.SetDefault("OPENAI_MAX_RETRIES", 1)
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}
