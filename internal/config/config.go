package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Tokens    TokensConfig
	Platforms PlatformsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ClientURL    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TokensConfig carries the two signing secrets and lifetimes. Access and refresh
// tokens use distinct secrets so possession of one never lets a client forge
// the other.
type TokensConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// PlatformsConfig holds upstream endpoints for the three judge adapters.
type PlatformsConfig struct {
	LeetCodeGraphQLURL      string
	CodeforcesUserInfoURL   string
	CodeforcesUserRatingURL string
	CodeChefProfileURL      string
	Timeout                 time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
	AuthRPS       float64
	AuthBurst     int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "cphub")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_TTL_MINUTES", 10080)
	viper.SetDefault("LEETCODE_GRAPHQL_URL", "https://leetcode.com/graphql")
	viper.SetDefault("CODEFORCES_USER_INFO_URL", "https://codeforces.com/api/user.info?handles=")
	viper.SetDefault("CODEFORCES_USER_RATING_URL", "https://codeforces.com/api/user.rating?handle=")
	viper.SetDefault("CODECHEF_PROFILE_URL", "https://www.codechef.com/users/")
	viper.SetDefault("PLATFORM_TIMEOUT", 15)
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_RPS", 0.11)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	viper.SetDefault("RATE_LIMIT_AUTH_RPS", 0.006)
	viper.SetDefault("RATE_LIMIT_AUTH_BURST", 5)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ClientURL:    viper.GetString("CLIENT_URL"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Tokens: TokensConfig{
			AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
			RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
			AccessTTL:     time.Duration(viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
			RefreshTTL:    time.Duration(viper.GetInt("REFRESH_TOKEN_TTL_MINUTES")) * time.Minute,
		},
		Platforms: PlatformsConfig{
			LeetCodeGraphQLURL:      viper.GetString("LEETCODE_GRAPHQL_URL"),
			CodeforcesUserInfoURL:   viper.GetString("CODEFORCES_USER_INFO_URL"),
			CodeforcesUserRatingURL: viper.GetString("CODEFORCES_USER_RATING_URL"),
			CodeChefProfileURL:      viper.GetString("CODECHEF_PROFILE_URL"),
			Timeout:                 time.Duration(viper.GetInt("PLATFORM_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			AuthRPS:       viper.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:     viper.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
	}

	// Basic validation
	if cfg.Tokens.AccessSecret == "" || cfg.Tokens.RefreshSecret == "" {
		log.Println("WARNING: ACCESS_TOKEN_SECRET/REFRESH_TOKEN_SECRET not set; set secure values in production")
	}

	return cfg, nil
}
