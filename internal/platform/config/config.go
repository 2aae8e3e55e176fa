package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	APIPort     string
	Environment string

	// Access and refresh tokens are signed with independent secrets so a
	// leaked access secret cannot mint refresh tokens, and vice versa.
	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit       int
	AuthRateLimitWindow time.Duration
}

// Load reads configuration from the environment (and a .env file if present)
// and returns it as an explicit value. Core packages receive this at
// construction time; nothing reads the environment after startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:     getEnv("API_PORT", "8080"),
		Environment: getEnv("APP_ENV", EnvDevelopment),

		JWTAccessSecret:  []byte(getEnv("JWT_ACCESS_SECRET", "")),
		JWTRefreshSecret: []byte(getEnv("JWT_REFRESH_SECRET", "")),
		AccessTokenTTL:   time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_SECONDS", 900)) * time.Second,
		RefreshTokenTTL:  time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_SECONDS", 604800)) * time.Second,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "community_hub_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		AuthRateLimit:       getEnvAsInt("AUTH_RATE_LIMIT", 10),
		AuthRateLimitWindow: time.Duration(getEnvAsInt("AUTH_RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}

	if len(cfg.JWTAccessSecret) == 0 || len(cfg.JWTRefreshSecret) == 0 {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if string(cfg.JWTAccessSecret) == string(cfg.JWTRefreshSecret) {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode. The
// refresh cookie drops its Secure attribute only in this mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
