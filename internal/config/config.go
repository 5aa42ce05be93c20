package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTProfile is the token configuration of one audience.
type JWTProfile struct {
	Audience    string
	Secret      string
	TTL         time.Duration
	TokenHeader string
}

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	AdminJWT                JWTProfile
	// UserJWT is reserved for the customer-facing audience. This server only
	// issues admin tokens; its header is still allowed through CORS.
	UserJWT                 JWTProfile
	PasswordHash            string
	DefaultPassword         string
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int
	TokenCleanupInterval    time.Duration
	LogLevel                string
	LogFormat               string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		AdminJWT: JWTProfile{
			Audience:    "admin",
			Secret:      strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")),
			TTL:         getDuration("ADMIN_JWT_TTL", 2*time.Hour),
			TokenHeader: getEnv("ADMIN_TOKEN_HEADER", "token"),
		},
		UserJWT: JWTProfile{
			Audience:    "user",
			Secret:      strings.TrimSpace(os.Getenv("USER_JWT_SECRET")),
			TTL:         getDuration("USER_JWT_TTL", 2*time.Hour),
			TokenHeader: getEnv("USER_TOKEN_HEADER", "authentication"),
		},
		PasswordHash:         strings.ToLower(getEnv("PASSWORD_HASH", "md5")),
		DefaultPassword:      getEnv("DEFAULT_PASSWORD", "123456"),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:         getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:     getInt("AUTH_RATE_LIMIT_RPM", 20),
		TokenCleanupInterval: getDuration("TOKEN_CLEANUP_INTERVAL", 10*time.Minute),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS/DB_MAX_CONNS are out of range")
	}

	if err := c.AdminJWT.validate("ADMIN"); err != nil {
		return err
	}

	// The user audience is optional until a route consumes it.
	if c.UserJWT.Secret != "" {
		if err := c.UserJWT.validate("USER"); err != nil {
			return err
		}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.PasswordHash != "md5" && c.PasswordHash != "bcrypt" {
		return fmt.Errorf("PASSWORD_HASH must be md5 or bcrypt")
	}

	if strings.TrimSpace(c.DefaultPassword) == "" {
		return fmt.Errorf("DEFAULT_PASSWORD cannot be empty")
	}

	if c.TokenCleanupInterval <= 0 {
		return fmt.Errorf("TOKEN_CLEANUP_INTERVAL must be positive")
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}

	return nil
}

func (p JWTProfile) validate(prefix string) error {
	if strings.TrimSpace(p.Secret) == "" {
		return fmt.Errorf("%s_JWT_SECRET is required", prefix)
	}

	if p.TTL <= 0 {
		return fmt.Errorf("%s_JWT_TTL must be positive", prefix)
	}

	if strings.TrimSpace(p.TokenHeader) == "" {
		return fmt.Errorf("%s_TOKEN_HEADER cannot be empty", prefix)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
