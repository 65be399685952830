package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"villa-backend/utils"
)

const minJWTSecretLength = 32

// LoadEnv reads .env when present. A missing file is not an error.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

type APIConfig struct {
	Port              string
	DSN               string
	JWTSecret         string
	CORSOrigins       []string
	LogLevel          string
	LogFormat         string
	SeedData          bool
	SeedAdminUsername string
	SeedAdminPassword string
}

func LoadAPIConfig() (*APIConfig, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	cfg := &APIConfig{
		Port:              utils.EnvOrDefault("PORT", "8080"),
		DSN:               dsn,
		JWTSecret:         utils.EnvOrDefault("JWT_SECRET", ""),
		CORSOrigins:       ParseCorsOrigins(utils.EnvOrDefault("CORS_ORIGINS", "")),
		LogLevel:          utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         utils.EnvOrDefault("LOG_FORMAT", "json"),
		SeedData:          utils.EnvBool("SEED_DATA", false),
		SeedAdminUsername: utils.EnvOrDefault("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: utils.EnvOrDefault("SEED_ADMIN_PASSWORD", ""),
	}

	if len(cfg.JWTSecret) < minJWTSecretLength {
		return nil, errors.New("JWT_SECRET must be set and at least 32 characters long")
	}
	if cfg.SeedData && cfg.SeedAdminPassword == "" {
		return nil, errors.New("SEED_ADMIN_PASSWORD is required when SEED_DATA=true")
	}
	return cfg, nil
}

// ParseCorsOrigins splits a comma separated list; empty means any origin.
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

type WebConfig struct {
	Port          string
	APIBaseURL    string
	APIVersion    string
	SessionKey    []byte
	CSRFKey       []byte
	CookieSecure  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
	LogFormat     string
	// GeneratedKeys lists the keys that fell back to random dev values.
	GeneratedKeys []string
}

func LoadWebConfig() (*WebConfig, error) {
	cfg := &WebConfig{
		Port:          utils.EnvOrDefault("WEB_PORT", "8081"),
		APIBaseURL:    strings.TrimRight(utils.EnvOrDefault("VILLA_API_URL", "http://localhost:8080"), "/"),
		APIVersion:    utils.EnvOrDefault("API_VERSION", "v1"),
		CookieSecure:  utils.EnvBool("COOKIE_SECURE", false),
		RedisAddr:     utils.EnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: utils.EnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       utils.EnvInt("REDIS_DB", 0),
		LogLevel:      utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     utils.EnvOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.SessionKey, err = loadKey(cfg, "SESSION_KEY"); err != nil {
		return nil, err
	}
	if cfg.CSRFKey, err = loadKey(cfg, "CSRF_KEY"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadKey decodes a base64 key of at least 32 bytes, or generates one for
// development. Generated keys change on every restart.
func loadKey(cfg *WebConfig, name string) ([]byte, error) {
	if raw := utils.EnvOrDefault(name, ""); raw != "" {
		key, err := utils.DecodeKey(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return key, nil
	}
	cfg.GeneratedKeys = append(cfg.GeneratedKeys, name)
	return utils.GenerateSecureKey(32)
}
