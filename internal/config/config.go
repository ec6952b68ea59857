package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret es el secreto de respaldo para desarrollo. Nunca sirve en producción.
const DevJWTSecret = "dev-secret-change-in-production"

const envProduction = "production"

var ErrProductionSecret = errors.New("JWT_SECRET must be set in production environment")

// Config se resuelve una sola vez al arrancar y se pasa a cada servicio.
type Config struct {
	Port string
	Env  string

	// DatabaseURL vacío => store in-memory (modo dev).
	DatabaseURL string

	JWTSecret  string
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	ListCacheTTL  time.Duration

	AMQPURL string

	// CORSOrigins vacío => sin CORS (solo mismo origen).
	CORSOrigins []string
	PageSize    int

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee .env (si existe) y luego variables de entorno con defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", DevJWTSecret),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		ListCacheTTL:  getEnvDuration("LIST_CACHE_TTL", time.Minute),
		AMQPURL:       getEnv("AMQP_URL", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "")),
		PageSize:      getEnvInt("PAGE_SIZE", 16),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		AppName:       getEnv("APP_NAME", "softpet"),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), envProduction)
}

// Validate exige un secreto real en producción.
func (c Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == DevJWTSecret {
		return ErrProductionSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
