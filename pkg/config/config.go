package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CalCom       CalComConfig
	Availability AvailabilityConfig
	Bookings     BookingsConfig
	Redis        RedisConfig
	Cache        CacheConfig
	CORS         CORSConfig
	Log          LogConfig
}

// CalComConfig points the upstream client at the booking platform.
type CalComConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// AvailabilityConfig tunes the free-slot calculator.
type AvailabilityConfig struct {
	// TimezoneOffsetMinutes is the fixed UTC offset applied to every
	// computed window boundary. DST-observing locales are out of scope
	// until this becomes a real timezone lookup.
	TimezoneOffsetMinutes int
	MaxRangeDays          int
}

// BookingsConfig toggles the booking forwarding endpoints.
type BookingsConfig struct {
	Enabled bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig governs upstream lookup caching (event types).
type CacheConfig struct {
	Enabled      bool
	EventTypeTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CalCom = CalComConfig{
		BaseURL: strings.TrimRight(v.GetString("CALCOM_BASE_URL"), "/"),
		APIKey:  v.GetString("CALCOM_API_KEY"),
		Timeout: parseDuration(v.GetString("CALCOM_TIMEOUT"), 10*time.Second),
	}

	cfg.Availability = AvailabilityConfig{
		TimezoneOffsetMinutes: v.GetInt("AVAILABILITY_TZ_OFFSET_MINUTES"),
		MaxRangeDays:          v.GetInt("AVAILABILITY_MAX_RANGE_DAYS"),
	}

	cfg.Bookings = BookingsConfig{
		Enabled: v.GetBool("ENABLE_BOOKINGS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled:      v.GetBool("ENABLE_CACHE"),
		EventTypeTTL: parseDuration(v.GetString("EVENT_TYPE_CACHE_TTL"), 10*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("CALCOM_BASE_URL", "https://api.cal.com/v1")
	v.SetDefault("CALCOM_API_KEY", "")
	v.SetDefault("CALCOM_TIMEOUT", "10s")

	// GMT+05:30 mirrors the legacy deployment target.
	v.SetDefault("AVAILABILITY_TZ_OFFSET_MINUTES", 330)
	v.SetDefault("AVAILABILITY_MAX_RANGE_DAYS", 31)

	v.SetDefault("ENABLE_BOOKINGS", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("EVENT_TYPE_CACHE_TTL", "10m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
