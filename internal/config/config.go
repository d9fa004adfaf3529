package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
)

var supportedLocales = []string{"ko", "en", "ja", "zh"}

type Config struct {
	Iris     IrisConfig
	Kakao    KakaoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Photo    PhotoConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Bot      BotConfig
}

type IrisConfig struct {
	BaseURL string
	WSURL   string
}

type KakaoConfig struct {
	Rooms []string
}

// RedisConfig is optional. An empty Host keeps the photo URL cache in memory only.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// PostgresConfig is optional. An empty Host serves recommendations from the
// embedded dataset.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

type PhotoConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Concurrency int
}

type MetricsConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

type BotConfig struct {
	Prefix        string
	DefaultLocale string
	// WaitForPhotos delays the recommendation reply until every card photo has
	// loaded or fallen back.
	WaitForPhotos bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Iris: IrisConfig{
			BaseURL: getEnv("IRIS_BASE_URL", "http://localhost:3000"),
			WSURL:   getEnv("IRIS_WS_URL", "ws://localhost:3000/ws"),
		},
		Kakao: KakaoConfig{
			Rooms: parseCommaSeparated(getEnv("KAKAO_ROOMS", "부산여행방")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "busan_user"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "busan_tour_db"),
		},
		Photo: PhotoConfig{
			BaseURL:     getEnv("PHOTO_BASE_URL", constants.PhotoSource.BaseURL),
			Timeout:     getEnvDuration("PHOTO_LOAD_TIMEOUT", constants.ImageLoad.Timeout),
			Concurrency: getEnvInt("RENDER_CONCURRENCY", constants.Render.Concurrency),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", "logs/bot.log"),
		},
		Bot: BotConfig{
			Prefix:        getEnv("BOT_PREFIX", "!"),
			DefaultLocale: strings.ToLower(getEnv("BOT_DEFAULT_LOCALE", "ko")),
			WaitForPhotos: getEnvBool("BOT_WAIT_FOR_PHOTOS", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Iris.BaseURL == "" {
		return fmt.Errorf("IRIS_BASE_URL is required")
	}
	if c.Iris.WSURL == "" {
		return fmt.Errorf("IRIS_WS_URL is required")
	}
	if len(c.Kakao.Rooms) == 0 {
		return fmt.Errorf("KAKAO_ROOMS is required")
	}
	if c.Photo.BaseURL == "" {
		return fmt.Errorf("PHOTO_BASE_URL must not be empty")
	}
	if c.Photo.Timeout <= 0 {
		return fmt.Errorf("PHOTO_LOAD_TIMEOUT must be positive, got %s", c.Photo.Timeout)
	}
	if c.Photo.Concurrency <= 0 {
		return fmt.Errorf("RENDER_CONCURRENCY must be positive, got %d", c.Photo.Concurrency)
	}
	if !isSupportedLocale(c.Bot.DefaultLocale) {
		return fmt.Errorf("BOT_DEFAULT_LOCALE %q is not supported (use one of %s)",
			c.Bot.DefaultLocale, strings.Join(supportedLocales, ", "))
	}
	return nil
}

// IsRoomAllowed reports whether the bot should answer in the given room.
func (c *Config) IsRoomAllowed(room string) bool {
	for _, r := range c.Kakao.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

func isSupportedLocale(locale string) bool {
	for _, l := range supportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("8s", "1500ms") or a bare number
// of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
