package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	BackendFitz    = "fitz"
	BackendPoppler = "poppler"

	MinHistoryTTL = time.Minute
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Secure    bool
}

// Enabled: зеркалирование в S3 включается только при заданных endpoint и bucket
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type Config struct {
	Port            string
	MaxUpload       int64
	RenderBackend   string
	RenderDPI       int
	JPEGQuality     int
	RateLimitPerMin int
	HistoryTTL      time.Duration

	S3 S3Config

	TelegramToken string
	AdminChatID   int64
}

// Load читает .env (если есть), потом переменные окружения
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		RenderBackend: strings.ToLower(getEnv("RENDER_BACKEND", BackendFitz)),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
	}

	maxUpload, err := humanize.ParseBytes(getEnv("MAX_UPLOAD", "32MB"))
	if err != nil {
		return Config{}, fmt.Errorf("MAX_UPLOAD: %w", err)
	}
	if maxUpload == 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD must be positive")
	}
	cfg.MaxUpload = int64(maxUpload)

	if cfg.RenderDPI, err = getInt("RENDER_DPI", 200); err != nil {
		return Config{}, err
	}
	if cfg.JPEGQuality, err = getInt("JPEG_QUALITY", 75); err != nil {
		return Config{}, err
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return Config{}, fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", cfg.JPEGQuality)
	}
	if cfg.RateLimitPerMin, err = getInt("RATE_LIMIT_PER_MIN", 60); err != nil {
		return Config{}, err
	}

	if cfg.HistoryTTL, err = time.ParseDuration(getEnv("HISTORY_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("HISTORY_TTL: %w", err)
	}
	// 0 выключает чистку; иначе не меньше минуты, тикер чистки = TTL/4
	if cfg.HistoryTTL != 0 && cfg.HistoryTTL < MinHistoryTTL {
		return Config{}, fmt.Errorf("HISTORY_TTL must be 0 or at least %s, got %s", MinHistoryTTL, cfg.HistoryTTL)
	}

	switch cfg.RenderBackend {
	case BackendFitz, BackendPoppler:
	default:
		return Config{}, fmt.Errorf("RENDER_BACKEND must be %q or %q, got %q", BackendFitz, BackendPoppler, cfg.RenderBackend)
	}

	if v := os.Getenv("S3_SECURE"); v != "" {
		if cfg.S3.Secure, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("S3_SECURE: %w", err)
		}
	} else {
		cfg.S3.Secure = true
	}

	if v := os.Getenv("ADMIN_CHAT_ID"); v != "" {
		if cfg.AdminChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("ADMIN_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
