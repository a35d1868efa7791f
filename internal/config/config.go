package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string

	StorageBackend string
	StoragePath    string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	CategorySeedPath string

	OCREngine         string
	TesseractBinary   string
	RemoteOCRURL      string
	OCRTimeoutSeconds int

	CompressionLevel int

	MaxUploadBytes       int64
	StorageCapacityBytes int64
	RecentFilesLimit     int

	APIRateLimitRPS    float64
	APIRateLimitBurst  int
	APIMaxConcurrent   int
	BackpressureWaitMS int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		StorageBackend: mustEnv("STORAGE_BACKEND", "local"),
		StoragePath:    mustEnv("STORAGE_PATH", "./data/storage"),

		S3Endpoint:  mustEnv("S3_ENDPOINT", "localhost:9000"),
		S3Region:    mustEnv("S3_REGION", "us-east-1"),
		S3Bucket:    mustEnv("S3_BUCKET", "cosmicstack"),
		S3AccessKey: mustEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: mustEnv("S3_SECRET_KEY", ""),
		S3UseSSL:    mustEnvBool("S3_USE_SSL", false),

		CategorySeedPath: mustEnv("CATEGORY_SEED_PATH", ""),

		OCREngine:         mustEnv("OCR_ENGINE", "tesseract"),
		TesseractBinary:   mustEnv("TESSERACT_BINARY", "tesseract"),
		RemoteOCRURL:      mustEnv("REMOTE_OCR_URL", "http://localhost:8884"),
		OCRTimeoutSeconds: mustEnvInt("OCR_TIMEOUT_SECONDS", 30),

		CompressionLevel: mustEnvInt("COMPRESSION_LEVEL", 6),

		MaxUploadBytes:       mustEnvInt64("MAX_UPLOAD_BYTES", 64<<20),
		StorageCapacityBytes: mustEnvInt64("STORAGE_CAPACITY_BYTES", 100<<30),
		RecentFilesLimit:     mustEnvInt("RECENT_FILES_LIMIT", 6),

		APIRateLimitRPS:    mustEnvFloat("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst:  mustEnvInt("API_RATE_LIMIT_BURST", 0),
		APIMaxConcurrent:   mustEnvInt("API_MAX_CONCURRENT", 0),
		BackpressureWaitMS: mustEnvInt("BACKPRESSURE_WAIT_MS", 100),
	}
}

// OCRTimeout converts the configured seconds into a duration.
func (c Config) OCRTimeout() time.Duration {
	return time.Duration(c.OCRTimeoutSeconds) * time.Second
}

func (c Config) BackpressureWait() time.Duration {
	return time.Duration(c.BackpressureWaitMS) * time.Millisecond
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
