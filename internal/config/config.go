package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	InstitutionsPath string
	AssetsDir        string
	PolicyBundlePath string

	TesseractLang string

	FieldThreshold float64
	CertWeight     float64
	NameWeight     float64
	InstWeight     float64
	YearWeight     float64

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:         addr,
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		LogLevel:         envDefault("LOG_LEVEL", "info"),
		InstitutionsPath: envDefault("INSTITUTIONS_PATH", "configs/institutions.yaml"),
		AssetsDir:        envDefault("ASSETS_DIR", "assets"),
		PolicyBundlePath: os.Getenv("POLICY_BUNDLE_PATH"),
		TesseractLang:    envDefault("TESSERACT_LANG", "eng"),
		FieldThreshold:   envFloatDefault("MATCH_FIELD_THRESHOLD", 85),
		CertWeight:       envFloatDefault("MATCH_CERT_WEIGHT", 0.4),
		NameWeight:       envFloatDefault("MATCH_NAME_WEIGHT", 0.3),
		InstWeight:       envFloatDefault("MATCH_INST_WEIGHT", 0.2),
		YearWeight:       envFloatDefault("MATCH_YEAR_WEIGHT", 0.1),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envIntDefault("REDIS_DB", 0),
		CacheTTLSeconds:  envIntDefault("CACHE_TTL_SECONDS", 300),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func envFloatDefault(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
