package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr %q", cfg.HTTPAddr)
	}
	if cfg.InstitutionsPath != "configs/institutions.yaml" {
		t.Fatalf("InstitutionsPath %q", cfg.InstitutionsPath)
	}
	if cfg.FieldThreshold != 85 {
		t.Fatalf("FieldThreshold %v", cfg.FieldThreshold)
	}
	if cfg.CertWeight != 0.4 || cfg.NameWeight != 0.3 || cfg.InstWeight != 0.2 || cfg.YearWeight != 0.1 {
		t.Fatalf("unexpected weight vector %+v", cfg)
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Fatalf("CacheTTL %v", cfg.CacheTTL())
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MATCH_FIELD_THRESHOLD", "90")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr %q", cfg.HTTPAddr)
	}
	if cfg.FieldThreshold != 90 {
		t.Fatalf("FieldThreshold %v", cfg.FieldThreshold)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Fatalf("CacheTTL %v", cfg.CacheTTL())
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr %q", cfg.RedisAddr)
	}
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MATCH_FIELD_THRESHOLD", "not-a-number")
	t.Setenv("REDIS_DB", "-3")

	cfg := FromEnv()
	if cfg.FieldThreshold != 85 {
		t.Fatalf("FieldThreshold %v", cfg.FieldThreshold)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("RedisDB %d", cfg.RedisDB)
	}
}
