package config

import (
	"testing"
	"time"
)

func TestLoadMemoryStorageSkipsDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("AMQP_URL", "")

	cfg := Load()
	if cfg.Storage != StorageMemory {
		t.Fatalf("Storage = %q", cfg.Storage)
	}
	if cfg.DBHost != "" || cfg.JWTSecret != "" {
		t.Fatalf("database settings loaded in memory mode: %+v", cfg)
	}
	if cfg.Events.Enabled() {
		t.Fatal("events enabled without AMQP_URL")
	}
}

func TestLoadMySQL(t *testing.T) {
	for k, v := range map[string]string{
		"APP_ENV": "prod", "APP_PORT": "9000", "STORAGE": "",
		"DB_USER": "app", "DB_PASS": "", "DB_HOST": "db", "DB_PORT": "3306", "DB_NAME": "restaurant",
		"DB_AUTO_MIGRATE": "yes", "JWT_SECRET": "s3cret",
		"ACCESS_TOKEN_TTL_MIN": "15", "REFRESH_TOKEN_TTL_DAYS": "7", "BCRYPT_COST": "10",
		"AMQP_URL": "amqp://guest:guest@mq:5672/", "AMQP_QUEUE": "",
	} {
		t.Setenv(k, v)
	}
	cfg := Load()
	if cfg.Storage != StorageMySQL || cfg.DBHost != "db" || !cfg.AutoMigrate {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.AccessTTLMin != 15 || cfg.RefreshTTLDays != 7 || cfg.BcryptCost != 10 {
		t.Fatalf("ints = %+v", cfg)
	}
	if !cfg.Events.Enabled() || cfg.Events.Queue != "reservation.events" || cfg.Events.LogPath != "logs/reservations.log" {
		t.Fatalf("events = %+v", cfg.Events)
	}
}

func TestRateLimitNormalize(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	cfg := LoadRateLimitConfig()
	if cfg.Enabled {
		t.Fatal("expected disabled")
	}
	if cfg.Capacity != 1 || cfg.RefillTokens != 1 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TTL != 10*time.Second {
		t.Fatalf("TTL = %s, want 10s", cfg.TTL)
	}
}

func TestCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head,")
	t.Setenv("CACHE_TTL", "nonsense")
	cfg := LoadCacheConfig()
	if !cfg.Enabled || !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || len(cfg.Methods) != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TTL != 5*time.Minute {
		t.Fatalf("TTL = %s", cfg.TTL)
	}
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")
	opts := RedisOptions()
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.TLSConfig == nil || opts.TLSConfig.ServerName != "cache" {
		t.Fatalf("opts = %+v", opts)
	}

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	if got := RedisOptions().Addr; got != "redis:6379" {
		t.Fatalf("Addr = %q", got)
	}
}
