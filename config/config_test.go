package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Server.Port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("JWT.Expiration = %v, want 24h", cfg.JWT.Expiration)
	}
	if cfg.Authz.SuperAdminRole != "Super Admin" || cfg.Authz.DefaultRole != "Student" {
		t.Errorf("unexpected authz defaults: %+v", cfg.Authz)
	}
	if cfg.Cache.Enabled {
		t.Error("cache must be disabled by default")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want postgres", cfg.Database.Driver)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("AUTHZ_SUPER_ADMIN_ROLE", "Root")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("PASSWORD_MIN_LENGTH", "12")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.JWT.Secret != "s3cret" || cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("unexpected JWT config: %+v", cfg.JWT)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Authz.SuperAdminRole != "Root" {
		t.Errorf("Authz.SuperAdminRole = %q, want Root", cfg.Authz.SuperAdminRole)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != time.Minute {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Password.MinLength != 12 {
		t.Errorf("Password.MinLength = %d, want 12", cfg.Password.MinLength)
	}
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "forever")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on an invalid duration")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "kids", SSLMode: "require"}
	want := "host=db user=u password=p dbname=kids port=5433 sslmode=require"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
