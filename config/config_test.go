package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Port != "8080" || cfg.EventsFile != "./events.json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.DSN() != "./kalma.db" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Session.Secret != DevSessionSecret || cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Cache.Type != "memory" {
		t.Fatalf("unexpected cache default: %+v", cfg.Cache)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EVENTS_FILE", "data/events.json")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "planner")
	t.Setenv("DB_USER", "kalma")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SESSION_SECRET", "top-secret")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SECURE_COOKIES", "yes")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_RATE_RPS", "1.5")
	t.Setenv("AUTH_RATE_BURST", "4")

	cfg := FromEnv(Default())
	if cfg.Port != "9090" || cfg.EventsFile != "data/events.json" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Database.Driver != DriverMySQL || cfg.Database.Host != "db.internal" {
		t.Fatalf("unexpected database overrides: %+v", cfg.Database)
	}
	if cfg.Session.Secret != "top-secret" || cfg.Session.TTL != 2*time.Hour || !cfg.Session.SecureCookies {
		t.Fatalf("unexpected session overrides: %+v", cfg.Session)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.RedisDB != 3 {
		t.Fatalf("unexpected cache overrides: %+v", cfg.Cache)
	}
	if cfg.RateLimit.RPS != 1.5 || cfg.RateLimit.Burst != 4 {
		t.Fatalf("unexpected rate limit overrides: %+v", cfg.RateLimit)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "soon")
	t.Setenv("SECURE_COOKIES", "maybe")
	t.Setenv("AUTH_RATE_BURST", "-1")

	cfg := FromEnv(Default())
	if cfg.Session.TTL != 24*time.Hour || cfg.Session.SecureCookies || cfg.RateLimit.Burst != 10 {
		t.Fatalf("garbage values should keep defaults: %+v", cfg)
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		db   Database
		want []string
	}{
		{
			name: "mysql default port",
			db:   Database{Driver: DriverMySQL, Host: "localhost", Name: "kalma", User: "root", Password: "pw"},
			want: []string{"root:pw@tcp(localhost:3306)/kalma", "parseTime=true"},
		},
		{
			name: "postgres default port",
			db:   Database{Driver: DriverPostgres, Host: "pg", Name: "kalma", User: "app", Password: "pw"},
			want: []string{"postgres://app:pw@pg:5432/kalma", "sslmode=disable"},
		},
		{
			name: "explicit port",
			db:   Database{Driver: DriverPostgres, Host: "pg", Port: "6543", Name: "kalma", User: "app"},
			want: []string{"pg:6543"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.db.DSN()
			for _, part := range tt.want {
				if !strings.Contains(dsn, part) {
					t.Fatalf("dsn %q missing %q", dsn, part)
				}
			}
		})
	}
}
