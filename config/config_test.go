package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected default driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Session.InitialSnapshotWait != 3*time.Second {
		t.Errorf("expected default snapshot wait 3s, got %s", cfg.Session.InitialSnapshotWait)
	}
	if cfg.Session.IdleTimeout != 12*time.Hour {
		t.Errorf("expected default idle timeout 12h, got %s", cfg.Session.IdleTimeout)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("expected login rate limit to be enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_INITIAL_SNAPSHOT_WAIT", "250ms")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("LOGIN_RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected driver to be lower-cased to sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Session.InitialSnapshotWait != 250*time.Millisecond {
		t.Errorf("expected snapshot wait 250ms, got %s", cfg.Session.InitialSnapshotWait)
	}
	if cfg.Session.IdleTimeout != 30*time.Minute {
		t.Errorf("expected idle timeout 30m, got %s", cfg.Session.IdleTimeout)
	}
	if cfg.RateLimit.Enabled {
		t.Error("expected login rate limit to be disabled")
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected invalid REDIS_DB to fall back to 0, got %d", cfg.Redis.DB)
	}
}

func TestSessionConfig_Location(t *testing.T) {
	t.Run("unknown timezone falls back to UTC", func(t *testing.T) {
		loc := SessionConfig{Timezone: "Mars/Olympus_Mons"}.Location()
		if loc != time.UTC {
			t.Errorf("expected UTC, got %s", loc)
		}
	})

	t.Run("UTC resolves", func(t *testing.T) {
		loc := SessionConfig{Timezone: "UTC"}.Location()
		if loc.String() != "UTC" {
			t.Errorf("expected UTC, got %s", loc)
		}
	})
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}

	for name, expected := range tests {
		if got := (LogConfig{Level: name}).SlogLevel(); got != expected {
			t.Errorf("level %q: expected %s, got %s", name, expected, got)
		}
	}
}
