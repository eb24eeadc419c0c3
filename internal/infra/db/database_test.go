package db

import (
	"context"
	"testing"
	"time"

	"github.com/finance-tracker/tracker/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver:          DriverSQLite,
		URL:             "file::memory:",
		MaxOpenConns:    10,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	for _, table := range []string{"users", "revoked_tokens", "transactions", "goals"} {
		if !database.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if !database.HealthCheck(context.Background()) {
		t.Error("expected healthy database")
	}
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	if _, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
