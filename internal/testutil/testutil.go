// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"spamlab/internal/config"
	"spamlab/internal/db"
)

// TestDB creates a test database connection and returns a cleanup function.
// Tests calling it are skipped unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM kv_store")
		database.Close()
	}

	return database, cleanup
}

// TestConfig returns a config suitable for handler tests: in-memory counter,
// no contact delay, no SMTP, metrics off.
func TestConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		ServerAddr:         ":0",
		BaseURL:            "http://localhost:3000",
		SessionSecret:      "test-session-secret",
		CORSOrigins:        "http://localhost:3000",
		LogLevel:           "error",
		LogFormat:          "console",
		CounterBackend:     config.BackendMemory,
		SMTPPort:           587,
		SMTPTLS:            "starttls",
		SpamTickerStart:    107493221,
		SpamTickerInterval: time.Second,
		SiteTitle:          "Spam Lab",
		SiteTagline:        "Spam or ham? Learn how filters decide.",
	}
}
