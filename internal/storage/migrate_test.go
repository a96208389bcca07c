package storage

import (
	"path/filepath"
	"testing"
)

func TestMigrationManagerUpAndVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration-test.db")

	mgr, err := NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create migration manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if err := mgr.Up(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Up again is a no-op, not an error.
	if err := mgr.Up(); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		t.Fatalf("Failed to get migration version: %v", err)
	}
	if dirty {
		t.Error("Database is in dirty state after migrations")
	}
	// binders + binder_templates migrations.
	if version != 2 {
		t.Errorf("Expected migration version 2, got %d", version)
	}
}

func TestMigrationManagerDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration-down-test.db")

	mgr, err := NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create migration manager: %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if err := mgr.Up(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	if err := mgr.Down(); err != nil {
		t.Fatalf("Failed to roll back migrations: %v", err)
	}

	version, dirty, err := mgr.Version()
	if err != nil {
		t.Fatalf("Failed to get migration version: %v", err)
	}
	if dirty {
		t.Error("Database is in dirty state after rollback")
	}
	if version != 0 {
		t.Errorf("Expected version 0 after full rollback, got %d", version)
	}
}
