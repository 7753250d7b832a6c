package testutil

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jxwalker/pakeshell/internal/state"
)

// FakeHandle is an appdata.Handle rooted in a per-test temporary directory.
type FakeHandle struct {
	Root    string
	Product string
}

// NewFakeHandle returns a handle whose config root is a fresh temp dir.
func NewFakeHandle(t *testing.T, product string) *FakeHandle {
	t.Helper()
	return &FakeHandle{Root: t.TempDir(), Product: product}
}

func (f *FakeHandle) ConfigDir() (string, error) { return f.Root, nil }
func (f *FakeHandle) ProductName() string        { return f.Product }

// BrokenHandle cannot resolve a config root.
type BrokenHandle struct{}

func (BrokenHandle) ConfigDir() (string, error) { return "", errors.New("no config dir on this platform") }
func (BrokenHandle) ProductName() string        { return "broken" }

// TestJournal creates an in-memory SQLite journal for testing
func TestJournal(t *testing.T) *state.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := state.InitSchema(sqlDB); err != nil {
		t.Fatalf("failed to initialize test schema: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return &state.DB{SQL: sqlDB, Path: ":memory:"}
}

// TempFile creates a temporary file with content
func TempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	return path
}
