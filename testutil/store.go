// Package testutil provides shared helpers for tests that exercise the
// persistence layer against a real bbolt file instead of the in-memory KV.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ahmedmasbah72/gestion-parking/internal/store"
)

// NewBoltKV opens a bbolt store in a fresh temporary directory.
// The file is removed with the test's temp dir and the store is closed
// automatically when the test (and all its subtests) finish.
func NewBoltKV(t *testing.T) *store.BoltKV {
	t.Helper()

	kv, err := store.OpenBolt(filepath.Join(t.TempDir(), "parking.db"))
	if err != nil {
		t.Fatalf("testutil.NewBoltKV: open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// DiscardLogger returns a logger that drops everything. Store and service
// constructors require a logger; tests that assert on behaviour rather than
// log output use this.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
