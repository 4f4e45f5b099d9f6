package state

import (
	"path/filepath"
	"testing"
)

func TestStateManagerPersistsAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "processed.json")

	m, err := NewFileStateManager(path)
	if err != nil {
		t.Fatalf("NewFileStateManager: %v", err)
	}
	if m.IsProcessed("8004030105096") {
		t.Error("fresh state reports barcode as processed")
	}

	if err := m.MarkProcessed("8004030105096"); err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	if !m.IsProcessed("8004030105096") {
		t.Error("barcode not marked after MarkProcessed")
	}

	reloaded, err := NewFileStateManager(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsProcessed("8004030105096") {
		t.Error("barcode lost after reload")
	}
	if reloaded.IsProcessed("1234567890123") {
		t.Error("unknown barcode reported as processed")
	}
}
