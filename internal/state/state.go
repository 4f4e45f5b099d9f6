// Package state tracks which barcodes an extraction run has already
// processed, so interrupted runs resume where they stopped.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type StateManager interface {
	IsProcessed(barcode string) bool
	MarkProcessed(barcode string) error
}

type fileStateManager struct {
	path      string
	processed map[string]bool
}

// NewFileStateManager loads progress from path, starting empty when the file
// does not exist yet.
func NewFileStateManager(path string) (StateManager, error) {
	m := &fileStateManager{
		path:      path,
		processed: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var barcodes []string
	if err := json.Unmarshal(data, &barcodes); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	for _, b := range barcodes {
		m.processed[b] = true
	}

	return m, nil
}

func (m *fileStateManager) IsProcessed(barcode string) bool {
	return m.processed[barcode]
}

func (m *fileStateManager) MarkProcessed(barcode string) error {
	m.processed[barcode] = true

	barcodes := make([]string, 0, len(m.processed))
	for b := range m.processed {
		barcodes = append(barcodes, b)
	}
	sort.Strings(barcodes)

	data, err := json.MarshalIndent(barcodes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state dir: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", m.path, err)
	}
	return nil
}
