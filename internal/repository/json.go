// Package repository persists and loads the pipeline's flat JSON files.
// It is the only place that touches the filesystem for collections.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tonno/scraper/internal/domain"

	log "github.com/sirupsen/logrus"
)

type ProductRepository interface {
	LoadProductInfos(path string) ([]domain.ProductInfo, error)
	LoadCatalog(path string) ([]domain.CatalogProduct, error)
	SaveCatalog(products []domain.CatalogProduct, path string) error
	SaveMatched(records []domain.MatchedProduct, path string) error
	SaveNutritionTable(table domain.NutritionTable, path string) error
	SaveProductInfo(info *domain.ProductInfo, dir string) (string, error)
}

type jsonRepository struct{}

func NewJSONRepository() ProductRepository {
	return &jsonRepository{}
}

func (r *jsonRepository) LoadProductInfos(path string) ([]domain.ProductInfo, error) {
	var infos []domain.ProductInfo
	if err := r.readJSON(path, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

func (r *jsonRepository) LoadCatalog(path string) ([]domain.CatalogProduct, error) {
	var products []domain.CatalogProduct
	if err := r.readJSON(path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *jsonRepository) SaveCatalog(products []domain.CatalogProduct, path string) error {
	return r.writeJSON(products, path)
}

func (r *jsonRepository) SaveMatched(records []domain.MatchedProduct, path string) error {
	return r.writeJSON(records, path)
}

func (r *jsonRepository) SaveNutritionTable(table domain.NutritionTable, path string) error {
	return r.writeJSON(table, path)
}

// SaveProductInfo writes one extraction result into dir, naming the file
// after the barcode, container count and per-container weight when known.
// Returns the path written.
func (r *jsonRepository) SaveProductInfo(info *domain.ProductInfo, dir string) (string, error) {
	name := info.Barcode + ".json"
	if info.WeightPerContainerGrams != nil {
		name = fmt.Sprintf("%s_%d_%s.json", info.Barcode, info.Containers(), formatWeight(*info.WeightPerContainerGrams))
	}

	path := filepath.Join(dir, name)
	if err := r.writeJSON(info, path); err != nil {
		return "", err
	}
	return path, nil
}

// formatWeight renders a weight for filenames, keeping a trailing ".0" on
// integral values so 80.0 grams becomes "80.0", not "80".
func formatWeight(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (r *jsonRepository) readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMissingInput, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrMissingInput, path, err)
	}
	return nil
}

// writeJSON serializes v with two-space indentation, creating parent
// directories and overwriting any existing file.
func (r *jsonRepository) writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailure, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailure, path, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailure, path, err)
	}

	log.Debugf("Wrote %s", path)
	return nil
}
