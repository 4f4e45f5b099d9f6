package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tonno/scraper/internal/domain"
)

func TestLoadCatalogMissingFile(t *testing.T) {
	repo := NewJSONRepository()

	_, err := repo.LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Errorf("error = %v, want ErrMissingInput", err)
	}
}

func TestLoadCatalogMalformedFile(t *testing.T) {
	repo := NewJSONRepository()
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := repo.LoadCatalog(path)
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Errorf("error = %v, want ErrMissingInput", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := NewJSONRepository()
	path := filepath.Join(t.TempDir(), "out", "products.json")

	products := []domain.CatalogProduct{
		{Name: "Tuna A", Price: 2.5, ProductURL: "/p/111.html"},
		{Name: "Tuna B", Price: 3.0, ProductURL: "/p/222.html"},
	}

	// Parent directory does not exist yet; save must create it.
	if err := repo.SaveCatalog(products, path); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	got, err := repo.LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Name != "Tuna A" || got[1].Name != "Tuna B" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	repo := NewJSONRepository()
	path := filepath.Join(t.TempDir(), "matched.json")

	first := []domain.MatchedProduct{{Barcode: "111", Name: "Old"}}
	second := []domain.MatchedProduct{{Barcode: "222", Name: "New"}}

	if err := repo.SaveMatched(first, path); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveMatched(second, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "222") || strings.Contains(string(data), "111") {
		t.Errorf("file not overwritten, content: %s", data)
	}
}

func TestSaveProductInfoNaming(t *testing.T) {
	repo := NewJSONRepository()
	dir := t.TempDir()

	t.Run("with integral weight", func(t *testing.T) {
		weight := 80.0
		containers := 4
		info := &domain.ProductInfo{
			Barcode:                 "8004030656031",
			NumContainers:           &containers,
			WeightPerContainerGrams: &weight,
		}
		path, err := repo.SaveProductInfo(info, dir)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(path) != "8004030656031_4_80.0.json" {
			t.Errorf("filename = %s, want 8004030656031_4_80.0.json", filepath.Base(path))
		}
	})

	t.Run("with fractional weight", func(t *testing.T) {
		weight := 52.5
		info := &domain.ProductInfo{
			Barcode:                 "8004030105096",
			WeightPerContainerGrams: &weight,
		}
		path, err := repo.SaveProductInfo(info, dir)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(path) != "8004030105096_1_52.5.json" {
			t.Errorf("filename = %s, want 8004030105096_1_52.5.json", filepath.Base(path))
		}
	})

	t.Run("without weight", func(t *testing.T) {
		info := &domain.ProductInfo{Barcode: "8004030656031"}
		path, err := repo.SaveProductInfo(info, dir)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(path) != "8004030656031.json" {
			t.Errorf("filename = %s, want 8004030656031.json", filepath.Base(path))
		}
	})
}
