package client

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"tonno/scraper/internal/domain"
)

const catalogHTML = `
<html><body>
<div class="ProductCard__content___1vF38">
  <a href="/spesa-online/p/tonno-rio-mare/8004030105096.html">
    <h3 class="ProductCard__title___3Rq5w">Rio Mare Tonno all'olio di oliva</h3>
  </a>
  <span class="Price__value___1EyWx">2,59 &euro;</span>
  <img class="ProductCard__image___2sV_h" src="/images/8004030105096.jpg"/>
  <div class="ProductCard__unitPrice___3Ym1w">24,90 &euro;/kg</div>
</div>
<div class="ProductCard__content___1vF38">
  <a href="/spesa-online/p/tonno-nostromo/8004030656031.html">
    <h3 class="ProductCard__title___3Rq5w">Nostromo Tonno al naturale</h3>
  </a>
  <span class="Price__value___1EyWx">3,10 &euro;</span>
</div>
</body></html>`

const jsonLDHTML = `
<html><body>
<script type="application/ld+json">
{"@type":"ItemList","itemListElement":[
  {"item":{"@type":"Product","name":"Tonno JSON-LD","url":"/p/123.html",
   "offers":{"price":"1,99"},"image":["/img/a.jpg","/img/b.jpg"]}}
]}
</script>
</body></html>`

func TestParseCatalogProductCards(t *testing.T) {
	p := newCatalogParser()

	products, err := p.ParseCatalog(catalogHTML, "https://www.carrefour.it/spesa-online/tonno/")
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len(products) = %d, want 2", len(products))
	}

	first := products[0]
	if first.Name != "Rio Mare Tonno all'olio di oliva" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Price != 2.59 {
		t.Errorf("Price = %v, want 2.59", first.Price)
	}
	if first.ProductURL != "https://www.carrefour.it/spesa-online/p/tonno-rio-mare/8004030105096.html" {
		t.Errorf("ProductURL = %q", first.ProductURL)
	}
	if first.ImageURL != "https://www.carrefour.it/images/8004030105096.jpg" {
		t.Errorf("ImageURL = %q", first.ImageURL)
	}
	if first.PricePerKg == "" {
		t.Error("PricePerKg empty")
	}

	if products[1].ImageURL != "" {
		t.Errorf("second product ImageURL = %q, want empty", products[1].ImageURL)
	}
}

func TestParseCatalogJSONLDFallback(t *testing.T) {
	p := newCatalogParser()

	products, err := p.ParseCatalog(jsonLDHTML, "https://www.carrefour.it/spesa-online/tonno/")
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(products))
	}
	if products[0].Name != "Tonno JSON-LD" {
		t.Errorf("Name = %q", products[0].Name)
	}
	if products[0].Price != 1.99 {
		t.Errorf("Price = %v, want 1.99", products[0].Price)
	}
	if products[0].ProductURL != "https://www.carrefour.it/p/123.html" {
		t.Errorf("ProductURL = %q", products[0].ProductURL)
	}
	if products[0].ImageURL != "https://www.carrefour.it/img/a.jpg" {
		t.Errorf("ImageURL = %q", products[0].ImageURL)
	}
}

func TestParseCatalogBlockedPage(t *testing.T) {
	p := newCatalogParser()

	_, err := p.ParseCatalog("<html><body><p>Access denied</p></body></html>", "https://www.carrefour.it/")
	if !errors.Is(err, domain.ErrScrapeBlocked) {
		t.Errorf("error = %v, want ErrScrapeBlocked", err)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"comma decimal with euro", "2,59 €", 2.59},
		{"dot decimal", "2.59", 2.59},
		{"euro prefix", "€ 3,10", 3.10},
		{"integer", "4", 4},
		{"nbsp separator", "1,99 €", 1.99},
		{"empty", "", 0},
		{"garbage", "N/A", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePrice(tt.in); got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename("Tonno all'olio (80g) / premium")
	if got != "Tonno all_olio _80g_ _ premium" {
		t.Errorf("sanitizeFilename = %q", got)
	}

	long := sanitizeFilename(strings.Repeat("a", 60))
	if len(long) != 50 {
		t.Errorf("len = %d, want capped at 50", len(long))
	}

	accented := sanitizeFilename("Tonno à la " + strings.Repeat("è", 45))
	if got := len([]rune(accented)); got != 50 {
		t.Errorf("rune count = %d, want capped at 50", got)
	}
	if !utf8.ValidString(accented) {
		t.Errorf("sanitizeFilename produced invalid UTF-8: %q", accented)
	}
}
