package offclient

import (
	"strings"
	"testing"
)

const offPageHTML = `
<html><body>
<div id="product"><div><div><div class="card-section"><div>
  <div class="medium-8 small-12 columns"><h2>Tonno all'olio di oliva - Rio Mare - 2 x 52 g</h2></div>
</div></div></div></div>
<span id="barcode">8004030105096</span>
<div class="alert-box info"><p>Noise to be removed</p></div>
<div id="panel_nutrition_facts_table"><table>
  <thead><tr><th>Valori nutrizionali</th><th>Per 100 g</th></tr></thead>
  <tbody>
    <tr><td>Energia</td><td>198 kcal</td></tr>
    <tr><td>Proteine</td><td>25 g</td></tr>
  </tbody>
</table></div>
<div id="image_box_front"><img src="https://images.openfoodfacts.org/images/products/800/403/010/5096/front_it.44.400.jpg"/></div>
<div id="image_box_nutrition"><img src="https://images.openfoodfacts.org/images/products/800/403/010/5096/nutrition_it.12.200.jpg"/></div>
<div id="image_box_ingredients"></div>
</body></html>`

func TestParseProductPage(t *testing.T) {
	page, err := ParseProductPage(offPageHTML)
	if err != nil {
		t.Fatalf("ParseProductPage: %v", err)
	}

	if page.Name != "Tonno all'olio di oliva - Rio Mare - 2 x 52 g" {
		t.Errorf("Name = %q", page.Name)
	}
	if page.Barcode != "8004030105096" {
		t.Errorf("Barcode = %q", page.Barcode)
	}
	if len(page.Headers) != 2 || page.Headers[1] != "Per 100 g" {
		t.Errorf("Headers = %v", page.Headers)
	}
	if len(page.Rows) != 2 || page.Rows[1][0] != "Proteine" || page.Rows[1][1] != "25 g" {
		t.Errorf("Rows = %v", page.Rows)
	}
	if page.IngredientsImageURL != "" {
		t.Errorf("IngredientsImageURL = %q, want empty", page.IngredientsImageURL)
	}
}

func TestHighResImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"thumbnail rewritten",
			"https://images.openfoodfacts.org/p/front_it.44.400.jpg",
			"https://images.openfoodfacts.org/p/front_it.44.full.jpg",
		},
		{
			"already full untouched",
			"https://images.openfoodfacts.org/p/front_it.44.full.jpg",
			"https://images.openfoodfacts.org/p/front_it.44.full.jpg",
		},
		{"no pattern untouched", "https://example.com/image.jpg", "https://example.com/image.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HighResImageURL(tt.in); got != tt.want {
				t.Errorf("HighResImageURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTable(t *testing.T) {
	t.Run("aligned output", func(t *testing.T) {
		got := FormatTable(
			[]string{"Nutrient", "Per 100 g"},
			[][]string{{"Energia", "198 kcal"}, {"Proteine", "25 g"}},
		)
		lines := strings.Split(got, "\n")
		if len(lines) != 4 {
			t.Fatalf("line count = %d, want 4", len(lines))
		}
		if lines[0] != "Nutrient | Per 100 g" {
			t.Errorf("header line = %q", lines[0])
		}
		if lines[1] != "---------+----------" {
			t.Errorf("separator line = %q", lines[1])
		}
		if lines[2] != "Energia  | 198 kcal " {
			t.Errorf("row line = %q", lines[2])
		}
	})

	t.Run("empty data", func(t *testing.T) {
		if got := FormatTable(nil, nil); got != "No table data found." {
			t.Errorf("FormatTable(nil, nil) = %q", got)
		}
	})

	t.Run("short row padded", func(t *testing.T) {
		got := FormatTable([]string{"A", "B"}, [][]string{{"x"}})
		if !strings.HasSuffix(got, "x | ") {
			t.Errorf("short row not padded: %q", got)
		}
	})
}

func TestShortName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"splits on dash and replaces", "Tonno all'olio - Rio Mare", "Tonno_allolio"},
		{"caps at 20 chars", "A very long tuna product name here", "A_very_long_tuna_pro"},
		{"accented name keeps whole runes", "Tonnetto alla ligurè di mare", "Tonnetto_alla_ligurè"},
		{"plain", "Tonno", "Tonno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortName(tt.in); got != tt.want {
				t.Errorf("ShortName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
