package domain

// CatalogProduct is one scraped entry from a Carrefour category listing.
// ProductURL ends with the numeric barcode before ".html"; the barcode itself
// is derived at match time, never stored here.
type CatalogProduct struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ProductURL     string  `json:"product_url"`
	ImageURL       string  `json:"image_url,omitempty"`
	PricePerKg     string  `json:"price_per_kg,omitempty"`
	SourceURL      string  `json:"source_url,omitempty"`
	LocalImagePath string  `json:"local_image_path,omitempty"`
}

// NutritionTable holds a parsed nutrition panel: nutrient name -> column
// header -> cell value, exactly as displayed on the product page.
type NutritionTable map[string]map[string]string
