package domain

// ProteinInfo is the slice of a nutrition entry the valuation cares about.
type ProteinInfo struct {
	ProteinGrams float64 `json:"protein_grams"`
	PerGrams     float64 `json:"per_grams"`
}

// MatchedProduct joins a ProductInfo with the catalog entry sharing its
// barcode. Constructed once per successful join and never mutated.
type MatchedProduct struct {
	Barcode                string                 `json:"barcode"`
	Name                   string                 `json:"name"`
	Price                  float64                `json:"price"`
	TotalWeightGrams       float64                `json:"total_weight_grams"`
	NumContainers          int                    `json:"num_containers"`
	NutritionalInformation map[string]ProteinInfo `json:"nutritional_information"`
	TotalProteinGrams      float64                `json:"total_protein_grams"`
	ProteinPerEuro         float64                `json:"protein_per_euro"`
}
