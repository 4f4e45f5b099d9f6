package domain

// NutritionType tells whether a nutrition row refers to the drained solid
// content or to the full product including liquid.
type NutritionType string

func (n NutritionType) String() string {
	return string(n)
}

const (
	NutritionTypeDrained NutritionType = "drained"
	NutritionTypeFull    NutritionType = "full"
	// NutritionTypeUnknown buckets entries with a missing or unrecognized
	// type. It never participates in weight selection.
	NutritionTypeUnknown NutritionType = "unknown"
)

// NutritionEntry is a single nutrition row as extracted from label images or
// a product page. Immutable once read.
type NutritionEntry struct {
	PerGrams          float64 `json:"per_grams"`
	Type              string  `json:"type"`
	EnergyKcal        float64 `json:"energy_kcal"`
	FatGrams          float64 `json:"fat_grams"`
	SaturatedFatGrams float64 `json:"saturated_fat_grams"`
	ProteinGrams      float64 `json:"protein_grams"`
	SaltGrams         float64 `json:"salt_grams"`
}

// OtherInformation carries secondary label details.
type OtherInformation struct {
	PortionsPerContainer *int    `json:"portions_per_container,omitempty"`
	DietaryAdvice        *string `json:"dietary_advice,omitempty"`
}

// ProductInfo is the per-barcode record produced by the extraction step
// (Gemini structured output or manual entry). Optional numeric fields are
// pointers: absent means the label did not state the value.
type ProductInfo struct {
	Barcode                        string            `json:"barcode"`
	ProductName                    *string           `json:"product_name,omitempty"`
	Ingredients                    *string           `json:"ingredients,omitempty"`
	NumContainers                  *int              `json:"num_containers"`
	WeightPerContainerGrams        *float64          `json:"weight_per_container_grams"`
	DrainedWeightPerContainerGrams *float64          `json:"drained_weight_per_container_grams"`
	NutritionalInformation         []NutritionEntry  `json:"nutritional_information"`
	OtherInformation               *OtherInformation `json:"other_information,omitempty"`
	Manufacturer                   *string           `json:"manufacturer,omitempty"`
	ProducedIn                     *string           `json:"produced_in,omitempty"`
	CustomerServiceNumber          *string           `json:"customer_service_number,omitempty"`
}

// Containers returns the container count, defaulting to 1 when absent.
func (p *ProductInfo) Containers() int {
	if p.NumContainers == nil {
		return 1
	}
	return *p.NumContainers
}
