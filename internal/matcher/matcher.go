// Package matcher joins extracted per-barcode product info with scraped
// catalog entries and derives the protein-per-euro value metric. Everything
// here is a pure function over in-memory collections; loading and writing
// live in the repository package.
package matcher

import (
	"math"
	"regexp"
	"strings"

	"tonno/scraper/internal/domain"
)

// barcodeRe captures the trailing digits immediately before ".html" at the
// end of a product URL.
var barcodeRe = regexp.MustCompile(`/(\d+)\.html$`)

// ExtractBarcode derives the barcode from a catalog product URL, after
// stripping any trailing slashes. The second return value is false when the
// URL carries no trailing numeric segment, in which case the record cannot
// participate in the join.
func ExtractBarcode(productURL string) (string, bool) {
	trimmed := strings.TrimRight(productURL, "/")
	m := barcodeRe.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// GroupNutrition buckets entries by their type field. Only "drained" and
// "full" keep their own bucket; a missing or unrecognized type lands under
// "unknown", which weight selection never picks. Entries sharing a type
// overwrite each other in encounter order, last one wins.
func GroupNutrition(entries []domain.NutritionEntry) map[string]domain.ProteinInfo {
	grouped := make(map[string]domain.ProteinInfo, len(entries))
	for _, entry := range entries {
		key := entry.Type
		if key != domain.NutritionTypeDrained.String() && key != domain.NutritionTypeFull.String() {
			key = domain.NutritionTypeUnknown.String()
		}
		grouped[key] = domain.ProteinInfo{
			ProteinGrams: entry.ProteinGrams,
			PerGrams:     entry.PerGrams,
		}
	}
	return grouped
}

// selectWeight picks the total weight and the protein source for one record.
// Drained weight paired with drained nutrition wins over full weight paired
// with full nutrition; drained weights are the more accurate measure of the
// net edible content. The fallback never mixes the two sources.
func selectWeight(info *domain.ProductInfo, grouped map[string]domain.ProteinInfo) (float64, domain.ProteinInfo) {
	containers := float64(info.Containers())

	if info.DrainedWeightPerContainerGrams != nil {
		if src, ok := grouped[domain.NutritionTypeDrained.String()]; ok {
			return *info.DrainedWeightPerContainerGrams * containers, src
		}
	}
	if info.WeightPerContainerGrams != nil {
		if src, ok := grouped[domain.NutritionTypeFull.String()]; ok {
			return *info.WeightPerContainerGrams * containers, src
		}
	}

	var weight float64
	if info.WeightPerContainerGrams != nil {
		weight = *info.WeightPerContainerGrams
	}
	return weight * containers, grouped[domain.NutritionTypeFull.String()]
}

// totalProtein treats the source's protein value as per 100 grams regardless
// of its own per_grams field. Known approximation, kept deliberately until
// the formula is revised.
func totalProtein(src domain.ProteinInfo, totalWeight float64) float64 {
	if totalWeight == 0 {
		return 0
	}
	return src.ProteinGrams * totalWeight / 100
}

// Match joins each product info record with the first catalog entry whose
// derived barcode equals the record's barcode and computes the value metric.
// Records with an empty barcode or no catalog match are dropped silently;
// partial catalogs are expected. Output order follows the input order of the
// info collection.
func Match(infos []domain.ProductInfo, catalog []domain.CatalogProduct) []domain.MatchedProduct {
	matched := make([]domain.MatchedProduct, 0, len(infos))

	for i := range infos {
		info := &infos[i]
		if info.Barcode == "" {
			continue
		}

		grouped := GroupNutrition(info.NutritionalInformation)
		totalWeight, src := selectWeight(info, grouped)
		protein := totalProtein(src, totalWeight)

		for _, prod := range catalog {
			barcode, ok := ExtractBarcode(prod.ProductURL)
			if !ok || barcode != info.Barcode {
				continue
			}

			perEuro := 0.0
			if prod.Price > 0 {
				perEuro = protein / prod.Price
			}

			matched = append(matched, domain.MatchedProduct{
				Barcode:                info.Barcode,
				Name:                   prod.Name,
				Price:                  prod.Price,
				TotalWeightGrams:       totalWeight,
				NumContainers:          info.Containers(),
				NutritionalInformation: grouped,
				TotalProteinGrams:      protein,
				ProteinPerEuro:         math.Round(perEuro*100) / 100,
			})
			break
		}
	}

	return matched
}
