package llm

// responseSchema mirrors the ProductInfo shape in the OpenAPI subset the
// generateContent endpoint accepts, so the model is forced into structured
// JSON output.
func responseSchema() map[string]any {
	nullable := func(t string) map[string]any {
		return map[string]any{"type": t, "nullable": true}
	}

	nutritionEntry := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"per_grams":           map[string]any{"type": "number"},
			"type":                map[string]any{"type": "string", "enum": []string{"drained", "full"}},
			"energy_kcal":         map[string]any{"type": "number"},
			"fat_grams":           map[string]any{"type": "number"},
			"saturated_fat_grams": map[string]any{"type": "number"},
			"protein_grams":       map[string]any{"type": "number"},
			"salt_grams":          map[string]any{"type": "number"},
		},
		"required": []string{
			"per_grams", "type", "energy_kcal", "fat_grams",
			"saturated_fat_grams", "protein_grams", "salt_grams",
		},
	}

	otherInformation := map[string]any{
		"type":     "object",
		"nullable": true,
		"properties": map[string]any{
			"portions_per_container": nullable("integer"),
			"dietary_advice":         nullable("string"),
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"barcode":                            map[string]any{"type": "string"},
			"product_name":                       nullable("string"),
			"ingredients":                        nullable("string"),
			"num_containers":                     nullable("integer"),
			"weight_per_container_grams":         nullable("number"),
			"drained_weight_per_container_grams": nullable("number"),
			"nutritional_information": map[string]any{
				"type":     "array",
				"nullable": true,
				"items":    nutritionEntry,
			},
			"other_information":       otherInformation,
			"manufacturer":            nullable("string"),
			"produced_in":             nullable("string"),
			"customer_service_number": nullable("string"),
		},
		"required": []string{"barcode"},
	}
}
