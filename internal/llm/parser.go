package llm

import (
	"encoding/json"
	"fmt"

	"tonno/scraper/internal/domain"
)

// generateResponse is the candidate envelope the generateContent endpoint
// wraps structured output in.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// parseResponse unwraps the first candidate's text part and decodes it into
// a ProductInfo. A response without candidates, with non-JSON text, or
// missing the barcode is rejected.
func parseResponse(raw []byte) (*domain.ProductInfo, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	text := envelope.Candidates[0].Content.Parts[0].Text
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("gemini returned non-json output")
	}

	var info domain.ProductInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return nil, fmt.Errorf("failed to decode structured output: %w", err)
	}
	if info.Barcode == "" {
		return nil, domain.ErrNoBarcode
	}

	return &info, nil
}
