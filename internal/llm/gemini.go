// Package llm extracts structured product info from label images and text
// via the Gemini generateContent REST API.
package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tonno/scraper/internal/config"
	"tonno/scraper/internal/domain"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

type Extractor interface {
	ExtractProduct(ctx context.Context, imageDir, textFilePath string) (*domain.ProductInfo, error)
}

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *resty.Client
}

func NewGeminiClient(cfg config.GeminiConfig) Extractor {
	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		httpClient: resty.New().
			SetTimeout(time.Duration(cfg.Timeout)*time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type generateRequest struct {
	Contents []struct {
		Parts []contentPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig map[string]any `json:"generationConfig"`
}

// ExtractProduct sends every JPEG in imageDir plus the text digest to the
// model and decodes the structured response into a ProductInfo.
func (g *geminiClient) ExtractProduct(ctx context.Context, imageDir, textFilePath string) (*domain.ProductInfo, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("missing gemini api_key")
	}

	parts := []contentPart{{Text: g.buildPrompt(textFilePath)}}

	imageParts, err := readImageParts(imageDir)
	if err != nil {
		return nil, err
	}
	if len(imageParts) == 0 {
		log.Warnf("No images found in %s, extracting from text only", imageDir)
	}
	parts = append(parts, imageParts...)

	var req generateRequest
	req.Contents = append(req.Contents, struct {
		Parts []contentPart `json:"parts"`
	}{Parts: parts})
	req.GenerationConfig = map[string]any{
		"response_mime_type": "application/json",
		"response_schema":    responseSchema(),
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(&req).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini api error: %d %s", resp.StatusCode(), resp.String())
	}

	info, err := parseResponse(resp.Bytes())
	if err != nil {
		return nil, err
	}

	log.Infof("Extracted structured info for barcode %s", info.Barcode)
	return info, nil
}

func (g *geminiClient) buildPrompt(textFilePath string) string {
	text, err := os.ReadFile(textFilePath)
	if err != nil {
		log.Warnf("Text file not found: %s, sending prompt without it", textFilePath)
		text = nil
	}
	return systemPrompt + "\n" + userPrompt + "\n" + string(text)
}

// readImageParts loads all JPEGs from dir as base64 inline parts, sorted by
// filename so repeated runs send identical requests.
func readImageParts(dir string) ([]contentPart, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to list images in %s: %w", dir, err)
	}
	sort.Strings(matches)

	var parts []contentPart
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			log.Errorf("Error reading image %s: %v", match, err)
			continue
		}
		parts = append(parts, contentPart{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(data),
		}})
		log.Debugf("Attached image %s", filepath.Base(match))
	}

	return parts, nil
}
