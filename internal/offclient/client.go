// Package offclient scrapes product pages from Open Food Facts, saving the
// label images and a compact text digest that feed the extraction step.
package offclient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"tonno/scraper/internal/agent"
	"tonno/scraper/internal/config"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type Client interface {
	ScrapeProduct(ctx context.Context, barcode, dataDir string) (*ProductPage, error)
}

type client struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	agents     agent.Supplier
	baseURL    string
}

func NewClient(cfg config.OpenFoodFactsConfig, agents agent.Supplier) Client {
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &client{
		rl: ratelimit.New(rps),
		httpClient: resty.New().
			SetTimeout(time.Duration(cfg.Timeout)*time.Second).
			SetHeader("Accept", "text/html,application/xhtml+xml"),
		agents:  agents,
		baseURL: cfg.BaseURL,
	}
}

var blankLinesRe = regexp.MustCompile(`\n\s*\n+`)

// ScrapeProduct fetches the product page for barcode, downloads the front,
// nutrition and ingredients images in full resolution into dataDir/<barcode>,
// and writes a product_info.txt digest next to them.
func (c *client) ScrapeProduct(ctx context.Context, barcode, dataDir string) (*ProductPage, error) {
	pageURL := fmt.Sprintf("%s/product/%s", c.baseURL, barcode)
	html, err := c.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", barcode, err)
	}

	page, err := ParseProductPage(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product %s: %w", barcode, err)
	}

	log.Infof("Product name: %s", page.Name)
	log.Infof("Barcode: %s", page.Barcode)

	productDir := filepath.Join(dataDir, barcode)
	if err := os.MkdirAll(productDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create product dir: %w", err)
	}

	short := ShortName(page.Name)
	c.downloadImage(ctx, HighResImageURL(page.FrontImageURL), short+"_front.jpg", productDir)
	c.downloadImage(ctx, HighResImageURL(page.NutritionImageURL), short+"_nutrition.jpg", productDir)
	ingredientsPath := ""
	if page.IngredientsImageURL != "" {
		ingredientsPath = c.downloadImage(ctx, HighResImageURL(page.IngredientsImageURL), short+"_ingredients.jpg", productDir)
	}

	digest := fmt.Sprintf("Product Name: %s\nBarcode: %s\n\nNutrition Facts:\n%s\n\n",
		page.Name, page.Barcode, FormatTable(page.Headers, page.Rows))
	if ingredientsPath != "" {
		digest += fmt.Sprintf("Ingredients Image: %s\n", ingredientsPath)
	}
	digest = blankLinesRe.ReplaceAllString(digest, "\n")

	textPath := filepath.Join(productDir, "product_info.txt")
	if err := os.WriteFile(textPath, []byte(digest), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", textPath, err)
	}
	log.Infof("Text saved to %s", textPath)

	return page, nil
}

// downloadImage is best-effort: a missing or failed image is logged and the
// digest simply omits it. Returns the local path or "".
func (c *client) downloadImage(ctx context.Context, imageURL, filename, dir string) string {
	if imageURL == "" {
		return ""
	}

	c.rl.Take()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.agents.Get()).
		Get(imageURL)
	if err != nil || resp.IsError() {
		log.Errorf("Error downloading image %s: %v", filename, err)
		return ""
	}

	dest := filepath.Join(dir, filename)
	if err := os.WriteFile(dest, resp.Bytes(), 0o644); err != nil {
		log.Errorf("Error saving image %s: %v", dest, err)
		return ""
	}

	log.Infof("Image downloaded: %s", dest)
	return dest
}

func (c *client) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.agents.Get()).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}
