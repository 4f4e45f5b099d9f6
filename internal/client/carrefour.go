package client

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"tonno/scraper/internal/agent"
	"tonno/scraper/internal/config"
	"tonno/scraper/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CarrefourClient fetches category listings, product pages and product
// images from the Carrefour online store.
type CarrefourClient interface {
	GetCatalog(ctx context.Context, categoryURL string) ([]domain.CatalogProduct, error)
	GetProductPage(ctx context.Context, productURL string) (string, error)
	DownloadImage(ctx context.Context, imageURL, destDir, baseName string) (string, error)
	RobotsAllowed(ctx context.Context, pageURL string) bool
}

type carrefourClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	agents     agent.Supplier
	parser     *catalogParser
}

func NewCarrefourClient(cfg config.CarrefourConfig, agents agent.Supplier) CarrefourClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "it-IT,it;q=0.9,en;q=0.5")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &carrefourClient{
		rl:         ratelimit.New(rps),
		httpClient: client,
		agents:     agents,
		parser:     newCatalogParser(),
	}
}

func (c *carrefourClient) GetCatalog(ctx context.Context, categoryURL string) ([]domain.CatalogProduct, error) {
	html, err := c.fetchHTML(ctx, categoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category page: %w", err)
	}

	products, err := c.parser.ParseCatalog(html, categoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category page: %w", err)
	}

	log.Infof("Scraped %d products from %s", len(products), categoryURL)
	return products, nil
}

func (c *carrefourClient) GetProductPage(ctx context.Context, productURL string) (string, error) {
	html, err := c.fetchHTML(ctx, productURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch product page %s: %w", productURL, err)
	}
	return html, nil
}

// DownloadImage saves the image at imageURL into destDir. The extension is
// taken from the Content-Type header, falling back to the URL path, then to
// ".jpg". Returns the local path written.
func (c *carrefourClient) DownloadImage(ctx context.Context, imageURL, destDir, baseName string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.agents.Get()).
		Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image %s: %w", imageURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP error fetching image %s: %d %s", imageURL, resp.StatusCode(), resp.Status())
	}

	ext := extensionFor(resp.Header().Get("Content-Type"), imageURL)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir %s: %w", destDir, err)
	}

	dest := filepath.Join(destDir, sanitizeFilename(baseName)+ext)
	if err := os.WriteFile(dest, resp.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", dest, err)
	}

	log.Debugf("Saved image %s", dest)
	return dest, nil
}

// RobotsAllowed performs a coarse advisory check of the site's robots.txt.
// Unreachable or unreadable robots.txt allows scraping to proceed.
func (c *carrefourClient) RobotsAllowed(ctx context.Context, pageURL string) bool {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return true
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.agents.Get()).
		Get(robotsURL)
	if err != nil || resp.IsError() {
		log.Warnf("Could not check robots.txt at %s, proceeding with caution", robotsURL)
		return true
	}

	if strings.Contains(resp.String(), "Disallow: "+parsed.Path) {
		log.Warnf("robots.txt may disallow scraping %s", pageURL)
		return false
	}
	return true
}

func (c *carrefourClient) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.agents.Get()).
		Get(pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}

func extensionFor(contentType, imageURL string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	}

	if parsed, err := url.Parse(imageURL); err == nil {
		if ext := path.Ext(parsed.Path); ext != "" {
			return ext
		}
	}
	return ".jpg"
}

// sanitizeFilename keeps alphanumerics plus "._- " and caps the length so
// scraped product names make safe filenames.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := b.String()
	if runes := []rune(s); len(runes) > 50 {
		s = string(runes[:50])
	}
	return s
}
