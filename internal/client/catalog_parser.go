package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tonno/scraper/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

type catalogParser struct{}

func newCatalogParser() *catalogParser {
	return &catalogParser{}
}

// ParseCatalog extracts product entries from a category listing page. It
// tries the product-card markup first, then generic card classes, then
// article tags, and finally JSON-LD script blocks. A page yielding nothing
// through any of these is treated as blocked.
func (p *catalogParser) ParseCatalog(html, sourceURL string) ([]domain.CatalogProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	items := doc.Find("div.ProductCard__content___1vF38")
	if items.Length() == 0 {
		log.Info("Primary selector found no items, trying fallback selectors")
		items = doc.Find("div").FilterFunction(func(i int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			return strings.Contains(strings.ToLower(class), "product-card")
		})
	}
	if items.Length() == 0 {
		items = doc.Find("article")
	}

	if items.Length() == 0 {
		log.Info("No HTML product elements found, trying JSON-LD extraction")
		products := p.parseJSONLD(doc, sourceURL)
		if len(products) == 0 {
			return nil, domain.ErrScrapeBlocked
		}
		return products, nil
	}

	products := make([]domain.CatalogProduct, 0, items.Length())
	items.Each(func(i int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find("h3.ProductCard__title___3Rq5w").First().Text())
		if name == "" {
			name = strings.TrimSpace(item.Find("h3").First().Text())
		}
		if name == "" {
			log.Debugf("Skipping item %d without a title", i)
			return
		}

		price := parsePrice(item.Find("span.Price__value___1EyWx").First().Text())

		img := item.Find("img.ProductCard__image___2sV_h").First()
		if img.Length() == 0 {
			img = item.Find("img").First()
		}
		imageURL, _ := img.Attr("src")
		if imageURL == "" {
			imageURL, _ = img.Attr("data-src")
		}

		pricePerKg := strings.TrimSpace(item.Find("div.ProductCard__unitPrice___3Ym1w").First().Text())

		productURL := ""
		item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if strings.Contains(href, ".html") {
				productURL = resolveURL(sourceURL, href)
				return false
			}
			return true
		})

		products = append(products, domain.CatalogProduct{
			Name:       name,
			Price:      price,
			ProductURL: productURL,
			ImageURL:   resolveURL(sourceURL, imageURL),
			PricePerKg: pricePerKg,
			SourceURL:  sourceURL,
		})
	})

	return products, nil
}

// jsonLDEntity covers the subset of schema.org Product markup the listing
// pages embed. Price arrives as either a string or a number.
type jsonLDEntity struct {
	Type            string          `json:"@type"`
	Name            string          `json:"name"`
	Image           json.RawMessage `json:"image"`
	URL             string          `json:"url"`
	Offers          *jsonLDOffers   `json:"offers"`
	ItemListElement []struct {
		Item *jsonLDEntity `json:"item"`
	} `json:"itemListElement"`
}

type jsonLDOffers struct {
	Price json.RawMessage `json:"price"`
}

func (p *catalogParser) parseJSONLD(doc *goquery.Document, sourceURL string) []domain.CatalogProduct {
	var products []domain.CatalogProduct

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		raw := strings.TrimSpace(script.Text())
		if raw == "" {
			return
		}

		var entities []jsonLDEntity
		if strings.HasPrefix(raw, "[") {
			if err := json.Unmarshal([]byte(raw), &entities); err != nil {
				log.Debugf("Error parsing JSON-LD array: %v", err)
				return
			}
		} else {
			var entity jsonLDEntity
			if err := json.Unmarshal([]byte(raw), &entity); err != nil {
				log.Debugf("Error parsing JSON-LD: %v", err)
				return
			}
			entities = append(entities, entity)
			for _, el := range entity.ItemListElement {
				if el.Item != nil {
					entities = append(entities, *el.Item)
				}
			}
		}

		for _, entity := range entities {
			if entity.Type != "Product" {
				continue
			}
			products = append(products, domain.CatalogProduct{
				Name:       entity.Name,
				Price:      entity.offerPrice(),
				ProductURL: resolveURL(sourceURL, entity.URL),
				ImageURL:   resolveURL(sourceURL, entity.firstImage()),
				SourceURL:  sourceURL,
			})
		}
	})

	return products
}

func (e *jsonLDEntity) offerPrice() float64 {
	if e.Offers == nil || len(e.Offers.Price) == 0 {
		return 0
	}

	var asNumber float64
	if err := json.Unmarshal(e.Offers.Price, &asNumber); err == nil {
		return asNumber
	}
	var asString string
	if err := json.Unmarshal(e.Offers.Price, &asString); err == nil {
		return parsePrice(asString)
	}
	return 0
}

func (e *jsonLDEntity) firstImage() string {
	if len(e.Image) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(e.Image, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(e.Image, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

// parsePrice turns displayed price text ("2,59 €", "€ 2.59") into a float.
// Unparseable text yields 0, matching how a priceless catalog entry is
// valued downstream.
func parsePrice(text string) float64 {
	cleaned := strings.NewReplacer("€", "", " ", " ", ",", ".").Replace(text)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Debugf("Could not parse price %q", text)
		return 0
	}
	return value
}

func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
