package client

import (
	"fmt"
	"strings"

	"tonno/scraper/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ParseNutritionPanel extracts the nutrition table from a product page.
// The first table row carries the column headers; every following row maps
// the nutrient in its first cell to header->value pairs. Returns nil when
// the page has no nutrition panel.
func ParseNutritionPanel(html string) (domain.NutritionTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	panel := doc.Find("div#panel-nutritionInfo").First()
	if panel.Length() == 0 {
		return nil, nil
	}

	rows := panel.Find("div.table-row")
	if rows.Length() == 0 {
		return nil, nil
	}

	var headers []string
	rows.First().Find("span").Each(func(_ int, span *goquery.Selection) {
		if text := strings.TrimSpace(span.Text()); text != "" {
			headers = append(headers, text)
		}
	})

	table := make(domain.NutritionTable)
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("span").Each(func(_ int, span *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(span.Text()))
		})
		if len(cells) < 2 {
			return
		}

		nutrient := cells[0]
		values := make(map[string]string, len(cells)-1)
		for i, value := range cells[1:] {
			if i >= len(headers) {
				break
			}
			values[headers[i]] = value
		}
		table[nutrient] = values
	})

	return table, nil
}

// ParseCarouselImages collects the alternative-image carousel URLs from a
// product page, preferring data-src over src, resolved against pageURL.
func ParseCarouselImages(html, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	carousel := doc.Find("div.alternative-images").First()
	if carousel.Length() == 0 {
		return nil, nil
	}

	var urls []string
	carousel.Find("img.js-thumb-img").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("data-src")
		if src == "" {
			src, _ = img.Attr("src")
		}
		if src != "" {
			urls = append(urls, resolveURL(pageURL, src))
		}
	})

	return urls, nil
}
