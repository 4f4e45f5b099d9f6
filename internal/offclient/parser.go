package offclient

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ProductPage is the parsed view of one Open Food Facts product page.
type ProductPage struct {
	Name                string
	Barcode             string
	Headers             []string
	Rows                [][]string
	FrontImageURL       string
	NutritionImageURL   string
	IngredientsImageURL string
}

const nameSelector = "#product > div > div > div.card-section > div > div.medium-8.small-12.columns > h2"

// fullResRe rewrites thumbnail image URLs (".123.400.jpg") to their full
// resolution form (".123.full.jpg").
var fullResRe = regexp.MustCompile(`(\.\d+)\.\d+\.jpg$`)

// HighResImageURL converts an Open Food Facts image URL to full resolution.
func HighResImageURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	return fullResRe.ReplaceAllString(imageURL, "${1}.full.jpg")
}

// ParseProductPage extracts name, barcode, nutrition facts table and image
// URLs from a product page.
func ParseProductPage(html string) (*ProductPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Alert boxes repeat nutrition values and pollute text extraction.
	doc.Find("div.alert-box.info").Remove()

	page := &ProductPage{
		Name:    cellText(doc.Find(nameSelector).First()),
		Barcode: cellText(doc.Find("span#barcode").First()),
	}

	page.Headers, page.Rows = parseNutritionFacts(doc)

	page.FrontImageURL = imageSrc(doc, "#image_box_front img")
	page.NutritionImageURL = imageSrc(doc, "#image_box_nutrition img")
	page.IngredientsImageURL = imageSrc(doc, "#image_box_ingredients img")

	return page, nil
}

func parseNutritionFacts(doc *goquery.Document) ([]string, [][]string) {
	table := doc.Find("#panel_nutrition_facts_table table").First()
	if table.Length() == 0 {
		return nil, nil
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, cellText(th))
	})

	var rows [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		rows = append(rows, cells)
	})

	return headers, rows
}

func imageSrc(doc *goquery.Document, selector string) string {
	src, _ := doc.Find(selector).First().Attr("src")
	return src
}

// cellText flattens a node's text, collapsing internal whitespace runs into
// single spaces.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// FormatTable renders headers and rows as an aligned text table, the form
// the extraction prompt receives.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return "No table data found."
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-len(s))
	}

	var lines []string
	headerCells := make([]string, len(headers))
	sepCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = pad(h, widths[i])
		sepCells[i] = strings.Repeat("-", widths[i])
	}
	lines = append(lines, strings.Join(headerCells, " | "), strings.Join(sepCells, "-+-"))

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = pad(value, widths[i])
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.Join(lines, "\n")
}

// ShortName derives a filesystem-friendly prefix from a product name:
// everything before the first " - ", spaces to underscores, apostrophes
// removed, capped at 20 characters.
func ShortName(productName string) string {
	short := strings.SplitN(productName, " - ", 2)[0]
	short = strings.ReplaceAll(short, " ", "_")
	short = strings.ReplaceAll(short, "'", "")
	if runes := []rune(short); len(runes) > 20 {
		short = string(runes[:20])
	}
	return short
}
