// Package service orchestrates the pipeline stages: catalog scraping,
// per-product extraction, Open Food Facts scraping, structured extraction
// and the final matching pass. Stages run sequentially; per-item failures
// are logged and skipped.
package service

import (
	"context"
	"fmt"
	"path/filepath"

	"tonno/scraper/internal/client"
	"tonno/scraper/internal/config"
	"tonno/scraper/internal/llm"
	"tonno/scraper/internal/matcher"
	"tonno/scraper/internal/offclient"
	"tonno/scraper/internal/repository"
	"tonno/scraper/internal/state"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo      repository.ProductRepository
	carrefour client.CarrefourClient
	off       offclient.Client
	extractor llm.Extractor
	state     state.StateManager
	cfg       *config.Config
}

func NewService(
	repo repository.ProductRepository,
	carrefour client.CarrefourClient,
	off offclient.Client,
	extractor llm.Extractor,
	stateManager state.StateManager,
	cfg *config.Config,
) *Service {
	return &Service{
		repo:      repo,
		carrefour: carrefour,
		off:       off,
		extractor: extractor,
		state:     stateManager,
		cfg:       cfg,
	}
}

// ScrapeCatalog fetches the configured category listing, downloads product
// images and saves the catalog collection.
func (s *Service) ScrapeCatalog(ctx context.Context) error {
	categoryURL := s.cfg.Carrefour.CategoryURL

	if !s.carrefour.RobotsAllowed(ctx, categoryURL) {
		log.Warn("Proceeding with caution as robots.txt may disallow scraping this URL")
	}

	products, err := s.carrefour.GetCatalog(ctx, categoryURL)
	if err != nil {
		return fmt.Errorf("failed to scrape catalog: %w", err)
	}

	for i := range products {
		p := &products[i]
		if p.ImageURL == "" {
			log.Warnf("No image URL for product %q", p.Name)
			continue
		}
		local, err := s.carrefour.DownloadImage(ctx, p.ImageURL, s.cfg.Carrefour.ImagesDir, p.Name)
		if err != nil {
			log.Errorf("Error saving image for %q: %v", p.Name, err)
			continue
		}
		p.LocalImagePath = local
	}

	if err := s.repo.SaveCatalog(products, s.cfg.Carrefour.CatalogFile); err != nil {
		return err
	}

	log.Infof("Saved %d products to %s", len(products), s.cfg.Carrefour.CatalogFile)
	return nil
}

// ExtractProductPages walks the saved catalog and, for every product with a
// derivable barcode, saves its nutrition panel and carousel images under a
// per-barcode directory. Already-processed barcodes are skipped.
func (s *Service) ExtractProductPages(ctx context.Context) error {
	products, err := s.repo.LoadCatalog(s.cfg.Carrefour.CatalogFile)
	if err != nil {
		return err
	}

	for _, product := range products {
		barcode, ok := matcher.ExtractBarcode(product.ProductURL)
		if !ok {
			log.Warnf("No barcode in URL %s, skipping", product.ProductURL)
			continue
		}
		if s.state.IsProcessed(barcode) {
			log.Debugf("Barcode %s already processed, skipping", barcode)
			continue
		}

		if err := s.extractProductPage(ctx, barcode, product.ProductURL); err != nil {
			log.Errorf("Failed to process product %s: %v", barcode, err)
			continue
		}

		if err := s.state.MarkProcessed(barcode); err != nil {
			log.Errorf("Failed to record progress for %s: %v", barcode, err)
		}
	}

	return nil
}

func (s *Service) extractProductPage(ctx context.Context, barcode, productURL string) error {
	html, err := s.carrefour.GetProductPage(ctx, productURL)
	if err != nil {
		return err
	}

	productDir := filepath.Join(s.cfg.Carrefour.DataDir, barcode)

	table, err := client.ParseNutritionPanel(html)
	if err != nil {
		return err
	}
	if table == nil {
		log.Warnf("Nutritional info not found for %s", barcode)
	} else {
		if err := s.repo.SaveNutritionTable(table, filepath.Join(productDir, "nutrition.json")); err != nil {
			return err
		}
	}

	imageURLs, err := client.ParseCarouselImages(html, productURL)
	if err != nil {
		return err
	}
	downloaded := 0
	for i, imageURL := range imageURLs {
		name := fmt.Sprintf("%s_%d", barcode, i)
		if _, err := s.carrefour.DownloadImage(ctx, imageURL, filepath.Join(productDir, "images"), name); err != nil {
			log.Errorf("Error downloading carousel image %s: %v", imageURL, err)
			continue
		}
		downloaded++
	}

	log.Infof("Processed product %s: downloaded %d images", barcode, downloaded)
	return nil
}

// ScrapeOpenFoodFacts saves the label images and text digest for one barcode
// from Open Food Facts.
func (s *Service) ScrapeOpenFoodFacts(ctx context.Context, barcode string) error {
	_, err := s.off.ScrapeProduct(ctx, barcode, s.cfg.OpenFoodFacts.DataDir)
	if err != nil {
		return err
	}
	log.Info("Scraping complete")
	return nil
}

// ExtractWithGemini runs structured extraction over a barcode's downloaded
// images and digest, and saves the resulting product info next to them.
func (s *Service) ExtractWithGemini(ctx context.Context, barcode string) error {
	productDir := filepath.Join(s.cfg.OpenFoodFacts.DataDir, barcode)
	textPath := filepath.Join(productDir, "product_info.txt")

	info, err := s.extractor.ExtractProduct(ctx, productDir, textPath)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", barcode, err)
	}

	path, err := s.repo.SaveProductInfo(info, productDir)
	if err != nil {
		return err
	}

	log.Infof("Structured response saved to %s", path)
	return nil
}

// MatchProducts joins the extracted product info collection with the scraped
// catalog and writes the valued output. Missing inputs degrade to empty
// collections and a write failure is logged; neither stops the pipeline.
func (s *Service) MatchProducts() error {
	infos, err := s.repo.LoadProductInfos(s.cfg.Matcher.ProductInfoFile)
	if err != nil {
		log.Errorf("Error loading product info: %v", err)
	}
	catalog, err := s.repo.LoadCatalog(s.cfg.Matcher.CatalogFile)
	if err != nil {
		log.Errorf("Error loading catalog: %v", err)
	}

	matched := matcher.Match(infos, catalog)
	log.Infof("Matching completed. Total matched products: %d", len(matched))

	if err := s.repo.SaveMatched(matched, s.cfg.Matcher.OutputFile); err != nil {
		log.Errorf("Error saving matched products: %v", err)
		return nil
	}

	log.Infof("JSON output successfully saved to %s", s.cfg.Matcher.OutputFile)
	return nil
}
