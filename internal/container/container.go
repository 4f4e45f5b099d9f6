package container

import (
	"context"
	"fmt"

	"tonno/scraper/internal/agent"
	"tonno/scraper/internal/client"
	"tonno/scraper/internal/config"
	"tonno/scraper/internal/llm"
	"tonno/scraper/internal/offclient"
	"tonno/scraper/internal/repository"
	"tonno/scraper/internal/service"
	"tonno/scraper/internal/state"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Repository   repository.ProductRepository
	Carrefour    client.CarrefourClient
	OpenFoodFact offclient.Client
	Extractor    llm.Extractor
	StateManager state.StateManager

	Service *service.Service
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	agents := agent.NewSupplier(cfg.Carrefour.UserAgents)

	repo := repository.NewJSONRepository()
	container.Repository = repo

	stateManager, err := state.NewFileStateManager(cfg.State.File)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	container.StateManager = stateManager

	carrefourClient := client.NewCarrefourClient(cfg.Carrefour, agents)
	container.Carrefour = carrefourClient

	offClient := offclient.NewClient(cfg.OpenFoodFacts, agents)
	container.OpenFoodFact = offClient

	extractor := llm.NewGeminiClient(cfg.Gemini)
	container.Extractor = extractor

	container.Service = service.NewService(
		repo,
		carrefourClient,
		offClient,
		extractor,
		stateManager,
		cfg,
	)

	return container, nil
}

// Run dispatches a pipeline stage by name. Stages that operate on a single
// product take the barcode as their argument.
func (c *Container) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "scrape":
		return c.Service.ScrapeCatalog(ctx)
	case "extract":
		return c.Service.ExtractProductPages(ctx)
	case "off":
		if len(args) == 0 {
			return fmt.Errorf("off requires a barcode argument")
		}
		return c.Service.ScrapeOpenFoodFacts(ctx, args[0])
	case "gemini":
		if len(args) == 0 {
			return fmt.Errorf("gemini requires a barcode argument")
		}
		return c.Service.ExtractWithGemini(ctx, args[0])
	case "match":
		return c.Service.MatchProducts()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
