package main

import (
	"fmt"
	"log"
	"os"

	"github.com/scentscan/backend/config"
	"github.com/scentscan/backend/internal/domain"
	"github.com/spf13/cobra"

	httpDelivery "github.com/scentscan/backend/internal/delivery/http"
	"github.com/scentscan/backend/internal/infrastructure/cache"
	"github.com/scentscan/backend/internal/infrastructure/sources"
	"github.com/scentscan/backend/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "scentscan-server",
	Short: "ScentScan price comparison API server",
	Long:  "Serves the ScentScan perfume price comparison API, fanning each query out to the configured retailer storefronts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Printf("Starting ScentScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Source timeout: %s, aggregate timeout: %s", cfg.Scraper.SourceTimeout, cfg.Scraper.AggregateTimeout)

	var comparisonCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		comparisonCache = cache.NewMemoryCache()
		log.Printf("Cache: memory, TTL %s", cfg.Cache.TTL)
	} else {
		log.Printf("Cache: disabled")
	}

	retailers := buildSources(cfg)
	for _, src := range retailers {
		log.Printf("Registered source: %s", src.Name())
	}

	comparisonService := usecase.NewComparisonService(
		comparisonCache,
		retailers,
		usecase.ComparisonServiceConfig{
			CacheTTL:         cfg.Cache.TTL,
			SourceTimeout:    cfg.Scraper.SourceTimeout,
			AggregateTimeout: cfg.Scraper.AggregateTimeout,
			OnSourceFailure: func(site string, err error) {
				log.Printf("[SOURCE] %s: %v", site, err)
			},
		},
	)

	handler := httpDelivery.NewHandler(comparisonService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// buildSources assembles the retailer adapter set. Each adapter gets its own
// fetch client so rate limiting stays per site.
func buildSources(cfg *config.Config) []domain.Source {
	newClient := func() *sources.Client {
		return sources.NewClient(cfg.Scraper.UserAgent, cfg.RateLimit.PerSite)
	}

	retailers := []domain.Source{
		sources.NewFragranceNet(newClient()),
		sources.NewFragranceX(newClient()),
		sources.NewFragranceShop(newClient()),
	}

	// The FragranceBuy storefront needs a headless Chrome to render
	if cfg.Scraper.ChromeEnabled {
		retailers = append(retailers, sources.NewFragranceBuy(cfg.Scraper.UserAgent))
	}

	return retailers
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
