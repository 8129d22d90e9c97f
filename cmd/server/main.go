package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kasichka/backend/config"
	httpDelivery "github.com/kasichka/backend/internal/delivery/http"
	"github.com/kasichka/backend/internal/domain"
	"github.com/kasichka/backend/internal/infrastructure/cache"
	"github.com/kasichka/backend/internal/infrastructure/catalog"
	"github.com/kasichka/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Kasichka Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	debug := cfg.Server.Environment == "development" || cfg.Matching.EnableDebugLogging

	// Infrastructure
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	var catalogClient domain.CatalogClient
	if cfg.Catalog.BaseURL != "" {
		catalogClient = catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL, debug)
		log.Printf("Catalog API configured: %s", cfg.Catalog.BaseURL)
	} else {
		log.Printf("WARNING: catalog base URL not configured, matching disabled")
	}

	// Usecase layer
	normalizer := usecase.NewNormalizer(nil)
	matcher := usecase.NewMatchingService(normalizer, usecase.MatchConfig{
		MinScoreThreshold:  cfg.Matching.MinScoreThreshold,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	productService := usecase.NewProductService(
		memoryCache,
		catalogClient,
		normalizer,
		matcher,
		usecase.ProductServiceOptions{
			CacheTTL:           cfg.Cache.TTL,
			CandidateLimit:     cfg.Catalog.PageSize,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Matching: threshold=%.2f, debug=%v",
		cfg.Matching.MinScoreThreshold,
		cfg.Matching.EnableDebugLogging)

	// HTTP delivery
	handler := httpDelivery.NewHandler(productService, matcher)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
