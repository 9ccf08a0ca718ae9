package main

import (
	"fmt"
	"log"
	"os"

	"github.com/labelproof/backend/config"
	httpDelivery "github.com/labelproof/backend/internal/delivery/http"
	"github.com/labelproof/backend/internal/infrastructure/cache"
	"github.com/labelproof/backend/internal/infrastructure/ocr"
	"github.com/labelproof/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting LabelProof Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	tokenCache := cache.NewMemoryCache()
	log.Printf("OCR token cache TTL: %s", cfg.Cache.TTL)

	ocrClient := ocr.NewClient(cfg.OCR.APIKey, cfg.OCR.BaseURL, cfg.OCR.Language)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ocrClient.SetDebug(true)
		log.Printf("OCR client debug mode enabled")
	}

	log.Printf("OCR service: %s (language: %s, timeout: %s)",
		cfg.OCR.BaseURL, cfg.OCR.Language, cfg.OCR.Timeout)

	if cfg.Server.APIKey == "" {
		log.Printf("WARNING: no API key configured - running in open mode")
	}

	// Initialize usecase layer
	verifier := usecase.NewVerificationService(
		ocrClient,
		tokenCache,
		usecase.VerificationServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			OCRTimeout:         cfg.OCR.Timeout,
			EnableDebugLogging: cfg.Verify.EnableDebugLogging,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(verifier)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
