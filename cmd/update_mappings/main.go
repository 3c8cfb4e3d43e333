package main

import (
	"os"
	"path/filepath"

	"divregistry-crawler/internal/mapper"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Re-scrapes the ticker index page and rewrites the mapping file, even
// when a saved one exists.
func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "https://xn--80aeiahhn9aobclif2kuc.xn--p1ai"
	}
	metadataDir := os.Getenv("METADATA_DIR")
	if metadataDir == "" {
		metadataDir = "metadata"
	}

	mappings, err := mapper.New(baseURL).FetchMappings()
	if err != nil {
		logger.Fatalf("Failed to fetch ticker mappings: %v", err)
	}

	path := filepath.Join(metadataDir, "ticker_mappings.json")
	if err := mapper.SaveMappings(path, mappings); err != nil {
		logger.Fatalf("Failed to save ticker mappings: %v", err)
	}

	logger.Infof("Saved %d ticker mappings to %s", len(mappings), path)
}
