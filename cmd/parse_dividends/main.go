package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"divregistry-crawler/internal/fetcher"
	"divregistry-crawler/internal/mapper"
	"divregistry-crawler/internal/models"
	"divregistry-crawler/internal/parser"
	"divregistry-crawler/internal/storage"

	"github.com/joho/godotenv"
)

// Extracts and prints the dividend history for a single ticker. Useful
// for checking the parser against one page without a full crawl.
func main() {
	_ = godotenv.Load()

	ticker := "FIVE"
	if len(os.Args) > 1 {
		ticker = os.Args[1]
	}

	log.Printf("Parsing dividend history for %s", ticker)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "https://xn--80aeiahhn9aobclif2kuc.xn--p1ai"
	}
	metadataDir := os.Getenv("METADATA_DIR")
	if metadataDir == "" {
		metadataDir = "metadata"
	}

	mappingsPath := filepath.Join(metadataDir, "ticker_mappings.json")
	mappings, err := mapper.New(baseURL).LoadOrFetch(mappingsPath)
	if err != nil {
		log.Fatalf("Failed to load ticker mappings: %v", err)
	}

	urlPath, err := mapper.Resolve(mappings, ticker)
	if err != nil {
		log.Fatalf("Unknown ticker: %v", err)
	}

	html, _, err := fetcher.New(baseURL, 2*time.Second, nil).FetchPage(ticker, urlPath)
	if err != nil {
		log.Fatalf("Failed to fetch page: %v", err)
	}

	ordinary, preferred, err := parser.Extract(html)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	history := models.NewDividendHistory(ticker, ordinary, preferred)

	fmt.Printf("\nDividend history for %s (ordinary shares):\n", ticker)
	printRecords(history.Ordinary)
	if len(history.Preferred) > 0 {
		fmt.Printf("\nDividend history for %s (preferred shares):\n", ticker)
		printRecords(history.Preferred)
	}

	store, err := storage.NewCSVStore("data")
	if err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := store.WriteHistory(history); err != nil {
		log.Fatalf("Failed to save CSV: %v", err)
	}
}

func printRecords(records []models.DividendRecord) {
	fmt.Printf("%-14s %-6s %-12s %s\n", "closing_date", "year", "period_type", "dividend_value")
	for _, record := range records {
		closingDate := ""
		if record.ClosingDate != nil {
			closingDate = record.ClosingDate.Format("2006-01-02")
		}
		fmt.Printf("%-14s %-6d %-12s %g\n", closingDate, record.Year, record.PeriodType, record.Value)
	}
}
