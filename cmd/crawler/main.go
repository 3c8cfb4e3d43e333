package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"divregistry-crawler/internal/cache"
	"divregistry-crawler/internal/fetcher"
	"divregistry-crawler/internal/mapper"
	"divregistry-crawler/internal/models"
	"divregistry-crawler/internal/parser"
	"divregistry-crawler/internal/storage"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// The source site lives on a punycode domain (закрытияреестров.рф).
const defaultBaseURL = "https://xn--80aeiahhn9aobclif2kuc.xn--p1ai"

func main() {
	// Load environment variables
	_ = godotenv.Load()

	// Setup logging
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Starting registry-closing dividend crawler...")

	baseURL := envOr("BASE_URL", defaultBaseURL)
	dataDir := envOr("DATA_DIR", "data")
	metadataDir := envOr("METADATA_DIR", "metadata")
	delay := time.Duration(envIntOr("REQUEST_DELAY_SEC", 2)) * time.Second
	cacheTTL := time.Duration(envIntOr("CACHE_TTL_HOURS", 24)) * time.Hour

	store, err := storage.NewCSVStore(dataDir)
	if err != nil {
		logger.Fatalf("Failed to create data directory: %v", err)
	}

	// Load the ticker mapping, scraping the index page on first run
	mappingsPath := filepath.Join(metadataDir, "ticker_mappings.json")
	mappings, err := mapper.New(baseURL).LoadOrFetch(mappingsPath)
	if err != nil {
		logger.Fatalf("Failed to load ticker mappings: %v", err)
	}
	logger.Infof("Processing %d tickers", len(mappings))

	pages := cache.NewPageCache(filepath.Join(metadataDir, "page_cache"), cacheTTL)
	if err := pages.CleanExpired(); err != nil {
		logger.Warnf("Failed to clean page cache: %v", err)
	}
	pageFetcher := fetcher.New(baseURL, delay, pages)

	summary := &models.CrawlSummary{}
	tickers := sortedTickers(mappings)

	for i, ticker := range tickers {
		logger.Infof("[%d/%d] Processing %s", i+1, len(tickers), ticker)

		fromCache, err := crawlTicker(ticker, mappings, pageFetcher, store, logger)
		if err != nil {
			logger.Errorf("Failed to process %s: %v", ticker, err)
			summary.AddFailure(ticker, err)
		} else {
			summary.AddSuccess(ticker)
		}

		// Pace requests that actually hit the site
		if !fromCache && i < len(tickers)-1 {
			time.Sleep(delay)
		}
	}

	summaryPath := filepath.Join(metadataDir, "parsing_summary.json")
	if err := saveToJSON(summaryPath, summary); err != nil {
		logger.Errorf("Failed to save crawl summary: %v", err)
	} else {
		logger.Infof("Crawl summary saved to %s", summaryPath)
	}

	logger.Infof("Crawl complete: %d succeeded, %d failed of %d processed",
		summary.SuccessCount, summary.FailedCount, summary.TotalProcessed)
}

// crawlTicker runs one ticker through fetch, extraction and persistence.
func crawlTicker(ticker string, mappings map[string]string, pageFetcher *fetcher.Fetcher,
	store *storage.CSVStore, logger *logrus.Logger) (fromCache bool, err error) {

	urlPath, err := mapper.Resolve(mappings, ticker)
	if err != nil {
		return false, err
	}

	html, fromCache, err := pageFetcher.FetchPage(ticker, urlPath)
	if err != nil {
		return fromCache, err
	}

	ordinary, preferred, err := parser.Extract(html)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyResult) {
			logger.Warnf("No dividend history for %s", ticker)
		}
		return fromCache, err
	}

	history := models.NewDividendHistory(ticker, ordinary, preferred)
	if err := store.WriteHistory(history); err != nil {
		return fromCache, err
	}

	logger.Infof("Extracted %d ordinary and %d preferred records for %s",
		len(history.Ordinary), len(history.Preferred), ticker)
	return fromCache, nil
}

func sortedTickers(mappings map[string]string) []string {
	tickers := make([]string, 0, len(mappings))
	for ticker := range mappings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func saveToJSON(filename string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, jsonData, 0644)
}
