// Package mapper maintains the ticker to URL-path mapping for the
// registry-closing site: scraping it from the index page and persisting
// it as JSON between runs.
package mapper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// ErrMappingNotFound means the ticker has no known page on the source
// site. Fatal for that ticker, the batch moves on.
var ErrMappingNotFound = errors.New("ticker not found in mapping")

// tickerLinkPattern matches index links of the form "Company (TICKER)".
var tickerLinkPattern = regexp.MustCompile(`(.*?)\s*\(([A-Z0-9\.]+)\)`)

// skipLinkTexts are navigation links on the index page that look like
// ticker entries but are not.
var skipLinkTexts = []string{
	">",
	"2025", "2024", "2023", "2022", "2021", "2020",
	"2019", "2018", "2017", "2016", "2015",
	"Дивидендные истории А-Я",
	"Страница Донатов",
}

func isSkippedLink(text string) bool {
	for _, skip := range skipLinkTexts {
		if text == skip {
			return true
		}
	}
	return false
}

// Mapper scrapes the ticker index page of the source site.
type Mapper struct {
	collector *colly.Collector
	logger    *logrus.Logger
	baseURL   string
}

// New creates a mapper for the given site root.
func New(baseURL string) *Mapper {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
	)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       2 * time.Second,
	})

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	return &Mapper{
		collector: c,
		logger:    logger,
		baseURL:   baseURL,
	}
}

// FetchMappings scrapes the index page and returns ticker -> URL path.
func (m *Mapper) FetchMappings() (map[string]string, error) {
	mappings := make(map[string]string)

	collector := m.collector.Clone()
	collector.OnHTML("a", func(e *colly.HTMLElement) {
		ticker, urlPath, ok := ParseTickerLink(e.Text, e.Attr("href"))
		if ok {
			mappings[ticker] = urlPath
		}
	})

	indexURL := fmt.Sprintf("%s/_/", m.baseURL)
	m.logger.Infof("Fetching ticker index from %s", indexURL)

	if err := collector.Visit(indexURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", indexURL, err)
	}
	collector.Wait()

	if len(mappings) == 0 {
		return nil, fmt.Errorf("no ticker links found on %s", indexURL)
	}

	m.logger.Infof("Mapped %d tickers", len(mappings))
	return mappings, nil
}

// ParseTickerLink extracts a ticker and its URL path from one index
// link. ok is false for navigation links and links without a ticker.
func ParseTickerLink(text, href string) (ticker, urlPath string, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" || href == "" || isSkippedLink(text) {
		return "", "", false
	}

	match := tickerLinkPattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}

	return match[2], strings.Trim(href, "/"), true
}

// Resolve looks a ticker up in the mapping, case-insensitively.
func Resolve(mappings map[string]string, ticker string) (string, error) {
	urlPath, exists := mappings[strings.ToUpper(ticker)]
	if !exists {
		return "", fmt.Errorf("%s: %w", ticker, ErrMappingNotFound)
	}
	return urlPath, nil
}

// LoadMappings reads a previously saved mapping file.
func LoadMappings(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	var mappings map[string]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to decode mapping file %s: %w", path, err)
	}
	return mappings, nil
}

// SaveMappings writes the mapping file, creating its directory if needed.
func SaveMappings(path string, mappings map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create mapping directory: %w", err)
	}

	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mappings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrFetch returns the saved mapping when present, otherwise scrapes
// the index page and saves the result for the next run.
func (m *Mapper) LoadOrFetch(path string) (map[string]string, error) {
	if mappings, err := LoadMappings(path); err == nil {
		m.logger.Infof("Loaded %d ticker mappings from %s", len(mappings), path)
		return mappings, nil
	}

	mappings, err := m.FetchMappings()
	if err != nil {
		return nil, err
	}
	if err := SaveMappings(path, mappings); err != nil {
		m.logger.Warnf("Failed to save ticker mappings: %v", err)
	}
	return mappings, nil
}
