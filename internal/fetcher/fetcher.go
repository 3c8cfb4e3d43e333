// Package fetcher retrieves per-ticker pages from the source site. It
// hands raw HTML to the caller; extraction never touches the network.
package fetcher

import (
	"fmt"
	"strings"
	"time"

	"divregistry-crawler/internal/cache"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads ticker pages, rate limited per domain, with an
// optional page cache in front of the network.
type Fetcher struct {
	collector *colly.Collector
	logger    *logrus.Logger
	baseURL   string
	pages     *cache.PageCache
}

// New creates a fetcher for the given site root. pages may be nil to
// fetch without caching.
func New(baseURL string, delay time.Duration, pages *cache.PageCache) *Fetcher {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
	)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       delay,
	})

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	return &Fetcher{
		collector: c,
		logger:    logger,
		baseURL:   baseURL,
		pages:     pages,
	}
}

// FetchPage returns the HTML of one ticker's page. fromCache tells the
// caller whether the network was hit, so it can skip its pacing delay.
func (f *Fetcher) FetchPage(ticker, urlPath string) (html string, fromCache bool, err error) {
	if f.pages != nil {
		if cached, found, err := f.pages.Get(ticker); err == nil && found {
			return cached, true, nil
		}
	}

	url := fmt.Sprintf("%s/%s/", f.baseURL, strings.Trim(urlPath, "/"))
	f.logger.Infof("Fetching %s from %s", ticker, url)

	var body string
	collector := f.collector.Clone()
	collector.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	if err := collector.Visit(url); err != nil {
		return "", false, fmt.Errorf("failed to visit %s: %w", url, err)
	}
	collector.Wait()

	if body == "" {
		return "", false, fmt.Errorf("empty response from %s", url)
	}

	if f.pages != nil {
		if err := f.pages.Set(ticker, body); err != nil {
			f.logger.Warnf("Failed to cache page for %s: %v", ticker, err)
		}
	}
	return body, false, nil
}
