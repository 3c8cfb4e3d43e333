package models

import (
	"sort"
	"time"
)

// PeriodType is the fiscal interval a dividend payment covers.
type PeriodType string

const (
	PeriodFullYear    PeriodType = "full year"
	PeriodHalfYear    PeriodType = "half year"
	PeriodNineMonths  PeriodType = "9 months"
	PeriodSixMonths   PeriodType = "6 months"
	PeriodThreeMonths PeriodType = "3 months"
)

// ShareClass distinguishes ordinary shares from preferred shares.
// Preferred-share output is written under the ticker plus the "P" marker.
type ShareClass string

const (
	ShareOrdinary  ShareClass = "ordinary"
	SharePreferred ShareClass = "preferred"
)

// DividendRecord represents a single dividend payment observation.
// Records are immutable once assembled; a table row yields zero, one or
// two of them (ordinary and, where the table carries the column, preferred).
type DividendRecord struct {
	ClosingDate *time.Time `json:"closingDate,omitempty"` // Registry closing date, nil when the source text has none
	Year        int        `json:"year"`                  // Fiscal year the payment relates to, always set
	PeriodType  PeriodType `json:"periodType"`            // Interval the payment covers
	Value       float64    `json:"value"`                 // Dividend per share in rubles, 0.0 means "declared not to pay"
}

// DividendHistory represents everything extracted from one ticker's page.
type DividendHistory struct {
	Ticker    string           `json:"ticker"`
	Ordinary  []DividendRecord `json:"ordinary"`
	Preferred []DividendRecord `json:"preferred,omitempty"`
	Stats     DividendStats    `json:"stats"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// DividendStats contains calculated statistics for a dividend history.
type DividendStats struct {
	OrdinaryPayments  int     `json:"ordinaryPayments"`
	PreferredPayments int     `json:"preferredPayments"`
	LatestYear        int     `json:"latestYear"`
	LastValue         float64 `json:"lastValue"`
}

// NewDividendHistory builds a history from the two extracted record
// sequences, sorts both by year descending and fills in the stats.
func NewDividendHistory(ticker string, ordinary, preferred []DividendRecord) *DividendHistory {
	SortByYearDesc(ordinary)
	SortByYearDesc(preferred)

	history := &DividendHistory{
		Ticker:    ticker,
		Ordinary:  ordinary,
		Preferred: preferred,
		UpdatedAt: time.Now(),
	}

	history.Stats = DividendStats{
		OrdinaryPayments:  len(ordinary),
		PreferredPayments: len(preferred),
	}
	if len(ordinary) > 0 {
		history.Stats.LatestYear = ordinary[0].Year
		history.Stats.LastValue = ordinary[0].Value
	} else if len(preferred) > 0 {
		history.Stats.LatestYear = preferred[0].Year
		history.Stats.LastValue = preferred[0].Value
	}

	return history
}

// SortByYearDesc orders records newest fiscal year first. The extractor
// emits rows in page order, which the source does not guarantee.
func SortByYearDesc(records []DividendRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Year > records[j].Year
	})
}

// FailedTicker records one ticker the crawl could not process.
type FailedTicker struct {
	Ticker string `json:"ticker"`
	Error  string `json:"error"`
}

// CrawlSummary aggregates the outcome of a batch run over all tickers.
type CrawlSummary struct {
	Success        []string       `json:"success"`
	Failed         []FailedTicker `json:"failed"`
	TotalProcessed int            `json:"totalProcessed"`
	SuccessCount   int            `json:"successCount"`
	FailedCount    int            `json:"failedCount"`
}

// AddSuccess records a processed ticker.
func (s *CrawlSummary) AddSuccess(ticker string) {
	s.Success = append(s.Success, ticker)
	s.SuccessCount++
	s.TotalProcessed++
}

// AddFailure records a ticker that could not be processed.
func (s *CrawlSummary) AddFailure(ticker string, err error) {
	s.Failed = append(s.Failed, FailedTicker{Ticker: ticker, Error: err.Error()})
	s.FailedCount++
	s.TotalProcessed++
}
