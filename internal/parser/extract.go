// Package parser turns one ticker's already-fetched page into normalized
// dividend records. It performs no I/O: fetching, pacing and persistence
// belong to the caller.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"divregistry-crawler/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrTableNotFound means no table on the page matched the dividend
	// keywords. Either the page layout changed or the URL is wrong.
	ErrTableNotFound = errors.New("no dividend table found")

	// ErrEmptyResult means the table was located but no row survived
	// parsing, which is how a ticker with no payment history looks.
	ErrEmptyResult = errors.New("dividend table has no parseable rows")
)

// Extract locates the dividend table in a page and returns the ordinary
// and preferred share records in row encounter order. Rows that fail to
// yield a year are dropped whole; a share class whose amount cell is
// unparseable is dropped without touching the other class.
func Extract(html string) (ordinary, preferred []models.DividendRecord, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse page: %w", err)
	}

	table := findDividendTable(doc)
	if table == nil {
		return nil, nil, ErrTableNotFound
	}

	state := &tableState{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td, th").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})

		row := classifyRow(cells, state)
		if row.kind == rowSkip {
			return
		}

		fields, ok := parsePeriodFields(row.period)
		if !ok {
			return
		}
		periodType := classifyPeriodType(row.period)

		if value, ok := parseAmount(row.ordinary); ok {
			ordinary = append(ordinary, models.DividendRecord{
				ClosingDate: fields.closingDate,
				Year:        fields.year,
				PeriodType:  periodType,
				Value:       value,
			})
		}

		if row.kind == rowOrdinaryPreferred {
			if value, ok := parseAmount(row.preferred); ok {
				preferred = append(preferred, models.DividendRecord{
					ClosingDate: fields.closingDate,
					Year:        fields.year,
					PeriodType:  periodType,
					Value:       value,
				})
			}
		}
	})

	if len(ordinary) == 0 && len(preferred) == 0 {
		return nil, nil, ErrEmptyResult
	}
	return ordinary, preferred, nil
}
