package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tableKeywords mark a table as dividend history. Table position on the
// page is not stable across tickers, so detection is content based.
var tableKeywords = []string{"период", "дивиденд", "выплат", "акци"}

// findDividendTable returns the first table, in document order, whose
// concatenated row text mentions any dividend keyword.
func findDividendTable(doc *goquery.Document) *goquery.Selection {
	var target *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return true
		}

		texts := rows.Map(func(_ int, row *goquery.Selection) string {
			return strings.ToLower(strings.TrimSpace(row.Text()))
		})
		tableText := strings.Join(texts, " ")

		for _, keyword := range tableKeywords {
			if strings.Contains(tableText, keyword) {
				target = table
				return false
			}
		}
		return true
	})

	return target
}
