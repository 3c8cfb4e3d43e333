package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// noDividendSentinel is the site's explicit "decided not to pay" marker.
// It is a valid zero payment, not a parse failure.
const noDividendSentinel = "РЕШЕНИЕ ДИВИДЕНДЫ НЕ ВЫПЛАЧИВАТЬ"

// Grouped digits with single-space thousands separators and an optional
// decimal comma; the ruble suffix is tried first, then dropped.
var amountRules = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\s\d{3})*(?:,\d+)?)\s*руб\.`),
	regexp.MustCompile(`(\d+(?:\s\d{3})*(?:,\d+)?)`),
}

// parseAmount extracts the dividend value for one share class. ok is
// false when the cell has no usable number, which drops that share
// class only.
func parseAmount(raw string) (float64, bool) {
	text := normalizeCell(raw)
	if strings.Contains(text, noDividendSentinel) {
		return 0, true
	}

	match, ok := firstMatch(amountRules, text)
	if !ok {
		return 0, false
	}

	// Strip thousands separators, decimal comma becomes a dot.
	normalized := strings.Join(strings.Fields(match), "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
