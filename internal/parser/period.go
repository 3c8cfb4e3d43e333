package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"divregistry-crawler/internal/models"
)

// Pattern attempts per field, tried in priority order with the first
// match winning. Later entries are progressively laxer fallbacks.
var (
	closingDateRules = []*regexp.Regexp{
		regexp.MustCompile(`закрытие реестра (\d{1,2}\.\d{2}\.\d{4})`),
		regexp.MustCompile(`(\d{1,2}\.\d{2}\.\d{4})`),
	}
	yearRules = []*regexp.Regexp{
		regexp.MustCompile(`(?:^|\s)(\d{4})(?:\s|$)`),
		regexp.MustCompile(`(\d{4})`),
	}
)

var closingDateFormats = []string{
	"02.01.2006",
	"2.01.2006",
}

// periodFields is what the period cell yields: an optional registry
// closing date and the fiscal year the payment relates to.
type periodFields struct {
	closingDate *time.Time
	year        int
}

// firstMatch tries each rule against text and returns the first
// captured group.
func firstMatch(rules []*regexp.Regexp, text string) (string, bool) {
	for _, rule := range rules {
		if m := rule.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// parsePeriodFields extracts the closing date and payment year from the
// free-text period cell. A row with no resolvable year is unusable, so
// ok is false; an unparseable date only loses the date.
func parsePeriodFields(raw string) (periodFields, bool) {
	text := normalizeCell(raw)

	dateStr, hasDate := firstMatch(closingDateRules, text)
	if hasDate {
		dateStr = zeroPadDay(dateStr)
		// The date's own year must not be misread as the payment year:
		// a closing date in one calendar year can settle a dividend
		// attributed to a different fiscal year.
		dateYear := dateStr[strings.LastIndex(dateStr, ".")+1:]
		text = strings.ReplaceAll(text, dateYear, "")
	}

	yearStr, ok := firstMatch(yearRules, text)
	if !ok {
		// Last resort: the original, unstripped cell text.
		yearStr, ok = firstMatch(yearRules[1:], normalizeCell(raw))
	}
	if !ok {
		return periodFields{}, false
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return periodFields{}, false
	}

	fields := periodFields{year: year}
	if hasDate {
		for _, format := range closingDateFormats {
			if t, err := time.Parse(format, dateStr); err == nil {
				fields.closingDate = &t
				break
			}
		}
	}
	return fields, true
}

// periodTypeRules map source phrase variants to the period category.
// Checked in order, first match wins, full year is the default.
var periodTypeRules = []struct {
	keywords []string
	period   models.PeriodType
}{
	{[]string{"i полугодие", "1 полугодие", "і полугодие"}, models.PeriodHalfYear},
	{[]string{"9 месяцев", "9 мес"}, models.PeriodNineMonths},
	{[]string{"6 месяцев", "6 мес"}, models.PeriodSixMonths},
	{[]string{"3 месяца", "3 мес"}, models.PeriodThreeMonths},
}

// classifyPeriodType maps the period cell text to its category.
func classifyPeriodType(text string) models.PeriodType {
	lower := strings.ToLower(normalizeCell(text))
	for _, rule := range periodTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.period
			}
		}
	}
	return models.PeriodFullYear
}

// normalizeCell flattens embedded line breaks and non-breaking spaces
// the site uses inside table cells.
func normalizeCell(raw string) string {
	text := strings.ReplaceAll(raw, "\n", " ")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.TrimSpace(text)
}

// zeroPadDay pads a single-digit day in a D.MM.YYYY date to two digits.
func zeroPadDay(date string) string {
	if strings.Index(date, ".") == 1 {
		return "0" + date
	}
	return date
}
