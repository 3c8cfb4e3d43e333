package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expectOK bool
		expect   float64
	}{
		{
			name:     "thousands separator and decimal comma",
			text:     "1 234,56 руб.",
			expectOK: true,
			expect:   1234.56,
		},
		{
			name:     "no currency suffix",
			text:     "1234,5",
			expectOK: true,
			expect:   1234.5,
		},
		{
			name:     "plain integer with suffix",
			text:     "150 руб.",
			expectOK: true,
			expect:   150,
		},
		{
			name:     "sub-ruble value",
			text:     "0,51 руб. на акцию",
			expectOK: true,
			expect:   0.51,
		},
		{
			name:     "non-breaking thousands separator",
			text:     "12\u00a0345,6 руб.",
			expectOK: true,
			expect:   12345.6,
		},
		{
			name:     "no-dividend decision is a valid zero",
			text:     "РЕШЕНИЕ ДИВИДЕНДЫ НЕ ВЫПЛАЧИВАТЬ",
			expectOK: true,
			expect:   0,
		},
		{
			name:     "no numeric value",
			text:     "данные отсутствуют",
			expectOK: false,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			value, ok := parseAmount(test.text)
			require.Equal(t, test.expectOK, ok)
			if test.expectOK {
				require.Equal(t, test.expect, value)
				require.GreaterOrEqual(t, value, 0.0)
			}
		})
	}
}
