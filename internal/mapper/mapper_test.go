package mapper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTickerLink(t *testing.T) {
	cases := []struct {
		name         string
		text         string
		href         string
		expectOK     bool
		expectTicker string
		expectPath   string
	}{
		{
			name:         "company with ticker",
			text:         "Сбербанк (SBER)",
			href:         "/sber/",
			expectOK:     true,
			expectTicker: "SBER",
			expectPath:   "sber",
		},
		{
			name:         "ticker with dot",
			text:         "Группа компаний (ABC.D)",
			href:         "abcd",
			expectOK:     true,
			expectTicker: "ABC.D",
			expectPath:   "abcd",
		},
		{
			name:     "navigation year link",
			text:     "2024",
			href:     "/2024/",
			expectOK: false,
		},
		{
			name:     "navigation index link",
			text:     "Дивидендные истории А-Я",
			href:     "/_/",
			expectOK: false,
		},
		{
			name:     "no ticker in text",
			text:     "Просто ссылка",
			href:     "/somewhere/",
			expectOK: false,
		},
		{
			name:     "empty href",
			text:     "Сбербанк (SBER)",
			href:     "",
			expectOK: false,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			ticker, urlPath, ok := ParseTickerLink(test.text, test.href)
			require.Equal(t, test.expectOK, ok)
			if test.expectOK {
				require.Equal(t, test.expectTicker, ticker)
				require.Equal(t, test.expectPath, urlPath)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	mappings := map[string]string{"SBER": "sber", "GAZP": "gazprom"}

	urlPath, err := Resolve(mappings, "sber")
	require.NoError(t, err)
	require.Equal(t, "sber", urlPath)

	_, err = Resolve(mappings, "NONE")
	require.ErrorIs(t, err, ErrMappingNotFound)
}

func TestSaveAndLoadMappings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata", "ticker_mappings.json")
	mappings := map[string]string{"SBER": "sber", "LKOH": "lukoil"}

	require.NoError(t, SaveMappings(path, mappings))

	loaded, err := LoadMappings(path)
	require.NoError(t, err)
	require.Equal(t, mappings, loaded)
}

func TestLoadMappingsMissingFile(t *testing.T) {
	_, err := LoadMappings(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
