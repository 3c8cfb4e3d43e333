package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"divregistry-crawler/internal/models"

	"github.com/stretchr/testify/require"
)

func TestWriteHistory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	require.NoError(t, err)

	closing := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	history := &models.DividendHistory{
		Ticker: "SBER",
		Ordinary: []models.DividendRecord{
			{ClosingDate: &closing, Year: 2024, PeriodType: models.PeriodFullYear, Value: 33.3},
			{Year: 2023, PeriodType: models.PeriodNineMonths, Value: 0},
		},
		Preferred: []models.DividendRecord{
			{ClosingDate: &closing, Year: 2024, PeriodType: models.PeriodFullYear, Value: 33.3},
		},
	}

	require.NoError(t, store.WriteHistory(history))

	ordinaryCSV, err := os.ReadFile(filepath.Join(dir, "SBER.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"closing_date,year,period_type,dividend_value\n"+
			"2024-06-05,2024,full year,33.3\n"+
			",2023,9 months,0\n",
		string(ordinaryCSV))

	preferredCSV, err := os.ReadFile(filepath.Join(dir, "SBERP.csv"))
	require.NoError(t, err)
	require.Equal(t,
		"closing_date,year,period_type,dividend_value\n"+
			"2024-06-05,2024,full year,33.3\n",
		string(preferredCSV))
}

func TestWriteHistorySkipsEmptyClasses(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVStore(dir)
	require.NoError(t, err)

	history := &models.DividendHistory{
		Ticker: "GAZP",
		Ordinary: []models.DividendRecord{
			{Year: 2022, PeriodType: models.PeriodHalfYear, Value: 51.03},
		},
	}

	require.NoError(t, store.WriteHistory(history))

	_, err = os.Stat(filepath.Join(dir, "GAZP.csv"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "GAZPP.csv"))
	require.True(t, os.IsNotExist(err))
}
