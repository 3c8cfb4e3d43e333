// Package storage persists extracted dividend histories as per-ticker
// CSV files.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"divregistry-crawler/internal/models"

	"github.com/sirupsen/logrus"
)

// preferredMarker is appended to the ticker in the preferred-share
// output filename: SBER.csv vs SBERP.csv.
const preferredMarker = "P"

var csvHeader = []string{"closing_date", "year", "period_type", "dividend_value"}

// CSVStore writes dividend histories under a data directory, one file
// per ticker and share class.
type CSVStore struct {
	dataDir string
	logger  *logrus.Logger
}

// NewCSVStore creates the data directory and a store over it.
func NewCSVStore(dataDir string) (*CSVStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	return &CSVStore{
		dataDir: dataDir,
		logger:  logger,
	}, nil
}

// WriteHistory writes the ordinary and, when present, preferred record
// files for one ticker. Empty sequences produce no file.
func (s *CSVStore) WriteHistory(history *models.DividendHistory) error {
	if len(history.Ordinary) > 0 {
		path := filepath.Join(s.dataDir, history.Ticker+".csv")
		if err := writeRecords(path, history.Ordinary); err != nil {
			return err
		}
		s.logger.Infof("Saved %d ordinary records to %s", len(history.Ordinary), path)
	}

	if len(history.Preferred) > 0 {
		path := filepath.Join(s.dataDir, history.Ticker+preferredMarker+".csv")
		if err := writeRecords(path, history.Preferred); err != nil {
			return err
		}
		s.logger.Infof("Saved %d preferred records to %s", len(history.Preferred), path)
	}

	return nil
}

func writeRecords(path string, records []models.DividendRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		closingDate := ""
		if record.ClosingDate != nil {
			closingDate = record.ClosingDate.Format("2006-01-02")
		}

		row := []string{
			closingDate,
			strconv.Itoa(record.Year),
			string(record.PeriodType),
			strconv.FormatFloat(record.Value, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
