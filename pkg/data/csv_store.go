package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

const csvTimeFormat = "2006-01-02 15:04:05"

// CSVStore persists candle history as CSV files, one file per symbol and
// timeframe, for offline analysis and prompt experiments.
type CSVStore struct {
	dir string
}

// NewCSVStore creates a store rooted at dir.
func NewCSVStore(dir string) *CSVStore {
	if dir == "" {
		dir = "data"
	}
	return &CSVStore{dir: dir}
}

// Path returns the file path for a symbol and timeframe.
func (s *CSVStore) Path(symbol, timeframe string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", symbol, timeframe))
}

// Save writes the candle series, replacing any existing file.
func (s *CSVStore) Save(symbol, timeframe string, candles []types.OHLCV) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	file, err := os.Create(s.Path(symbol, timeframe))
	if err != nil {
		return fmt.Errorf("failed to create data file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	for _, c := range candles {
		record := []string{
			c.Timestamp.UTC().Format(csvTimeFormat),
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatFloat(c.Volume, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the candle series for a symbol and timeframe. Malformed rows are
// logged and skipped.
func (s *CSVStore) Load(symbol, timeframe string) ([]types.OHLCV, error) {
	file, err := os.Open(s.Path(symbol, timeframe))
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header.
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	var candles []types.OHLCV
	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}
		lineNum++

		if len(record) < 6 {
			log.Printf("Insufficient columns at line %d, skipping", lineNum)
			continue
		}

		timestamp, err := time.Parse(csvTimeFormat, record[0])
		if err != nil {
			log.Printf("Invalid timestamp %q at line %d, skipping", record[0], lineNum)
			continue
		}

		values := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			values[i], err = strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				log.Printf("Invalid value %q at line %d, skipping", record[i+1], lineNum)
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		candles = append(candles, types.OHLCV{
			Timestamp: timestamp,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    values[4],
		})
	}

	return candles, nil
}

// Validate checks price sanity and chronological order.
func Validate(candles []types.OHLCV) error {
	if len(candles) == 0 {
		return fmt.Errorf("no data provided")
	}

	for i, c := range candles {
		if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}
		if c.High < c.Low {
			return fmt.Errorf("invalid price data at index %d: high %.4f below low %.4f", i, c.High, c.Low)
		}
		if c.High < c.Open || c.High < c.Close {
			return fmt.Errorf("invalid price data at index %d: high %.4f below open/close", i, c.High)
		}
		if c.Low > c.Open || c.Low > c.Close {
			return fmt.Errorf("invalid price data at index %d: low %.4f above open/close", i, c.Low)
		}
		if i > 0 && c.Timestamp.Before(candles[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d", i)
		}
	}

	return nil
}
