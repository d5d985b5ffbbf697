package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteTradesCSV writes the closed trade history to a CSV file
func (r *DefaultCSVReporter) WriteTradesCSV(report *SessionReport, path string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	// If the user requests an Excel file, delegate to Excel writer
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteTradesXLSX(report, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Closed_At",
		"Symbol",
		"Side",
		"Entry_Price",
		"Close_Price",
		"Size",
		"PnL_$",
		"Return_%",
		"Confidence",
		"Win_Loss",
	}); err != nil {
		return err
	}

	var totalPnL float64
	var wins int

	for _, t := range report.Trades {
		totalPnL += t.PnL

		winLoss := "W"
		if t.PnL < 0 {
			winLoss = "L"
		} else {
			wins++
		}

		var returnPct float64
		if t.EntryPrice > 0 && t.Size > 0 {
			returnPct = t.PnL / (t.EntryPrice * t.Size) * 100
		}

		row := []string{
			t.ClosedAt.Format("2006-01-02 15:04:05"),
			t.Symbol,
			t.Side,
			fmt.Sprintf("%.8f", t.EntryPrice),
			fmt.Sprintf("%.8f", t.ClosePrice),
			fmt.Sprintf("%.6f", t.Size),
			fmt.Sprintf("%.2f", t.PnL),
			fmt.Sprintf("%.2f%%", returnPct),
			fmt.Sprintf("%.2f", t.Confidence),
			winLoss,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	winRate := 0.0
	if len(report.Trades) > 0 {
		winRate = float64(wins) / float64(len(report.Trades)) * 100
	}

	summary := fmt.Sprintf("SUMMARY: total_pnl=$%.2f; win_rate=%.1f%%; total_trades=%s",
		totalPnL, winRate, strconv.Itoa(len(report.Trades)))

	// Summary row with empty fields except the last column
	summaryRow := make([]string, 10)
	summaryRow[9] = summary
	if err := w.Write(summaryRow); err != nil {
		return err
	}

	return nil
}

// Package-level convenience function
func WriteTradesCSV(report *SessionReport, path string) error {
	reporter := NewDefaultCSVReporter()
	return reporter.WriteTradesCSV(report, path)
}
