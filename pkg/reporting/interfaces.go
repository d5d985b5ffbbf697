package reporting

import (
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/risk"
)

// Package reporting provides output generation for trading session results

// SessionReport bundles everything a finished (or running) session can report on.
type SessionReport struct {
	Symbol      string                `json:"symbol"`
	Interval    string                `json:"interval"`
	GeneratedAt time.Time             `json:"generated_at"`
	Summary     risk.PortfolioSummary `json:"summary"`
	Trades      []risk.TradeRecord    `json:"trades"`
}

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputSummary(report *SessionReport)
	OutputTrades(report *SessionReport)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteTradesCSV(report *SessionReport, path string) error
	WriteTradesXLSX(report *SessionReport, path string) error
	WriteSummaryJSON(report *SessionReport, path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle   int
	CurrencyStyle int
	PercentStyle  int
	BaseStyle     int
	WinStyle      int
	LossStyle     int
	SummaryStyle  int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	EnableFiles     bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
}
