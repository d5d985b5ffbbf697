package reporting

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kdemidoff/trading-ai-bot/internal/risk"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

func sampleReport() *SessionReport {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &SessionReport{
		Symbol:      "BTCUSDT",
		Interval:    "1h",
		GeneratedAt: base.Add(6 * time.Hour),
		Summary: risk.PortfolioSummary{
			Balance:        10000,
			DailyPnL:       150,
			DailyTrades:    2,
			OpenPositions:  1,
			TotalRisk:      200,
			RiskPercentage: 2.0,
			AvailableRisk:  400,
			WinRate:        0.5,
			AvgWin:         250,
			AvgLoss:        100,
			TotalTrades:    2,
		},
		Trades: []risk.TradeRecord{
			{
				Symbol:     "BTCUSDT",
				Side:       "long",
				EntryPrice: 100,
				ClosePrice: 125,
				Size:       10,
				PnL:        250,
				ClosedAt:   base,
				Confidence: 0.8,
			},
			{
				Symbol:     "BTCUSDT",
				Side:       "short",
				EntryPrice: 120,
				ClosePrice: 130,
				Size:       10,
				PnL:        -100,
				ClosedAt:   base.Add(2 * time.Hour),
				Confidence: 0.6,
			},
		},
	}
}

func TestDefaultOutputDir(t *testing.T) {
	assert.Equal(t, filepath.Join("results", "BTCUSDT_1h"), DefaultOutputDir("btcusdt", "1H"))
	assert.Equal(t, filepath.Join("results", "UNKNOWN_unknown"), DefaultOutputDir("", ""))
}

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "report.json")

	require.NoError(t, ensureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteTradesCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	report := sampleReport()

	require.NoError(t, WriteTradesCSV(report, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// header + 2 trades + summary row
	require.Len(t, rows, 4)
	assert.Equal(t, "Closed_At", rows[0][0])
	assert.Equal(t, "long", rows[1][2])
	assert.Equal(t, "250.00", rows[1][6])
	assert.Equal(t, "W", rows[1][9])
	assert.Equal(t, "L", rows[2][9])
	assert.Contains(t, rows[3][9], "total_pnl=$150.00")
	assert.Contains(t, rows[3][9], "win_rate=50.0%")
}

func TestWriteTradesCSV_DelegatesToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.xlsx")

	require.NoError(t, WriteTradesCSV(sampleReport(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	header, err := fx.GetCellValue("Trades", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Closed At", header)

	symbol, err := fx.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", symbol)
}

func TestWriteTradesXLSX_TotalsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.xlsx")
	report := sampleReport()

	require.NoError(t, WriteTradesXLSX(report, path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	// total row sits below the two trade rows
	label, err := fx.GetCellValue("Trades", "F4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	total, err := fx.GetCellValue("Trades", "G4")
	require.NoError(t, err)
	assert.Equal(t, "150", total)
}

func TestWriteSummaryJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := sampleReport()

	require.NoError(t, WriteSummaryJSON(report, path))

	loaded, err := ReadSummaryJSON(path)
	require.NoError(t, err)

	assert.Equal(t, report.Symbol, loaded.Symbol)
	assert.Equal(t, report.Summary.Balance, loaded.Summary.Balance)
	require.Len(t, loaded.Trades, 2)
	assert.Equal(t, 250.0, loaded.Trades[0].PnL)
}

func TestReadSummaryJSON_MissingFile(t *testing.T) {
	_, err := ReadSummaryJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConsoleReporter_OutputSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)

	r.OutputSummary(sampleReport())

	out := buf.String()
	assert.Contains(t, out, "PORTFOLIO SUMMARY")
	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "$10000.00")
}

func TestConsoleReporter_OutputTrades(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)

	r.OutputTrades(sampleReport())

	out := buf.String()
	assert.Contains(t, out, "TRADE HISTORY")
	assert.Contains(t, out, "$250.00")
	assert.Contains(t, out, "$150.00")
}

func TestConsoleReporter_OutputTrades_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporterTo(&buf)

	r.OutputTrades(&SessionReport{Symbol: "BTCUSDT"})

	assert.True(t, strings.Contains(buf.String(), "No closed trades yet"))
}

func TestWriteCandlesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.json")
	candles := []types.OHLCV{
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
		{Timestamp: time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC), Open: 100.5, High: 102, Low: 100, Close: 101.5, Volume: 1200},
	}

	require.NoError(t, WriteCandlesJSON("BTCUSDT", "1h", candles, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"symbol": "BTCUSDT"`)
	assert.Contains(t, string(data), `"count": 2`)
}

func TestWriteCandlesXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.xlsx")
	candles := []types.OHLCV{
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
	}

	require.NoError(t, WriteCandlesXLSX("BTCUSDT", "1h", candles, path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	header, err := fx.GetCellValue("BTCUSDT 1h", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", header)

	open, err := fx.GetCellValue("BTCUSDT 1h", "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", open)
}
