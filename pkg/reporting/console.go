package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct {
	out io.Writer
}

// NewDefaultConsoleReporter creates a new console reporter writing to stdout
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to the given writer
func NewConsoleReporterTo(w io.Writer) *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: w}
}

// OutputSummary prints the portfolio summary as a rounded table
func (r *DefaultConsoleReporter) OutputSummary(report *SessionReport) {
	s := report.Summary

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("PORTFOLIO SUMMARY")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Symbol", report.Symbol},
		{"⏰ Interval", report.Interval},
		{"💰 Balance", fmt.Sprintf("$%.2f", s.Balance)},
		{"📈 Daily PnL", fmt.Sprintf("$%.2f", s.DailyPnL)},
		{"🔄 Daily Trades", fmt.Sprintf("%d", s.DailyTrades)},
		{"📂 Open Positions", fmt.Sprintf("%d", s.OpenPositions)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"🎯 Total Risk", fmt.Sprintf("$%.2f (%.1f%%)", s.TotalRisk, s.RiskPercentage)},
		{"🎯 Available Risk", fmt.Sprintf("$%.2f", s.AvailableRisk)},
		{"✅ Win Rate", fmt.Sprintf("%.1f%%", s.WinRate*100)},
		{"💹 Avg Win / Loss", fmt.Sprintf("$%.2f / $%.2f", s.AvgWin, s.AvgLoss)},
		{"🔄 Total Trades", fmt.Sprintf("%d", s.TotalTrades)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 25, WidthMax: 40, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// OutputTrades prints the closed trade history as a table
func (r *DefaultConsoleReporter) OutputTrades(report *SessionReport) {
	if len(report.Trades) == 0 {
		fmt.Fprintln(r.out, "No closed trades yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("TRADE HISTORY")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"#", "Closed At", "Symbol", "Side", "Entry", "Close", "Size", "PnL", "W/L"})

	var totalPnL float64
	for i, tr := range report.Trades {
		totalPnL += tr.PnL
		winLoss := "W"
		if tr.PnL < 0 {
			winLoss = "L"
		}
		t.AppendRow(table.Row{
			i + 1,
			tr.ClosedAt.Format("2006-01-02 15:04"),
			tr.Symbol,
			tr.Side,
			fmt.Sprintf("%.2f", tr.EntryPrice),
			fmt.Sprintf("%.2f", tr.ClosePrice),
			fmt.Sprintf("%.4f", tr.Size),
			fmt.Sprintf("$%.2f", tr.PnL),
			winLoss,
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "", "", "TOTAL", fmt.Sprintf("$%.2f", totalPnL), ""})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 8, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}
