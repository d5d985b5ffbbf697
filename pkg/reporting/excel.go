package reporting

import (
	"github.com/xuri/excelize/v2"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteTradesXLSX writes the trade history and portfolio summary to an Excel workbook
func (r *DefaultExcelReporter) WriteTradesXLSX(report *SessionReport, path string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(summarySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, report, styles); err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createExcelStyles creates the workbook styles
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	// Header style - Dark blue-gray background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Currency style (right aligned, $ format)
	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Percentage style (right aligned, % format)
	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 9,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Base style (light borders)
	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Winning trade style (light green background)
	styles.WinStyle, err = fx.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E6FFE6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Losing trade style (light red background)
	styles.LossStyle, err = fx.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFE6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E0E0E0", Style: 1},
			{Type: "right", Color: "E0E0E0", Style: 1},
			{Type: "bottom", Color: "E0E0E0", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Summary style (bold with gray background)
	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F0F0F0"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

// writeTradesSheet fills the trade history sheet
func (r *DefaultExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, report *SessionReport, styles ExcelStyles) error {
	headers := []string{"Closed At", "Symbol", "Side", "Entry Price", "Close Price", "Size", "PnL $", "Confidence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	row := 2
	var totalPnL float64
	for _, t := range report.Trades {
		totalPnL += t.PnL

		rowStyle := styles.WinStyle
		if t.PnL < 0 {
			rowStyle = styles.LossStyle
		}

		values := []interface{}{
			t.ClosedAt.Format("2006-01-02 15:04:05"),
			t.Symbol,
			t.Side,
			t.EntryPrice,
			t.ClosePrice,
			t.Size,
			t.PnL,
			t.Confidence,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			fx.SetCellValue(sheet, cell, v)
			fx.SetCellStyle(sheet, cell, cell, rowStyle)
		}

		// Currency formatting for the price and PnL columns
		for _, col := range []int{4, 5, 7} {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			fx.SetCellStyle(sheet, cell, cell, styles.CurrencyStyle)
		}

		row++
	}

	// Total row
	totalCell, _ := excelize.CoordinatesToCellName(6, row)
	fx.SetCellValue(sheet, totalCell, "TOTAL")
	fx.SetCellStyle(sheet, totalCell, totalCell, styles.SummaryStyle)

	pnlCell, _ := excelize.CoordinatesToCellName(7, row)
	fx.SetCellValue(sheet, pnlCell, totalPnL)
	fx.SetCellStyle(sheet, pnlCell, pnlCell, styles.SummaryStyle)

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "H", 13)

	return nil
}

// writeSummarySheet fills the portfolio summary sheet
func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *SessionReport, styles ExcelStyles) error {
	s := report.Summary

	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Symbol", report.Symbol, styles.BaseStyle},
		{"Interval", report.Interval, styles.BaseStyle},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05"), styles.BaseStyle},
		{"Balance", s.Balance, styles.CurrencyStyle},
		{"Daily PnL", s.DailyPnL, styles.CurrencyStyle},
		{"Daily Trades", s.DailyTrades, styles.BaseStyle},
		{"Open Positions", s.OpenPositions, styles.BaseStyle},
		{"Total Risk", s.TotalRisk, styles.CurrencyStyle},
		{"Available Risk", s.AvailableRisk, styles.CurrencyStyle},
		{"Risk Percentage", s.RiskPercentage / 100, styles.PercentStyle},
		{"Win Rate", s.WinRate, styles.PercentStyle},
		{"Avg Win", s.AvgWin, styles.CurrencyStyle},
		{"Avg Loss", s.AvgLoss, styles.CurrencyStyle},
		{"Total Trades", s.TotalTrades, styles.BaseStyle},
	}

	for i, entry := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		fx.SetCellValue(sheet, labelCell, entry.label)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.HeaderStyle)

		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		fx.SetCellValue(sheet, valueCell, entry.value)
		fx.SetCellStyle(sheet, valueCell, valueCell, entry.style)
	}

	fx.SetColWidth(sheet, "A", "A", 18)
	fx.SetColWidth(sheet, "B", "B", 22)

	return nil
}

// Package-level convenience function
func WriteTradesXLSX(report *SessionReport, path string) error {
	reporter := NewDefaultExcelReporter()
	return reporter.WriteTradesXLSX(report, path)
}
