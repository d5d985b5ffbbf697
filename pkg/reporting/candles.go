package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// WriteCandlesJSON writes a candle series to a JSON file.
func WriteCandlesJSON(symbol, timeframe string, candles []types.OHLCV, path string) error {
	payload := struct {
		Symbol    string        `json:"symbol"`
		Timeframe string        `json:"timeframe"`
		Count     int           `json:"count"`
		Candles   []types.OHLCV `json:"candles"`
	}{
		Symbol:    symbol,
		Timeframe: timeframe,
		Count:     len(candles),
		Candles:   candles,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// WriteCandlesXLSX writes a candle series to an Excel workbook.
func WriteCandlesXLSX(symbol, timeframe string, candles []types.OHLCV, path string) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	sheet := fmt.Sprintf("%s %s", symbol, timeframe)
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	reporter := NewDefaultExcelReporter()
	styles, err := reporter.createExcelStyles(fx)
	if err != nil {
		return err
	}

	headers := []string{"Timestamp", "Open", "High", "Low", "Close", "Volume"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for row, c := range candles {
		values := []interface{}{
			c.Timestamp.Format("2006-01-02 15:04:05"),
			c.Open,
			c.High,
			c.Low,
			c.Close,
			c.Volume,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			fx.SetCellValue(sheet, cell, v)
			fx.SetCellStyle(sheet, cell, cell, styles.BaseStyle)
		}
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "F", 13)

	return fx.SaveAs(path)
}
