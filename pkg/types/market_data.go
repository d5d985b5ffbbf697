package types

import "time"

type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Ticker holds the 24h rolling statistics for a symbol.
type Ticker struct {
	Symbol        string
	LastPrice     float64
	PriceChange   float64
	ChangePercent float64
	HighPrice     float64
	LowPrice      float64
	Volume        float64
	Turnover      float64
	Timestamp     time.Time
}

// MarketData is the market snapshot handed to the analysis engine:
// primary-timeframe candles plus optional candle series per timeframe.
type MarketData struct {
	Symbol       string
	CurrentPrice float64
	Change24h    float64 // 24h price change in percent
	Volume24h    float64 // 24h turnover in quote currency
	Klines       []OHLCV
	Timeframes   map[string][]OHLCV
	Timestamp    time.Time
}

// Closes extracts the close price series from the primary candles.
func (m *MarketData) Closes() []float64 {
	closes := make([]float64, len(m.Klines))
	for i, k := range m.Klines {
		closes[i] = k.Close
	}
	return closes
}
