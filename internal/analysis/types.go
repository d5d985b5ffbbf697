package analysis

import (
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/indicators"
)

// RSIReading is the RSI value with its qualitative signal.
type RSIReading struct {
	Value  float64
	Signal string
}

// MACDReading is the MACD result with its momentum interpretation.
type MACDReading struct {
	indicators.MACDResult
	Interpretation string
}

// BollingerReading is the band values with the qualitative price position
// (upper/middle/lower, thresholds 0.8/0.2).
type BollingerReading struct {
	indicators.BollingerResult
	PricePosition string
}

// Snapshot is the read-only aggregate of all computed indicators for one
// symbol at one point in time.
type Snapshot struct {
	Symbol            string
	Timestamp         time.Time
	CurrentPrice      float64
	RSI               RSIReading
	MACD              MACDReading
	BollingerBands    BollingerReading
	Volume            indicators.VolumeProfileResult
	SupportResistance indicators.LevelsResult
	PriceVsVWAP       string // "above" or "below"
	MultiTimeframe    MultiTimeframe
}
