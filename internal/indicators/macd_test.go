package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMACD_Defaults(t *testing.T) {
	macd := NewMACD(0, 0, 0)

	assert.Equal(t, 12, macd.fastPeriod)
	assert.Equal(t, 26, macd.slowPeriod)
	assert.Equal(t, 9, macd.signalPeriod)
}

func TestMACD_Calculate_InsufficientData(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	res := macd.Calculate(closes)

	assert.Zero(t, res.MACD)
	assert.Zero(t, res.Signal)
	assert.Zero(t, res.Histogram)
}

func TestMACD_Calculate_ConstantSeries(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}

	res := macd.Calculate(closes)

	assert.InDelta(t, 0.0, res.MACD, 1e-9)
	assert.InDelta(t, 0.0, res.Signal, 1e-9)
	assert.InDelta(t, 0.0, res.Histogram, 1e-9)
}

func TestMACD_Calculate_Uptrend(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	res := macd.Calculate(closes)

	// In a steady uptrend the fast EMA leads the slow EMA and the MACD line
	// leads its own signal line.
	assert.Greater(t, res.MACD, 0.0)
	assert.Greater(t, res.Histogram, 0.0)
	assert.Equal(t, "bullish", macd.Interpretation(res))
}

func TestMACD_Calculate_Downtrend(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}

	res := macd.Calculate(closes)

	assert.Less(t, res.MACD, 0.0)
	assert.Less(t, res.Histogram, 0.0)
	assert.Equal(t, "bearish", macd.Interpretation(res))
}

func TestMACD_Interpretation_Boundaries(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	assert.Equal(t, "bullish", macd.Interpretation(MACDResult{MACD: 2, Signal: 1, Histogram: 1}))
	assert.Equal(t, "bearish", macd.Interpretation(MACDResult{MACD: 1, Signal: 2, Histogram: -1}))
	assert.Equal(t, "weakening", macd.Interpretation(MACDResult{MACD: 1, Signal: 1, Histogram: 0}))
}
