package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportResistance_InsufficientData(t *testing.T) {
	candles := flatCandles(5, 100, 10)

	res := SupportResistance(candles)

	assert.InDelta(t, 102.0, res.Resistance, 1e-9)
	assert.InDelta(t, 98.0, res.Support, 1e-9)
	assert.Equal(t, LevelStrengthWeak, res.Strength)
}

func TestSupportResistance_LocalExtrema(t *testing.T) {
	candles := flatCandles(30, 100, 10)
	for i := range candles {
		candles[i].High = 101
		candles[i].Low = 99
	}
	candles[10].High = 110 // single swing high
	candles[20].Low = 90   // single swing low

	res := SupportResistance(candles)

	assert.InDelta(t, 110.0, res.Resistance, 1e-9)
	assert.InDelta(t, 90.0, res.Support, 1e-9)
	assert.Equal(t, 1, res.ResistanceTests)
	assert.Equal(t, 1, res.SupportTests)
	assert.Equal(t, LevelStrengthWeak, res.Strength)
}

func TestSupportResistance_StrengthFromRetests(t *testing.T) {
	candles := flatCandles(40, 100, 10)
	for i := range candles {
		candles[i].High = 101
		candles[i].Low = 99
	}
	// Three separated swing highs at the same level.
	candles[10].High = 110
	candles[18].High = 110
	candles[26].High = 110

	res := SupportResistance(candles)

	assert.InDelta(t, 110.0, res.Resistance, 1e-9)
	assert.Equal(t, 3, res.ResistanceTests)
	assert.Equal(t, LevelStrengthStrong, res.Strength)
}

func TestSupportResistance_MediumStrength(t *testing.T) {
	candles := flatCandles(40, 100, 10)
	for i := range candles {
		candles[i].High = 101
		candles[i].Low = 99
	}
	candles[10].Low = 90
	candles[25].Low = 90

	res := SupportResistance(candles)

	assert.InDelta(t, 90.0, res.Support, 1e-9)
	assert.Equal(t, 2, res.SupportTests)
	assert.Equal(t, LevelStrengthMedium, res.Strength)
}

func TestSupportResistance_NearestLevels(t *testing.T) {
	candles := flatCandles(40, 100, 10)
	for i := range candles {
		candles[i].High = 101
		candles[i].Low = 99
	}
	// Two swing highs above the current price: the nearer one wins.
	candles[10].High = 120
	candles[25].High = 105

	res := SupportResistance(candles)

	assert.InDelta(t, 105.0, res.Resistance, 1e-9)
}

func TestSupportResistance_NoLevelsFallsBackToPercent(t *testing.T) {
	// Monotonic series has no 2-candle swing lows above or highs below.
	candles := flatCandles(30, 100, 10)
	for i := range candles {
		price := 100 + float64(i)
		candles[i].Open = price
		candles[i].High = price
		candles[i].Low = price
		candles[i].Close = price
	}

	res := SupportResistance(candles)

	current := candles[len(candles)-1].Close
	assert.InDelta(t, current*1.02, res.Resistance, 1e-9)
	// The rising lows leave no swing low, so support defaults too.
	assert.InDelta(t, current*0.98, res.Support, 1e-9)
}
