package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBollingerBands_Defaults(t *testing.T) {
	bb := NewBollingerBands(0, 0)

	assert.Equal(t, 20, bb.period)
	assert.Equal(t, 2.0, bb.stdDev)
}

func TestBollingerBands_Calculate_InsufficientData(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	res := bb.Calculate([]float64{99, 100})

	assert.InDelta(t, 102.0, res.Upper, 1e-9)
	assert.InDelta(t, 100.0, res.Middle, 1e-9)
	assert.InDelta(t, 98.0, res.Lower, 1e-9)
	assert.Equal(t, 0.5, res.Position)
}

func TestBollingerBands_Calculate_FlatSeries(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}

	res := bb.Calculate(closes)

	assert.InDelta(t, 100.0, res.Upper, 1e-9)
	assert.InDelta(t, 100.0, res.Lower, 1e-9)
	// Zero band width keeps the position neutral instead of dividing by zero.
	assert.Equal(t, 0.5, res.Position)
	assert.Zero(t, res.Width)
}

func TestBollingerBands_Calculate_KnownValues(t *testing.T) {
	bb := NewBollingerBands(5, 2.0)

	// mean=11, sample variance=5, std=sqrt(5): bands at 11 +/- 2*sqrt(5).
	closes := []float64{10, 10, 10, 10, 15}
	std := math.Sqrt(5)

	res := bb.Calculate(closes)

	assert.InDelta(t, 11.0, res.Middle, 1e-9)
	assert.InDelta(t, 11.0+2*std, res.Upper, 1e-9)
	assert.InDelta(t, 11.0-2*std, res.Lower, 1e-9)
	assert.InDelta(t, (15.0-(11.0-2*std))/(4*std), res.Position, 1e-9)
	assert.InDelta(t, 4*std/11.0, res.Width, 1e-9)
}

func TestBollingerBands_Calculate_PositionUnclamped(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	closes[19] = 120 // spike well outside the band

	res := bb.Calculate(closes)

	assert.Greater(t, res.Position, 1.0)
}
