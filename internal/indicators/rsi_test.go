package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRSI_DefaultPeriod(t *testing.T) {
	rsi := NewRSI(0)

	assert.Equal(t, DefaultRSIPeriod, rsi.Period())
}

func TestRSI_Calculate_InsufficientData(t *testing.T) {
	rsi := NewRSI(14)

	// 14 closes are still one short of the 15 needed for 14 deltas.
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	assert.Equal(t, NeutralRSI, rsi.Calculate(closes))
	assert.Equal(t, NeutralRSI, rsi.Calculate(nil))
}

func TestRSI_Calculate_AllGains(t *testing.T) {
	rsi := NewRSI(14)

	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	assert.Equal(t, 100.0, rsi.Calculate(closes))
}

func TestRSI_Calculate_KnownValue(t *testing.T) {
	rsi := NewRSI(3)

	// Deltas over the last 3 closes: +1, -0.5, +1.
	// avgGain=2/3, avgLoss=0.5/3, RS=4, RSI=80.
	closes := []float64{10, 11, 10.5, 11.5}

	assert.InDelta(t, 80.0, rsi.Calculate(closes), 1e-9)
}

func TestRSI_Calculate_AllLosses(t *testing.T) {
	rsi := NewRSI(3)

	closes := []float64{10, 9, 8, 7}

	assert.InDelta(t, 0.0, rsi.Calculate(closes), 1e-9)
}

func TestRSI_Signal(t *testing.T) {
	rsi := NewRSI(14)

	assert.Equal(t, "overbought", rsi.Signal(75))
	assert.Equal(t, "oversold", rsi.Signal(25))
	assert.Equal(t, "neutral", rsi.Signal(50))
	assert.Equal(t, "neutral", rsi.Signal(70))
	assert.Equal(t, "neutral", rsi.Signal(30))
}
