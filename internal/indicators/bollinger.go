package indicators

import "math"

// BollingerResult holds the band values and the price position within them.
type BollingerResult struct {
	Upper    float64
	Middle   float64
	Lower    float64
	Position float64 // 0 = lower band, 1 = upper band
	Width    float64 // (upper - lower) / middle
}

// BollingerBands calculates the Bollinger Bands indicator.
type BollingerBands struct {
	period int
	stdDev float64
}

// NewBollingerBands creates a new BollingerBands instance with the given
// period and standard deviation multiplier.
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	if period <= 0 {
		period = 20
	}
	if stdDev <= 0 {
		stdDev = 2.0
	}
	return &BollingerBands{period: period, stdDev: stdDev}
}

// Calculate computes the bands over the last period closes. With fewer closes
// than the period it degrades to a synthetic band of ±2% around the last price
// with a neutral position of 0.5.
func (bb *BollingerBands) Calculate(closes []float64) BollingerResult {
	if len(closes) < bb.period {
		current := 0.0
		if len(closes) > 0 {
			current = closes[len(closes)-1]
		}
		return BollingerResult{
			Upper:    current * 1.02,
			Middle:   current,
			Lower:    current * 0.98,
			Position: 0.5,
		}
	}

	recent := closes[len(closes)-bb.period:]
	middle := SMA(recent)
	std := standardDeviation(recent, middle)

	upper := middle + bb.stdDev*std
	lower := middle - bb.stdDev*std
	current := closes[len(closes)-1]

	position := 0.5
	if bandWidth := upper - lower; bandWidth > 0 {
		position = (current - lower) / bandWidth
	}

	width := 0.0
	if middle > 0 {
		width = (upper - lower) / middle
	}

	return BollingerResult{
		Upper:    upper,
		Middle:   middle,
		Lower:    lower,
		Position: position,
		Width:    width,
	}
}

// standardDeviation is the sample standard deviation (n-1 divisor).
func standardDeviation(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
