package indicators

// MACDResult holds the MACD line, signal line and histogram values.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD calculates Moving Average Convergence Divergence.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with the specified fast, slow and signal periods.
func NewMACD(fast, slow, signal int) *MACD {
	if fast <= 0 {
		fast = 12
	}
	if slow <= 0 {
		slow = 26
	}
	if signal <= 0 {
		signal = 9
	}
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate computes the MACD line as EMA(fast) - EMA(slow) over the full close
// series, the signal line as EMA(signalPeriod) of the MACD series, and the
// histogram as their difference. Fewer closes than the slow period degrade to zeros.
func (m *MACD) Calculate(closes []float64) MACDResult {
	if len(closes) < m.slowPeriod {
		return MACDResult{}
	}

	fastEMA := EMASeries(closes, m.fastPeriod)
	slowEMA := EMASeries(closes, m.slowPeriod)

	macdSeries := make([]float64, len(closes))
	for i := range closes {
		macdSeries[i] = fastEMA[i] - slowEMA[i]
	}
	signalSeries := EMASeries(macdSeries, m.signalPeriod)

	last := len(closes) - 1
	return MACDResult{
		MACD:      macdSeries[last],
		Signal:    signalSeries[last],
		Histogram: macdSeries[last] - signalSeries[last],
	}
}

// Interpretation classifies the momentum picture from the computed values.
func (m *MACD) Interpretation(res MACDResult) string {
	if res.Histogram > 0 {
		if res.MACD > res.Signal {
			return "bullish"
		}
		return "strengthening"
	}
	if res.MACD < res.Signal {
		return "bearish"
	}
	return "weakening"
}
