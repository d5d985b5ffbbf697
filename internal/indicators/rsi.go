package indicators

const (
	// NeutralRSI is returned when there are not enough closes for a full period.
	NeutralRSI = 50.0

	DefaultRSIPeriod = 14
)

// RSI calculates the Relative Strength Index over the last period deltas.
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period.
func NewRSI(period int) *RSI {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	return &RSI{period: period}
}

// Calculate computes the RSI value for the close price series.
// Fewer than period+1 closes degrade to the neutral value 50.
// A zero average loss yields exactly 100.
func (r *RSI) Calculate(closes []float64) float64 {
	if len(closes) < r.period+1 {
		return NeutralRSI
	}

	gains := 0.0
	losses := 0.0
	for i := len(closes) - r.period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(r.period)
	avgLoss := losses / float64(r.period)
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Signal classifies an RSI value into overbought/oversold/neutral.
func (r *RSI) Signal(value float64) string {
	switch {
	case value > 70:
		return "overbought"
	case value < 30:
		return "oversold"
	default:
		return "neutral"
	}
}

// Period returns the configured calculation period.
func (r *RSI) Period() int {
	return r.period
}
