package indicators

// SMA computes the simple moving average of the given values.
// Returns 0 for an empty slice.
func SMA(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// EMASeries computes an exponential moving average over the whole series,
// seeded with the first value, using the standard span multiplier 2/(span+1).
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	multiplier := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*multiplier + out[i-1]*(1-multiplier)
	}
	return out
}
