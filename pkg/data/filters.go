package data

import (
	"fmt"
	"time"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// FilterByPeriod keeps only the candles within the trailing period, measured
// from the last candle's timestamp.
func FilterByPeriod(candles []types.OHLCV, period time.Duration) []types.OHLCV {
	if period <= 0 || len(candles) == 0 {
		return candles
	}

	cutoff := candles[len(candles)-1].Timestamp.Add(-period)
	for i, c := range candles {
		if !c.Timestamp.Before(cutoff) {
			return candles[i:]
		}
	}
	return candles
}

// FilterByDateRange keeps candles within [start, end] inclusive.
func FilterByDateRange(candles []types.OHLCV, start, end time.Time) []types.OHLCV {
	var filtered []types.OHLCV
	for _, c := range candles {
		if !c.Timestamp.Before(start) && !c.Timestamp.After(end) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ValidateTimeSequence ensures candles are in chronological order.
func ValidateTimeSequence(candles []types.OHLCV) error {
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp.Before(candles[i-1].Timestamp) {
			return fmt.Errorf("timestamps out of order at index %d", i)
		}
	}
	return nil
}

// Gap is a hole in a candle series larger than the expected spacing.
type Gap struct {
	From     time.Time
	To       time.Time
	Missing  int
	Duration time.Duration
}

// DetectGaps finds holes in a chronological series given the candle interval.
// Spacing up to 1.5x the interval is tolerated.
func DetectGaps(candles []types.OHLCV, interval time.Duration) []Gap {
	if interval <= 0 {
		return nil
	}

	var gaps []Gap
	tolerance := interval + interval/2
	for i := 1; i < len(candles); i++ {
		delta := candles[i].Timestamp.Sub(candles[i-1].Timestamp)
		if delta <= tolerance {
			continue
		}
		gaps = append(gaps, Gap{
			From:     candles[i-1].Timestamp,
			To:       candles[i].Timestamp,
			Missing:  int(delta/interval) - 1,
			Duration: delta,
		})
	}
	return gaps
}
