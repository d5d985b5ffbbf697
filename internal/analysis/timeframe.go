package analysis

import (
	"math"

	"github.com/kdemidoff/trading-ai-bot/internal/indicators"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Trend classifications shared by the reconciler and the snapshot.
const (
	TrendBullish  = "bullish"
	TrendBearish  = "bearish"
	TrendSideways = "sideways"
	TrendMixed    = "mixed"
	TrendUnknown  = "unknown"
)

// TimeframeTrend is one timeframe's trend classification.
type TimeframeTrend struct {
	Trend    string
	Strength string
	SMAShort float64
	SMALong  float64
}

// MultiTimeframe is the consensus across all analyzed timeframes.
type MultiTimeframe struct {
	Timeframes     map[string]TimeframeTrend
	OverallTrend   string
	TrendAgreement bool
}

// ReconcileTimeframes classifies the trend of each timeframe's candle series
// and derives a majority-vote consensus. Timeframes with fewer than 10 candles
// are skipped. Trend agreement is true only when every analyzed timeframe
// produced the identical trend label.
func ReconcileTimeframes(timeframes map[string][]types.OHLCV) MultiTimeframe {
	result := MultiTimeframe{
		Timeframes:   make(map[string]TimeframeTrend),
		OverallTrend: TrendUnknown,
	}

	bullish, bearish := 0, 0
	labels := make(map[string]struct{})

	for name, candles := range timeframes {
		if len(candles) < 10 {
			continue
		}

		closes := make([]float64, len(candles))
		for i, c := range candles {
			closes[i] = c.Close
		}

		smaShort := indicators.SMA(closes[len(closes)-5:])
		smaLong := indicators.SMA(closes[len(closes)-10:])

		trend := TrendSideways
		switch {
		case smaShort > smaLong*1.002:
			trend = TrendBullish
			bullish++
		case smaShort < smaLong*0.998:
			trend = TrendBearish
			bearish++
		}

		change := (closes[len(closes)-1] - closes[len(closes)-5]) / closes[len(closes)-5]
		strength := "weak"
		switch {
		case math.Abs(change) > 0.02:
			strength = "strong"
		case math.Abs(change) > 0.01:
			strength = "medium"
		}

		labels[trend] = struct{}{}
		result.Timeframes[name] = TimeframeTrend{
			Trend:    trend,
			Strength: strength,
			SMAShort: smaShort,
			SMALong:  smaLong,
		}
	}

	if len(result.Timeframes) > 0 {
		switch {
		case bullish > bearish:
			result.OverallTrend = TrendBullish
		case bearish > bullish:
			result.OverallTrend = TrendBearish
		default:
			result.OverallTrend = TrendMixed
		}
		result.TrendAgreement = len(labels) == 1
	}

	return result
}
