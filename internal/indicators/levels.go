package indicators

import (
	"math"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Level strength classifications.
const (
	LevelStrengthWeak   = "weak"
	LevelStrengthMedium = "medium"
	LevelStrengthStrong = "strong"
)

// LevelsResult holds the nearest support/resistance levels and their strength.
type LevelsResult struct {
	Resistance      float64
	Support         float64
	Strength        string
	ResistanceTests int
	SupportTests    int
}

// SupportResistance detects local extrema with a 2-candle-each-side window over
// the last 50 highs/lows and picks the nearest resistance above and support
// below the current price. With no level found (or fewer than 20 candles) it
// defaults to ±2% around the current price. Strength counts how often a level
// was tested within a 0.5% tolerance.
func SupportResistance(candles []types.OHLCV) LevelsResult {
	if len(candles) < 20 {
		current := 0.0
		if len(candles) > 0 {
			current = candles[len(candles)-1].Close
		}
		return LevelsResult{
			Resistance: current * 1.02,
			Support:    current * 0.98,
			Strength:   LevelStrengthWeak,
		}
	}

	window := candles
	if len(window) > 50 {
		window = window[len(window)-50:]
	}
	highs := make([]float64, len(window))
	lows := make([]float64, len(window))
	for i, c := range window {
		highs[i] = c.High
		lows[i] = c.Low
	}

	var resistanceLevels, supportLevels []float64
	for i := 2; i < len(highs)-2; i++ {
		if highs[i] > highs[i-1] && highs[i] > highs[i+1] && highs[i] > highs[i-2] && highs[i] > highs[i+2] {
			resistanceLevels = append(resistanceLevels, highs[i])
		}
		if lows[i] < lows[i-1] && lows[i] < lows[i+1] && lows[i] < lows[i-2] && lows[i] < lows[i+2] {
			supportLevels = append(supportLevels, lows[i])
		}
	}

	current := candles[len(candles)-1].Close

	resistance := current * 1.02
	found := false
	for _, r := range resistanceLevels {
		if r > current && (!found || r < resistance) {
			resistance = r
			found = true
		}
	}

	support := current * 0.98
	found = false
	for _, s := range supportLevels {
		if s < current && (!found || s > support) {
			support = s
			found = true
		}
	}

	resistanceTests := countTests(highs, resistance)
	supportTests := countTests(lows, support)

	strength := LevelStrengthWeak
	switch {
	case resistanceTests >= 3 || supportTests >= 3:
		strength = LevelStrengthStrong
	case resistanceTests >= 2 || supportTests >= 2:
		strength = LevelStrengthMedium
	}

	return LevelsResult{
		Resistance:      resistance,
		Support:         support,
		Strength:        strength,
		ResistanceTests: resistanceTests,
		SupportTests:    supportTests,
	}
}

func countTests(prices []float64, level float64) int {
	if level == 0 {
		return 0
	}
	tests := 0
	for _, p := range prices {
		if math.Abs(p-level)/level < 0.005 {
			tests++
		}
	}
	return tests
}
