package ai

import (
	"log"
	"math"
	"time"
)

// Sanitizer bounds.
const (
	maxEntryDeviation = 0.05 // entry may deviate at most 5% from current price
	maxStopDistance   = 0.03 // stop may sit at most 3% of current price from entry
	minRiskReward     = 2.0
)

// Sanitizer clamps a raw recommendation to safety bounds before the risk
// manager sees it. It never returns an error: any internal failure substitutes
// the conservative fallback recommendation.
type Sanitizer struct{}

// NewSanitizer creates a new analysis sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize corrects the recommendation in place against the current price and
// returns it. The result is idempotent for identical inputs: running the
// output through Sanitize again yields the same values.
func (s *Sanitizer) Sanitize(rec *Recommendation, currentPrice float64, symbol string) (out *Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Sanitizer recovered from %v, substituting fallback recommendation", r)
			out = FallbackRecommendation(currentPrice, symbol)
		}
	}()

	if rec == nil {
		return FallbackRecommendation(currentPrice, symbol)
	}

	// Missing required fields get documented neutral defaults.
	if rec.Sentiment == "" {
		log.Printf("Sanitizer: missing sentiment for %s, defaulting to neutral", symbol)
		rec.Sentiment = SentimentNeutral
	}
	if rec.Action == "" {
		log.Printf("Sanitizer: missing action for %s, defaulting to wait", symbol)
		rec.Action = ActionWait
	}
	if rec.Reasoning == "" {
		rec.Reasoning = "Analysis performed with default parameters due to incomplete data"
	}
	if rec.Confidence == 0 {
		log.Printf("Sanitizer: missing confidence for %s, defaulting to 0.3", symbol)
		rec.Confidence = 0.3
	}

	// Confidence clamped to [0, 1].
	rec.Confidence = math.Max(0, math.Min(1, rec.Confidence))

	// Entry price anchored to the current price.
	if rec.EntryPrice == 0 || math.Abs(rec.EntryPrice-currentPrice) > currentPrice*maxEntryDeviation {
		rec.EntryPrice = currentPrice
	}

	// Stop loss within the maximum distance, directionally consistent.
	if rec.StopLoss == 0 {
		rec.StopLoss = currentPrice * 0.98
	}
	if rec.TakeProfit1 == 0 {
		rec.TakeProfit1 = currentPrice * 1.04
	}
	if rec.TakeProfit2 == 0 {
		rec.TakeProfit2 = currentPrice * 1.08
	}
	maxStop := currentPrice * maxStopDistance
	if math.Abs(rec.EntryPrice-rec.StopLoss) > maxStop {
		if rec.Action == ActionLong {
			rec.StopLoss = rec.EntryPrice - maxStop
		} else {
			rec.StopLoss = rec.EntryPrice + maxStop
		}
	}

	// Take profits enforce the minimum 1:2 risk to reward.
	risk := math.Abs(rec.EntryPrice - rec.StopLoss)
	minReward := risk * minRiskReward
	if rec.Action == ActionLong {
		minTP1 := rec.EntryPrice + minReward
		if rec.TakeProfit1 < minTP1 {
			rec.TakeProfit1 = minTP1
			rec.TakeProfit2 = minTP1 * 1.5
		}
	} else {
		minTP1 := rec.EntryPrice - minReward
		if rec.TakeProfit1 > minTP1 {
			rec.TakeProfit1 = minTP1
			rec.TakeProfit2 = minTP1 / 1.5
		}
	}

	// Reported ratio recomputed from the final values.
	reward := math.Abs(rec.TakeProfit1 - rec.EntryPrice)
	if risk > 0 {
		rec.RiskRewardRatio = reward / risk
	} else {
		rec.RiskRewardRatio = minRiskReward
	}

	// Metadata stamped only when absent, so repeated runs compare equal.
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Analyzer == "" {
		rec.Analyzer = "sanitized"
	}
	rec.Symbol = symbol

	return rec
}

// FallbackRecommendation is the conservative default produced when analysis
// fails entirely: wait, low confidence, tight synthetic levels.
func FallbackRecommendation(currentPrice float64, symbol string) *Recommendation {
	stop := currentPrice * 0.98
	tp1 := currentPrice - 2*(currentPrice-stop)
	return &Recommendation{
		Sentiment:       SentimentNeutral,
		Confidence:      0.2,
		Action:          ActionWait,
		EntryPrice:      currentPrice,
		StopLoss:        stop,
		TakeProfit1:     tp1,
		TakeProfit2:     tp1 / 1.5,
		RiskRewardRatio: 2.0,
		TimeHorizon:     HorizonMedium,
		Reasoning:       "Fallback analysis due to data errors or provider issues. Conservative approach recommended.",
		Symbol:          symbol,
		Analyzer:        "fallback",
		Timestamp:       time.Now(),
	}
}
