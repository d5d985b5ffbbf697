package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Sanitize_NilRecommendation(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(nil, 100, "BTCUSDT")

	require.NotNil(t, out)
	assert.Equal(t, ActionWait, out.Action)
	assert.Equal(t, "fallback", out.Analyzer)
	assert.Equal(t, 0.2, out.Confidence)
}

func TestSanitizer_Sanitize_FillsMissingFields(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{}, 100, "BTCUSDT")

	assert.Equal(t, SentimentNeutral, out.Sentiment)
	assert.Equal(t, ActionWait, out.Action)
	assert.NotEmpty(t, out.Reasoning)
	assert.Equal(t, 0.3, out.Confidence)
	assert.Equal(t, 100.0, out.EntryPrice)
	assert.NotZero(t, out.StopLoss)
	assert.NotZero(t, out.TakeProfit1)
	assert.NotZero(t, out.TakeProfit2)
	assert.Equal(t, "BTCUSDT", out.Symbol)
	assert.Equal(t, "sanitized", out.Analyzer)
}

func TestSanitizer_Sanitize_ClampsConfidence(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{Confidence: 1.7, Action: ActionLong}, 100, "BTCUSDT")
	assert.Equal(t, 1.0, out.Confidence)

	out = s.Sanitize(&Recommendation{Confidence: -0.3, Action: ActionLong}, 100, "BTCUSDT")
	assert.Equal(t, 0.0, out.Confidence)
}

func TestSanitizer_Sanitize_DefaultsMissingConfidence(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{Action: ActionLong}, 100, "BTCUSDT")
	assert.Equal(t, 0.3, out.Confidence)

	// A provided confidence is kept, not replaced.
	out = s.Sanitize(&Recommendation{Action: ActionLong, Confidence: 0.85}, 100, "BTCUSDT")
	assert.Equal(t, 0.85, out.Confidence)
}

func TestSanitizer_Sanitize_AnchorsDeviantEntry(t *testing.T) {
	s := NewSanitizer()

	// 120 is 20% away from the 100 current price: anchored back.
	out := s.Sanitize(&Recommendation{Action: ActionLong, EntryPrice: 120}, 100, "BTCUSDT")
	assert.Equal(t, 100.0, out.EntryPrice)

	// 104 is within the 5% tolerance: kept.
	out = s.Sanitize(&Recommendation{Action: ActionLong, EntryPrice: 104}, 100, "BTCUSDT")
	assert.Equal(t, 104.0, out.EntryPrice)
}

func TestSanitizer_Sanitize_ClampsWideStop(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{
		Action:     ActionLong,
		EntryPrice: 100,
		StopLoss:   80, // 20% risk, clamped to 3% of current price
	}, 100, "BTCUSDT")

	assert.InDelta(t, 97.0, out.StopLoss, 1e-9)

	out = s.Sanitize(&Recommendation{
		Action:     ActionShort,
		EntryPrice: 100,
		StopLoss:   115,
	}, 100, "BTCUSDT")

	assert.InDelta(t, 103.0, out.StopLoss, 1e-9)
}

func TestSanitizer_Sanitize_EnforcesRiskReward_Long(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{
		Action:      ActionLong,
		EntryPrice:  100,
		StopLoss:    97,
		TakeProfit1: 102, // reward 2 vs risk 3, below 1:2
	}, 100, "BTCUSDT")

	assert.InDelta(t, 106.0, out.TakeProfit1, 1e-9)
	assert.InDelta(t, 159.0, out.TakeProfit2, 1e-9)
	assert.InDelta(t, 2.0, out.RiskRewardRatio, 1e-9)
}

func TestSanitizer_Sanitize_EnforcesRiskReward_Short(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{
		Action:      ActionShort,
		EntryPrice:  100,
		StopLoss:    103,
		TakeProfit1: 98, // above the 94 minimum target for a short
		TakeProfit2: 96,
	}, 100, "BTCUSDT")

	assert.InDelta(t, 94.0, out.TakeProfit1, 1e-9)
	assert.InDelta(t, 94.0/1.5, out.TakeProfit2, 1e-9)
	assert.InDelta(t, 2.0, out.RiskRewardRatio, 1e-9)
}

func TestSanitizer_Sanitize_KeepsGoodRecommendation(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize(&Recommendation{
		Sentiment:   SentimentBullish,
		Confidence:  0.8,
		Action:      ActionLong,
		EntryPrice:  100,
		StopLoss:    98,
		TakeProfit1: 105,
		TakeProfit2: 108,
		TimeHorizon: HorizonShort,
		Reasoning:   "breakout continuation",
	}, 100, "BTCUSDT")

	assert.Equal(t, 100.0, out.EntryPrice)
	assert.Equal(t, 98.0, out.StopLoss)
	assert.Equal(t, 105.0, out.TakeProfit1)
	assert.Equal(t, 108.0, out.TakeProfit2)
	assert.InDelta(t, 2.5, out.RiskRewardRatio, 1e-9)
	assert.Equal(t, "breakout continuation", out.Reasoning)
}

func TestSanitizer_Sanitize_Idempotent(t *testing.T) {
	s := NewSanitizer()

	first := s.Sanitize(&Recommendation{
		Action:      ActionLong,
		Confidence:  1.4,
		EntryPrice:  130,
		StopLoss:    80,
		TakeProfit1: 101,
	}, 100, "BTCUSDT")

	firstCopy := *first
	second := s.Sanitize(first, 100, "BTCUSDT")

	assert.Equal(t, firstCopy, *second)
}

func TestFallbackRecommendation(t *testing.T) {
	rec := FallbackRecommendation(100, "ETHUSDT")

	assert.Equal(t, ActionWait, rec.Action)
	assert.Equal(t, SentimentNeutral, rec.Sentiment)
	assert.Equal(t, 0.2, rec.Confidence)
	assert.Equal(t, 100.0, rec.EntryPrice)
	assert.InDelta(t, 98.0, rec.StopLoss, 1e-9)
	assert.InDelta(t, 96.0, rec.TakeProfit1, 1e-9)
	assert.InDelta(t, 64.0, rec.TakeProfit2, 1e-9)
	assert.Equal(t, 2.0, rec.RiskRewardRatio)
	assert.Equal(t, "ETHUSDT", rec.Symbol)
	assert.Equal(t, "fallback", rec.Analyzer)
}
