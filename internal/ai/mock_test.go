package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/internal/indicators"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

func bullishSnapshot() *analysis.Snapshot {
	return &analysis.Snapshot{
		Symbol:       "BTCUSDT",
		CurrentPrice: 100,
		RSI:          analysis.RSIReading{Value: 65, Signal: "neutral"},
		MACD:         analysis.MACDReading{Interpretation: "bullish"},
		BollingerBands: analysis.BollingerReading{
			BollingerResult: indicators.BollingerResult{Position: 0.5},
			PricePosition:   "middle",
		},
		Volume: indicators.VolumeProfileResult{VolumeTrend: indicators.VolumeTrendIncreasing},
		MultiTimeframe: analysis.MultiTimeframe{
			OverallTrend: analysis.TrendBullish,
		},
	}
}

func TestMockProvider_Analyze_NoMarketData(t *testing.T) {
	p := NewMockProvider()

	_, err := p.Analyze(context.Background(), nil, nil)

	assert.Error(t, err)
}

func TestMockProvider_Analyze_BullishConsensus(t *testing.T) {
	p := NewMockProvider()
	md := &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100, Change24h: 2.5}

	rec, err := p.Analyze(context.Background(), md, bullishSnapshot())
	require.NoError(t, err)

	// RSI + MACD + volume + double-weighted trend = 5 bullish votes,
	// confidence capped at 0.75.
	assert.Equal(t, ActionLong, rec.Action)
	assert.Equal(t, SentimentBullish, rec.Sentiment)
	assert.Equal(t, 0.75, rec.Confidence)
	assert.Equal(t, 100.0, rec.EntryPrice)
	assert.InDelta(t, 98.0, rec.StopLoss, 1e-9)
	assert.InDelta(t, 104.0, rec.TakeProfit1, 1e-9)
	assert.InDelta(t, 106.0, rec.TakeProfit2, 1e-9)
	assert.InDelta(t, 2.0, rec.RiskRewardRatio, 1e-9)
	assert.Equal(t, "enhanced_mock", rec.Analyzer)
	assert.Equal(t, "BTCUSDT", rec.Symbol)
}

func TestMockProvider_Analyze_BearishConsensus(t *testing.T) {
	p := NewMockProvider()
	md := &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100, Change24h: -4}

	snap := bullishSnapshot()
	snap.RSI.Value = 30
	snap.MACD.Interpretation = "bearish"
	snap.BollingerBands.Position = 0.85
	snap.MultiTimeframe.OverallTrend = analysis.TrendBearish

	rec, err := p.Analyze(context.Background(), md, snap)
	require.NoError(t, err)

	assert.Equal(t, ActionShort, rec.Action)
	assert.Equal(t, SentimentBearish, rec.Sentiment)
	assert.Equal(t, 0.75, rec.Confidence)
	assert.InDelta(t, 102.0, rec.StopLoss, 1e-9)
	assert.InDelta(t, 96.0, rec.TakeProfit1, 1e-9)
	assert.InDelta(t, 94.0, rec.TakeProfit2, 1e-9)
}

func TestMockProvider_Analyze_NarrowMarginWaits(t *testing.T) {
	p := NewMockProvider()
	md := &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100}

	snap := bullishSnapshot()
	snap.MACD.Interpretation = ""
	snap.Volume.VolumeTrend = indicators.VolumeTrendStable
	snap.MultiTimeframe.OverallTrend = analysis.TrendMixed

	// Only the RSI votes: one-vote margin is not enough for a direction.
	rec, err := p.Analyze(context.Background(), md, snap)
	require.NoError(t, err)

	assert.Equal(t, ActionWait, rec.Action)
	assert.Equal(t, SentimentNeutral, rec.Sentiment)
	assert.Equal(t, 0.4, rec.Confidence)
}

func TestMockProvider_Analyze_ConfidenceScalesWithMargin(t *testing.T) {
	p := NewMockProvider()
	md := &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100}

	snap := bullishSnapshot()
	snap.Volume.VolumeTrend = indicators.VolumeTrendStable
	snap.MultiTimeframe.OverallTrend = analysis.TrendMixed

	// RSI and MACD only: two-vote margin.
	rec, err := p.Analyze(context.Background(), md, snap)
	require.NoError(t, err)

	assert.Equal(t, ActionLong, rec.Action)
	assert.InDelta(t, 0.7, rec.Confidence, 1e-9)
}

func TestMockProvider_Analyze_NoSnapshot(t *testing.T) {
	p := NewMockProvider()

	rec, err := p.Analyze(context.Background(), &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100, Change24h: 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, ActionLong, rec.Action)
	assert.Equal(t, 0.6, rec.Confidence)

	rec, err = p.Analyze(context.Background(), &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100, Change24h: -5}, nil)
	require.NoError(t, err)
	assert.Equal(t, ActionShort, rec.Action)

	rec, err = p.Analyze(context.Background(), &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100, Change24h: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, ActionWait, rec.Action)
}

func TestMockProvider_Analyze_MeanReversionVote(t *testing.T) {
	p := NewMockProvider()
	md := &types.MarketData{Symbol: "BTCUSDT", CurrentPrice: 100}

	// Price pinned to the lower band reads as a bullish reversion setup.
	snap := bullishSnapshot()
	snap.RSI.Value = 50
	snap.MACD.Interpretation = ""
	snap.BollingerBands.Position = 0.1
	snap.Volume.VolumeTrend = indicators.VolumeTrendStable

	rec, err := p.Analyze(context.Background(), md, snap)
	require.NoError(t, err)

	// Reversion vote plus the double-weighted bullish trend.
	assert.Equal(t, ActionLong, rec.Action)
	assert.InDelta(t, 0.75, rec.Confidence, 1e-9)
}
