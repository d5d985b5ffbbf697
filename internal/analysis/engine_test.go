package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

func TestEngine_Analyze_NoData(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	assert.Nil(t, engine.Analyze(nil))
	assert.Nil(t, engine.Analyze(&types.MarketData{Symbol: "BTCUSDT"}))
}

func TestEngine_Analyze_Snapshot(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	klines := candlesFromCloses(risingCloses(60))
	md := &types.MarketData{
		Symbol:       "BTCUSDT",
		CurrentPrice: 159,
		Change24h:    2.5,
		Volume24h:    1_500_000_000,
		Klines:       klines,
		Timeframes: map[string][]types.OHLCV{
			"1h": klines,
			"4h": candlesFromCloses(risingCloses(30)),
		},
	}

	snap := engine.Analyze(md)
	require.NotNil(t, snap)

	assert.Equal(t, "BTCUSDT", snap.Symbol)
	assert.Equal(t, 159.0, snap.CurrentPrice)
	assert.False(t, snap.Timestamp.IsZero())

	// A monotonic uptrend pins every indicator to its bullish reading.
	assert.Equal(t, 100.0, snap.RSI.Value)
	assert.Equal(t, "overbought", snap.RSI.Signal)
	assert.Equal(t, "bullish", snap.MACD.Interpretation)
	assert.Greater(t, snap.MACD.Histogram, 0.0)
	assert.Equal(t, "upper", snap.BollingerBands.PricePosition)
	assert.Equal(t, "above", snap.PriceVsVWAP)
	assert.Equal(t, TrendBullish, snap.MultiTimeframe.OverallTrend)
	assert.True(t, snap.MultiTimeframe.TrendAgreement)
	assert.NotEmpty(t, snap.Volume.VolumeTrend)
	assert.Greater(t, snap.SupportResistance.Resistance, snap.SupportResistance.Support)
}

func TestEngine_Analyze_NoTimeframes(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Alternating closes keep gains and losses balanced for a neutral RSI.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%2)
	}
	md := &types.MarketData{
		Symbol: "ETHUSDT",
		Klines: candlesFromCloses(closes),
	}

	snap := engine.Analyze(md)
	require.NotNil(t, snap)

	assert.Equal(t, TrendUnknown, snap.MultiTimeframe.OverallTrend)
	assert.Equal(t, "neutral", snap.RSI.Signal)
	assert.Equal(t, "middle", snap.BollingerBands.PricePosition)
}
