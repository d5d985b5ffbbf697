package ai

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// MockProvider derives a deterministic recommendation from the technical
// snapshot. It serves as the fallback when no AI provider is configured or the
// AI call fails, and honors the same schema the AI provider does.
type MockProvider struct{}

// NewMockProvider creates a new deterministic recommendation provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string { return "enhanced_mock" }

// Analyze votes bullish/bearish signals from the snapshot and builds a
// recommendation with confidence proportional to the vote margin.
func (p *MockProvider) Analyze(_ context.Context, md *types.MarketData, snap *analysis.Snapshot) (*Recommendation, error) {
	if md == nil {
		return nil, fmt.Errorf("mock provider: no market data")
	}

	currentPrice := md.CurrentPrice
	change24h := md.Change24h

	var sentiment, action string
	var confidence float64

	if snap != nil {
		bullish, bearish := p.countSignals(snap, change24h)
		switch {
		case bullish > bearish+1:
			sentiment = SentimentBullish
			action = ActionLong
			confidence = math.Min(0.75, 0.5+float64(bullish-bearish)*0.1)
		case bearish > bullish+1:
			sentiment = SentimentBearish
			action = ActionShort
			confidence = math.Min(0.75, 0.5+float64(bearish-bullish)*0.1)
		default:
			sentiment = SentimentNeutral
			action = ActionWait
			confidence = 0.4
		}
	} else {
		// No indicators available, classify on 24h change alone.
		switch {
		case change24h > 3:
			sentiment = SentimentBullish
			action = ActionLong
			confidence = 0.6
		case change24h < -3:
			sentiment = SentimentBearish
			action = ActionShort
			confidence = 0.6
		default:
			sentiment = SentimentNeutral
			action = ActionWait
			confidence = 0.4
		}
	}

	var stop, tp1, tp2 float64
	switch action {
	case ActionLong:
		stop = currentPrice * 0.98
		tp1 = currentPrice * 1.04
		tp2 = currentPrice * 1.06
	case ActionShort:
		stop = currentPrice * 1.02
		tp1 = currentPrice * 0.96
		tp2 = currentPrice * 0.94
	default:
		stop = currentPrice * 0.985
		tp1 = currentPrice * 1.03
		tp2 = currentPrice * 1.05
	}

	risk := math.Abs(currentPrice - stop)
	riskReward := 2.0
	if risk > 0 {
		riskReward = math.Abs(tp1-currentPrice) / risk
	}

	return &Recommendation{
		Sentiment:       sentiment,
		Confidence:      confidence,
		Action:          action,
		EntryPrice:      currentPrice,
		StopLoss:        stop,
		TakeProfit1:     tp1,
		TakeProfit2:     tp2,
		RiskRewardRatio: riskReward,
		TimeHorizon:     HorizonMedium,
		Reasoning: fmt.Sprintf("Deterministic analysis: %s sentiment based on technical indicators and 24h change (%.2f%%). Confidence: %.2f",
			sentiment, change24h, confidence),
		Symbol:    md.Symbol,
		Analyzer:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// countSignals tallies directional votes from the individual indicators.
func (p *MockProvider) countSignals(snap *analysis.Snapshot, change24h float64) (bullish, bearish int) {
	if snap.RSI.Value > 60 {
		bullish++
	} else if snap.RSI.Value < 40 {
		bearish++
	}

	switch snap.MACD.Interpretation {
	case "bullish", "strengthening":
		bullish++
	case "bearish", "weakening":
		bearish++
	}

	// Band extremes read as mean-reversion setups.
	if snap.BollingerBands.Position > 0.7 {
		bearish++
	} else if snap.BollingerBands.Position < 0.3 {
		bullish++
	}

	if snap.Volume.VolumeTrend == "increasing" {
		if change24h > 0 {
			bullish++
		} else if change24h < 0 {
			bearish++
		}
	}

	switch snap.MultiTimeframe.OverallTrend {
	case analysis.TrendBullish:
		bullish += 2
	case analysis.TrendBearish:
		bearish += 2
	}

	return bullish, bearish
}
