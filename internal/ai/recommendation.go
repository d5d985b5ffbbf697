package ai

import "time"

// Recommended trade actions.
const (
	ActionLong  = "long"
	ActionShort = "short"
	ActionWait  = "wait"
)

// Market sentiment labels.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// Recommendation is a trade recommendation produced by a provider. It is
// always passed through the sanitizer before the risk manager sees it.
type Recommendation struct {
	Sentiment       string  `json:"market_sentiment"`
	Confidence      float64 `json:"confidence_score"`
	Action          string  `json:"recommended_action"`
	EntryPrice      float64 `json:"entry_price"`
	StopLoss        float64 `json:"stop_loss"`
	TakeProfit1     float64 `json:"take_profit_1"`
	TakeProfit2     float64 `json:"take_profit_2"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
	TimeHorizon     string  `json:"time_horizon"`
	Reasoning       string  `json:"reasoning"`

	// Metadata stamped by the sanitizer.
	Symbol    string    `json:"symbol"`
	Analyzer  string    `json:"analyzer"`
	Timestamp time.Time `json:"timestamp"`
}

// Holding horizon descriptors used by the risk manager's sizing table.
const (
	HorizonShort  = "short"
	HorizonMedium = "medium"
	HorizonLong   = "long"
)
