package risk

import "time"

// Config holds the portfolio risk limits. Supplied by configuration loading;
// the manager never reads process-wide state.
type Config struct {
	InitialBalance     float64 `json:"initial_balance"`
	MaxRiskPerTrade    float64 `json:"max_risk_per_trade"`
	MaxPortfolioRisk   float64 `json:"max_portfolio_risk"`
	MaxDailyLoss       float64 `json:"max_daily_loss"`
	MinRiskRewardRatio float64 `json:"min_risk_reward_ratio"`
	MaxPositions       int     `json:"max_positions"`
	MaxDailyTrades     int     `json:"max_daily_trades"`
}

// DefaultConfig returns the standard risk limits.
func DefaultConfig() Config {
	return Config{
		InitialBalance:     10000,
		MaxRiskPerTrade:    0.02,
		MaxPortfolioRisk:   0.06,
		MaxDailyLoss:       0.05,
		MinRiskRewardRatio: 2.0,
		MaxPositions:       3,
		MaxDailyTrades:     10,
	}
}

// Position is one open trade tracked by the manager.
type Position struct {
	Symbol         string
	Side           string // "long" or "short"
	Size           float64
	EntryPrice     float64
	StopLoss       float64
	TakeProfit     float64
	OpenedAt       time.Time
	Confidence     float64
	RiskAmount     float64
	ExpectedReturn float64
}

// TradeRecord is a closed trade kept in history for the win-rate statistics.
type TradeRecord struct {
	Symbol     string
	Side       string
	EntryPrice float64
	ClosePrice float64
	Size       float64
	PnL        float64
	ClosedAt   time.Time
	Confidence float64
}

// Decision is the sized (or rejected) outcome of a recommendation.
type Decision struct {
	PositionSize       float64 `json:"position_size"`
	RiskAmount         float64 `json:"risk_amount"`
	PotentialProfit    float64 `json:"potential_profit"`
	RiskRewardRatio    float64 `json:"risk_reward_ratio"`
	ConfidenceAdjusted float64 `json:"confidence_adjusted"`
	VolatilityAdjusted float64 `json:"volatility_adjusted"`
	KellyFraction      float64 `json:"kelly_fraction"`
	Allowed            bool    `json:"allowed"`
	Reason             string  `json:"reason"`
}

// PortfolioSummary is the current portfolio state snapshot.
type PortfolioSummary struct {
	Balance        float64
	DailyPnL       float64
	DailyTrades    int
	OpenPositions  int
	TotalRisk      float64
	RiskPercentage float64
	AvailableRisk  float64
	WinRate        float64
	AvgWin         float64
	AvgLoss        float64
	TotalTrades    int
}
