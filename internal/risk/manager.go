package risk

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/ai"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Sizing limits.
const (
	minPositionValue   = 100.0 // positions worth less than $100 are dropped
	maxPositionPercent = 0.25  // one position may bind at most 25% of balance
	assumedStopPercent = 0.02  // stop distance assumed for the portfolio-risk cap
)

// Manager owns the portfolio state and converts sanitized recommendations
// into sized trade decisions. State is mutated only through AddPosition,
// ClosePosition and ResetDailyStats; process one symbol stream per manager
// or synchronize externally.
type Manager struct {
	mu sync.Mutex

	config  Config
	balance float64

	positions    map[string]*Position
	dailyPnL     float64
	dailyTrades  int
	tradeHistory []TradeRecord

	winRate float64
	avgWin  float64
	avgLoss float64
}

// NewManager creates a risk manager with the given limits.
func NewManager(cfg Config) *Manager {
	if cfg.MinRiskRewardRatio == 0 {
		cfg.MinRiskRewardRatio = 2.0
	}
	if cfg.MaxPositions == 0 {
		cfg.MaxPositions = 3
	}
	if cfg.MaxDailyTrades == 0 {
		cfg.MaxDailyTrades = 10
	}

	log.Printf("RiskManager initialized with balance $%.2f", cfg.InitialBalance)

	return &Manager{
		config:    cfg,
		balance:   cfg.InitialBalance,
		positions: make(map[string]*Position),
	}
}

// CalculatePositionSize runs the six ordered risk checks and, when they all
// pass, sizes the position. A failing check short-circuits with Allowed=false
// and a reason; no partial sizing is computed.
func (m *Manager) CalculatePositionSize(rec *ai.Recommendation, md *types.MarketData) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reason, ok := m.riskChecks(rec); !ok {
		log.Printf("Trade rejected for %s: %s", rec.Symbol, reason)
		return Decision{Allowed: false, Reason: reason}
	}

	riskPerUnit := math.Abs(rec.EntryPrice - rec.StopLoss)
	if riskPerUnit <= 0 {
		return Decision{Allowed: false, Reason: "undeterminable risk per unit"}
	}

	baseSize := m.balance * m.config.MaxRiskPerTrade / riskPerUnit

	confidenceMult := confidenceMultiplier(rec.Confidence)
	volatilityMult := volatilityMultiplier(md.Change24h)
	timeMult := timeHorizonMultiplier(rec.TimeHorizon)
	volumeMult := liquidityMultiplier(md.Volume24h)

	adjusted := baseSize * confidenceMult * volatilityMult * timeMult * volumeMult

	finalSize := m.applyLimits(adjusted, rec.EntryPrice)
	if finalSize <= 0 {
		return Decision{
			Allowed:            false,
			Reason:             "position size below minimum",
			ConfidenceAdjusted: rec.Confidence,
			VolatilityAdjusted: volatilityMult,
			KellyFraction:      m.kellyFraction(),
		}
	}

	riskAmount := finalSize * riskPerUnit
	potentialProfit := finalSize * math.Abs(rec.TakeProfit1-rec.EntryPrice)
	riskReward := 0.0
	if riskAmount > 0 {
		riskReward = potentialProfit / riskAmount
	}

	log.Printf("Position sized for %s: size=%.4f risk=$%.2f R/R=%.2f",
		rec.Symbol, finalSize, riskAmount, riskReward)

	return Decision{
		PositionSize:       finalSize,
		RiskAmount:         riskAmount,
		PotentialProfit:    potentialProfit,
		RiskRewardRatio:    riskReward,
		ConfidenceAdjusted: rec.Confidence,
		VolatilityAdjusted: volatilityMult,
		KellyFraction:      m.kellyFraction(),
		Allowed:            true,
		Reason:             "position sized successfully",
	}
}

// riskChecks performs the six ordered gate checks. Caller holds the lock.
func (m *Manager) riskChecks(rec *ai.Recommendation) (string, bool) {
	if rec.Confidence < 0.5 {
		return fmt.Sprintf("low analysis confidence: %.0f%%", rec.Confidence*100), false
	}

	if rec.RiskRewardRatio < m.config.MinRiskRewardRatio {
		return fmt.Sprintf("risk:reward ratio %.2f below minimum %.2f",
			rec.RiskRewardRatio, m.config.MinRiskRewardRatio), false
	}

	if len(m.positions) >= m.config.MaxPositions {
		return fmt.Sprintf("position limit reached: %d", m.config.MaxPositions), false
	}

	if m.dailyPnL < 0 && m.balance > 0 {
		dailyLoss := math.Abs(m.dailyPnL) / m.balance
		if dailyLoss >= m.config.MaxDailyLoss {
			return fmt.Sprintf("daily loss limit reached: %.2f%%", dailyLoss*100), false
		}
	}

	if m.dailyTrades >= m.config.MaxDailyTrades {
		return fmt.Sprintf("daily trade limit reached: %d", m.config.MaxDailyTrades), false
	}

	if m.balance*m.config.MaxPortfolioRisk-m.portfolioRisk() <= 0 {
		return "portfolio risk limit reached", false
	}

	return "", true
}

// applyLimits caps the size by minimum position value, maximum balance share
// and remaining portfolio-risk headroom. Caller holds the lock.
func (m *Manager) applyLimits(size, entryPrice float64) float64 {
	if entryPrice <= 0 {
		return 0
	}

	if size*entryPrice < minPositionValue {
		return 0
	}

	maxSize := m.balance * maxPositionPercent / entryPrice

	availableRisk := m.balance*m.config.MaxPortfolioRisk - m.portfolioRisk()
	final := math.Min(size, maxSize)
	if availableRisk > 0 {
		maxRiskSize := availableRisk / (entryPrice * assumedStopPercent)
		final = math.Min(final, maxRiskSize)
	}

	return math.Max(0, final)
}

func (m *Manager) portfolioRisk() float64 {
	total := 0.0
	for _, p := range m.positions {
		total += p.RiskAmount
	}
	return total
}

// kellyFraction estimates the Kelly bet fraction from trade history. Fewer
// than 10 closed trades yield the conservative placeholder 0.5. Advisory
// metadata only; never applied to the size automatically. Caller holds the lock.
func (m *Manager) kellyFraction() float64 {
	if len(m.tradeHistory) < 10 {
		return 0.5
	}

	m.updateTradeStats()

	if m.avgLoss == 0 || m.winRate == 0 {
		return 0.25
	}

	b := m.avgWin / math.Abs(m.avgLoss)
	p := m.winRate
	q := 1 - p

	kelly := (b*p - q) / b
	return math.Max(0.1, math.Min(0.5, kelly))
}

func (m *Manager) updateTradeStats() {
	if len(m.tradeHistory) == 0 {
		return
	}

	var wins, losses []float64
	for _, t := range m.tradeHistory {
		if t.PnL > 0 {
			wins = append(wins, t.PnL)
		} else if t.PnL < 0 {
			losses = append(losses, t.PnL)
		}
	}

	m.winRate = float64(len(wins)) / float64(len(m.tradeHistory))
	m.avgWin = mean(wins)
	m.avgLoss = mean(losses)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// AddPosition registers a new open position and counts the daily trade.
// A symbol with an already-open position is rejected.
func (m *Manager) AddPosition(rec *ai.Recommendation, decision Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.positions[rec.Symbol]; exists {
		return fmt.Errorf("position for %s already open", rec.Symbol)
	}

	side := "long"
	if rec.Action == ai.ActionShort {
		side = "short"
	}

	m.positions[rec.Symbol] = &Position{
		Symbol:         rec.Symbol,
		Side:           side,
		Size:           decision.PositionSize,
		EntryPrice:     rec.EntryPrice,
		StopLoss:       rec.StopLoss,
		TakeProfit:     rec.TakeProfit1,
		OpenedAt:       time.Now(),
		Confidence:     rec.Confidence,
		RiskAmount:     decision.RiskAmount,
		ExpectedReturn: decision.PotentialProfit,
	}
	m.dailyTrades++

	log.Printf("Position added: %s %s size=%.4f risk=$%.2f",
		rec.Symbol, side, decision.PositionSize, decision.RiskAmount)

	return nil
}

// ClosePosition realizes P&L for the symbol's open position, records the
// trade and removes the position. A missing symbol is a normal outcome and
// returns nil without touching state.
func (m *Manager) ClosePosition(symbol string, closePrice float64) *TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	position, ok := m.positions[symbol]
	if !ok {
		return nil
	}

	var pnl float64
	if position.Side == "long" {
		pnl = (closePrice - position.EntryPrice) * position.Size
	} else {
		pnl = (position.EntryPrice - closePrice) * position.Size
	}

	m.dailyPnL += pnl

	record := TradeRecord{
		Symbol:     position.Symbol,
		Side:       position.Side,
		EntryPrice: position.EntryPrice,
		ClosePrice: closePrice,
		Size:       position.Size,
		PnL:        pnl,
		ClosedAt:   time.Now(),
		Confidence: position.Confidence,
	}
	m.tradeHistory = append(m.tradeHistory, record)
	delete(m.positions, symbol)

	log.Printf("Position closed %s: P&L=$%.2f", symbol, pnl)

	return &record
}

// ResetDailyStats zeroes the daily counters. Caller-driven; the manager does
// not detect day boundaries itself.
func (m *Manager) ResetDailyStats() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dailyPnL = 0
	m.dailyTrades = 0
	log.Printf("Daily statistics reset")
}

// Summary reports the current portfolio state.
func (m *Manager) Summary() PortfolioSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateTradeStats()

	totalRisk := m.portfolioRisk()
	riskPct := 0.0
	if m.balance > 0 {
		riskPct = totalRisk / m.balance * 100
	}

	return PortfolioSummary{
		Balance:        m.balance,
		DailyPnL:       m.dailyPnL,
		DailyTrades:    m.dailyTrades,
		OpenPositions:  len(m.positions),
		TotalRisk:      totalRisk,
		RiskPercentage: riskPct,
		AvailableRisk:  math.Max(0, m.balance*m.config.MaxPortfolioRisk-totalRisk),
		WinRate:        m.winRate,
		AvgWin:         m.avgWin,
		AvgLoss:        m.avgLoss,
		TotalTrades:    len(m.tradeHistory),
	}
}

// OpenPositions returns a copy of the open position list.
func (m *Manager) OpenPositions() []Position {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Position, 0, len(m.positions))
	for _, p := range m.positions {
		out = append(out, *p)
	}
	return out
}

// TradeHistory returns a copy of the closed trade records.
func (m *Manager) TradeHistory() []TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]TradeRecord, len(m.tradeHistory))
	copy(out, m.tradeHistory)
	return out
}

// confidenceMultiplier steps the size down for low-confidence setups and
// rewards very high confidence.
func confidenceMultiplier(confidence float64) float64 {
	switch {
	case confidence < 0.6:
		return 0.5
	case confidence < 0.7:
		return 0.7
	case confidence < 0.8:
		return 0.9
	case confidence < 0.9:
		return 1.0
	default:
		return 1.2
	}
}

// volatilityMultiplier uses the 24h change magnitude as a volatility proxy.
func volatilityMultiplier(change24h float64) float64 {
	change := math.Abs(change24h)
	switch {
	case change < 1:
		return 1.2
	case change < 3:
		return 1.0
	case change < 5:
		return 0.8
	default:
		return 0.6
	}
}

// timeHorizonMultiplier is a fixed lookup on the holding-horizon descriptor.
func timeHorizonMultiplier(horizon string) float64 {
	switch horizon {
	case ai.HorizonShort:
		return 0.8
	case ai.HorizonMedium:
		return 1.0
	case ai.HorizonLong:
		return 1.1
	default:
		return 1.0
	}
}

// liquidityMultiplier scales with 24h traded volume in quote currency.
func liquidityMultiplier(volume24h float64) float64 {
	switch {
	case volume24h > 2_000_000_000:
		return 1.0
	case volume24h > 1_000_000_000:
		return 0.9
	case volume24h > 500_000_000:
		return 0.8
	default:
		return 0.7
	}
}
