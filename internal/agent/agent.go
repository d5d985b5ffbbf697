package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/ai"
	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/internal/config"
	boterrors "github.com/kdemidoff/trading-ai-bot/internal/errors"
	"github.com/kdemidoff/trading-ai-bot/internal/exchange/bybit"
	"github.com/kdemidoff/trading-ai-bot/internal/logger"
	"github.com/kdemidoff/trading-ai-bot/internal/monitoring"
	"github.com/kdemidoff/trading-ai-bot/internal/notifications"
	"github.com/kdemidoff/trading-ai-bot/internal/risk"
	"github.com/kdemidoff/trading-ai-bot/pkg/reporting"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Agent runs the semi-automated decision loop: collect market data, analyze,
// ask the provider, sanitize, size through the risk manager, and track the
// resulting paper positions.
type Agent struct {
	config      *config.Config
	collector   *bybit.Collector
	engine      *analysis.Engine
	sanitizer   *ai.Sanitizer
	provider    ai.Provider
	fallback    ai.Provider
	riskManager *risk.Manager
	notifier    notifications.Notifier
	health      *monitoring.HealthChecker
	loggers     map[string]*logger.Logger

	interval  time.Duration
	lastReset time.Time
	stopOnce  sync.Once
	stopChan  chan struct{}
}

// New wires the agent from its components. The fallback provider steps in
// whenever the primary provider fails.
func New(
	cfg *config.Config,
	collector *bybit.Collector,
	engine *analysis.Engine,
	provider ai.Provider,
	fallback ai.Provider,
	riskManager *risk.Manager,
	notifier notifications.Notifier,
	health *monitoring.HealthChecker,
) (*Agent, error) {
	interval, err := cfg.AnalysisInterval()
	if err != nil {
		return nil, err
	}

	loggers := make(map[string]*logger.Logger, len(cfg.Trading.Symbols))
	for _, symbol := range cfg.Trading.Symbols {
		l, err := logger.NewLogger(cfg.Logging.Dir, symbol, cfg.Trading.Interval)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for %s: %w", symbol, err)
		}
		loggers[symbol] = l
	}

	return &Agent{
		config:      cfg,
		collector:   collector,
		engine:      engine,
		sanitizer:   ai.NewSanitizer(),
		provider:    provider,
		fallback:    fallback,
		riskManager: riskManager,
		notifier:    notifier,
		health:      health,
		loggers:     loggers,
		interval:    interval,
		lastReset:   time.Now(),
		stopChan:    make(chan struct{}),
	}, nil
}

// Run executes analysis cycles until the context is cancelled or Stop is
// called. The first cycle runs immediately.
func (a *Agent) Run(ctx context.Context) error {
	log.Printf("Agent started: %v every %s via %s", a.config.Trading.Symbols, a.interval, a.provider.Name())

	if err := a.notifier.SendAlert("info", "Trading AI bot started"); err != nil {
		log.Printf("Failed to send startup notification: %v", err)
	}

	a.runAllSymbols(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return ctx.Err()
		case <-a.stopChan:
			a.shutdown()
			return nil
		case <-ticker.C:
			a.maybeResetDailyStats()
			a.runAllSymbols(ctx)
		}
	}
}

// Stop terminates the run loop. Safe to call more than once.
func (a *Agent) Stop() {
	a.stopOnce.Do(func() { close(a.stopChan) })
}

func (a *Agent) shutdown() {
	log.Println("Agent stopping")
	summary := a.riskManager.Summary()
	for _, l := range a.loggers {
		l.LogPortfolio(summary)
		if err := l.Close(); err != nil {
			log.Printf("Failed to close logger: %v", err)
		}
	}
	a.writeSessionReport(summary)
}

// writeSessionReport prints the session outcome and persists it under the
// results directory.
func (a *Agent) writeSessionReport(summary risk.PortfolioSummary) {
	if len(a.config.Trading.Symbols) == 0 {
		return
	}

	report := &reporting.SessionReport{
		Symbol:      strings.Join(a.config.Trading.Symbols, ","),
		Interval:    a.config.Trading.Interval,
		GeneratedAt: time.Now(),
		Summary:     summary,
		Trades:      a.riskManager.TradeHistory(),
	}

	console := reporting.NewDefaultConsoleReporter()
	console.OutputSummary(report)
	console.OutputTrades(report)

	outDir := reporting.DefaultOutputDir(a.config.Trading.Symbols[0], a.config.Trading.Interval)
	if err := reporting.WriteTradesCSV(report, filepath.Join(outDir, "trades.csv")); err != nil {
		log.Printf("Failed to write trades CSV: %v", err)
	}
	if err := reporting.WriteSummaryJSON(report, filepath.Join(outDir, "session.json")); err != nil {
		log.Printf("Failed to write session report: %v", err)
	}
}

func (a *Agent) runAllSymbols(ctx context.Context) {
	for _, symbol := range a.config.Trading.Symbols {
		if ctx.Err() != nil {
			return
		}
		if err := a.runCycle(ctx, symbol); err != nil {
			log.Printf("Cycle failed for %s: %v", symbol, err)
			a.health.RecordError(err.Error())
			monitoring.RecordAnalysisCycle(symbol, "error")

			var botErr *boterrors.BotError
			if errors.As(err, &botErr) && botErr.IsFatal() {
				a.Stop()
				return
			}
		}
	}

	summary := a.riskManager.Summary()
	monitoring.UpdatePortfolio(summary.OpenPositions, summary.TotalRisk)
}

// runCycle performs one full analysis pass for a symbol.
func (a *Agent) runCycle(ctx context.Context, symbol string) error {
	journal := a.loggers[symbol]

	md, err := a.collector.Collect(ctx, symbol)
	if err != nil {
		monitoring.RecordError("exchange")
		a.health.SetConnected(false)
		return boterrors.Wrap(err, boterrors.ErrorCategoryExchange, "collector", "collect market data")
	}

	monitoring.UpdatePrice(symbol, md.CurrentPrice)
	a.health.RecordAnalysis(md.CurrentPrice)

	a.checkOpenPosition(symbol, md.CurrentPrice, journal)

	snap := a.engine.Analyze(md)
	if snap == nil {
		monitoring.RecordError("analysis")
		return boterrors.Wrap(fmt.Errorf("no candles for %s", symbol), boterrors.ErrorCategoryAnalysis, "engine", "analyze")
	}
	journal.LogAnalysis(snap)

	rec := a.recommend(ctx, md, snap, journal)
	rec = a.sanitizer.Sanitize(rec, md.CurrentPrice, symbol)

	monitoring.RecordRecommendation(symbol, rec.Analyzer, rec.Action, rec.Confidence)
	journal.LogRecommendation(rec)

	if rec.Action == ai.ActionWait {
		monitoring.RecordAnalysisCycle(symbol, "wait")
		return nil
	}

	decision := a.riskManager.CalculatePositionSize(rec, md)
	journal.LogDecision(symbol, decision)

	if !decision.Allowed {
		monitoring.RecordAnalysisCycle(symbol, "rejected")
		return nil
	}

	if err := a.riskManager.AddPosition(rec, decision); err != nil {
		journal.Warning("Position not opened: %v", err)
		monitoring.RecordAnalysisCycle(symbol, "rejected")
		return nil
	}

	monitoring.RecordTrade(symbol, rec.Action, decision.RiskAmount)
	monitoring.RecordAnalysisCycle(symbol, "traded")

	if err := a.notifier.SendAlert("success", notifications.FormatRecommendation(rec, decision)); err != nil {
		log.Printf("Failed to send trade notification: %v", err)
	}

	return nil
}

// recommend queries the primary provider and falls back to the deterministic
// provider, then to the static fallback recommendation.
func (a *Agent) recommend(ctx context.Context, md *types.MarketData, snap *analysis.Snapshot, journal *logger.Logger) *ai.Recommendation {
	rec, err := a.provider.Analyze(ctx, md, snap)
	if err == nil {
		return rec
	}

	journal.Warning("Provider %s failed: %v", a.provider.Name(), err)
	monitoring.RecordError("provider")

	if a.fallback != nil && a.fallback.Name() != a.provider.Name() {
		rec, err = a.fallback.Analyze(ctx, md, snap)
		if err == nil {
			return rec
		}
		journal.Warning("Fallback provider failed: %v", err)
	}

	return ai.FallbackRecommendation(md.CurrentPrice, md.Symbol)
}

// checkOpenPosition closes a tracked position when the price crosses its stop
// or target.
func (a *Agent) checkOpenPosition(symbol string, currentPrice float64, journal *logger.Logger) {
	for _, position := range a.riskManager.OpenPositions() {
		if position.Symbol != symbol {
			continue
		}

		hitStop := false
		hitTarget := false
		if position.Side == "long" {
			hitStop = currentPrice <= position.StopLoss
			hitTarget = currentPrice >= position.TakeProfit
		} else {
			hitStop = currentPrice >= position.StopLoss
			hitTarget = currentPrice <= position.TakeProfit
		}
		if !hitStop && !hitTarget {
			continue
		}

		record := a.riskManager.ClosePosition(symbol, currentPrice)
		if record == nil {
			continue
		}
		journal.LogTradeClosed(record)

		level := "success"
		if record.PnL < 0 {
			level = "warning"
		}
		if err := a.notifier.SendAlert(level, notifications.FormatTradeClosed(record)); err != nil {
			log.Printf("Failed to send close notification: %v", err)
		}
	}
}

// maybeResetDailyStats resets the daily counters when the calendar day rolls
// over.
func (a *Agent) maybeResetDailyStats() {
	now := time.Now()
	if now.YearDay() != a.lastReset.YearDay() || now.Year() != a.lastReset.Year() {
		a.riskManager.ResetDailyStats()
		a.lastReset = now
	}
}
