package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/ai"
	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/internal/risk"
)

// Logger writes the per-session trading journal to a dated log file.
type Logger struct {
	symbol   string
	interval string
	logFile  *os.File
	logger   *log.Logger
	mu       sync.Mutex
	logDir   string
}

// LogLevel represents different types of log entries.
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelTrade   LogLevel = "TRADE"
	LogLevelStatus  LogLevel = "STATUS"
)

// NewLogger creates a file logger for the specified symbol and analysis interval.
func NewLogger(logDir, symbol, interval string) (*Logger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s_%s.log", symbol, interval, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		symbol:   symbol,
		interval: interval,
		logFile:  file,
		logger:   log.New(file, "", 0),
		logDir:   logDir,
	}

	l.writeSessionHeader()

	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🚀 AI TRADING SESSION STARTED
================================================================================
Symbol: %s | Analysis Interval: %s
Started: %s
================================================================================
`, l.symbol, l.interval, time.Now().Format("2006-01-02 15:04:05"))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level.
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	l.logger.Printf("[%s] [%s] %s", timestamp, level, message)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

func (l *Logger) Trade(format string, args ...interface{}) {
	l.Log(LogLevelTrade, format, args...)
}

// LogAnalysis writes the indicator snapshot summary for one analysis cycle.
func (l *Logger) LogAnalysis(snap *analysis.Snapshot) {
	if snap == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	statusLog := fmt.Sprintf(`
[%s] [STATUS] ==================== MARKET ANALYSIS ====================
💰 Price: $%.2f | VWAP: %s
📊 RSI: %.1f (%s) | MACD: %s
📈 Bollinger: %s (position %.2f)
🔍 S/R: $%.2f / $%.2f (%s)
🕐 Multi-timeframe: %s (agreement: %v)
===========================================================`,
		timestamp, snap.CurrentPrice, snap.PriceVsVWAP,
		snap.RSI.Value, snap.RSI.Signal, snap.MACD.Interpretation,
		snap.BollingerBands.PricePosition, snap.BollingerBands.Position,
		snap.SupportResistance.Support, snap.SupportResistance.Resistance, snap.SupportResistance.Strength,
		snap.MultiTimeframe.OverallTrend, snap.MultiTimeframe.TrendAgreement)

	l.logger.Println(statusLog)
}

// LogRecommendation writes the sanitized provider recommendation.
func (l *Logger) LogRecommendation(rec *ai.Recommendation) {
	if rec == nil {
		return
	}
	l.Info("Recommendation [%s]: %s %s, confidence %.2f, entry $%.2f, stop $%.2f, TP $%.2f/$%.2f, R/R %.2f",
		rec.Analyzer, rec.Sentiment, rec.Action, rec.Confidence,
		rec.EntryPrice, rec.StopLoss, rec.TakeProfit1, rec.TakeProfit2, rec.RiskRewardRatio)
}

// LogDecision writes the risk manager's sizing verdict.
func (l *Logger) LogDecision(symbol string, d risk.Decision) {
	if !d.Allowed {
		l.Info("Trade rejected for %s: %s", symbol, d.Reason)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	tradeLog := fmt.Sprintf(`
[%s] [TRADE] ==================== POSITION SIZED ====================
✅ Symbol: %s
📦 Size: %.6f
💵 Risk: $%.2f | Potential Profit: $%.2f
📊 R/R: %.2f | Kelly: %.2f
==========================================================`,
		timestamp, symbol, d.PositionSize, d.RiskAmount, d.PotentialProfit,
		d.RiskRewardRatio, d.KellyFraction)

	l.logger.Println(tradeLog)
}

// LogTradeClosed writes the realized result of a closed position.
func (l *Logger) LogTradeClosed(record *risk.TradeRecord) {
	if record == nil {
		return
	}
	l.Trade("Closed %s %s: entry $%.2f, exit $%.2f, size %.6f, P&L $%.2f",
		record.Side, record.Symbol, record.EntryPrice, record.ClosePrice, record.Size, record.PnL)
}

// LogPortfolio writes the portfolio summary line.
func (l *Logger) LogPortfolio(s risk.PortfolioSummary) {
	l.Log(LogLevelStatus,
		"Portfolio: balance $%.2f, daily P&L $%.2f, open %d, risk $%.2f (%.1f%%), trades today %d",
		s.Balance, s.DailyPnL, s.OpenPositions, s.TotalRisk, s.RiskPercentage, s.DailyTrades)
}

// LogError logs an error with context.
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close writes the session footer and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 AI TRADING SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Print(footer)

	return l.logFile.Close()
}

// LogPath returns the current log file path.
func (l *Logger) LogPath() string {
	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s_%s.log", l.symbol, l.interval, timestamp)
	return filepath.Join(l.logDir, filename)
}
