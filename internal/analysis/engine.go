package analysis

import (
	"log"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/indicators"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Config holds the indicator parameters used by the engine.
type Config struct {
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	BollingerStdDev float64
}

// DefaultConfig returns the standard indicator parameters.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
	}
}

// Engine composes the indicator library into one snapshot per symbol.
// It is stateless; Analyze has no side effects beyond logging.
type Engine struct {
	rsi       *indicators.RSI
	macd      *indicators.MACD
	bollinger *indicators.BollingerBands
}

// NewEngine creates a technical analysis engine with the given parameters.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		rsi:       indicators.NewRSI(cfg.RSIPeriod),
		macd:      indicators.NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
		bollinger: indicators.NewBollingerBands(cfg.BollingerPeriod, cfg.BollingerStdDev),
	}
}

// Analyze computes all indicators over the primary candle series and the
// per-timeframe trend consensus, and assembles one snapshot.
func (e *Engine) Analyze(md *types.MarketData) *Snapshot {
	if md == nil || len(md.Klines) == 0 {
		return nil
	}

	closes := md.Closes()
	currentPrice := closes[len(closes)-1]

	rsiValue := e.rsi.Calculate(closes)
	macdResult := e.macd.Calculate(closes)
	bands := e.bollinger.Calculate(closes)
	volume := indicators.VolumeProfile(md.Klines)
	levels := indicators.SupportResistance(md.Klines)

	mtf := MultiTimeframe{OverallTrend: TrendUnknown}
	if len(md.Timeframes) > 0 {
		mtf = ReconcileTimeframes(md.Timeframes)
	}

	priceVsVWAP := "below"
	if currentPrice > volume.VWAP {
		priceVsVWAP = "above"
	}

	bbPosition := "middle"
	switch {
	case bands.Position > 0.8:
		bbPosition = "upper"
	case bands.Position < 0.2:
		bbPosition = "lower"
	}

	snap := &Snapshot{
		Symbol:       md.Symbol,
		Timestamp:    time.Now(),
		CurrentPrice: currentPrice,
		RSI: RSIReading{
			Value:  rsiValue,
			Signal: e.rsi.Signal(rsiValue),
		},
		MACD: MACDReading{
			MACDResult:     macdResult,
			Interpretation: e.macd.Interpretation(macdResult),
		},
		BollingerBands: BollingerReading{
			BollingerResult: bands,
			PricePosition:   bbPosition,
		},
		Volume:            volume,
		SupportResistance: levels,
		PriceVsVWAP:       priceVsVWAP,
		MultiTimeframe:    mtf,
	}

	log.Printf("Analysis %s: RSI=%.1f (%s), MACD=%s, BB position=%.2f, trend=%s",
		md.Symbol, rsiValue, snap.RSI.Signal, snap.MACD.Interpretation, bands.Position, mtf.OverallTrend)

	return snap
}
