package bybit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// CollectorConfig controls which candle series the collector assembles.
type CollectorConfig struct {
	Category         string
	PrimaryTimeframe string   // candle series the indicators run on
	Timeframes       []string // additional series for the trend consensus
	KlineLimit       int
}

// DefaultCollectorConfig matches the analysis engine's lookback needs.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{
		Category:         "linear",
		PrimaryTimeframe: "1h",
		Timeframes:       []string{"15m", "1h", "4h"},
		KlineLimit:       100,
	}
}

// Collector assembles one MarketData snapshot per symbol from the ticker,
// the primary candle series and the per-timeframe series.
type Collector struct {
	client *Client
	config CollectorConfig
}

// NewCollector creates a market data collector on top of the client.
func NewCollector(client *Client, config CollectorConfig) (*Collector, error) {
	if config.Category == "" {
		config.Category = "linear"
	}
	if config.PrimaryTimeframe == "" {
		config.PrimaryTimeframe = "1h"
	}
	if config.KlineLimit == 0 {
		config.KlineLimit = 100
	}
	if _, err := IntervalFromName(config.PrimaryTimeframe); err != nil {
		return nil, err
	}
	for _, tf := range config.Timeframes {
		if _, err := IntervalFromName(tf); err != nil {
			return nil, err
		}
	}
	return &Collector{client: client, config: config}, nil
}

// Collect fetches all series for the symbol. The timeframe fetches run
// concurrently; a failed secondary timeframe is logged and skipped, while a
// failed ticker or primary series fails the whole snapshot.
func (c *Collector) Collect(ctx context.Context, symbol string) (*types.MarketData, error) {
	var ticker *types.Ticker
	err := c.client.Retry(ctx, func() error {
		var tickerErr error
		ticker, tickerErr = c.client.GetTicker(ctx, c.config.Category, symbol)
		return tickerErr
	})
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}

	primaryInterval, _ := IntervalFromName(c.config.PrimaryTimeframe)
	var primary []types.OHLCV
	err = c.client.Retry(ctx, func() error {
		var klineErr error
		primary, klineErr = c.client.GetKlines(ctx, KlineParams{
			Category: c.config.Category,
			Symbol:   symbol,
			Interval: primaryInterval,
			Limit:    c.config.KlineLimit,
		})
		return klineErr
	})
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	if len(primary) == 0 {
		return nil, fmt.Errorf("collect %s: no candles returned", symbol)
	}

	timeframes := make(map[string][]types.OHLCV, len(c.config.Timeframes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, tf := range c.config.Timeframes {
		if tf == c.config.PrimaryTimeframe {
			mu.Lock()
			timeframes[tf] = primary
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(tf string) {
			defer wg.Done()

			interval, _ := IntervalFromName(tf)
			candles, klineErr := c.client.GetKlines(ctx, KlineParams{
				Category: c.config.Category,
				Symbol:   symbol,
				Interval: interval,
				Limit:    c.config.KlineLimit,
			})
			if klineErr != nil {
				log.Printf("Collector: timeframe %s for %s failed: %v", tf, symbol, klineErr)
				return
			}

			mu.Lock()
			timeframes[tf] = candles
			mu.Unlock()
		}(tf)
	}
	wg.Wait()

	return &types.MarketData{
		Symbol:       symbol,
		CurrentPrice: ticker.LastPrice,
		Change24h:    ticker.ChangePercent,
		Volume24h:    ticker.Turnover,
		Klines:       primary,
		Timeframes:   timeframes,
		Timestamp:    time.Now(),
	}, nil
}
