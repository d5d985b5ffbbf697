package data

import (
	"log"
	"time"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// HistoryProvider loads candle series by symbol and timeframe.
type HistoryProvider interface {
	GetCandles(symbol, timeframe string) ([]types.OHLCV, error)
}

// CachedProvider wraps a CSVStore with an in-memory cache so repeated reads
// over the same history skip the filesystem.
type CachedProvider struct {
	store *CSVStore
	cache *MemoryCache
}

// NewCachedProvider creates a cached provider on top of the store.
func NewCachedProvider(store *CSVStore) *CachedProvider {
	return &CachedProvider{
		store: store,
		cache: NewMemoryCache(),
	}
}

// GetCandles loads a full series, serving repeated calls from the cache.
func (p *CachedProvider) GetCandles(symbol, timeframe string) ([]types.OHLCV, error) {
	key := p.store.Path(symbol, timeframe)
	if cached, exists := p.cache.Get(key); exists {
		return cached, nil
	}

	log.Printf("🔄 Loading historical data from %s", key)
	candles, err := p.store.Load(symbol, timeframe)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, candles)
	return candles, nil
}

// GetCandlesPeriod loads the trailing period of a series.
func (p *CachedProvider) GetCandlesPeriod(symbol, timeframe string, period time.Duration) ([]types.OHLCV, error) {
	candles, err := p.GetCandles(symbol, timeframe)
	if err != nil {
		return nil, err
	}
	return FilterByPeriod(candles, period), nil
}

// GetCandlesRange loads the part of a series within [start, end].
func (p *CachedProvider) GetCandlesRange(symbol, timeframe string, start, end time.Time) ([]types.OHLCV, error) {
	candles, err := p.GetCandles(symbol, timeframe)
	if err != nil {
		return nil, err
	}
	return FilterByDateRange(candles, start, end), nil
}

// ClearCache drops all cached series.
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}
