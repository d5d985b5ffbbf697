package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProvider_ServesFromCache(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	require.NoError(t, store.Save("BTCUSDT", "1h", sampleCandles(10)))

	provider := NewCachedProvider(store)

	first, err := provider.GetCandles("BTCUSDT", "1h")
	require.NoError(t, err)
	require.Len(t, first, 10)

	// Overwrite the file; the cached copy should still be served.
	require.NoError(t, store.Save("BTCUSDT", "1h", sampleCandles(3)))

	second, err := provider.GetCandles("BTCUSDT", "1h")
	require.NoError(t, err)
	assert.Len(t, second, 10)

	provider.ClearCache()

	third, err := provider.GetCandles("BTCUSDT", "1h")
	require.NoError(t, err)
	assert.Len(t, third, 3)
}

func TestCachedProvider_GetCandlesPeriod(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	require.NoError(t, store.Save("BTCUSDT", "1h", sampleCandles(10)))

	provider := NewCachedProvider(store)

	candles, err := provider.GetCandlesPeriod("BTCUSDT", "1h", 3*time.Hour)
	require.NoError(t, err)

	// trailing 3h window from the last candle, inclusive
	assert.Len(t, candles, 4)
	assert.Equal(t, 109.0, candles[len(candles)-1].Open)
}

func TestCachedProvider_GetCandlesRange(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	require.NoError(t, store.Save("BTCUSDT", "1h", sampleCandles(10)))

	provider := NewCachedProvider(store)

	start := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 5, 0, 0, 0, time.UTC)
	candles, err := provider.GetCandlesRange("BTCUSDT", "1h", start, end)
	require.NoError(t, err)

	assert.Len(t, candles, 4)
	assert.Equal(t, 102.0, candles[0].Open)
}

func TestCachedProvider_MissingFile(t *testing.T) {
	provider := NewCachedProvider(NewCSVStore(t.TempDir()))

	_, err := provider.GetCandles("ETHUSDT", "1h")
	assert.Error(t, err)
}
