package data

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

func sampleCandles(count int) []types.OHLCV {
	candles := make([]types.OHLCV, count)
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		price := 100.0 + float64(i)
		candles[i] = types.OHLCV{
			Timestamp: ts.Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price + 0.5,
			Volume:    1000 + float64(i),
		}
	}
	return candles
}

func TestCSVStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	candles := sampleCandles(5)

	require.NoError(t, store.Save("BTCUSDT", "1h", candles))

	loaded, err := store.Load("BTCUSDT", "1h")
	require.NoError(t, err)
	require.Len(t, loaded, 5)

	assert.Equal(t, candles[0].Timestamp, loaded[0].Timestamp)
	assert.Equal(t, candles[4].Close, loaded[4].Close)
	assert.Equal(t, candles[2].Volume, loaded[2].Volume)
}

func TestCSVStore_Load_SkipsMalformedRows(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	content := "timestamp,open,high,low,close,volume\n" +
		"2025-06-01 00:00:00,100,101,99,100.5,1000\n" +
		"not-a-date,100,101,99,100.5,1000\n" +
		"2025-06-01 01:00:00,abc,101,99,100.5,1000\n" +
		"2025-06-01 02:00:00,101,102,100,101.5,1100\n"
	require.NoError(t, os.WriteFile(store.Path("BTCUSDT", "1h"), []byte(content), 0o644))

	loaded, err := store.Load("BTCUSDT", "1h")
	require.NoError(t, err)

	assert.Len(t, loaded, 2)
}

func TestCSVStore_Load_MissingFile(t *testing.T) {
	store := NewCSVStore(t.TempDir())

	_, err := store.Load("BTCUSDT", "1h")

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sampleCandles(10)))
	assert.Error(t, Validate(nil))

	bad := sampleCandles(3)
	bad[1].High = bad[1].Low - 1
	assert.Error(t, Validate(bad))

	outOfOrder := sampleCandles(3)
	outOfOrder[2].Timestamp = outOfOrder[0].Timestamp.Add(-time.Hour)
	assert.Error(t, Validate(outOfOrder))
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	candles := sampleCandles(3)

	_, ok := cache.Get("BTCUSDT_1h")
	assert.False(t, ok)

	cache.Set("BTCUSDT_1h", candles)
	assert.Equal(t, 1, cache.Size())

	got, ok := cache.Get("BTCUSDT_1h")
	require.True(t, ok)
	assert.Equal(t, candles, got)

	// The cache hands out copies.
	got[0].Close = -1
	fresh, _ := cache.Get("BTCUSDT_1h")
	assert.Equal(t, candles[0].Close, fresh[0].Close)

	cache.Clear()
	assert.Zero(t, cache.Size())
}

func TestFilterByDateRange(t *testing.T) {
	candles := sampleCandles(10)

	filtered := FilterByDateRange(candles, candles[2].Timestamp, candles[5].Timestamp)

	require.Len(t, filtered, 4)
	assert.Equal(t, candles[2].Timestamp, filtered[0].Timestamp)
	assert.Equal(t, candles[5].Timestamp, filtered[3].Timestamp)
}

func TestFilterByPeriod(t *testing.T) {
	candles := sampleCandles(10)

	filtered := FilterByPeriod(candles, 3*time.Hour)

	// Last candle plus the three hours before it.
	require.Len(t, filtered, 4)
	assert.Equal(t, candles[6].Timestamp, filtered[0].Timestamp)
}

func TestValidateTimeSequence(t *testing.T) {
	assert.NoError(t, ValidateTimeSequence(sampleCandles(5)))

	bad := sampleCandles(5)
	bad[3].Timestamp = bad[1].Timestamp
	assert.Error(t, ValidateTimeSequence(bad))
}

func TestDetectGaps(t *testing.T) {
	candles := sampleCandles(10)
	assert.Empty(t, DetectGaps(candles, time.Hour))

	// Drop two consecutive candles to open a 3h hole.
	gapped := append(candles[:4:4], candles[6:]...)
	gaps := DetectGaps(gapped, time.Hour)

	require.Len(t, gaps, 1)
	assert.Equal(t, candles[3].Timestamp, gaps[0].From)
	assert.Equal(t, candles[6].Timestamp, gaps[0].To)
	assert.Equal(t, 2, gaps[0].Missing)
	assert.Equal(t, 3*time.Hour, gaps[0].Duration)
}
