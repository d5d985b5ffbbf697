package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/exchange/bybit"
	"github.com/kdemidoff/trading-ai-bot/pkg/data"
	"github.com/kdemidoff/trading-ai-bot/pkg/reporting"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

const dateFormat = "2006-01-02"

func main() {
	var (
		symbols   = flag.String("symbols", "BTCUSDT", "Comma-separated list of symbols")
		intervals = flag.String("intervals", "1h", "Comma-separated list of timeframes (1m, 5m, 15m, 30m, 1h, 4h, 1d)")
		category  = flag.String("category", "linear", "Market category (spot, linear, inverse)")
		outdir    = flag.String("outdir", "data", "Directory to write CSV files")
		startDate = flag.String("start", "", "Start date (YYYY-MM-DD, default 90 days ago)")
		endDate   = flag.String("end", "", "End date (YYYY-MM-DD, default now)")
		limit     = flag.Int("limit", 1000, "Number of klines per request (max 1000)")
		testnet   = flag.Bool("testnet", false, "Use the testnet API")
		validate  = flag.Bool("validate", false, "Validate existing CSV files instead of downloading")
		export    = flag.String("export", "", "Also export downloaded candles as json or xlsx")
	)
	flag.Parse()

	start, end, err := parseDateRange(*startDate, *endDate)
	if err != nil {
		log.Fatalf("Invalid date range: %v", err)
	}

	store := data.NewCSVStore(*outdir)
	symList := splitList(*symbols, strings.ToUpper)
	intList := splitList(*intervals, strings.ToLower)

	if *validate {
		validateFiles(store, symList, intList, start, end)
		return
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   *testnet,
	})

	fmt.Printf("📥 Downloading %v x %v from %s to %s\n",
		symList, intList, start.Format(dateFormat), end.Format(dateFormat))

	ctx := context.Background()
	for _, symbol := range symList {
		for _, timeframe := range intList {
			candles, err := downloadOne(ctx, client, store, *category, symbol, timeframe, start, end, *limit)
			if err != nil {
				log.Printf("❌ %s %s: %v", symbol, timeframe, err)
				continue
			}
			if *export != "" {
				if err := exportCandles(*export, symbol, timeframe, candles, *outdir); err != nil {
					log.Printf("❌ export %s %s: %v", symbol, timeframe, err)
				}
			}
		}
	}
}

// exportCandles writes the series in the requested secondary format.
func exportCandles(format, symbol, timeframe string, candles []types.OHLCV, outdir string) error {
	name := fmt.Sprintf("%s_%s.%s", strings.ToUpper(symbol), timeframe, format)
	path := filepath.Join(outdir, name)

	switch format {
	case "json":
		return reporting.WriteCandlesJSON(symbol, timeframe, candles, path)
	case "xlsx":
		return reporting.WriteCandlesXLSX(symbol, timeframe, candles, path)
	default:
		return fmt.Errorf("unsupported export format %q (json, xlsx)", format)
	}
}

// downloadOne fetches one symbol/timeframe pair and writes it to the store.
func downloadOne(ctx context.Context, client *bybit.Client, store *data.CSVStore, category, symbol, timeframe string, start, end time.Time, limit int) ([]types.OHLCV, error) {
	interval, err := bybit.IntervalFromName(timeframe)
	if err != nil {
		return nil, err
	}

	var all []types.OHLCV
	cursor := start

	// Page forward until the range is covered or the API runs dry.
	for cursor.Before(end) {
		windowEnd := end
		candles, err := client.GetKlines(ctx, bybit.KlineParams{
			Category: category,
			Symbol:   symbol,
			Interval: interval,
			Start:    &cursor,
			End:      &windowEnd,
			Limit:    limit,
		})
		if err != nil {
			return nil, err
		}
		if len(candles) == 0 {
			break
		}

		all = append(all, candles...)

		last := candles[len(candles)-1].Timestamp
		if !last.After(cursor) {
			break
		}
		cursor = last.Add(time.Millisecond)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("no candles returned")
	}

	if err := data.ValidateTimeSequence(all); err != nil {
		return nil, fmt.Errorf("downloaded series is inconsistent: %w", err)
	}

	if err := store.Save(symbol, timeframe, all); err != nil {
		return nil, err
	}

	printSummary(symbol, timeframe, all, store.Path(symbol, timeframe))
	return all, nil
}

// validateFiles checks previously downloaded CSV files over the date range.
func validateFiles(store *data.CSVStore, symbols, timeframes []string, start, end time.Time) {
	provider := data.NewCachedProvider(store)

	failed := 0
	for _, symbol := range symbols {
		for _, timeframe := range timeframes {
			candles, err := provider.GetCandlesRange(symbol, timeframe, start, end)
			if err == nil {
				err = data.Validate(candles)
			}
			if err != nil {
				log.Printf("❌ %s %s: %v", symbol, timeframe, err)
				failed++
				continue
			}
			fmt.Printf("✅ %s %s: %d candles OK (%s → %s)\n", symbol, timeframe, len(candles),
				start.Format(dateFormat), end.Format(dateFormat))

			for _, gap := range data.DetectGaps(candles, timeframeDuration(timeframe)) {
				fmt.Printf("   ⚠️ gap: %d candles missing between %s and %s\n",
					gap.Missing, gap.From.Format(time.RFC3339), gap.To.Format(time.RFC3339))
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func printSummary(symbol, timeframe string, candles []types.OHLCV, path string) {
	first := candles[0]
	last := candles[len(candles)-1]

	fmt.Printf("✅ %s %s: %d candles (%s → %s) saved to %s\n",
		symbol, timeframe, len(candles),
		first.Timestamp.Format(dateFormat), last.Timestamp.Format(dateFormat), path)

	change := 0.0
	if first.Close > 0 {
		change = (last.Close - first.Close) / first.Close * 100
	}
	fmt.Printf("   Price: %.2f → %.2f (%+.2f%%)\n", first.Close, last.Close, change)
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, -3, 0)

	if startStr != "" {
		parsed, err := time.Parse(dateFormat, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.Parse(dateFormat, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is not before end %s",
			start.Format(dateFormat), end.Format(dateFormat))
	}
	return start, end, nil
}

func timeframeDuration(timeframe string) time.Duration {
	switch timeframe {
	case "1m":
		return time.Minute
	case "5m":
		return 5 * time.Minute
	case "15m":
		return 15 * time.Minute
	case "30m":
		return 30 * time.Minute
	case "1h":
		return time.Hour
	case "4h":
		return 4 * time.Hour
	case "1d":
		return 24 * time.Hour
	default:
		return 0
	}
}

func splitList(value string, normalize func(string) string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		trimmed := normalize(strings.TrimSpace(part))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
