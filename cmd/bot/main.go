package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/agent"
	"github.com/kdemidoff/trading-ai-bot/internal/ai"
	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/internal/config"
	"github.com/kdemidoff/trading-ai-bot/internal/exchange/bybit"
	"github.com/kdemidoff/trading-ai-bot/internal/monitoring"
	"github.com/kdemidoff/trading-ai-bot/internal/notifications"
	"github.com/kdemidoff/trading-ai-bot/internal/risk"
)

func main() {
	var (
		configFile = flag.String("config", "bot", "Configuration file (e.g., bot.json under configs/)")
		demo       = flag.Bool("demo", false, "Use the demo trading environment regardless of config")
		provider   = flag.String("provider", "", "Override the analysis provider (claude, mock)")
	)
	flag.Parse()

	fmt.Println("🚀 Trading AI Bot Starting...")

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *demo {
		cfg.Exchange.Demo = true
		cfg.Exchange.Testnet = false
	}
	if *provider != "" {
		cfg.AI.Provider = *provider
		if cfg.AI.Provider == "claude" && cfg.AI.APIKey == "" {
			log.Fatal("ANTHROPIC_API_KEY is required for the claude provider")
		}
	}

	bot, health, err := buildAgent(cfg)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}

	startMonitoring(cfg, health)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- bot.Run(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		fmt.Println("\n🛑 Shutdown signal received...")
		bot.Stop()
		<-errChan
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Agent stopped with error: %v", err)
		}
	}

	fmt.Println("✅ Bot stopped successfully")
}

// buildAgent wires the full analysis pipeline from configuration.
func buildAgent(cfg *config.Config) (*agent.Agent, *monitoring.HealthChecker, error) {
	client := bybit.NewClient(bybit.Config{
		APIKey:    cfg.Exchange.APIKey,
		APISecret: cfg.Exchange.APISecret,
		Testnet:   cfg.Exchange.Testnet,
		Demo:      cfg.Exchange.Demo,
	})
	log.Printf("Bybit client ready (%s)", client.Environment())

	collector, err := bybit.NewCollector(client, bybit.CollectorConfig{
		Category:         cfg.Exchange.Category,
		PrimaryTimeframe: cfg.Trading.PrimaryTimeframe,
		Timeframes:       cfg.Trading.Timeframes,
		KlineLimit:       cfg.Trading.KlineLimit,
	})
	if err != nil {
		return nil, nil, err
	}

	engine := analysis.NewEngine(cfg.AnalysisConfig())
	riskManager := risk.NewManager(cfg.Risk)

	primary, fallback := buildProviders(cfg)
	notifier := buildNotifier(cfg)
	health := monitoring.NewHealthChecker(2 * mustInterval(cfg))

	bot, err := agent.New(cfg, collector, engine, primary, fallback, riskManager, notifier, health)
	if err != nil {
		return nil, nil, err
	}
	return bot, health, nil
}

// buildProviders returns the configured provider plus the mock fallback. The
// mock provider is its own fallback when selected directly.
func buildProviders(cfg *config.Config) (ai.Provider, ai.Provider) {
	mock := ai.NewMockProvider()

	if cfg.AI.Provider == "claude" {
		claude := ai.NewClaudeProvider(ai.ClaudeConfig{
			APIKey:    cfg.AI.APIKey,
			Model:     cfg.AI.Model,
			MaxTokens: cfg.AI.MaxTokens,
			Timeout:   cfg.AITimeout(),
		})
		return claude, mock
	}

	return mock, mock
}

func buildNotifier(cfg *config.Config) notifications.Notifier {
	if cfg.Notifications.Enabled && cfg.Notifications.TelegramToken != "" {
		return notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChat)
	}
	log.Println("Telegram notifications disabled (no token configured)")
	return &notifications.NoopNotifier{}
}

// startMonitoring serves the health and metrics endpoints when enabled.
func startMonitoring(cfg *config.Config, health *monitoring.HealthChecker) {
	if !cfg.Monitoring.Enabled {
		return
	}

	healthMux := http.NewServeMux()
	healthMux.Handle("/health", health)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Monitoring.HealthPort)
		if err := http.ListenAndServe(addr, healthMux); err != nil {
			log.Printf("Health server stopped: %v", err)
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", monitoring.NewMetricsHandler())
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Monitoring.MetricsPort)
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	log.Printf("Monitoring enabled: health on :%d, metrics on :%d", cfg.Monitoring.HealthPort, cfg.Monitoring.MetricsPort)
}

func mustInterval(cfg *config.Config) time.Duration {
	interval, err := cfg.AnalysisInterval()
	if err != nil {
		log.Fatalf("Invalid analysis interval: %v", err)
	}
	return interval
}
