package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/internal/risk"
)

// Config is the full bot configuration, loaded from a JSON file with
// credentials supplied through the environment.
type Config struct {
	Environment string `json:"environment"`

	Exchange      ExchangeConfig     `json:"exchange"`
	Trading       TradingConfig      `json:"trading"`
	AI            AIConfig           `json:"ai"`
	Risk          risk.Config        `json:"risk"`
	Indicators    IndicatorConfig    `json:"indicators"`
	Monitoring    MonitoringConfig   `json:"monitoring"`
	Notifications NotificationConfig `json:"notifications"`
	Logging       LoggingConfig      `json:"logging"`
}

// ExchangeConfig holds exchange connection settings.
type ExchangeConfig struct {
	Name      string `json:"name"`
	APIKey    string `json:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty"`
	Testnet   bool   `json:"testnet"`
	Demo      bool   `json:"demo"`
	Category  string `json:"category"`
}

// TradingConfig holds the analysis loop settings.
type TradingConfig struct {
	Symbols          []string `json:"symbols"`
	Interval         string   `json:"interval"` // analysis cycle period, e.g. "15m"
	PrimaryTimeframe string   `json:"primary_timeframe"`
	Timeframes       []string `json:"timeframes"`
	KlineLimit       int      `json:"kline_limit"`
}

// AIConfig selects and configures the recommendation provider.
type AIConfig struct {
	Provider       string `json:"provider"` // "claude" or "mock"
	APIKey         string `json:"api_key,omitempty"`
	Model          string `json:"model,omitempty"`
	MaxTokens      int    `json:"max_tokens,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// IndicatorConfig holds the indicator parameters.
type IndicatorConfig struct {
	RSIPeriod       int     `json:"rsi_period"`
	MACDFast        int     `json:"macd_fast"`
	MACDSlow        int     `json:"macd_slow"`
	MACDSignal      int     `json:"macd_signal"`
	BollingerPeriod int     `json:"bollinger_period"`
	BollingerStdDev float64 `json:"bollinger_std_dev"`
}

// MonitoringConfig holds the metrics and health endpoint settings.
type MonitoringConfig struct {
	Enabled     bool `json:"enabled"`
	MetricsPort int  `json:"metrics_port"`
	HealthPort  int  `json:"health_port"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled       bool   `json:"enabled"`
	TelegramToken string `json:"telegram_token,omitempty"`
	TelegramChat  string `json:"telegram_chat,omitempty"`
}

// LoggingConfig holds file logging settings.
type LoggingConfig struct {
	Dir   string `json:"dir"`
	Level string `json:"level"`
}

// Load reads the configuration file, overlays environment credentials and
// validates the result. A name without path separators resolves under
// configs/; the .json extension is optional.
func Load(configFile string) (*Config, error) {
	// .env is optional, real environments set variables directly.
	_ = godotenv.Load()

	if !strings.ContainsAny(configFile, "/\\") {
		configFile = filepath.Join("configs", configFile)
	}
	if !strings.HasSuffix(configFile, ".json") {
		configFile += ".json"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// applyEnv overlays credentials from the environment. Environment values win
// over the file so secrets never have to live in JSON.
func (c *Config) applyEnv() {
	if v := os.Getenv("BYBIT_API_KEY"); v != "" {
		c.Exchange.APIKey = v
	}
	if v := os.Getenv("BYBIT_API_SECRET"); v != "" {
		c.Exchange.APISecret = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Notifications.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Notifications.TelegramChat = v
	}
}

func (c *Config) setDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}

	if c.Exchange.Name == "" {
		c.Exchange.Name = "bybit"
	}
	if c.Exchange.Category == "" {
		c.Exchange.Category = "linear"
	}

	if len(c.Trading.Symbols) == 0 {
		c.Trading.Symbols = []string{"BTCUSDT"}
	}
	if c.Trading.Interval == "" {
		c.Trading.Interval = "15m"
	}
	if c.Trading.PrimaryTimeframe == "" {
		c.Trading.PrimaryTimeframe = "1h"
	}
	if len(c.Trading.Timeframes) == 0 {
		c.Trading.Timeframes = []string{"15m", "1h", "4h"}
	}
	if c.Trading.KlineLimit == 0 {
		c.Trading.KlineLimit = 100
	}

	if c.AI.Provider == "" {
		c.AI.Provider = "mock"
	}

	if c.Risk.InitialBalance == 0 {
		c.Risk = risk.DefaultConfig()
	}

	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = 12
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = 26
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = 9
	}
	if c.Indicators.BollingerPeriod == 0 {
		c.Indicators.BollingerPeriod = 20
	}
	if c.Indicators.BollingerStdDev == 0 {
		c.Indicators.BollingerStdDev = 2.0
	}

	if c.Monitoring.MetricsPort == 0 {
		c.Monitoring.MetricsPort = 8080
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8081
	}

	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Exchange.Name != "bybit" {
		return fmt.Errorf("unsupported exchange: %s", c.Exchange.Name)
	}

	switch c.AI.Provider {
	case "claude":
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai provider claude requires ANTHROPIC_API_KEY")
		}
	case "mock":
	default:
		return fmt.Errorf("unsupported ai provider: %s", c.AI.Provider)
	}

	if _, err := c.AnalysisInterval(); err != nil {
		return err
	}

	if c.Risk.MaxRiskPerTrade <= 0 || c.Risk.MaxRiskPerTrade > 0.1 {
		return fmt.Errorf("max_risk_per_trade must be in (0, 0.1], got %.3f", c.Risk.MaxRiskPerTrade)
	}
	if c.Risk.MaxPortfolioRisk < c.Risk.MaxRiskPerTrade {
		return fmt.Errorf("max_portfolio_risk %.3f below max_risk_per_trade %.3f",
			c.Risk.MaxPortfolioRisk, c.Risk.MaxRiskPerTrade)
	}

	if c.Notifications.Enabled && c.Notifications.TelegramToken == "" {
		return fmt.Errorf("notifications enabled without telegram token")
	}

	return nil
}

// AnalysisInterval parses the trading interval as a duration.
func (c *Config) AnalysisInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Trading.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid trading interval %q: %w", c.Trading.Interval, err)
	}
	if d < time.Minute {
		return 0, fmt.Errorf("trading interval %s below 1m minimum", d)
	}
	return d, nil
}

// AnalysisConfig converts the indicator section for the analysis engine.
func (c *Config) AnalysisConfig() analysis.Config {
	return analysis.Config{
		RSIPeriod:       c.Indicators.RSIPeriod,
		MACDFast:        c.Indicators.MACDFast,
		MACDSlow:        c.Indicators.MACDSlow,
		MACDSignal:      c.Indicators.MACDSignal,
		BollingerPeriod: c.Indicators.BollingerPeriod,
		BollingerStdDev: c.Indicators.BollingerStdDev,
	}
}

// AITimeout returns the provider timeout as a duration.
func (c *Config) AITimeout() time.Duration {
	if c.AI.TimeoutSeconds == 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}
