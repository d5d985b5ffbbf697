package notifications

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kdemidoff/trading-ai-bot/internal/ai"
	"github.com/kdemidoff/trading-ai-bot/internal/risk"
)

type TelegramNotifier struct {
	token   string
	chatID  string
	baseURL string
}

func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org",
	}
}

func (t *TelegramNotifier) SendAlert(level, message string) error {
	emoji := "ℹ️"
	switch level {
	case "warning":
		emoji = "⚠️"
	case "error":
		emoji = "🚨"
	case "success":
		emoji = "✅"
	}

	text := fmt.Sprintf("%s *Trading AI Bot*\n\n%s", emoji, message)

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)

	data := url.Values{}
	data.Set("chat_id", t.chatID)
	data.Set("text", text)
	data.Set("parse_mode", "Markdown")

	resp, err := http.Post(apiURL, "application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// FormatRecommendation renders a recommendation as a Telegram message body.
func FormatRecommendation(rec *ai.Recommendation, decision risk.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s* — %s %s\n", rec.Symbol, strings.ToUpper(rec.Action), rec.Sentiment)
	fmt.Fprintf(&b, "Confidence: %.0f%% (%s)\n", rec.Confidence*100, rec.Analyzer)
	fmt.Fprintf(&b, "Entry: $%.2f | Stop: $%.2f\n", rec.EntryPrice, rec.StopLoss)
	fmt.Fprintf(&b, "Targets: $%.2f / $%.2f (R/R %.2f)\n", rec.TakeProfit1, rec.TakeProfit2, rec.RiskRewardRatio)

	if decision.Allowed {
		fmt.Fprintf(&b, "Size: %.6f | Risk: $%.2f", decision.PositionSize, decision.RiskAmount)
	} else {
		fmt.Fprintf(&b, "Not traded: %s", decision.Reason)
	}

	return b.String()
}

// FormatTradeClosed renders a closed trade as a Telegram message body.
func FormatTradeClosed(record *risk.TradeRecord) string {
	outcome := "profit"
	if record.PnL < 0 {
		outcome = "loss"
	}
	return fmt.Sprintf("*%s* %s closed with %s\nEntry: $%.2f → Exit: $%.2f\nP&L: $%.2f",
		record.Symbol, record.Side, outcome, record.EntryPrice, record.ClosePrice, record.PnL)
}
