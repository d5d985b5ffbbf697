package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

const analysisPromptHeader = `You are a professional cryptocurrency futures trader with 10+ years of experience in quantitative analysis and risk management.

Your task is to analyze the comprehensive market data and provide a detailed trading recommendation for a medium-term position (1-8 hour holding period) focusing on futures markets.

%s

ANALYSIS FRAMEWORK:
1. Technical Analysis Priority: RSI momentum, MACD signals, Bollinger Band position
2. Volume Analysis: VWAP relationship, volume trends, high-volume nodes
3. Support/Resistance: Key levels strength and proximity
4. Multi-timeframe Confirmation: Trend alignment across timeframes
5. Risk Management: Conservative position sizing and strict stop-losses

PROVIDE YOUR ANALYSIS IN STRICT JSON FORMAT ONLY:
{
    "market_sentiment": "bullish/neutral/bearish",
    "confidence_score": 0.0-1.0,
    "recommended_action": "long/short/wait",
    "entry_price": number,
    "stop_loss": number,
    "take_profit_1": number,
    "take_profit_2": number,
    "risk_reward_ratio": number,
    "time_horizon": "short/medium/long",
    "reasoning": "comprehensive analysis explanation (max 300 words)"
}

CRITICAL REQUIREMENTS:
- Only return valid JSON, no additional text
- Confidence > 0.8 only for very strong setups
- Stop-loss never more than 3%% from entry
- Minimum risk:reward ratio of 1:2
- If analysis is unclear, set confidence < 0.5 and recommend "wait"
- Consider all technical indicators in combination, not individually`

// BuildAnalysisPrompt renders the full prompt sent to the reasoning service.
func BuildAnalysisPrompt(md *types.MarketData, snap *analysis.Snapshot) string {
	return fmt.Sprintf(analysisPromptHeader, formatMarketData(md, snap))
}

// formatMarketData renders the market state and indicator snapshot as the
// structured text block embedded in the prompt.
func formatMarketData(md *types.MarketData, snap *analysis.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "COMPREHENSIVE MARKET ANALYSIS - %s\n", md.Symbol)
	fmt.Fprintf(&b, "Analysis Time: %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "CURRENT MARKET STATE:\n")
	fmt.Fprintf(&b, "- Current Price: $%.2f\n", md.CurrentPrice)
	fmt.Fprintf(&b, "- 24h Change: %+.2f%%\n", md.Change24h)
	fmt.Fprintf(&b, "- 24h Volume: %.0f USDT\n", md.Volume24h)

	if snap != nil {
		fmt.Fprintf(&b, "\nTECHNICAL INDICATORS:\n")
		fmt.Fprintf(&b, "- RSI(14): %.1f (%s)\n", snap.RSI.Value, strings.ToUpper(snap.RSI.Signal))
		fmt.Fprintf(&b, "- MACD: %.4f signal=%.4f histogram=%.4f (%s)\n",
			snap.MACD.MACD, snap.MACD.Signal, snap.MACD.Histogram, strings.ToUpper(snap.MACD.Interpretation))
		fmt.Fprintf(&b, "- Bollinger Bands: upper=$%.2f middle=$%.2f lower=$%.2f position=%s width=%.2f%%\n",
			snap.BollingerBands.Upper, snap.BollingerBands.Middle, snap.BollingerBands.Lower,
			strings.ToUpper(snap.BollingerBands.PricePosition), snap.BollingerBands.Width*100)

		fmt.Fprintf(&b, "\nVOLUME ANALYSIS:\n")
		fmt.Fprintf(&b, "- VWAP: $%.2f (price %s)\n", snap.Volume.VWAP, snap.PriceVsVWAP)
		fmt.Fprintf(&b, "- Volume Trend: %s\n", strings.ToUpper(snap.Volume.VolumeTrend))
		if len(snap.Volume.HighVolumeNodes) > 0 {
			nodes := make([]string, len(snap.Volume.HighVolumeNodes))
			for i, n := range snap.Volume.HighVolumeNodes {
				nodes[i] = fmt.Sprintf("$%.0f", n)
			}
			fmt.Fprintf(&b, "- High Volume Nodes: %s\n", strings.Join(nodes, ", "))
		}

		fmt.Fprintf(&b, "\nSUPPORT/RESISTANCE:\n")
		fmt.Fprintf(&b, "- Resistance: $%.2f (tested %d times)\n",
			snap.SupportResistance.Resistance, snap.SupportResistance.ResistanceTests)
		fmt.Fprintf(&b, "- Support: $%.2f (tested %d times)\n",
			snap.SupportResistance.Support, snap.SupportResistance.SupportTests)
		fmt.Fprintf(&b, "- Strength: %s\n", strings.ToUpper(snap.SupportResistance.Strength))

		if len(snap.MultiTimeframe.Timeframes) > 0 {
			fmt.Fprintf(&b, "\nMULTI-TIMEFRAME TRENDS:\n")
			for tf, t := range snap.MultiTimeframe.Timeframes {
				fmt.Fprintf(&b, "- %s: %s (%s)\n", tf, t.Trend, t.Strength)
			}
			fmt.Fprintf(&b, "- Overall: %s, agreement=%v\n",
				snap.MultiTimeframe.OverallTrend, snap.MultiTimeframe.TrendAgreement)
		}
	}

	// Last candles give the model raw recent price action.
	klines := md.Klines
	if len(klines) > 15 {
		klines = klines[len(klines)-15:]
	}
	if len(klines) > 0 {
		fmt.Fprintf(&b, "\nRECENT CANDLES (oldest first):\n")
		for _, k := range klines {
			fmt.Fprintf(&b, "- %s O=%.2f H=%.2f L=%.2f C=%.2f V=%.0f\n",
				k.Timestamp.Format("15:04"), k.Open, k.High, k.Low, k.Close, k.Volume)
		}
	}

	return b.String()
}
