package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

const anthropicBaseURL = "https://api.anthropic.com"

// ClaudeConfig holds the reasoning service configuration.
type ClaudeConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	BaseURL   string // overridable for tests
}

// ClaudeProvider asks the Anthropic messages API for a trade recommendation.
type ClaudeProvider struct {
	config ClaudeConfig
	client *resty.Client
}

// NewClaudeProvider creates a Claude-backed recommendation provider.
func NewClaudeProvider(cfg ClaudeConfig) *ClaudeProvider {
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-sonnet-20241022"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 3000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = anthropicBaseURL
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("x-api-key", cfg.APIKey)
	client.SetHeader("anthropic-version", "2023-06-01")
	client.SetHeader("Content-Type", "application/json")

	return &ClaudeProvider{config: cfg, client: client}
}

func (p *ClaudeProvider) Name() string { return "claude" }

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze builds the analysis prompt, queries the messages API and parses the
// JSON recommendation out of the response text. Any failure is returned as an
// error so the caller can fall back to the deterministic provider.
func (p *ClaudeProvider) Analyze(ctx context.Context, md *types.MarketData, snap *analysis.Snapshot) (*Recommendation, error) {
	if p.config.APIKey == "" {
		return nil, fmt.Errorf("claude provider: no API key configured")
	}

	prompt := BuildAnalysisPrompt(md, snap)
	req := messageRequest{
		Model:     p.config.Model,
		MaxTokens: p.config.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	var respBody messageResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&respBody).
		SetError(&respBody).
		Post("/v1/messages")
	if err != nil {
		return nil, fmt.Errorf("claude request failed: %w", err)
	}
	if resp.IsError() {
		if respBody.Error != nil {
			return nil, fmt.Errorf("claude API error: %s (%s)", respBody.Error.Message, respBody.Error.Type)
		}
		return nil, fmt.Errorf("claude API returned status %d", resp.StatusCode())
	}
	if len(respBody.Content) == 0 {
		return nil, fmt.Errorf("claude response contains no content")
	}

	rec, err := parseRecommendation(respBody.Content[0].Text)
	if err != nil {
		return nil, err
	}
	rec.Analyzer = p.Name()
	rec.Symbol = md.Symbol

	log.Printf("Claude analysis for %s: %s sentiment, confidence %.2f, action %s",
		md.Symbol, rec.Sentiment, rec.Confidence, rec.Action)

	return rec, nil
}

// PromptPreview returns the exact prompt Analyze would send, for inspection.
func (p *ClaudeProvider) PromptPreview(md *types.MarketData, snap *analysis.Snapshot) string {
	return BuildAnalysisPrompt(md, snap)
}

// parseRecommendation extracts the first JSON object from the model's
// response text and decodes it.
func parseRecommendation(text string) (*Recommendation, error) {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(text[start:end+1]), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation JSON: %w", err)
	}
	return &rec, nil
}
