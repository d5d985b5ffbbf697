package ai

import (
	"context"

	"github.com/kdemidoff/trading-ai-bot/internal/analysis"
	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Provider produces trade recommendations from market data and the computed
// indicator snapshot. Implementations: the Claude-backed provider and the
// deterministic mock provider used as fallback.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, md *types.MarketData, snap *analysis.Snapshot) (*Recommendation, error)
}
