package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysisCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_ai_bot_analysis_cycles_total",
			Help: "Total number of analysis cycles per symbol and outcome",
		},
		[]string{"symbol", "outcome"},
	)

	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_ai_bot_recommendations_total",
			Help: "Total recommendations by provider and action",
		},
		[]string{"analyzer", "action"},
	)

	recommendationConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trading_ai_bot_recommendation_confidence",
			Help: "Confidence of the latest recommendation per symbol",
		},
		[]string{"symbol"},
	)

	currentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trading_ai_bot_current_price",
			Help: "Current price of trading symbol",
		},
		[]string{"symbol"},
	)

	positionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trading_ai_bot_positions_open",
			Help: "Number of currently open positions",
		},
	)

	portfolioRisk = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trading_ai_bot_portfolio_risk_dollars",
			Help: "Total dollar risk across open positions",
		},
	)

	tradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_ai_bot_trades_total",
			Help: "Total number of opened positions",
		},
		[]string{"symbol", "side"},
	)

	positionSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trading_ai_bot_position_risk_amount",
			Help:    "Distribution of per-position dollar risk",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_ai_bot_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(analysisCyclesTotal)
	prometheus.MustRegister(recommendationsTotal)
	prometheus.MustRegister(recommendationConfidence)
	prometheus.MustRegister(currentPrice)
	prometheus.MustRegister(positionsOpen)
	prometheus.MustRegister(portfolioRisk)
	prometheus.MustRegister(tradesTotal)
	prometheus.MustRegister(positionSize)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordAnalysisCycle counts one completed analysis cycle.
func RecordAnalysisCycle(symbol, outcome string) {
	analysisCyclesTotal.WithLabelValues(symbol, outcome).Inc()
}

// RecordRecommendation counts one recommendation and tracks its confidence.
func RecordRecommendation(symbol, analyzer, action string, confidence float64) {
	recommendationsTotal.WithLabelValues(analyzer, action).Inc()
	recommendationConfidence.WithLabelValues(symbol).Set(confidence)
}

// UpdatePrice updates the current price metric.
func UpdatePrice(symbol string, price float64) {
	currentPrice.WithLabelValues(symbol).Set(price)
}

// UpdatePortfolio updates the open-position and risk gauges.
func UpdatePortfolio(openPositions int, totalRisk float64) {
	positionsOpen.Set(float64(openPositions))
	portfolioRisk.Set(totalRisk)
}

// RecordTrade counts one opened position.
func RecordTrade(symbol, side string, riskAmount float64) {
	tradesTotal.WithLabelValues(symbol, side).Inc()
	positionSize.WithLabelValues(symbol).Observe(riskAmount)
}

// RecordError records an error metric.
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
