package indicators

import (
	"math"
	"sort"

	"github.com/kdemidoff/trading-ai-bot/pkg/types"
)

// Volume trend classifications.
const (
	VolumeTrendIncreasing       = "increasing"
	VolumeTrendDecreasing       = "decreasing"
	VolumeTrendStable           = "stable"
	VolumeTrendInsufficientData = "insufficient_data"
)

// VolumeProfileResult holds VWAP, the volume trend and high-volume price nodes.
type VolumeProfileResult struct {
	VWAP            float64
	VolumeTrend     string
	HighVolumeNodes []float64
	AvgVolume       float64
}

// VolumeProfile computes VWAP over all supplied candles, classifies the volume
// trend by comparing the last 10 candles against the prior 10, and finds the
// top-3 price buckets (rounded to the nearest 100) by traded volume over the
// last 50 candles.
func VolumeProfile(candles []types.OHLCV) VolumeProfileResult {
	if len(candles) == 0 {
		return VolumeProfileResult{VolumeTrend: VolumeTrendInsufficientData}
	}

	totalVolume := 0.0
	totalPriceVolume := 0.0
	for _, c := range candles {
		typical := (c.High + c.Low + c.Close) / 3
		totalPriceVolume += typical * c.Volume
		totalVolume += c.Volume
	}

	vwap := 0.0
	if totalVolume > 0 {
		vwap = totalPriceVolume / totalVolume
	}

	trend := VolumeTrendInsufficientData
	if len(candles) >= 20 {
		recent := sumVolume(candles[len(candles)-10:])
		previous := sumVolume(candles[len(candles)-20 : len(candles)-10])
		ratio := 1.0
		if previous > 0 {
			ratio = recent / previous
		}
		switch {
		case ratio > 1.3:
			trend = VolumeTrendIncreasing
		case ratio < 0.7:
			trend = VolumeTrendDecreasing
		default:
			trend = VolumeTrendStable
		}
	}

	window := candles
	if len(window) > 50 {
		window = window[len(window)-50:]
	}
	buckets := make(map[float64]float64)
	for _, c := range window {
		level := math.Round(c.Close/100) * 100
		buckets[level] += c.Volume
	}

	type node struct {
		price  float64
		volume float64
	}
	nodes := make([]node, 0, len(buckets))
	for price, volume := range buckets {
		nodes = append(nodes, node{price, volume})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].volume > nodes[j].volume })

	top := make([]float64, 0, 3)
	for i := 0; i < len(nodes) && i < 3; i++ {
		top = append(top, nodes[i].price)
	}

	avgWindow := candles
	if len(avgWindow) > 20 {
		avgWindow = avgWindow[len(avgWindow)-20:]
	}

	return VolumeProfileResult{
		VWAP:            vwap,
		VolumeTrend:     trend,
		HighVolumeNodes: top,
		AvgVolume:       sumVolume(avgWindow) / float64(len(avgWindow)),
	}
}

func sumVolume(candles []types.OHLCV) float64 {
	sum := 0.0
	for _, c := range candles {
		sum += c.Volume
	}
	return sum
}
