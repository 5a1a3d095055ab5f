// Package chart derives the dashboard summary data from a radar item list:
// per-category and per-level counts for the bar and pie views, the
// category×level matrix, and basic score statistics.
//
// Everything here is a pure aggregation over the same ordered item list the
// layout engine consumes; no positions are involved.
package chart

import (
	"gonum.org/v1/gonum/stat"

	"github.com/sfeldkamp/quadrant/pkg/radar"
)

// Count is one labeled bucket of the summary.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ScoreStats summarizes the score distribution of a bucket.
type ScoreStats struct {
	Label  string  `json:"label"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary is the full derived dataset for the bar/pie views.
//
// Bucket order follows the configured enumeration order, not item order,
// so charts render with stable axes. Items with classifications outside
// the configured enumerations are tallied under Unresolved.
type Summary struct {
	ByCategory []Count      `json:"by_category"`
	ByLevel    []Count      `json:"by_level"`
	Matrix     [][]int      `json:"matrix"` // [category][level]
	Scores     []ScoreStats `json:"scores"` // per category, only where scores exist
	Unresolved int          `json:"unresolved,omitempty"`
	Total      int          `json:"total"`
}

// Summarize aggregates items against the enumerations in cfg.
func Summarize(items []radar.Item, cfg radar.Config) Summary {
	catIdx := indexByKey(cfg.Categories)
	lvlIdx := indexByKey(cfg.Levels)

	s := Summary{
		ByCategory: make([]Count, len(cfg.Categories)),
		ByLevel:    make([]Count, len(cfg.Levels)),
		Matrix:     make([][]int, len(cfg.Categories)),
		Total:      len(items),
	}
	for i, c := range cfg.Categories {
		s.ByCategory[i].Label = c
		s.Matrix[i] = make([]int, len(cfg.Levels))
	}
	for i, l := range cfg.Levels {
		s.ByLevel[i].Label = l
	}

	scores := make([][]float64, len(cfg.Categories))
	for _, it := range items {
		ci, cok := catIdx[radar.NormalizeKey(it.Category)]
		li, lok := lvlIdx[radar.NormalizeKey(it.Level)]
		if !cok || !lok {
			s.Unresolved++
			continue
		}
		s.ByCategory[ci].Count++
		s.ByLevel[li].Count++
		s.Matrix[ci][li]++
		if it.Score != 0 {
			scores[ci] = append(scores[ci], it.Score)
		}
	}

	for i, vals := range scores {
		if len(vals) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if len(vals) == 1 {
			std = 0
		}
		st := ScoreStats{
			Label:  cfg.Categories[i],
			Mean:   mean,
			StdDev: std,
			Min:    vals[0],
			Max:    vals[0],
		}
		for _, v := range vals[1:] {
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
		}
		s.Scores = append(s.Scores, st)
	}

	return s
}

func indexByKey(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[radar.NormalizeKey(l)] = i
	}
	return idx
}
