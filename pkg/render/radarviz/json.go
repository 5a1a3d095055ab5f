package radarviz

import (
	"encoding/json"

	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title   string
	summary *chart.Summary
}

// WithJSONTitle records the radar title in the JSON output.
func WithJSONTitle(title string) JSONOption {
	return func(r *jsonRenderer) { r.title = title }
}

// WithJSONSummary includes the distribution summary in the JSON output.
// Build it with [chart.Summarize].
func WithJSONSummary(s chart.Summary) JSONOption {
	return func(r *jsonRenderer) { r.summary = &s }
}

type jsonOutput struct {
	Title      string         `json:"title,omitempty"`
	CenterX    float64        `json:"center_x"`
	CenterY    float64        `json:"center_y"`
	Radius     float64        `json:"radius"`
	Categories []string       `json:"categories"`
	Levels     []string       `json:"levels"`
	Items      []jsonItem     `json:"items"`
	Summary    *chart.Summary `json:"summary,omitempty"`
}

type jsonItem struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Level      string  `json:"level"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Score      float64 `json:"score,omitempty"`
	Link       string  `json:"link,omitempty"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// RenderJSON exports the layout as a pretty-printed JSON document.
// This is the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed layouts for fast re-rendering
//   - Diffing radars between editions
//
// Items appear in the same order as the input list; positions are exact,
// not rounded. RenderJSON returns an error only if marshaling fails,
// which does not happen with well-formed layouts.
func RenderJSON(res *layout.Resolver, placed []radar.PlacedItem, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := res.Config()
	out := jsonOutput{
		Title:      r.title,
		CenterX:    cfg.CenterX,
		CenterY:    cfg.CenterY,
		Radius:     cfg.Radius,
		Categories: cfg.Categories,
		Levels:     cfg.Levels,
		Items:      make([]jsonItem, 0, len(placed)),
		Summary:    r.summary,
	}
	for _, it := range placed {
		out.Items = append(out.Items, jsonItem{
			Name:       it.Name,
			Category:   it.Category,
			Level:      it.Level,
			X:          it.X,
			Y:          it.Y,
			Score:      it.Score,
			Link:       it.Link,
			Unresolved: it.Unresolved,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
