package radarviz

import (
	"bytes"
	"fmt"
	"html"

	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
)

const (
	chartTitleHeight = 30.0
	chartBarHeight   = 16.0
	chartBarGap      = 6.0
	chartLabelWidth  = 160.0
	chartPadding     = 16.0
)

// chartPanelHeight returns the vertical space the distribution panel needs:
// one bar row per ring and per quadrant, plus two section titles.
func chartPanelHeight(s chart.Summary) float64 {
	rows := len(s.ByLevel) + len(s.ByCategory)
	if s.Unresolved > 0 {
		rows++
	}
	return 2*chartTitleHeight + float64(rows)*(chartBarHeight+chartBarGap) + chartPadding
}

// renderChartPanel appends the distribution panel below the radar: counts
// per ring, then counts per quadrant, as horizontal bars scaled to the
// largest bucket.
func renderChartPanel(buf *bytes.Buffer, s chart.Summary, f frame, top float64) {
	maxCount := 1
	for _, c := range s.ByLevel {
		maxCount = max(maxCount, c.Count)
	}
	for _, c := range s.ByCategory {
		maxCount = max(maxCount, c.Count)
	}
	maxCount = max(maxCount, s.Unresolved)

	barArea := f.width - chartLabelWidth - 2*chartPadding - 60

	y := top + chartTitleHeight
	y = renderBarSection(buf, "By ring", s.ByLevel, f, y, maxCount, barArea)

	y += chartTitleHeight
	counts := s.ByCategory
	if s.Unresolved > 0 {
		counts = append(append([]chart.Count(nil), counts...), chart.Count{Label: "Unresolved", Count: s.Unresolved})
	}
	renderBarSection(buf, "By quadrant", counts, f, y, maxCount, barArea)
}

func renderBarSection(buf *bytes.Buffer, title string, counts []chart.Count, f frame, y float64, maxCount int, barArea float64) float64 {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="14" font-weight="bold" font-family="sans-serif" fill="#333">%s</text>`+"\n",
		f.minX+chartPadding, y-10, html.EscapeString(title))

	for _, c := range counts {
		w := barArea * float64(c.Count) / float64(maxCount)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="12" font-family="sans-serif" fill="#555">%s</text>`+"\n",
			f.minX+chartPadding, y+chartBarHeight-4, html.EscapeString(c.Label))
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#6fa8dc"/>`+"\n",
			f.minX+chartPadding+chartLabelWidth, y, w, chartBarHeight)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="12" font-family="sans-serif" fill="#888">%d</text>`+"\n",
			f.minX+chartPadding+chartLabelWidth+w+6, y+chartBarHeight-4, c.Count)
		y += chartBarHeight + chartBarGap
	}
	return y
}
