package radarviz

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
)

const (
	margin      = 48.0
	titleHeight = 40.0
	legendRow   = 28.0

	minDotRadius = 3.5
	maxDotRadius = 7.0
)

// defaultPalette colors rings innermost first. More rings than colors
// cycles through the palette.
var defaultPalette = []string{"#5ba300", "#009eb0", "#c7ba00", "#e09b96"}

const unresolvedColor = "#9e9e9e"

const dotInteractionCSS = `
    .dot { transition: r 0.15s ease, opacity 0.15s ease; }
    .dot.dim { opacity: 0.25; }
    .dot.highlight { stroke: #333; stroke-width: 1.5; }
    a { cursor: pointer; }`

const dotInteractionJS = `
    function highlightLevel(level) {
      document.querySelectorAll('.dot').forEach(d => {
        const same = d.dataset.level === level;
        d.classList.toggle('highlight', same);
        d.classList.toggle('dim', !same);
      });
    }
    function clearHighlight() {
      document.querySelectorAll('.dot').forEach(d => d.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.dot').forEach(el => {
      el.addEventListener('mouseenter', () => highlightLevel(el.dataset.level));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title   string
	legend  bool
	hover   bool
	palette []string
	summary *chart.Summary
}

// WithTitle sets a title rendered above the radar.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithLegend adds a ring color legend below the radar.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithHover enables hover highlighting: mousing over a dot dims every dot
// in a different ring.
func WithHover() SVGOption { return func(r *svgRenderer) { r.hover = true } }

// WithLevelColors overrides the ring color palette, innermost ring first.
func WithLevelColors(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// WithCharts appends a distribution panel below the radar showing item
// counts per ring and per quadrant. Build the summary with
// [chart.Summarize].
func WithCharts(s chart.Summary) SVGOption {
	return func(r *svgRenderer) { r.summary = &s }
}

// RenderSVG draws the radar as an SVG document.
//
// The resolver supplies the geometry (rings, sectors, labels); placed is
// the output of the layout engine. The byte output is deterministic for
// identical inputs, so it can be cached and diffed.
func RenderSVG(res *layout.Resolver, placed []radar.PlacedItem, opts ...SVGOption) []byte {
	r := svgRenderer{palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := res.Config()
	frame := newFrame(cfg, &r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.minX, frame.minY, frame.width, frame.height, frame.width, frame.height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="22" font-family="sans-serif" fill="#333">%s</text>`+"\n",
			cfg.CenterX, frame.minY+titleHeight*0.7, html.EscapeString(r.title))
	}

	renderGuides(&buf, res)
	renderLabels(&buf, res)
	renderDots(&buf, res, placed, r.palette)

	extrasTop := frame.panelTop
	if r.legend {
		renderLegend(&buf, res, r.palette, frame, extrasTop)
		extrasTop += legendRow + 8
	}
	if r.summary != nil {
		renderChartPanel(&buf, *r.summary, frame, extrasTop)
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", dotInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", dotInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frame is the visible SVG region: the radar disc plus margins and any
// optional panels below it.
type frame struct {
	minX, minY    float64
	width, height float64
	panelTop      float64
}

func newFrame(cfg radar.Config, r *svgRenderer) frame {
	f := frame{
		minX:  cfg.CenterX - cfg.Radius - margin,
		minY:  cfg.CenterY - cfg.Radius - margin,
		width: 2 * (cfg.Radius + margin),
	}
	f.height = 2 * (cfg.Radius + margin)
	if r.title != "" {
		f.minY -= titleHeight
		f.height += titleHeight
	}
	f.panelTop = cfg.CenterY + cfg.Radius + margin*0.5
	if r.legend {
		f.height += legendRow + 8
	}
	if r.summary != nil {
		f.height += chartPanelHeight(*r.summary)
	}
	return f
}

func renderGuides(buf *bytes.Buffer, res *layout.Resolver) {
	cfg := res.Config()

	for _, b := range res.Bands() {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ddd" stroke-width="1"/>`+"\n",
			cfg.CenterX, cfg.CenterY, b.Outer)
	}
	for _, s := range res.Sectors() {
		x := cfg.CenterX + cfg.Radius*math.Cos(s.Start)
		y := cfg.CenterY + cfg.Radius*math.Sin(s.Start)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-width="1"/>`+"\n",
			cfg.CenterX, cfg.CenterY, x, y)
	}
}

func renderLabels(buf *bytes.Buffer, res *layout.Resolver) {
	cfg := res.Config()

	for i, s := range res.Sectors() {
		mid := s.Mid()
		x := cfg.CenterX + (cfg.Radius+margin*0.55)*math.Cos(mid)
		y := cfg.CenterY + (cfg.Radius+margin*0.55)*math.Sin(mid)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="14" font-family="sans-serif" fill="#555">%s</text>`+"\n",
			x, y, html.EscapeString(cfg.Categories[i]))
	}
	for i, b := range res.Bands() {
		y := cfg.CenterY - (b.Inner+b.Outer)/2
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" font-family="sans-serif" fill="#999">%s</text>`+"\n",
			cfg.CenterX, y, html.EscapeString(cfg.Levels[i]))
	}
}

func renderDots(buf *bytes.Buffer, res *layout.Resolver, placed []radar.PlacedItem, palette []string) {
	for _, it := range placed {
		color := unresolvedColor
		levelKey := radar.NormalizeKey(it.Level)
		if !it.Unresolved {
			color = levelColor(res, palette, it.Level)
		}

		var dot bytes.Buffer
		fmt.Fprintf(&dot, `<circle class="dot" cx="%.2f" cy="%.2f" r="%.1f" fill="%s" data-level="%s">`,
			it.X, it.Y, dotRadius(it.Score), color, html.EscapeString(levelKey))
		fmt.Fprintf(&dot, `<title>%s</title>`, html.EscapeString(dotTitle(it)))
		dot.WriteString(`</circle>`)

		if it.Link != "" {
			fmt.Fprintf(buf, `  <a href="%s" target="_blank">%s</a>`+"\n", html.EscapeString(it.Link), dot.String())
		} else {
			fmt.Fprintf(buf, "  %s\n", dot.String())
		}
	}
}

func renderLegend(buf *bytes.Buffer, res *layout.Resolver, palette []string, f frame, y float64) {
	cfg := res.Config()
	step := f.width / float64(len(cfg.Levels)+1)
	for i, lvl := range cfg.Levels {
		x := f.minX + step*float64(i+1)
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="6" fill="%s"/>`+"\n", x, y, paletteColor(palette, i))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="12" font-family="sans-serif" fill="#555">%s</text>`+"\n",
			x+11, y+4, html.EscapeString(lvl))
	}
}

func dotTitle(it radar.PlacedItem) string {
	t := it.Name + " (" + it.Level + ")"
	if it.Unresolved {
		t = it.Name + " (unresolved)"
	}
	if it.Description != "" {
		t += ": " + it.Description
	}
	return t
}

// dotRadius maps a score in [0,1] onto the dot size range. Scores outside
// the range clamp; a zero score gets the minimum size.
func dotRadius(score float64) float64 {
	s := math.Max(0, math.Min(1, score))
	return minDotRadius + s*(maxDotRadius-minDotRadius)
}

func levelColor(res *layout.Resolver, palette []string, level string) string {
	key := radar.NormalizeKey(level)
	for i, lvl := range res.Config().Levels {
		if radar.NormalizeKey(lvl) == key {
			return paletteColor(palette, i)
		}
	}
	return unresolvedColor
}

func paletteColor(palette []string, i int) string {
	return palette[i%len(palette)]
}
