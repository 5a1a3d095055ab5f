package radarviz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
)

func testLayout(t *testing.T) (*layout.Resolver, []radar.PlacedItem, []radar.Item) {
	t.Helper()
	cfg := radar.DefaultConfig()
	eng, err := layout.NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	items := []radar.Item{
		{Name: "Go", Category: "Languages & Frameworks", Level: "Adopt", Score: 0.9, Link: "https://go.dev"},
		{Name: "Kafka", Category: "Platforms", Level: "Trial"},
		{Name: "Crystal Ball", Category: "Fortune Telling", Level: "Hold"},
	}
	return eng.Resolver(), eng.Layout(items), items
}

func TestRenderSVG_Structure(t *testing.T) {
	res, placed, _ := testLayout(t)

	svg := string(RenderSVG(res, placed))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with closing svg tag")
	}

	// One guide circle per ring
	if n := strings.Count(svg, `stroke="#ddd"`); n < 8 {
		t.Errorf("got %d guide elements, want at least 8 (4 rings + 4 dividers)", n)
	}

	// One dot per item
	if n := strings.Count(svg, `class="dot"`); n != 3 {
		t.Errorf("got %d dots, want 3", n)
	}

	// Labels from the default enumerations
	for _, label := range []string{"Adopt", "Hold", "Techniques", "Tools"} {
		if !strings.Contains(svg, label) {
			t.Errorf("missing label %q", label)
		}
	}

	// Linked items get an anchor, plain items don't
	if !strings.Contains(svg, `<a href="https://go.dev"`) {
		t.Error("item link should render as an anchor")
	}

	// Unresolved items use the fallback color
	if !strings.Contains(svg, unresolvedColor) {
		t.Error("unresolved item should use the fallback color")
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	res, placed, _ := testLayout(t)

	a := RenderSVG(res, placed, WithTitle("Radar"), WithLegend(), WithHover())
	b := RenderSVG(res, placed, WithTitle("Radar"), WithLegend(), WithHover())
	if !bytes.Equal(a, b) {
		t.Error("identical inputs should produce byte-identical SVG")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	res, placed, items := testLayout(t)

	plain := string(RenderSVG(res, placed))
	if strings.Contains(plain, "<style>") || strings.Contains(plain, "<script") {
		t.Error("hover CSS/JS should be absent without WithHover")
	}

	hover := string(RenderSVG(res, placed, WithHover()))
	if !strings.Contains(hover, "highlightLevel") {
		t.Error("WithHover should embed the interaction script")
	}

	titled := string(RenderSVG(res, placed, WithTitle("Tech Radar <2026>")))
	if !strings.Contains(titled, "Tech Radar &lt;2026&gt;") {
		t.Error("title should be rendered HTML-escaped")
	}

	summary := chart.Summarize(items, res.Config())
	charts := string(RenderSVG(res, placed, WithCharts(summary)))
	if !strings.Contains(charts, "By ring") || !strings.Contains(charts, "By quadrant") {
		t.Error("WithCharts should append the distribution panel")
	}

	custom := string(RenderSVG(res, placed, WithLevelColors([]string{"#111111", "#222222", "#333333", "#444444"})))
	if !strings.Contains(custom, "#111111") {
		t.Error("WithLevelColors should override the palette")
	}
}

func TestDotRadius(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, minDotRadius},
		{1, maxDotRadius},
		{-5, minDotRadius},
		{2, maxDotRadius},
	}
	for _, tt := range tests {
		if got := dotRadius(tt.score); got != tt.want {
			t.Errorf("dotRadius(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
	mid := dotRadius(0.5)
	if mid <= minDotRadius || mid >= maxDotRadius {
		t.Errorf("dotRadius(0.5) = %v, want strictly between min and max", mid)
	}
}
