package radarviz

import (
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
	"github.com/sfeldkamp/quadrant/pkg/render"
)

// RenderPDF renders the radar as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(res *layout.Resolver, placed []radar.PlacedItem, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(res, placed, opts...)
	return render.ToPDF(svg)
}
