package radarviz

import (
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
	"github.com/sfeldkamp/quadrant/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	svgOpts []SVGOption
}

// WithScale sets the raster scale factor. 2.0 produces a 2x resolution image.
func WithScale(scale float64) PNGOption {
	return func(r *pngRenderer) { r.scale = scale }
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// RenderPNG renders the radar as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(res *layout.Resolver, placed []radar.PlacedItem, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(res, placed, r.svgOpts...)
	return render.ToPNG(svg, r.scale)
}
