// Package radarviz renders computed radar layouts to output formats.
//
// # Overview
//
// A sink transforms placed items plus the resolver geometry into a final
// output format:
//
//   - SVG: scalable vector graphics with interactivity
//   - JSON: layout data export for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws the ring and sector guides, the category and level
// labels, and one dot per placed item. Dots are colored by ring, sized by
// score, and wrapped in links when the item carries one.
//
// Basic usage:
//
//	svg := radarviz.RenderSVG(resolver, placed,
//	    radarviz.WithTitle("Technology Radar"),
//	    radarviz.WithLegend(),
//	    radarviz.WithHover(),
//	)
//
// # SVG Options
//
//   - [WithTitle]: title text above the radar
//   - [WithLegend]: ring color legend below the radar
//   - [WithHover]: hover highlighting of dots sharing a ring
//   - [WithCharts]: distribution panel below the radar
//   - [WithLevelColors]: override the ring color palette
//
// # JSON Output
//
// [RenderJSON] exports positions and classifications as a JSON document,
// the interchange format for external tools and for caching computed
// layouts.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] generate SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. Both require librsvg.
//
// [render.ToPDF]: github.com/sfeldkamp/quadrant/pkg/render.ToPDF
// [render.ToPNG]: github.com/sfeldkamp/quadrant/pkg/render.ToPNG
package radarviz
