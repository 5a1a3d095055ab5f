// Package render provides output generation for radar layouts.
//
// # Overview
//
// This package contains generic format conversion (SVG to PDF/PNG); the
// actual radar drawing lives in the [radarviz] subpackage.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := radarviz.RenderSVG(resolver, placed, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [radarviz]: github.com/sfeldkamp/quadrant/pkg/render/radarviz
package render
