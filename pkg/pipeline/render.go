package pipeline

import (
	"context"
	"time"

	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/observability"
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
	"github.com/sfeldkamp/quadrant/pkg/radar/layout"
	"github.com/sfeldkamp/quadrant/pkg/render/radarviz"
)

// renderFromLayout generates output artifacts in the requested formats.
// The items list is needed alongside the placed layout because the chart
// summary is derived from classifications, not positions.
func renderFromLayout(ctx context.Context, placed []radar.PlacedItem, items []radar.Item, opts Options) (map[string][]byte, error) {
	cfg := opts.EffectiveConfig()
	res, err := layout.NewResolver(cfg)
	if err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(res, items, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = radarviz.RenderSVG(res, placed, svgOpts...)
		case FormatPNG:
			data, err = radarviz.RenderPNG(res, placed,
				radarviz.WithScale(opts.Scale),
				radarviz.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = radarviz.RenderPDF(res, placed, svgOpts...)
		case FormatJSON:
			data, err = radarviz.RenderJSON(res, placed, buildJSONOptions(items, opts)...)
		default:
			err = errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, wrapStage(err, "render "+format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(res *layout.Resolver, items []radar.Item, opts Options) []radarviz.SVGOption {
	var svgOpts []radarviz.SVGOption

	if opts.Title != "" {
		svgOpts = append(svgOpts, radarviz.WithTitle(opts.Title))
	}
	if opts.ShowLegend {
		svgOpts = append(svgOpts, radarviz.WithLegend())
	}
	if opts.Hover {
		svgOpts = append(svgOpts, radarviz.WithHover())
	}
	if opts.ShowCharts {
		svgOpts = append(svgOpts, radarviz.WithCharts(chart.Summarize(items, res.Config())))
	}

	return svgOpts
}

func buildJSONOptions(items []radar.Item, opts Options) []radarviz.JSONOption {
	var jsonOpts []radarviz.JSONOption
	if opts.Title != "" {
		jsonOpts = append(jsonOpts, radarviz.WithJSONTitle(opts.Title))
	}
	if opts.ShowCharts {
		jsonOpts = append(jsonOpts, radarviz.WithJSONSummary(chart.Summarize(items, opts.EffectiveConfig())))
	}
	return jsonOpts
}
