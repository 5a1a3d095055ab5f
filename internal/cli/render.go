package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sfeldkamp/quadrant/pkg/pipeline"
	"github.com/sfeldkamp/quadrant/pkg/radar"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "pdf", "json"
	configPath string   // optional TOML geometry config
	title      string   // radar title
	legend     bool     // draw the category legend
	charts     bool     // append the distribution chart panel
	hover      bool     // enable hover highlighting in SVG
	scale      float64  // PNG raster scale
	refresh    bool     // bypass the item cache for URL sources
	noCache    bool     // disable result caching
}

// renderCommand creates the render command for generating radar artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		legend: true,
		hover:  true,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [items.json|items.csv|url]",
		Short: "Render a technology radar from an item list",
		Long: `Render a technology radar from an item list.

The source may be a local JSON or CSV file or an HTTP(S) URL. Output
formats are svg (default), png, pdf, and json; multiple formats render
the same layout into sibling files.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config with radar geometry and enumerations")
	cmd.Flags().StringVar(&opts.title, "title", "", "radar title")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "draw the category legend")
	cmd.Flags().BoolVar(&opts.charts, "charts", false, "append distribution charts below the radar")
	cmd.Flags().BoolVar(&opts.hover, "hover", opts.hover, "enable hover highlighting (svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor (png)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "refetch URL sources, bypassing the item cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	popts, err := c.buildPipelineOptions(input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering radar...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess("Radar rendered")

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.ItemCount, result.Stats.Unresolved, result.CacheInfo.RenderHit)
	if result.Stats.Unresolved > 0 {
		printWarning("%d item(s) have unknown category or level and sit at the center", result.Stats.Unresolved)
	}
	return nil
}

// buildPipelineOptions assembles pipeline options shared by render and layout.
func (c *CLI) buildPipelineOptions(input string, opts *renderOpts) (pipeline.Options, error) {
	popts := pipeline.Options{
		Source:     input,
		Refresh:    opts.refresh,
		Formats:    opts.formats,
		Title:      opts.title,
		ShowLegend: opts.legend,
		ShowCharts: opts.charts,
		Hover:      opts.hover,
		Scale:      opts.scale,
		Logger:     c.Logger,
	}

	if opts.configPath != "" {
		cfg, err := radar.LoadConfig(opts.configPath)
		if err != nil {
			return popts, err
		}
		popts.Config = &cfg
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		client, err := newSourceClient()
		if err != nil {
			return popts, fmt.Errorf("initialize HTTP client: %w", err)
		}
		popts.Client = client
	}
	return popts, nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; URLs fall back
// to "radar".
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return "radar"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
