package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
)

// layoutCommand creates the layout command for computing radar positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "layout [items.json|items.csv|url]",
		Short: "Compute radar positions from an item list",
		Long: `Compute radar positions from an item list.

The layout command runs the deterministic placement engine and writes the
positions as JSON without rendering. The output can be fed to external
renderers or diffed across runs to verify stability.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, configPath, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config with radar geometry and enumerations")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch URL sources, bypassing the item cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads items, computes positions, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input, output, configPath string, refresh, noCache bool) error {
	opts := renderOpts{configPath: configPath, refresh: refresh}
	popts, err := c.buildPipelineOptions(input, &opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	items, err := runner.Load(ctx, popts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	placed, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, items, popts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess("Layout complete")

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := writeLayoutFile(placed, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	unresolved := 0
	for _, p := range placed {
		if p.Unresolved {
			unresolved++
		}
	}

	printFile(outputPath)
	printStats(len(items), unresolved, cacheHit)
	return nil
}

func writeLayoutFile(placed []radar.PlacedItem, path string) error {
	data, err := json.MarshalIndent(placed, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// chartsCommand creates the charts command for printing the distribution summary.
func (c *CLI) chartsCommand() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "charts [items.json|items.csv|url]",
		Short: "Print the item distribution summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCharts(cmd.Context(), args[0], configPath, asJSON)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config with radar geometry and enumerations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")

	return cmd
}

func (c *CLI) runCharts(ctx context.Context, input, configPath string, asJSON bool) error {
	opts := renderOpts{configPath: configPath}
	popts, err := c.buildPipelineOptions(input, &opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	items, err := runner.Load(ctx, popts)
	if err != nil {
		return err
	}
	summary := chart.Summarize(items, popts.EffectiveConfig())

	if asJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(StyleTitle.Render("By ring"))
	max := maxCount(summary.ByLevel)
	for _, lc := range summary.ByLevel {
		printBar(lc.Label, lc.Count, max, 30)
	}
	printNewline()

	fmt.Println(StyleTitle.Render("By quadrant"))
	max = maxCount(summary.ByCategory)
	for _, cc := range summary.ByCategory {
		printBar(cc.Label, cc.Count, max, 30)
	}
	if summary.Unresolved > 0 {
		printNewline()
		printWarning("%d unresolved item(s)", summary.Unresolved)
	}
	printNewline()
	printDetail("%d items total", summary.Total)
	return nil
}

func maxCount(counts []chart.Count) int {
	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	return max
}
