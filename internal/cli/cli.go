// Package cli implements the quadrant command-line interface.
//
// Commands cover the pipeline stages: render produces radar artifacts from
// an item list, layout exports computed positions as JSON, charts prints
// the distribution summary, serve exposes the pipeline over HTTP, and
// cache manages the local result cache.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sfeldkamp/quadrant/pkg/buildinfo"
	"github.com/sfeldkamp/quadrant/pkg/cache"
	"github.com/sfeldkamp/quadrant/pkg/pipeline"
	"github.com/sfeldkamp/quadrant/pkg/source"
)

// appName is the application name used for directories and display.
const appName = "quadrant"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "quadrant",
		Short:        "Quadrant renders technology radars from item lists",
		Long:         `Quadrant is a CLI tool for laying out and rendering technology radars: annulus-sector diagrams where every item gets a deterministic position from its name, category, and level.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.chartsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSourceClient creates the HTTP client used for URL sources, sharing the
// cache directory with the result cache.
func newSourceClient() (*source.Client, error) {
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	return source.NewClient(source.Options{CacheDir: dir})
}

// cacheDir returns the cache directory using XDG standard (~/.cache/quadrant/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
