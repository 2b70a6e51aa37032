// Package cli implements the tidytree command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sibaiper/tidy-tree/pkg/buildinfo"
	"github.com/sibaiper/tidy-tree/pkg/cache"
	"github.com/sibaiper/tidy-tree/pkg/config"
	"github.com/sibaiper/tidy-tree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tidytree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	noCache  bool
	cacheDir string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Tidytree draws trees with the tidy non-layered layout algorithm",
		Long:         `Tidytree computes compact, aesthetically pleasing drawings of trees with variable-sized nodes and renders them to SVG, PNG, PDF, JSON, or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case quiet:
				c.SetLogLevel(LogWarn)
			case verbose:
				c.SetLogLevel(LogDebug)
			}

			cfg, err := config.LoadDefault()
			if err != nil {
				return err
			}
			c.Config = cfg

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable result caching")
	root.PersistentFlags().StringVar(&c.cacheDir, "cache-dir", "", "override the cache directory")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the cache directory, preferring the --cache-dir
// flag, then the config file, then the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	if c.cacheDir != "" {
		return c.cacheDir, nil
	}
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tidytree/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions seeds pipeline options from the loaded configuration.
// Flags bind directly into the returned options and override these values.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		VerticalGap:   c.Config.Layout.VerticalGap,
		HorizontalGap: c.Config.Layout.HorizontalGap,
		WidthExpr:     c.Config.Measure.WidthExpr,
		HeightExpr:    c.Config.Measure.HeightExpr,
		Style:         c.Config.Render.Style,
		Padding:       c.Config.Render.Padding,
		Scale:         c.Config.Render.Scale,
	}
}

// overrideFromConfig replaces option values whose flags were not set on
// the command line with values from the loaded configuration. Flags are
// bound before the config file is read, so built-in defaults shown in
// help text get corrected here.
func (c *CLI) overrideFromConfig(cmd *cobra.Command, opts *pipeline.Options) {
	fromConfig := func(name string, apply func()) {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
	fromConfig("vertical-gap", func() { opts.VerticalGap = c.Config.Layout.VerticalGap })
	fromConfig("horizontal-gap", func() { opts.HorizontalGap = c.Config.Layout.HorizontalGap })
	fromConfig("width-expr", func() { opts.WidthExpr = c.Config.Measure.WidthExpr })
	fromConfig("height-expr", func() { opts.HeightExpr = c.Config.Measure.HeightExpr })
	fromConfig("style", func() { opts.Style = c.Config.Render.Style })
	fromConfig("padding", func() { opts.Padding = c.Config.Render.Padding })
	fromConfig("scale", func() { opts.Scale = c.Config.Render.Scale })
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
