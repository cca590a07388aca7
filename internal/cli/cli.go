package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relayout/pkg/buildinfo"
	"github.com/matzehuels/relayout/pkg/cache"
	"github.com/matzehuels/relayout/pkg/config"
	rerrors "github.com/matzehuels/relayout/pkg/errors"
	"github.com/matzehuels/relayout/pkg/graph"
	"github.com/matzehuels/relayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Relayout solves relative layout documents",
		Long:         `Relayout measures and positions the children of relative containers from declarative sibling and parent rules, and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/relayout/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner over the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}
	c.Logger.Debug("cache ready", "backend", backendName(cfg, noCache))
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func backendName(cfg config.Config, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	return cfg.Cache.Backend
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	switch backendName(cfg, noCache) {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeStorage, err, "connect redis")
		}
		return rc, nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cfg.Cache.Mongo.URI,
			Database:   cfg.Cache.Mongo.Database,
			Collection: cfg.Cache.Mongo.Collection,
		})
		if err != nil {
			return nil, rerrors.Wrap(rerrors.ErrCodeStorage, err, "connect mongo")
		}
		return mc, nil
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the file cache directory, preferring the configured one.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Flag Helpers
// =============================================================================

// solveFlags are the overrides shared by solve, render and preview.
type solveFlags struct {
	direction string
	targetSDK int
	width     string
	height    string
	refresh   bool
	noCache   bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.direction, "direction", "", "layout direction: ltr or rtl (default from document)")
	cmd.Flags().IntVar(&f.targetSDK, "target-sdk", 0, "platform level selecting legacy behaviour")
	cmd.Flags().StringVar(&f.width, "width", "", "container width bound as mode:size, e.g. exact:320 or at_most:480")
	cmd.Flags().StringVar(&f.height, "height", "", "container height bound as mode:size, or unspecified")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options converts the flags to pipeline options.
func (f *solveFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Direction: f.direction,
		TargetSDK: f.targetSDK,
		Refresh:   f.refresh,
	}
	var err error
	if opts.Width, err = parseBound(f.width); err != nil {
		return opts, err
	}
	if opts.Height, err = parseBound(f.height); err != nil {
		return opts, err
	}
	return opts, nil
}

// applyDefaults fills document fields the config provides defaults for.
func applyDefaults(doc *graph.Document, cfg config.Config) {
	if doc.Direction == "" {
		doc.Direction = cfg.Solve.Direction
	}
	if doc.TargetSDK == 0 {
		doc.TargetSDK = cfg.Solve.TargetSDK
	}
}

// parseBound parses "exact:320", "at_most:480" or "unspecified".
func parseBound(s string) (*graph.Bound, error) {
	if s == "" {
		return nil, nil
	}
	mode, size, ok := strings.Cut(s, ":")
	b := &graph.Bound{Mode: strings.TrimSpace(mode)}
	if ok {
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "invalid bound %q: size must be an integer", s)
		}
		b.Size = n
	}
	if _, err := b.Spec(); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidInput, err, "invalid bound %q", s)
	}
	return b, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func sizeString(w, h int) string { return fmt.Sprintf("%dx%d", w, h) }
