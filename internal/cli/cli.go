package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/buildinfo"
	"github.com/TheJP/factorio-blueprint/pkg/cache"
	"github.com/TheJP/factorio-blueprint/pkg/library"
	"github.com/TheJP/factorio-blueprint/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fbp"

	// defaultListenAddr is the address serve binds to when none is configured.
	defaultListenAddr = ":8080"
)

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

	// configPath is set by --config; empty means the default location.
	configPath string
	config     Config
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
		Use:   appName,
		Short: "fbp decodes, edits and generates Factorio blueprint strings",
		Long: `fbp works with Factorio blueprint strings: it decodes them to JSON, re-encodes
them, draws their circuit networks, and generates circuit memory arrays and
memory loaders from scratch.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fbp/config.toml)")

	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.reencodeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.libraryCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and attaches the logger to the command
// context.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	path := c.configPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	cfg, err := readConfig(path, c.configPath != "")
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	if c.config.CacheTTL.Duration > 0 {
		r.TTL = c.config.CacheTTL.Duration
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.config.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.config.RedisAddr, Prefix: appName + ":"})
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openLibrary opens the library in MongoDB when mongo_uri is configured,
// otherwise in SQLite at the configured path.
func (c *CLI) openLibrary(ctx context.Context) (*library.Library, error) {
	if c.config.MongoURI != "" {
		store, err := library.OpenMongo(ctx, c.config.MongoURI, appName)
		if err != nil {
			return nil, err
		}
		return library.New(store, c.Logger), nil
	}

	path := c.config.LibraryPath
	if path == "" {
		var err error
		if path, err = library.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := library.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return library.New(store, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to cacheDir.
func (c *CLI) cacheDir() (string, error) {
	if c.config.CacheDir != "" {
		return c.config.CacheDir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/fbp/).
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

// configDir returns the config directory using XDG standard (~/.config/fbp/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
