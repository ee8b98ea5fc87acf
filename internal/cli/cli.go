package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/passages/pkg/buildinfo"
	"github.com/matzehuels/passages/pkg/cache"
	"github.com/matzehuels/passages/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "passages"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noStore    bool
	cfg        Config
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
		Short: "Edit the passages of hypertext stories",
		Long: `passages edits the passages of a hypertext story file: it lists and rewrites
[[links]], renames passages without breaking links to them, keeps passages
from overlapping on the story map, and publishes the story for a story format.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/passages/config.toml)")
	root.PersistentFlags().BoolVar(&c.noStore, "no-store", false, "do not persist passages to the configured store")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.replaceCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.tidyCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config and wires logging into the context and hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		path = p
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", path, "store", cfg.Store.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	hooks := newLogHooks(c.Logger)
	observability.SetStoryHooks(hooks)
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	return nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if !c.cfg.Map.Cache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/passages/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
