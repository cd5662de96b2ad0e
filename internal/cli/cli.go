// Package cli implements the cloudweights command-line interface.
//
// The CLI turns a corpus's word-count table into word-cloud weights, lists
// the corpora a source knows, loads catalogs into Redis or MongoDB, and runs
// the HTTP count server. It is built on cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - cloud: fetch a corpus and print its scaled weights or render request
//   - corpora: list corpora, or import a catalog into a store
//   - serve: run the HTTP count server
//   - config: show, locate or initialize the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// also attached to the command context (see withLogger).
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudweights/internal/config"
	"github.com/matzehuels/cloudweights/pkg/buildinfo"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI whose logger writes to w at level.
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
		Use:   "cloudweights",
		Short: "Cloudweights turns word counts into word-cloud weights",
		Long: `Cloudweights resolves a named corpus to its word-frequency table and scales
the counts into bounded visual weights for a word-cloud layout engine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			installHooks(c.Logger)
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cloudweights/config.toml)")

	root.AddCommand(c.cloudCommand())
	root.AddCommand(c.corporaCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "source", cfg.Source.Kind, "path", c.configPath)
	return nil
}

// config returns the loaded settings, or the defaults before loading.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// openSource opens the configured word-count source, with the source kind
// optionally overridden. Callers release it with source.Close.
func (c *CLI) openSource(ctx context.Context, kind string) (source.Source, error) {
	cfg := c.config().Source
	if kind != "" {
		cfg.Kind = source.Kind(kind)
	}
	return source.Open(ctx, cfg, c.Logger)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(src source.Source) *pipeline.Runner {
	return pipeline.NewRunner(src, c.Logger)
}
