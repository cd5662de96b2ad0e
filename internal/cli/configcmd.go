package cli

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudweights/internal/config"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// configCommand creates the config command with path, show and init
// subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:               "path",
		Short:             "Show the config file path",
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printFile(w, path)
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				printDetail(w, "not created yet, using defaults")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			w := cmd.OutOrStdout()

			printKeyValue(w, "source", string(cfg.Source.Kind))
			switch cfg.Source.Kind {
			case source.KindRemote:
				printKeyValue(w, "base_url", cfg.Source.BaseURL)
				printKeyValue(w, "timeout", cfg.Source.Timeout.String())
			case source.KindRedis:
				printKeyValue(w, "redis", cfg.Source.Redis.Addr)
			case source.KindMongo:
				printKeyValue(w, "mongo", cfg.Source.Mongo.URI)
			default:
				catalog := cfg.Source.Catalog
				if catalog == "" {
					catalog = "(reference)"
				}
				printKeyValue(w, "catalog", catalog)
			}
			printKeyValue(w, "target_max", trimWeight(cfg.Cloud.TargetMax))
			printKeyValue(w, "grid_size", trimWeight(cfg.Cloud.GridSize))
			printKeyValue(w, "min_size", trimWeight(cfg.Cloud.MinSize))
			printKeyValue(w, "zero_policy", cfg.Cloud.ZeroPolicy)
			printKeyValue(w, "server", cfg.Server.Addr)
			printKeyValue(w, "top_n", strconv.Itoa(cfg.Server.TopN))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:               "init",
		Short:             "Write a config file with the default settings",
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return cerrors.New(cerrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printSuccess(w, "Wrote config")
			printFile(w, path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

// skipConfig replaces the root pre-run for commands that must work while the
// config file is missing or broken.
func skipConfig(*cobra.Command, []string) error { return nil }

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}
