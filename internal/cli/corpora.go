package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// importer is implemented by stores that can load a catalog.
type importer interface {
	Import(ctx context.Context, catalog *source.Catalog) error
}

// corporaCommand creates the corpora command and its import subcommand.
func (c *CLI) corporaCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "corpora",
		Short: "List the corpora known to the source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := c.listCorpora(cmd.Context(), kind)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(names) == 0 {
				printWarning(w, "no corpora")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(w, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "source", "", "source kind: static, remote, redis, mongo")

	cmd.AddCommand(c.corporaImportCommand())
	return cmd
}

func (c *CLI) listCorpora(ctx context.Context, kind string) ([]string, error) {
	src, err := c.openSource(ctx, kind)
	if err != nil {
		return nil, err
	}
	defer source.Close(src)

	lister, ok := src.(source.Lister)
	if !ok {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "source %q cannot list its corpora", c.sourceKind(kind))
	}
	return lister.Corpora(ctx)
}

func (c *CLI) sourceKind(override string) source.Kind {
	if override != "" {
		return source.Kind(override)
	}
	return c.config().Source.Kind
}

func (c *CLI) corporaImportCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "import [catalog-file]",
		Short: "Load a catalog into Redis or MongoDB",
		Long: `Load a catalog file (.toml, .yaml or .yml) into the configured store.
Without a file the built-in reference corpora are loaded. Corpora already in
the store are replaced.

Redis stores each corpus as a sorted set scored by count, so terms with equal
counts come back in reverse alphabetical order rather than catalog order.
MongoDB keeps catalog order.`,
		Example: `  cloudweights corpora import --into redis
  cloudweights corpora import corpora.yaml --into mongo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := source.Reference()
			label := "reference catalog"
			if len(args) == 1 {
				var err error
				if catalog, err = source.LoadCatalog(args[0]); err != nil {
					return err
				}
				label = args[0]
			}

			switch k := c.sourceKind(kind); k {
			case source.KindRedis, source.KindMongo:
			default:
				return cerrors.New(cerrors.ErrCodeInvalidInput, "cannot import into %q (must be redis or mongo)", k)
			}

			ctx := cmd.Context()
			src, err := c.openSource(ctx, kind)
			if err != nil {
				return err
			}
			defer source.Close(src)

			imp, ok := src.(importer)
			if !ok {
				return cerrors.New(cerrors.ErrCodeInternal, "source %T cannot import", src)
			}

			prog := newProgress(c.Logger)
			if err := imp.Import(ctx, catalog); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported %s", label))

			w := cmd.OutOrStdout()
			printSuccess(w, "Imported %d corpora into %s", catalog.Len(), c.sourceKind(kind))
			if note := tieOrderNote(c.sourceKind(kind)); note != "" {
				printDetail(w, "%s", note)
			}
			printNextStep(w, "Scale one", fmt.Sprintf("cloudweights cloud %s --source %s", firstCorpus(catalog), c.sourceKind(kind)))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "into", "", "target store: redis or mongo (default: configured source)")
	return cmd
}

// tieOrderNote describes how kind reorders terms with equal counts, or
// returns "" when it keeps catalog order.
func tieOrderNote(kind source.Kind) string {
	if kind == source.KindRedis {
		return "terms with equal counts are read back in reverse alphabetical order"
	}
	return ""
}

func firstCorpus(catalog *source.Catalog) string {
	if names := catalog.Corpora(); len(names) > 0 {
		return names[0]
	}
	return "<corpus>"
}
