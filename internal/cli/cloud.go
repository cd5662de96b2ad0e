package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/httputil"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// Output formats for the cloud command.
const (
	formatTable   = "table"
	formatJSON    = "json"
	formatRequest = "request"
)

// cloudOptions holds flags for the cloud command.
type cloudOptions struct {
	targetMax float64
	gridSize  float64
	minSize   float64
	zero      string
	source    string
	retries   int
	timeout   time.Duration
	format    string
}

// cloudCommand creates the cloud command for scaling a corpus into weights.
func (c *CLI) cloudCommand() *cobra.Command {
	opts := cloudOptions{format: formatTable}

	cmd := &cobra.Command{
		Use:   "cloud [corpus]",
		Short: "Scale a corpus's word counts into word-cloud weights",
		Long: `Fetch a corpus's word counts from the configured source and scale them into
word-cloud weights. The most frequent term gets --max; every other term gets
(count/peak)^2 of it, in source order.

Without a corpus, an interactive browser lists the source's corpora.`,
		Example: `  # Weights for a reference corpus
  cloudweights cloud alice.txt

  # Render request for the layout engine, zero-weight terms removed
  cloudweights cloud divina_commedia.txt -o request --zero drop

  # Against a running count server, retrying transient failures
  cloudweights cloud alice.txt --source remote --retries 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.browse(cmd, opts)
			}
			return c.runCloud(cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.targetMax, "max", 0, "weight of the most frequent term (default from config, 200)")
	cmd.Flags().Float64Var(&opts.gridSize, "grid", 0, "layout grid size passed to the layout engine")
	cmd.Flags().Float64Var(&opts.minSize, "min", 0, "minimum rendered term size passed to the layout engine")
	cmd.Flags().StringVar(&opts.zero, "zero", "", "zero-weight policy: keep or drop")
	cmd.Flags().StringVar(&opts.source, "source", "", "source kind: static, remote, redis, mongo")
	cmd.Flags().IntVar(&opts.retries, "retries", 0, "retry an unavailable source this many times")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 waits indefinitely)")
	cmd.Flags().StringVarP(&opts.format, "output", "o", formatTable, "output format: table, json, request")

	return cmd
}

// pipelineOptions merges config defaults with the flags that were set.
func (c *CLI) pipelineOptions(cmd *cobra.Command, corpus string, opts cloudOptions) pipeline.Options {
	po := c.config().PipelineOptions(corpus)
	flags := cmd.Flags()
	if flags.Changed("max") {
		po.TargetMax = opts.targetMax
	}
	if flags.Changed("grid") {
		po.GridSize = opts.gridSize
	}
	if flags.Changed("min") {
		po.MinSize = opts.minSize
	}
	if flags.Changed("zero") {
		po.Zero = cloud.ZeroPolicy(opts.zero)
	}
	return po
}

func (c *CLI) runCloud(cmd *cobra.Command, corpus string, opts cloudOptions) error {
	switch opts.format {
	case formatTable, formatJSON, formatRequest:
	default:
		return cerrors.New(cerrors.ErrCodeInvalidInput, "invalid output format: %q (must be one of: table, json, request)", opts.format)
	}
	if opts.retries < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "--retries must not be negative")
	}
	if err := cerrors.ValidateCorpusID(corpus); err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	src, err := c.openSource(ctx, opts.source)
	if err != nil {
		return err
	}
	defer source.Close(src)

	runner := c.newRunner(src)
	po := c.pipelineOptions(cmd, corpus, opts)

	var spinner *Spinner
	if opts.format == formatTable {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Fetching %s...", corpus))
		spinner.Start()
	}

	prog := newProgress(c.Logger)
	result, err := executeWithRetry(ctx, runner, po, opts.retries)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scaled %s", corpus))

	return writeResult(cmd.OutOrStdout(), result, opts.format)
}

// executeWithRetry runs one invocation, retrying it up to retries more times
// while the source is unavailable. NotFound and invalid input fail at once.
func executeWithRetry(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, retries int) (*pipeline.Result, error) {
	var result *pipeline.Result
	err := httputil.Retry(ctx, retries+1, 500*time.Millisecond, func() error {
		r, err := runner.Execute(ctx, opts)
		if err != nil {
			if errors.Is(err, source.ErrUnavailable) {
				loggerFromContext(ctx).Debug("source unavailable", "corpus", opts.CorpusID, "error", err)
				return httputil.Retryable(err)
			}
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		var re *httputil.RetryableError
		if errors.As(err, &re) {
			err = re.Err
		}
		return nil, err
	}
	return result, nil
}

// writeResult prints result in format.
func writeResult(w io.Writer, result *pipeline.Result, format string) error {
	switch format {
	case formatJSON:
		return writeIndentedJSON(w, result)
	case formatRequest:
		return json.NewEncoder(w).Encode(result.Request)
	}

	targetMax := 0.0
	for _, t := range result.Terms {
		targetMax = max(targetMax, t.Weight)
	}

	fmt.Fprintln(w, StyleTitle.Render(result.CorpusID))
	if len(result.Request.List) == 0 {
		printWarning(w, "no terms to show")
	} else {
		fmt.Fprintln(w, weightsTable(result.Request.List, targetMax))
	}
	printStats(w, result.Stats.TermCount, result.Stats.Peak, len(result.Terms)-len(result.Request.List))
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
