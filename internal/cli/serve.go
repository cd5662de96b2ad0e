package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cloudweights/pkg/countserver"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// serveOptions holds flags for the serve command.
type serveOptions struct {
	addr      string
	topN      int
	rateLimit float64
	burst     int
	source    string
}

// serveCommand creates the serve command that runs the HTTP count server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP word-count server",
		Long: `Serve the configured source over HTTP.

  GET /{corpus}        top counts as [[term, count], ...], most frequent first
  GET /cloud/{corpus}  scaled render request (query: max, grid, min, zero)
  GET /health          liveness and version

A remote source pointed at this server's address reads the same counts.`,
		Example: `  cloudweights serve
  cloudweights serve --addr :8080 --top-n 50 --rate-limit 10
  cloudweights serve --source redis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, localhost:3005)")
	cmd.Flags().IntVar(&opts.topN, "top-n", 0, "maximum pairs per response, negative for all (default from config, 100)")
	cmd.Flags().Float64Var(&opts.rateLimit, "rate-limit", 0, "requests per second per client, 0 disables limiting")
	cmd.Flags().IntVar(&opts.burst, "burst", 0, "rate limiter burst size")
	cmd.Flags().StringVar(&opts.source, "source", "", "source kind: static, remote, redis, mongo")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOptions) error {
	ctx := cmd.Context()
	cfg := c.config()

	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = opts.addr
	}
	sopts := cfg.ServerOptions()
	if cmd.Flags().Changed("top-n") {
		sopts.TopN = opts.topN
	}
	if cmd.Flags().Changed("rate-limit") {
		sopts.RateLimit = opts.rateLimit
	}
	if cmd.Flags().Changed("burst") {
		sopts.Burst = opts.burst
	}
	sopts.Logger = c.Logger

	src, err := c.openSource(ctx, opts.source)
	if err != nil {
		return err
	}
	defer source.Close(src)

	handler := countserver.New(src, c.newRunner(src), sopts)
	srv := countserver.NewServer(addr, handler, c.Logger)

	printInfo(cmd.ErrOrStderr(), "Serving %s source on %s", c.sourceKind(opts.source), StyleHighlight.Render(fmt.Sprintf("http://%s", addr)))
	return srv.ListenAndServe(ctx)
}
