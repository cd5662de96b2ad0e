package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/observability"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// Runner executes the pipeline against one source.
//
// Invocations are independent: the Runner keeps no results, only a sequence
// counter and the state of the newest invocation. Multiple goroutines can
// safely use the same Runner.
type Runner struct {
	Source source.Source
	Logger *log.Logger

	seq atomic.Uint64

	mu       sync.Mutex
	state    State
	stateSeq uint64
}

// NewRunner creates a runner over src. A nil logger discards output.
func NewRunner(src source.Source, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Source: src, Logger: logger}
}

// RequestCloud fetches corpusID and scales it to targetMax with the default
// layout, returning the weights in source order. targetMax must be positive;
// unlike [Options], zero does not select the default.
func (r *Runner) RequestCloud(ctx context.Context, corpusID string, targetMax float64) ([]cloud.WeightedTerm, error) {
	if err := checkFinite("target max", targetMax, false); err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, Options{CorpusID: corpusID, TargetMax: targetMax})
	if err != nil {
		return nil, err
	}
	return result.Terms, nil
}

// Execute runs one invocation and blocks until it completes.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.run(ctx, r.seq.Add(1), opts)
}

// Start begins an invocation and returns immediately. The returned channel
// delivers exactly one [Outcome] and is then closed.
//
// Sequence numbers are assigned in call order, so a caller can tell which of
// several overlapping invocations is the newest.
func (r *Runner) Start(ctx context.Context, opts Options) <-chan Outcome {
	seq := r.seq.Add(1)
	out := make(chan Outcome, 1)

	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		r.setState(seq, StateFailed)
		out <- Outcome{Seq: seq, CorpusID: opts.CorpusID, Err: err}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		result, err := r.run(ctx, seq, opts)
		out <- Outcome{Seq: seq, CorpusID: opts.CorpusID, Result: result, Err: err}
	}()
	return out
}

// State reports the stage of the newest invocation, or [StateIdle] if none
// has started.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(seq uint64, s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.stateSeq {
		return
	}
	r.stateSeq = seq
	r.state = s
}

func (r *Runner) run(ctx context.Context, seq uint64, opts Options) (*Result, error) {
	hooks := observability.Pipeline()
	logger := opts.Logger.With("corpus", opts.CorpusID, "seq", seq)

	r.setState(seq, StateFetching)
	hooks.OnFetchStart(ctx, opts.CorpusID)
	fetchStart := time.Now()

	counts, err := r.Source.Fetch(ctx, opts.CorpusID)
	fetchTime := time.Since(fetchStart)
	hooks.OnFetchComplete(ctx, opts.CorpusID, len(counts), fetchTime, err)
	if err != nil {
		r.setState(seq, StateFailed)
		logger.Debug("fetch failed", "error", err, "duration", fetchTime)
		return nil, classify(ctx, opts.CorpusID, err)
	}
	logger.Debug("fetched counts", "terms", len(counts), "duration", fetchTime)

	r.setState(seq, StateScaling)
	scaleStart := time.Now()
	weighted := cloud.Scale(counts, opts.TargetMax)
	request := cloud.Build(weighted, opts.Layout())
	scaleTime := time.Since(scaleStart)
	hooks.OnScaleComplete(ctx, opts.CorpusID, len(weighted), scaleTime)

	result := &Result{
		InvocationID: uuid.NewString(),
		Seq:          seq,
		CorpusID:     opts.CorpusID,
		Terms:        weighted,
		Request:      request,
		Stats: Stats{
			TermCount: len(weighted),
			Peak:      cloud.Peak(counts),
			FetchTime: fetchTime,
			ScaleTime: scaleTime,
		},
	}
	r.setState(seq, StateReady)

	logger.Info("built cloud",
		"terms", len(weighted),
		"listed", len(request.List),
		"duration", fetchTime+scaleTime)
	return result, nil
}

// classify attaches an error code to a source failure. The source's sentinel
// stays in the chain, so errors.Is(err, source.ErrNotFound) keeps working.
// Failures caused by the caller's own cancellation are returned unchanged.
func classify(ctx context.Context, corpus string, err error) error {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return cerrors.Wrap(cerrors.ErrCodeNotFound, err, "corpus %q not found", corpus)
	case ctx.Err() != nil:
		return err
	default:
		return cerrors.Wrap(cerrors.ErrCodeSourceUnavailable, err, "word counts for %q unavailable", corpus)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
