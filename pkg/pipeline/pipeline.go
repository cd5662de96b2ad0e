// Package pipeline runs the corpus → cloud pipeline shared by the CLI and the
// count server.
//
// # Stages
//
// An invocation moves through a small state machine:
//
//	Idle → Fetching → Scaling → Ready
//	          ↓
//	        Failed
//
//  1. Fetching: the configured [source.Source] resolves the corpus to raw
//     counts. This is the only stage that blocks.
//  2. Scaling: [cloud.Scale] turns counts into bounded weights and
//     [cloud.Build] packages them for the layout engine.
//
// A failed fetch exposes no partial result. The pipeline never retries;
// callers that want retries wrap [Runner.Execute] themselves (see
// httputil.Retry).
//
// # Usage
//
//	runner := pipeline.NewRunner(source.NewStatic(nil), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CorpusID:  "alice.txt",
//	    TargetMax: 200,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := json.Marshal(result.Request)
//
// For overlapping invocations, use [Runner.Start] and feed each
// [Outcome] to a [Display], which drops completions older than the newest
// one it has seen.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
)

// Default values shared by the CLI, the config file and the count server.
const (
	// DefaultTargetMax is the weight given to the most frequent term.
	DefaultTargetMax = 200.0

	// DefaultGridSize is the layout density passed to the layout engine.
	DefaultGridSize = 1.0

	// DefaultMinSize is the smallest rendered term size.
	DefaultMinSize = 0.0
)

// Options configures one pipeline invocation.
type Options struct {
	CorpusID  string           `json:"corpus"`
	TargetMax float64          `json:"target_max,omitempty"`
	GridSize  float64          `json:"grid_size,omitempty"`
	MinSize   float64          `json:"min_size,omitempty"`
	Zero      cloud.ZeroPolicy `json:"zero_policy,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks numeric fields and fills in defaults.
// Zero values mean "use the default". The corpus identifier is opaque here;
// the source decides whether it exists.
func (o *Options) ValidateAndSetDefaults() error {
	if o.TargetMax == 0 {
		o.TargetMax = DefaultTargetMax
	}
	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	if err := checkFinite("target max", o.TargetMax, false); err != nil {
		return err
	}
	if err := checkFinite("grid size", o.GridSize, false); err != nil {
		return err
	}
	if err := checkFinite("min size", o.MinSize, true); err != nil {
		return err
	}

	zero, err := cloud.ParseZeroPolicy(string(o.Zero))
	if err != nil {
		return cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "zero policy")
	}
	o.Zero = zero

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

func checkFinite(name string, v float64, allowZero bool) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return cerrors.New(cerrors.ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	case v < 0 || (v == 0 && !allowZero):
		return cerrors.New(cerrors.ErrCodeInvalidInput, "%s must be positive, got %v", name, v)
	}
	return nil
}

// Layout returns the pass-through settings for the layout engine.
func (o *Options) Layout() cloud.Layout {
	return cloud.Layout{GridSize: o.GridSize, MinSize: o.MinSize, Zero: o.Zero}
}

// State is the stage an invocation is in.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateScaling
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateScaling:
		return "scaling"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the output of a successful invocation.
type Result struct {
	// InvocationID identifies the invocation in logs and server responses.
	InvocationID string `json:"invocation_id"`

	// Seq orders invocations started on the same Runner.
	Seq uint64 `json:"seq"`

	CorpusID string `json:"corpus"`

	// Terms holds the scaled weights in source order.
	Terms []cloud.WeightedTerm `json:"terms"`

	// Request is what the layout engine consumes.
	Request cloud.RenderRequest `json:"request"`

	Stats Stats `json:"stats"`
}

// Stats contains invocation statistics.
type Stats struct {
	TermCount int           `json:"term_count"`
	Peak      uint64        `json:"peak"`
	FetchTime time.Duration `json:"fetch_time"`
	ScaleTime time.Duration `json:"scale_time"`
}

// Outcome is the completion of an invocation started with [Runner.Start].
// Exactly one of Result and Err is set.
type Outcome struct {
	Seq      uint64
	CorpusID string
	Result   *Result
	Err      error
}
