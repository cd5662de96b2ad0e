package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{CorpusID: "alice.txt"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.TargetMax != DefaultTargetMax {
		t.Errorf("TargetMax = %v, want %v", opts.TargetMax, DefaultTargetMax)
	}
	if opts.GridSize != DefaultGridSize {
		t.Errorf("GridSize = %v, want %v", opts.GridSize, DefaultGridSize)
	}
	if opts.MinSize != DefaultMinSize {
		t.Errorf("MinSize = %v, want %v", opts.MinSize, DefaultMinSize)
	}
	if opts.Zero != cloud.ZeroKeep {
		t.Errorf("Zero = %q, want keep", opts.Zero)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	want := cloud.Layout{GridSize: 1, MinSize: 0, Zero: cloud.ZeroKeep}
	if got := opts.Layout(); got != want {
		t.Errorf("Layout() = %+v, want %+v", got, want)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"explicit values", Options{TargetMax: 80, GridSize: 4, MinSize: 2, Zero: cloud.ZeroDrop}, false},
		{"empty corpus is left to the source", Options{CorpusID: ""}, false},
		{"negative target", Options{TargetMax: -1}, true},
		{"nan target", Options{TargetMax: math.NaN()}, true},
		{"inf target", Options{TargetMax: math.Inf(1)}, true},
		{"negative grid", Options{GridSize: -2}, true},
		{"negative min size", Options{MinSize: -0.5}, true},
		{"nan min size", Options{MinSize: math.NaN()}, true},
		{"unknown zero policy", Options{Zero: "hide"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want %s", cerrors.GetCode(err), cerrors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "idle"},
		{StateFetching, "fetching"},
		{StateScaling, "scaling"},
		{StateReady, "ready"},
		{StateFailed, "failed"},
		{State(42), "State(42)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
