package cloud

import (
	"encoding/json"
	"fmt"
)

// ZeroPolicy decides what happens to terms whose weight is 0.
type ZeroPolicy string

const (
	// ZeroKeep passes zero-weight terms to the layout engine, which renders
	// them at its minimum size.
	ZeroKeep ZeroPolicy = "keep"

	// ZeroDrop removes zero-weight terms before they reach the layout engine.
	ZeroDrop ZeroPolicy = "drop"
)

// ParseZeroPolicy parses a policy name. The empty string means [ZeroKeep].
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch ZeroPolicy(s) {
	case "", ZeroKeep:
		return ZeroKeep, nil
	case ZeroDrop:
		return ZeroDrop, nil
	default:
		return "", fmt.Errorf("invalid zero policy: %q (must be one of: keep, drop)", s)
	}
}

// Layout holds the settings passed through to the layout engine unchanged.
type Layout struct {
	GridSize float64    // layout density
	MinSize  float64    // smallest rendered term size
	Zero     ZeroPolicy // zero-weight handling
}

// DefaultLayout returns the reference layout: grid size 1, minimum size 0,
// zero-weight terms kept.
func DefaultLayout() Layout {
	return Layout{GridSize: 1, MinSize: 0, Zero: ZeroKeep}
}

// RenderRequest is the input handed to the layout engine.
type RenderRequest struct {
	List     []Pair  `json:"list"`
	GridSize float64 `json:"gridSize"`
	MinSize  float64 `json:"minSize"`
}

// Pairs projects weighted terms into [term, weight] pairs, preserving order.
func Pairs(weighted []WeightedTerm) []Pair {
	out := make([]Pair, len(weighted))
	for i, w := range weighted {
		out[i] = Pair{Term: w.Term, Weight: w.Weight}
	}
	return out
}

// Build assembles the render request for weighted terms.
// The list order matches the input order. With [ZeroDrop] zero-weight terms
// are omitted; everything else is passed through as is.
func Build(weighted []WeightedTerm, layout Layout) RenderRequest {
	list := Pairs(weighted)
	if layout.Zero == ZeroDrop {
		kept := list[:0]
		for _, p := range list {
			if p.Weight > 0 {
				kept = append(kept, p)
			}
		}
		list = kept
	}
	return RenderRequest{
		List:     list,
		GridSize: layout.GridSize,
		MinSize:  layout.MinSize,
	}
}

// MarshalJSON encodes the pair as ["term", weight].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Term, p.Weight})
}

// UnmarshalJSON decodes a ["term", weight] array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("pair: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Term); err != nil {
		return fmt.Errorf("pair term: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Weight); err != nil {
		return fmt.Errorf("pair weight: %w", err)
	}
	return nil
}
