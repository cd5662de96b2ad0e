package cloud

// Scale converts raw counts into visual weights bounded by targetMax.
//
// Each count is squared, then divided by the largest squared count and
// multiplied by targetMax. The term with the highest count therefore maps to
// exactly targetMax and every other weight falls in [0, targetMax]. Squaring
// preserves strict ordering, so c1 > c2 implies w1 > w2 unless both are zero.
//
// Edge cases:
//   - empty input returns an empty, non-nil slice
//   - if every count is zero all weights are 0
//
// The output has the same length and order as counts. Scale does not retain
// counts and has no side effects. targetMax is expected to be positive;
// callers validate it (see pipeline.Options).
func Scale(counts []RawCount, targetMax float64) []WeightedTerm {
	out := make([]WeightedTerm, len(counts))
	if len(counts) == 0 {
		return out
	}

	intensity := make([]float64, len(counts))
	var peak float64
	for i, c := range counts {
		v := float64(c.Count)
		intensity[i] = v * v
		peak = max(peak, intensity[i])
	}

	for i, c := range counts {
		var w float64
		if peak > 0 {
			w = intensity[i] / peak * targetMax
		}
		out[i] = WeightedTerm{Term: c.Term, Weight: w}
	}
	return out
}

// Peak returns the largest count in counts, or 0 for empty input.
func Peak(counts []RawCount) uint64 {
	var p uint64
	for _, c := range counts {
		p = max(p, c.Count)
	}
	return p
}
