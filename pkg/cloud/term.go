package cloud

// RawCount is an unscaled occurrence count for a term within a corpus.
type RawCount struct {
	Term  string `json:"term" bson:"term" toml:"term" yaml:"term"`
	Count uint64 `json:"count" bson:"count" toml:"count" yaml:"count"`
}

// WeightedTerm pairs a term with its visual weight.
// Weights produced by [Scale] lie in [0, targetMax].
type WeightedTerm struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Pair is a single [term, weight] entry of a render request.
// It encodes to JSON as a two-element array.
type Pair struct {
	Term   string
	Weight float64
}
