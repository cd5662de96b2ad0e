// Package cloud turns raw word counts into bounded visual weights for a
// word-cloud layout engine.
//
// # Overview
//
// The package has two stages, both pure and synchronous:
//
//   - [Scale] maps [RawCount] values to [WeightedTerm] values in the closed
//     range [0, targetMax]. Counts are squared before normalization so the
//     most frequent terms dominate the rendered cloud.
//   - [Build] projects the weighted terms into a [RenderRequest], the ordered
//     list of [term, weight] pairs plus layout settings that a canvas layout
//     engine consumes.
//
// Neither stage reorders its input: the order produced by the word-count
// source is the order handed to the layout engine.
//
// # Usage
//
//	counts := []cloud.RawCount{{Term: "a", Count: 10}, {Term: "b", Count: 5}}
//	weighted := cloud.Scale(counts, 200)
//	req := cloud.Build(weighted, cloud.DefaultLayout())
//	data, _ := json.Marshal(req) // {"list":[["a",200],["b",50]],"gridSize":1,"minSize":0}
package cloud
