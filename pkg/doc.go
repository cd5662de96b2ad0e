// Package pkg provides the libraries behind cloudweights.
//
// # Overview
//
// Cloudweights turns a named corpus's word-frequency table into the weighted
// term list a word-cloud layout engine consumes. The pkg directory is
// organized into:
//
//  1. [cloud] - Domain logic (scaling counts into weights, render requests)
//  2. [source] - Word-count sources (static catalog, remote service, Redis, MongoDB)
//  3. [pipeline] - Orchestration (fetch → scale → build) and stale-result handling
//  4. [countserver] - HTTP word-count service
//  5. [errors], [observability], [httputil], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The data flow through cloudweights:
//
//	corpus identifier
//	       ↓
//	  [source] package (resolve to raw counts, or NotFound / Unavailable)
//	       ↓
//	  [cloud.Scale] (count², divided by the peak, times targetMax)
//	       ↓
//	  [cloud.Build] (ordered [term, weight] pairs + layout settings)
//	       ↓
//	  layout engine
//
// # Quick Start
//
//	runner := pipeline.NewRunner(source.NewStatic(nil), nil)
//	terms, err := runner.RequestCloud(ctx, "alice.txt", 200)
//	if errors.Is(err, source.ErrNotFound) {
//	    // unknown corpus
//	}
//
// [cloud]: github.com/matzehuels/cloudweights/pkg/cloud
// [cloud.Scale]: github.com/matzehuels/cloudweights/pkg/cloud#Scale
// [cloud.Build]: github.com/matzehuels/cloudweights/pkg/cloud#Build
// [source]: github.com/matzehuels/cloudweights/pkg/source
// [pipeline]: github.com/matzehuels/cloudweights/pkg/pipeline
// [countserver]: github.com/matzehuels/cloudweights/pkg/countserver
// [errors]: github.com/matzehuels/cloudweights/pkg/errors
// [observability]: github.com/matzehuels/cloudweights/pkg/observability
// [httputil]: github.com/matzehuels/cloudweights/pkg/httputil
// [buildinfo]: github.com/matzehuels/cloudweights/pkg/buildinfo
package pkg
