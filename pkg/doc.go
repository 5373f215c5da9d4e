// Package pkg provides the libraries of shiftgraph.
//
// # Overview
//
// Shiftgraph maintains layered annotation graphs over text and builds them
// with a shift-reduce transition system. The pkg directory is organized
// into three areas:
//
//  1. Graph model - [dag], [layer0], [layer1]
//  2. Construction - [transition], [oracle], [pipeline]
//  3. Support - [io], [render], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow through shiftgraph:
//
//	Tokenized paragraphs + action source
//	         ↓
//	    [transition] package (configuration: stack, buffer, transient nodes)
//	         ↓
//	    [transition] Finalizer (level ordering, layer construction)
//	         ↓
//	    [dag] Passage (terminal layer "0", foundational layer "1")
//	         ↓
//	    JSON dump / DOT / SVG / PDF / PNG
//
// # Quick Start
//
// Replay an action script and finalize the passage:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/shiftgraph/pkg/pipeline"
//	    "github.com/matzehuels/shiftgraph/pkg/transition"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, pipeline.Options{})
//	res, err := runner.Run(context.Background(), pipeline.Job{
//	    PassageID:  "p1",
//	    Paragraphs: [][]string{{"John", "left"}},
//	    Source: pipeline.NewScriptSource([]transition.Action{
//	        transition.NodeAction("A"), transition.Shift, transition.Reduce,
//	        transition.EdgeAction("P"), transition.RootAction("H"),
//	        transition.Shift, transition.Finish,
//	    }),
//	})
//
// Derive the actions for an existing passage with [oracle.Actions], or use
// an [oracle.Oracle] directly as the job's action source.
//
// # Main Packages
//
//   - [dag]: Passages, layers, nodes, edges and attributes with frozen-state
//     checks and identifier uniqueness.
//   - [layer0]: The terminal layer built from tokenized text.
//   - [layer1]: The foundational layer of units, punctuation and linkage.
//   - [transition]: Actions, configurations and the finalizer.
//   - [oracle]: An action source that rebuilds a gold passage.
//   - [pipeline]: Runner driving action sources, with batch processing.
//   - [io]: Token files, action scripts and the JSON dump.
//   - [render]: Node-link diagrams through Graphviz.
//   - [config]: TOML configuration.
//
// # Error Handling
//
// Errors carry a code from [errors]; check them with errors.Is(err, code).
// Every error is fatal for the passage being built.
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/dag
// [layer0]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/layer0
// [layer1]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/layer1
// [transition]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/transition
// [oracle]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/oracle
// [oracle.Actions]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/oracle#Actions
// [oracle.Oracle]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/oracle#Oracle
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/render
// [config]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/shiftgraph/pkg/observability
package pkg
