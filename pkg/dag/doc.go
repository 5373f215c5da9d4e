// Package dag provides the annotation graph store: a multi-layer directed
// acyclic graph over text whose nodes are spans or abstract units and whose
// labeled edges are relations between them.
//
// # Overview
//
// A [Passage] is the root of one annotation graph. It owns every [Layer],
// [Node] and [Edge] beneath it in an arena keyed by identifier: nodes hold
// their adjacency as edge identifiers and edges hold their endpoints as node
// identifiers, so nothing in the graph outlives or independently owns
// anything else. Node identifiers have the display form "<layer>.<local>";
// the layer identifier and the local suffix are stored as separate fields.
//
// # Basic Usage
//
// Create a passage with [NewPassage], layers with [Passage.NewLayer], nodes
// with [Passage.NewNode], and edges with [Node.Add]:
//
//	p := dag.NewPassage("120", nil)
//	l0, _ := p.NewLayer("0", nil)
//	l1, _ := p.NewLayer("1", nil)
//	word, _ := p.NewNode("0", "1", "Word", dag.Attributes{"text": "Hello"})
//	unit, _ := p.NewNode("1", "2", "FN", nil)
//	unit.Add("C", word, nil)
//
// Remove edges with [Node.RemoveEdge] or [Node.RemoveChild] and nodes with
// [Node.Destroy]. Destruction is always explicit; orphaned nodes are kept.
//
// # Layers and Heads
//
// Every layer keeps its members sorted by an ordering key ([IDOrderKey] by
// default) and tracks its heads: the members with no parent in the same
// layer. Heads are updated incrementally on every edge change.
//
// # Edge Identity
//
// Edge identifiers have the form "<parent>-><child>[<tag>]". Two edges may
// connect the same ordered pair of nodes as long as their tags differ; a
// second edge with the same pair and tag is rejected as a duplicate.
//
// # Freezing
//
// [Passage.Freeze] turns the passage immutable for good. Every later
// mutation, including attribute writes, fails with a FROZEN_GRAPH error and
// leaves the graph unchanged. [Node.Extra] is scratch space outside the
// graph's semantics and is not covered by the freeze.
//
// # Concurrency
//
// A Passage is not safe for concurrent mutation. Once frozen, reads may run
// concurrently from any number of goroutines. Distinct passages share no
// state.
package dag
