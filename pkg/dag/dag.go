package dag

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// IDSeparator joins a layer identifier and a local suffix into a node
// identifier.
const IDSeparator = "."

// Passage is the root of one annotation graph.
//
// A Passage owns every layer, node and edge created through it; elements
// refer to each other only by identifier and resolve those identifiers
// through the passage. A Passage starts mutable; [Passage.Freeze] makes it
// immutable for good.
//
// The zero value is not usable - use NewPassage to create a Passage.
// Passage is not safe for concurrent mutation.
type Passage struct {
	id     string
	attrib *Attrib
	frozen bool

	layers map[string]*Layer
	nodes  map[string]*Node
	edges  map[string]*Edge
}

// NewPassage creates an empty, mutable passage. The attrib parameter can be
// nil. NewPassage always succeeds; identifier validation is left to callers
// that accept identifiers from users.
func NewPassage(id string, attrib Attributes) *Passage {
	p := &Passage{
		id:     id,
		layers: make(map[string]*Layer),
		nodes:  make(map[string]*Node),
		edges:  make(map[string]*Edge),
	}
	p.attrib = newAttrib(p, attrib)
	return p
}

// ID returns the passage identifier.
func (p *Passage) ID() string { return p.id }

// Attrib returns the passage-level attribute store.
func (p *Passage) Attrib() *Attrib { return p.attrib }

// Frozen reports whether the passage has been frozen.
func (p *Passage) Frozen() bool { return p.frozen }

// Freeze makes the passage immutable. It is idempotent and cannot be undone.
// After Freeze every mutating call fails with a FROZEN_GRAPH error, and the
// passage may be read concurrently without further synchronization.
func (p *Passage) Freeze() { p.frozen = true }

// Layer returns the layer with the given identifier, or a MISSING_ELEMENT
// error if the passage has no such layer.
func (p *Passage) Layer(id string) (*Layer, error) {
	l, ok := p.layers[id]
	if !ok {
		return nil, errors.Missing("layer", id)
	}
	return l, nil
}

// Layers returns all layers sorted by identifier.
func (p *Passage) Layers() []*Layer {
	ids := slices.Sorted(maps.Keys(p.layers))
	layers := make([]*Layer, len(ids))
	for i, id := range ids {
		layers[i] = p.layers[id]
	}
	return layers
}

// Node returns the node with the given identifier and true, or nil and false
// if not found.
func (p *Passage) Node(id string) (*Node, bool) {
	n, ok := p.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by [IDOrderKey].
func (p *Passage) Nodes() []*Node {
	ids := slices.Collect(maps.Keys(p.nodes))
	sortIDs(ids, func(id string) string { return IDOrderKey(p.nodes[id]) })
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = p.nodes[id]
	}
	return nodes
}

// Edge returns the edge with the given identifier and true, or nil and false
// if not found.
func (p *Passage) Edge(id string) (*Edge, bool) {
	e, ok := p.edges[id]
	return e, ok
}

// NodeCount returns the number of nodes in the passage.
func (p *Passage) NodeCount() int { return len(p.nodes) }

// EdgeCount returns the number of edges in the passage.
func (p *Passage) EdgeCount() int { return len(p.edges) }

// NewLayer creates a layer and registers it in the passage.
//
// Returns an INVALID_INPUT error for a malformed identifier, FROZEN_GRAPH if
// the passage is frozen, or DUPLICATE_ID if the identifier is taken.
func (p *Passage) NewLayer(id string, attrib Attributes) (*Layer, error) {
	if p.frozen {
		return nil, errors.Frozen("passage " + p.id)
	}
	if err := errors.ValidateLayerID(id); err != nil {
		return nil, err
	}
	if _, exists := p.layers[id]; exists {
		return nil, errors.Duplicate("layer", id)
	}
	l := &Layer{id: id, p: p, orderKey: IDOrderKey}
	l.attrib = newAttrib(p, attrib)
	p.layers[id] = l
	return l, nil
}

// NewNode creates a node with identifier "<layerID>.<localID>" and registers
// it in both the passage and its layer, where it starts out as a head.
//
// Returns FROZEN_GRAPH if the passage is frozen, MISSING_ELEMENT if the layer
// does not exist, INVALID_INPUT for a malformed local identifier, or
// DUPLICATE_ID if the identifier is taken.
func (p *Passage) NewNode(layerID, localID, tag string, attrib Attributes) (*Node, error) {
	if p.frozen {
		return nil, errors.Frozen("passage " + p.id)
	}
	l, err := p.Layer(layerID)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateLocalID(localID); err != nil {
		return nil, err
	}
	id := layerID + IDSeparator + localID
	if _, exists := p.nodes[id]; exists {
		return nil, errors.Duplicate("node", id)
	}
	n := &Node{
		layerID:  layerID,
		localID:  localID,
		tag:      tag,
		p:        p,
		orderKey: EdgeIDOrderKey,
		Extra:    make(map[string]any),
	}
	n.attrib = newAttrib(p, attrib)
	p.nodes[id] = n
	l.addNode(n)
	return n, nil
}

// SplitID splits a node identifier into its layer identifier and local
// suffix. It reports false if id has no separator.
func SplitID(id string) (layerID, localID string, ok bool) {
	return strings.Cut(id, IDSeparator)
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that every edge connects registered nodes and that the graph
// is acyclic, returning a MALFORMED_GRAPH error otherwise.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (p *Passage) Validate() error {
	for id, e := range p.edges {
		if _, ok := p.nodes[e.parentID]; !ok {
			return errors.New(errors.ErrCodeMalformedGraph, "edge %s: parent %s not registered", id, e.parentID)
		}
		if _, ok := p.nodes[e.childID]; !ok {
			return errors.New(errors.ErrCodeMalformedGraph, "edge %s: child %s not registered", id, e.childID)
		}
	}
	return p.detectCycles()
}

func (p *Passage) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(p.nodes))
	var cycleAt string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, eid := range p.nodes[id].outgoing {
			child := p.edges[eid].childID
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				cycleAt = child
			}
			if cycleAt != "" {
				return
			}
		}
		color[id] = black
	}

	for _, n := range p.Nodes() {
		id := n.ID()
		if color[id] == white {
			dfs(id)
			if cycleAt != "" {
				return errors.New(errors.ErrCodeMalformedGraph, "graph contains a cycle through %s", cycleAt)
			}
		}
	}
	return nil
}
