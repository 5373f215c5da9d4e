package dag

import (
	"slices"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// Node is a vertex of the annotation graph: a text span or an abstract unit.
//
// A Node keeps its outgoing and incoming edges sorted by its ordering key
// ([EdgeIDOrderKey] by default). Parents and children are derived from those
// edge lists. The layer a node belongs to is fixed at creation.
type Node struct {
	layerID string
	localID string
	tag     string

	p        *Passage
	attrib   *Attrib
	orderKey EdgeOrderKey

	outgoing []string
	incoming []string

	// Extra holds non-semantic annotations such as traceability remarks.
	// It is not covered by the passage's frozen guard.
	Extra map[string]any
}

// ID returns the node identifier in "<layer>.<local>" form.
func (n *Node) ID() string { return n.layerID + IDSeparator + n.localID }

// LayerID returns the identifier of the node's layer.
func (n *Node) LayerID() string { return n.layerID }

// LocalID returns the layer-local suffix of the node identifier.
func (n *Node) LocalID() string { return n.localID }

// Tag returns the node's label.
func (n *Node) Tag() string { return n.tag }

// Passage returns the owning passage.
func (n *Node) Passage() *Passage { return n.p }

// Layer returns the node's layer.
func (n *Node) Layer() *Layer { return n.p.layers[n.layerID] }

// Attrib returns the node's attribute store.
func (n *Node) Attrib() *Attrib { return n.attrib }

// String returns the node identifier.
func (n *Node) String() string { return n.ID() }

// Outgoing returns the node's outgoing edges in order.
func (n *Node) Outgoing() []*Edge { return n.resolve(n.outgoing) }

// Incoming returns the node's incoming edges in order.
func (n *Node) Incoming() []*Edge { return n.resolve(n.incoming) }

// Children returns the child of each outgoing edge, in edge order.
func (n *Node) Children() []*Node {
	children := make([]*Node, len(n.outgoing))
	for i, eid := range n.outgoing {
		children[i] = n.p.nodes[n.p.edges[eid].childID]
	}
	return children
}

// Parents returns the parent of each incoming edge, in edge order.
func (n *Node) Parents() []*Node {
	parents := make([]*Node, len(n.incoming))
	for i, eid := range n.incoming {
		parents[i] = n.p.nodes[n.p.edges[eid].parentID]
	}
	return parents
}

// Add creates an edge tagged tag from n to child and returns it.
//
// Both adjacency lists are re-sorted, and when n and child share a layer the
// layer's heads are updated. Returns FROZEN_GRAPH if the passage is frozen,
// MISSING_ELEMENT if either endpoint is not registered in this passage, or
// DUPLICATE_ID if an edge with the same parent, child and tag exists.
func (n *Node) Add(tag string, child *Node, attrib Attributes) (*Edge, error) {
	if n.p.frozen {
		return nil, errors.Frozen("node " + n.ID())
	}
	if !n.registered() {
		return nil, errors.Missing("node", n.ID())
	}
	if child == nil {
		return nil, errors.New(errors.ErrCodeMissingElement, "node %s: child is nil", n.ID())
	}
	if child.p != n.p || !child.registered() {
		return nil, errors.Missing("node", child.ID())
	}

	id := EdgeID(n.ID(), child.ID(), tag)
	if _, exists := n.p.edges[id]; exists {
		return nil, errors.Duplicate("edge", id)
	}
	e := &Edge{parentID: n.ID(), childID: child.ID(), tag: tag, p: n.p}
	e.attrib = newAttrib(n.p, attrib)
	n.p.edges[id] = e

	n.outgoing = append(n.outgoing, id)
	child.incoming = append(child.incoming, id)
	n.sortEdges()
	child.sortEdges()

	if n.layerID == child.layerID {
		n.Layer().addEdge(e)
	}
	return e, nil
}

// RemoveEdge unlinks one of n's outgoing edges from both endpoints.
// Returns FROZEN_GRAPH if the passage is frozen or MISSING_ELEMENT if e is
// not an outgoing edge of n.
func (n *Node) RemoveEdge(e *Edge) error {
	if n.p.frozen {
		return errors.Frozen("node " + n.ID())
	}
	if e == nil || !slices.Contains(n.outgoing, e.ID()) {
		id := "<nil>"
		if e != nil {
			id = e.ID()
		}
		return errors.New(errors.ErrCodeMissingElement, "node %s has no outgoing edge %s", n.ID(), id)
	}

	id := e.ID()
	child := n.p.nodes[e.childID]
	n.outgoing = slices.DeleteFunc(n.outgoing, func(s string) bool { return s == id })
	child.incoming = slices.DeleteFunc(child.incoming, func(s string) bool { return s == id })
	delete(n.p.edges, id)

	if n.layerID == child.layerID {
		n.Layer().removeEdge(e)
	}
	return nil
}

// RemoveChild removes the first outgoing edge (in edge order) whose child is
// child. Returns MISSING_ELEMENT if n has no edge to child.
func (n *Node) RemoveChild(child *Node) error {
	if n.p.frozen {
		return errors.Frozen("node " + n.ID())
	}
	if child != nil {
		for _, e := range n.Outgoing() {
			if e.childID == child.ID() {
				return n.RemoveEdge(e)
			}
		}
	}
	id := "<nil>"
	if child != nil {
		id = child.ID()
	}
	return errors.New(errors.ErrCodeMissingElement, "node %s has no child %s", n.ID(), id)
}

// Destroy removes every incident edge of n, then removes n from its layer
// and passage.
func (n *Node) Destroy() error {
	if n.p.frozen {
		return errors.Frozen("node " + n.ID())
	}
	if !n.registered() {
		return errors.Missing("node", n.ID())
	}
	for _, e := range n.Outgoing() {
		if err := n.RemoveEdge(e); err != nil {
			return err
		}
	}
	for _, e := range n.Incoming() {
		if err := e.Parent().RemoveEdge(e); err != nil {
			return err
		}
	}
	if len(n.outgoing) > 0 || len(n.incoming) > 0 {
		return errors.New(errors.ErrCodeInternal, "node %s still has edges after removal", n.ID())
	}
	n.Layer().removeNode(n)
	delete(n.p.nodes, n.ID())
	return nil
}

// SetOrderKey replaces the edge ordering key and re-sorts both edge lists.
func (n *Node) SetOrderKey(key EdgeOrderKey) error {
	if n.p.frozen {
		return errors.Frozen("node " + n.ID())
	}
	n.orderKey = key
	n.sortEdges()
	return nil
}

func (n *Node) registered() bool { return n.p.nodes[n.ID()] == n }

func (n *Node) resolve(ids []string) []*Edge {
	edges := make([]*Edge, len(ids))
	for i, id := range ids {
		edges[i] = n.p.edges[id]
	}
	return edges
}

func (n *Node) sortEdges() {
	key := func(id string) string { return n.orderKey(n.p.edges[id]) }
	sortIDs(n.outgoing, key)
	sortIDs(n.incoming, key)
}
