package dag

import (
	"slices"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// Layer groups the nodes of a passage that share an annotation scheme.
//
// A Layer keeps two ordered views of its members: all of them, and its
// heads, the members with no parent in the same layer. Both views are kept
// sorted by the layer's ordering key and are updated on every membership
// or edge change.
type Layer struct {
	id       string
	p        *Passage
	attrib   *Attrib
	orderKey NodeOrderKey

	all   []string
	heads []string
}

// ID returns the layer identifier.
func (l *Layer) ID() string { return l.id }

// Passage returns the owning passage.
func (l *Layer) Passage() *Passage { return l.p }

// Attrib returns the layer's attribute store.
func (l *Layer) Attrib() *Attrib { return l.attrib }

// Len returns the number of nodes in the layer.
func (l *Layer) Len() int { return len(l.all) }

// All returns the layer's nodes in order.
func (l *Layer) All() []*Node { return l.resolve(l.all) }

// Heads returns the layer's head nodes in order.
func (l *Layer) Heads() []*Node { return l.resolve(l.heads) }

// SetOrderKey replaces the ordering key and re-sorts the layer. The key
// should depend only on the layer's own nodes and edges; keys that read
// cross-layer edges are not refreshed when those edges change.
func (l *Layer) SetOrderKey(key NodeOrderKey) error {
	if l.p.frozen {
		return errors.Frozen("layer " + l.id)
	}
	l.orderKey = key
	l.sort()
	return nil
}

func (l *Layer) resolve(ids []string) []*Node {
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = l.p.nodes[id]
	}
	return nodes
}

func (l *Layer) sort() {
	key := func(id string) string { return l.orderKey(l.p.nodes[id]) }
	sortIDs(l.all, key)
	sortIDs(l.heads, key)
}

func (l *Layer) addNode(n *Node) {
	l.all = append(l.all, n.ID())
	l.heads = append(l.heads, n.ID())
	l.sort()
}

func (l *Layer) removeNode(n *Node) {
	id := n.ID()
	l.all = slices.DeleteFunc(l.all, func(s string) bool { return s == id })
	l.heads = slices.DeleteFunc(l.heads, func(s string) bool { return s == id })
}

// addEdge is called for edges whose endpoints both belong to l.
func (l *Layer) addEdge(e *Edge) {
	l.heads = slices.DeleteFunc(l.heads, func(s string) bool { return s == e.childID })
	l.sort()
}

// removeEdge is called after an edge whose endpoints both belong to l has
// been unlinked. The child rejoins the heads only when no same-layer parent
// is left.
func (l *Layer) removeEdge(e *Edge) {
	child := l.p.nodes[e.childID]
	for _, parent := range child.Parents() {
		if parent.layerID == l.id {
			l.sort()
			return
		}
	}
	if !slices.Contains(l.heads, e.childID) {
		l.heads = append(l.heads, e.childID)
	}
	l.sort()
}
