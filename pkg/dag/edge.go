package dag

import "fmt"

// Edge is a directed, labeled connection between two nodes of a passage.
// Apart from its attribute map an Edge is immutable.
type Edge struct {
	parentID string
	childID  string
	tag      string

	p      *Passage
	attrib *Attrib
}

// EdgeID returns the identifier of the edge tagged tag from parentID to
// childID.
func EdgeID(parentID, childID, tag string) string {
	return fmt.Sprintf("%s->%s[%s]", parentID, childID, tag)
}

// ID returns the edge identifier.
func (e *Edge) ID() string { return EdgeID(e.parentID, e.childID, e.tag) }

// Tag returns the edge label.
func (e *Edge) Tag() string { return e.tag }

// Parent returns the edge's source node.
func (e *Edge) Parent() *Node { return e.p.nodes[e.parentID] }

// Child returns the edge's target node.
func (e *Edge) Child() *Node { return e.p.nodes[e.childID] }

// Attrib returns the edge's attribute store.
func (e *Edge) Attrib() *Attrib { return e.attrib }

// String returns the edge identifier.
func (e *Edge) String() string { return e.ID() }
