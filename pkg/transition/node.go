package transition

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
)

// Node is a transient node. It exists only while a Configuration is being
// built and finalized.
type Node struct {
	Index     int    // position in the configuration's node list
	Text      string // token text; set only for leaves
	NodeID    string // gold node identifier (training only)
	NodeIndex int    // numeric local suffix of NodeID, 0 if none

	Outgoing []*Edge
	Incoming []*Edge

	// Persisted is filled in by the finalizer once the node is materialized.
	Persisted *dag.Node
}

func newNode(index int, text, nodeID string) *Node {
	n := &Node{Index: index, Text: text, NodeID: nodeID}
	if _, local, ok := dag.SplitID(nodeID); ok {
		n.NodeIndex, _ = strconv.Atoi(local)
	}
	return n
}

// IsLeaf reports whether n carries token text.
func (n *Node) IsLeaf() bool { return n.Text != "" }

// IsLinkage reports whether every outgoing edge of n is a link relation or
// link argument edge. Nodes without outgoing edges are not linkages.
func (n *Node) IsLinkage(vocab layer1.Vocabulary) bool {
	if len(n.Outgoing) == 0 {
		return false
	}
	for _, e := range n.Outgoing {
		if e.Tag != vocab.LinkRelation && e.Tag != vocab.LinkArgument {
			return false
		}
	}
	return true
}

// orderKey is the within-level sort key: the gold local index when known,
// else the creation index.
func (n *Node) orderKey() int {
	if n.NodeIndex > 0 {
		return n.NodeIndex
	}
	return n.Index
}

// String returns the token text, the gold identifier or the index, in that
// order of preference.
func (n *Node) String() string {
	switch {
	case n.Text != "":
		return n.Text
	case n.NodeID != "":
		return n.NodeID
	}
	return strconv.Itoa(n.Index)
}

// Edge is a transient edge.
type Edge struct {
	Parent *Node
	Child  *Node
	Tag    string
	Remote bool

	// materialized is set when the finalizer has already created the
	// persisted counterpart of this edge.
	materialized bool
}

// String formats the edge as "parent -tag-> child".
func (e *Edge) String() string {
	s := fmt.Sprintf("%s -%s-> %s", e.Parent, e.Tag, e.Child)
	if e.Remote {
		s += " (remote)"
	}
	return s
}
