// Package layer1 implements the foundational layer of a passage: the units
// built on top of the terminals, the punctuation units wrapping single
// punctuation terminals, and the linkage nodes relating scenes.
//
// Layer "1" always has a root unit, "1.1", from which every other unit
// hangs. Units are numbered 1.2, 1.3, ... in creation order.
package layer1

import (
	"strconv"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// LayerID is the identifier of the foundational layer.
const LayerID = "1"

// RootID is the identifier of the layer's root unit.
const RootID = LayerID + dag.IDSeparator + "1"

// Node tags.
const (
	NodeTagFoundational = "FN"
	NodeTagPunctuation  = "PNCT"
	NodeTagLinkage      = "LKG"
)

// Edge tags. The first four are the defaults of [Vocabulary]; the rest are
// the unit categories carried by ordinary edges.
const (
	EdgeTagTerminal      = "Terminal"
	EdgeTagPunctuation   = "U"
	EdgeTagLinkRelation  = "LR"
	EdgeTagLinkArgument  = "LA"
	EdgeTagParallelScene = "H"
	EdgeTagParticipant   = "A"
	EdgeTagProcess       = "P"
	EdgeTagState         = "S"
	EdgeTagAdverbial     = "D"
	EdgeTagGround        = "G"
	EdgeTagCenter        = "C"
	EdgeTagElaborator    = "E"
	EdgeTagFunction      = "F"
	EdgeTagConnector     = "N"
	EdgeTagRelator       = "R"
	EdgeTagTime          = "T"
	EdgeTagQuantifier    = "Q"
	EdgeTagLinker        = "L"
)

// AttrRemote marks remote edges.
const AttrRemote = "remote"

// Layer builds the foundational layer of one passage.
type Layer struct {
	p     *dag.Passage
	layer *dag.Layer
	root  *dag.Node
	vocab Vocabulary
	next  int
}

// New creates layer "1" and its root unit in p.
func New(p *dag.Passage, vocab Vocabulary) (*Layer, error) {
	if err := vocab.Validate(); err != nil {
		return nil, err
	}
	layer, err := p.NewLayer(LayerID, nil)
	if err != nil {
		return nil, err
	}
	l := &Layer{p: p, layer: layer, vocab: vocab, next: 1}
	if l.root, err = l.newNode(NodeTagFoundational); err != nil {
		return nil, err
	}
	return l, nil
}

// Root returns the root unit.
func (l *Layer) Root() *dag.Node { return l.root }

// Layer returns the underlying graph layer.
func (l *Layer) Layer() *dag.Layer { return l.layer }

// Vocabulary returns the tag vocabulary the layer was created with.
func (l *Layer) Vocabulary() Vocabulary { return l.vocab }

// AddFNode creates a unit attached to parent by an edge tagged tag.
func (l *Layer) AddFNode(parent *dag.Node, tag string) (*dag.Node, error) {
	if parent == nil {
		return nil, errors.New(errors.ErrCodeMissingElement, "unit parent is nil")
	}
	n, err := l.newNode(NodeTagFoundational)
	if err != nil {
		return nil, err
	}
	if _, err := parent.Add(tag, n, nil); err != nil {
		return nil, err
	}
	return n, nil
}

// AddPunct creates a punctuation unit under parent wrapping terminal.
// The unit has no category of its own: it hangs from parent by the
// vocabulary's punctuation tag and holds terminal by its terminal tag.
func (l *Layer) AddPunct(parent, terminal *dag.Node) (*dag.Node, error) {
	if parent == nil || terminal == nil {
		return nil, errors.New(errors.ErrCodeMissingElement, "punctuation unit needs a parent and a terminal")
	}
	n, err := l.newNode(NodeTagPunctuation)
	if err != nil {
		return nil, err
	}
	if _, err := parent.Add(l.vocab.Punctuation, n, nil); err != nil {
		return nil, err
	}
	if _, err := n.Add(l.vocab.Terminal, terminal, nil); err != nil {
		return nil, err
	}
	return n, nil
}

// AddLinkage creates a linkage node relating relation to args. Linkage nodes
// have no parent.
func (l *Layer) AddLinkage(relation *dag.Node, args ...*dag.Node) (*dag.Node, error) {
	if relation == nil {
		return nil, errors.New(errors.ErrCodeMissingElement, "linkage relation is nil")
	}
	for i, arg := range args {
		if arg == nil {
			return nil, errors.New(errors.ErrCodeMissingElement, "linkage argument %d is nil", i+1)
		}
	}
	n, err := l.newNode(NodeTagLinkage)
	if err != nil {
		return nil, err
	}
	if _, err := n.Add(l.vocab.LinkRelation, relation, nil); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if _, err := n.Add(l.vocab.LinkArgument, arg, nil); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// AddRemote adds a remote edge tagged tag from parent to child.
func (l *Layer) AddRemote(parent *dag.Node, tag string, child *dag.Node) (*dag.Edge, error) {
	if parent == nil {
		return nil, errors.New(errors.ErrCodeMissingElement, "remote edge parent is nil")
	}
	return parent.Add(tag, child, dag.Attributes{AttrRemote: true})
}

// IsRemote reports whether e is a remote edge.
func IsRemote(e *dag.Edge) bool {
	v, _ := e.Attrib().Get(AttrRemote)
	remote, _ := v.(bool)
	return remote
}

func (l *Layer) newNode(tag string) (*dag.Node, error) {
	n, err := l.p.NewNode(LayerID, strconv.Itoa(l.next), tag, nil)
	if err != nil {
		return nil, err
	}
	l.next++
	return n, nil
}
