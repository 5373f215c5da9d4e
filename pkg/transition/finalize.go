package transition

import (
	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
)

// RemarksKey is the [dag.Node.Extra] key under which the finalizer records
// the gold identifier of a materialized node.
const RemarksKey = "remarks"

// TerminalBuilder builds a passage holding only the terminal layer, one
// terminal per token in paragraph and token order.
type TerminalBuilder interface {
	BuildTerminals(paragraphs [][]string, id string) (*dag.Passage, error)
}

// Finalizer materializes finished configurations into passages.
type Finalizer struct {
	Builder    TerminalBuilder
	Vocabulary layer1.Vocabulary
}

// NewFinalizer returns a Finalizer using [layer0.Builder] and the default
// vocabulary.
func NewFinalizer() *Finalizer {
	return &Finalizer{Builder: layer0.Builder{}, Vocabulary: layer1.DefaultVocabulary()}
}

// Finalize materializes c with [NewFinalizer].
func Finalize(c *Configuration) (*dag.Passage, error) {
	return NewFinalizer().Finalize(c)
}

// Finalize builds a fresh passage from a finished configuration.
//
// # Algorithm
//
//  1. Build the terminal layer from the configuration's paragraphs.
//  2. Order the transient nodes with [Order].
//  3. Walk the nodes in order. Linkage nodes are queued and remote edges
//     deferred; every other outgoing edge materializes its child under the
//     already persisted parent: a terminal for leaves, a punctuation unit
//     for a node whose only child is a punctuation leaf, and an ordinary
//     unit otherwise.
//  4. Add the deferred remote edges, then the queued linkages.
//
// Gold identifiers are kept as remarks in [dag.Node.Extra] under
// [RemarksKey].
//
// Finalize returns MALFORMED_TRANSITION for a configuration that has not
// reached FINISH and MALFORMED_GRAPH when the transient graph cannot be
// materialized. On error no passage is returned.
func (f *Finalizer) Finalize(c *Configuration) (*dag.Passage, error) {
	if !c.Finished() {
		return nil, errors.New(errors.ErrCodeMalformedTransition, "configuration for %q has not finished", c.passageID)
	}
	c.reset()

	p, err := f.Builder.BuildTerminals(c.paragraphs, c.passageID)
	if err != nil {
		return nil, err
	}
	terminals, err := layer0.Terminals(p)
	if err != nil {
		return nil, err
	}
	if leaves := c.leafCount(); leaves != len(terminals) {
		return nil, errors.New(errors.ErrCodeInternal, "builder produced %d terminals for %d tokens", len(terminals), leaves)
	}
	l1, err := layer1.New(p, f.Vocabulary)
	if err != nil {
		return nil, err
	}

	b := &builder{vocab: f.Vocabulary, l1: l1, terminals: terminals}
	c.root.Persisted = l1.Root()
	remark(c.root)

	ordered, err := Order(c.nodes)
	if err != nil {
		return nil, err
	}

	var remotes []*Edge
	var linkages []*Node
	for _, n := range ordered {
		if n.IsLeaf() {
			if len(n.Outgoing) > 0 {
				return nil, malformed("terminal %s has outgoing edges", n)
			}
			continue
		}
		if n.IsLinkage(f.Vocabulary) {
			linkages = append(linkages, n)
			continue
		}
		if n != c.root {
			if err := checkUnit(n); err != nil {
				return nil, err
			}
		}
		for _, e := range n.Outgoing {
			if e.Remote {
				remotes = append(remotes, e)
				continue
			}
			if err := b.attach(e); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range remotes {
		if e.Child.Persisted == nil {
			return nil, malformed("remote edge %s: child was never materialized", e)
		}
		if _, err := l1.AddRemote(e.Parent.Persisted, e.Tag, e.Child.Persisted); err != nil {
			return nil, err
		}
	}

	for _, n := range linkages {
		if err := b.link(n); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func malformed(format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedGraph, format, args...)
}

// checkUnit validates a non-root, non-linkage, non-leaf node before its
// edges are walked. Its parents have all been walked by now.
func checkUnit(n *Node) error {
	switch {
	case len(n.Outgoing) == 0:
		return malformed("non-terminal %s has no text and no children", n)
	case len(n.Incoming) == 0:
		return malformed("non-root %s has no incoming edge", n)
	case n.Persisted == nil:
		return malformed("%s is reachable only through remote edges", n)
	}
	return nil
}

func remark(n *Node) {
	if n.NodeID != "" && n.Persisted != nil {
		n.Persisted.Extra[RemarksKey] = n.NodeID
	}
}

type builder struct {
	vocab     layer1.Vocabulary
	l1        *layer1.Layer
	terminals []*dag.Node
}

// attach materializes the child of a primary edge under its persisted parent.
func (b *builder) attach(e *Edge) error {
	parent, child := e.Parent.Persisted, e.Child

	switch {
	case child.IsLeaf():
		// Terminals under a punctuation unit are already attached.
		if !e.materialized {
			terminal := b.terminals[child.Index]
			if _, err := parent.Add(e.Tag, terminal, nil); err != nil {
				return err
			}
			e.materialized = true
			child.Persisted = terminal
		}

	case child.IsLinkage(b.vocab):
		return malformed("linkage %s has a parent %s", child, e.Parent)

	case child.Persisted != nil:
		return malformed("%s has more than one primary parent", child)

	case b.isPunctUnit(child):
		inner := child.Outgoing[0]
		if e.Tag != b.vocab.Punctuation {
			return malformed("punctuation unit %s attached by %q, want %q", child, e.Tag, b.vocab.Punctuation)
		}
		if inner.Tag != b.vocab.Terminal {
			return malformed("punctuation unit %s holds its terminal by %q, want %q", child, inner.Tag, b.vocab.Terminal)
		}
		terminal := b.terminals[inner.Child.Index]
		unit, err := b.l1.AddPunct(parent, terminal)
		if err != nil {
			return err
		}
		child.Persisted = unit
		inner.Child.Persisted = terminal
		inner.materialized = true
		remark(inner.Child)

	default:
		unit, err := b.l1.AddFNode(parent, e.Tag)
		if err != nil {
			return err
		}
		child.Persisted = unit
	}

	remark(child)
	return nil
}

func (b *builder) isPunctUnit(n *Node) bool {
	if len(n.Outgoing) != 1 {
		return false
	}
	only := n.Outgoing[0]
	return !only.Remote && only.Child.IsLeaf() && layer0.IsPunct(b.terminals[only.Child.Index])
}

// link materializes a queued linkage node: exactly one link relation and at
// least two link arguments, all already persisted.
func (b *builder) link(n *Node) error {
	var relation *dag.Node
	var relations int
	var args []*dag.Node

	for _, e := range n.Outgoing {
		if e.Child.Persisted == nil {
			return malformed("linkage %s: %s was never materialized", n, e.Child)
		}
		switch e.Tag {
		case b.vocab.LinkRelation:
			relations++
			relation = e.Child.Persisted
		case b.vocab.LinkArgument:
			args = append(args, e.Child.Persisted)
		}
	}

	switch {
	case relations == 0:
		return malformed("linkage %s has no link relation", n)
	case relations > 1:
		return malformed("linkage %s has %d link relations", n, relations)
	case len(args) < 2:
		return malformed("linkage %s has %d link arguments, need at least 2", n, len(args))
	}

	unit, err := b.l1.AddLinkage(relation, args...)
	if err != nil {
		return err
	}
	n.Persisted = unit
	remark(n)
	return nil
}

// reset clears state left by an earlier Finalize call on the same
// configuration.
func (c *Configuration) reset() {
	for _, n := range c.nodes {
		n.Persisted = nil
		for _, e := range n.Outgoing {
			e.materialized = false
		}
	}
}

func (c *Configuration) leafCount() int {
	count := 0
	for _, n := range c.nodes {
		if n.IsLeaf() {
			count++
		}
	}
	return count
}
