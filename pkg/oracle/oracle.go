// Package oracle derives the action stream that rebuilds a gold passage.
//
// An [Oracle] looks at the current configuration and the edges of the gold
// foundational layer that the configuration does not have yet, and answers
// with the next action by a fixed list of greedy rules:
//
//  1. FINISH once nothing is pending and the buffer is empty.
//  2. EDGE or REMOTE for a pending edge from the stack top to the buffer head.
//  3. ROOT when the only pending edge of the stack top is a primary edge
//     from the root.
//  4. REDUCE when the stack top has no pending edges.
//  5. NODE for a pending primary edge into the buffer head whose parent has
//     not been created.
//  6. SHIFT while the buffer is not empty.
//  7. WRAP otherwise.
//
// The rules do not use SWAP. Structures that need it make WRAP cycle without
// progress, which the oracle reports as [ErrStuck].
package oracle

import (
	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// ErrStuck is returned when the rules cannot make progress on a passage.
var ErrStuck = errors.New(errors.ErrCodeMalformedTransition, "oracle is stuck")

// edgeKey identifies a gold edge by the gold identifiers of its endpoints.
type edgeKey struct {
	parent, child, tag string
	remote             bool
}

// Oracle supplies the actions that rebuild one gold passage. It keeps state
// between calls and must not be shared between configurations.
type Oracle struct {
	gold  *dag.Passage
	edges []edgeKey

	wrapped     bool
	wrapPending int
}

// New creates an oracle for gold, which must have a foundational layer.
func New(gold *dag.Passage) (*Oracle, error) {
	l, err := gold.Layer(layer1.LayerID)
	if err != nil {
		return nil, err
	}
	o := &Oracle{gold: gold}
	for _, n := range l.All() {
		for _, e := range n.Outgoing() {
			o.edges = append(o.edges, edgeKey{
				parent: n.ID(),
				child:  e.Child().ID(),
				tag:    e.Tag(),
				remote: layer1.IsRemote(e),
			})
		}
	}
	return o, nil
}

// Passage returns the gold passage.
func (o *Oracle) Passage() *dag.Passage { return o.gold }

// Next returns the next action for c.
func (o *Oracle) Next(c *transition.Configuration) (transition.Action, error) {
	pending := o.pending(c)
	created := make(map[string]bool)
	for _, n := range c.Nodes() {
		if n.NodeID != "" {
			created[n.NodeID] = true
		}
	}

	stack, buffer := c.Stack(), c.Buffer()
	var s, b *transition.Node
	if len(stack) > 0 {
		s = stack[len(stack)-1]
	}
	if len(buffer) > 0 {
		b = buffer[0]
	}

	if len(pending) == 0 && b == nil {
		return transition.Finish, nil
	}

	if s != nil && b != nil {
		for _, e := range pending {
			if e.parent == s.NodeID && e.child == b.NodeID {
				if e.remote {
					return transition.RemoteAction(e.tag), nil
				}
				return transition.EdgeAction(e.tag), nil
			}
		}
	}

	if s != nil {
		out, in := incident(pending, s.NodeID)
		if len(out) == 0 && len(in) == 1 && !in[0].remote && in[0].parent == layer1.RootID {
			return transition.RootAction(in[0].tag), nil
		}
		if len(out) == 0 && len(in) == 0 {
			return transition.Reduce, nil
		}
	}

	if b != nil {
		for _, e := range pending {
			if e.child == b.NodeID && !e.remote && e.parent != layer1.RootID && !created[e.parent] {
				return transition.Action{Type: transition.ActionNode, Tag: e.tag, NodeID: e.parent}, nil
			}
		}
		return transition.Shift, nil
	}

	if s == nil {
		return transition.Action{}, errors.Wrap(errors.ErrCodeMalformedTransition, ErrStuck,
			"%d edges pending with an empty stack and buffer", len(pending))
	}
	if o.wrapped && o.wrapPending == len(pending) {
		return transition.Action{}, errors.Wrap(errors.ErrCodeMalformedTransition, ErrStuck,
			"no edge created since the last WRAP (%d pending)", len(pending))
	}
	o.wrapped, o.wrapPending = true, len(pending)
	return transition.Wrap, nil
}

// pending returns the gold edges c does not have yet, in gold order.
func (o *Oracle) pending(c *transition.Configuration) []edgeKey {
	have := make(map[edgeKey]bool)
	for _, n := range c.Nodes() {
		for _, e := range n.Outgoing {
			if e.Parent.NodeID != "" && e.Child.NodeID != "" {
				have[edgeKey{e.Parent.NodeID, e.Child.NodeID, e.Tag, e.Remote}] = true
			}
		}
	}
	var pending []edgeKey
	for _, e := range o.edges {
		if !have[e] {
			pending = append(pending, e)
		}
	}
	return pending
}

func incident(edges []edgeKey, id string) (out, in []edgeKey) {
	for _, e := range edges {
		if e.parent == id {
			out = append(out, e)
		}
		if e.child == id {
			in = append(in, e)
		}
	}
	return out, in
}

// Actions runs a training configuration for gold to completion and returns
// the actions the oracle chose, ending with FINISH.
func Actions(gold *dag.Passage) ([]transition.Action, error) {
	o, err := New(gold)
	if err != nil {
		return nil, err
	}
	c, err := transition.NewTrainingConfiguration(gold)
	if err != nil {
		return nil, err
	}

	limit := 4*(gold.NodeCount()+len(o.edges)) + 8
	var actions []transition.Action
	for len(actions) < limit {
		a, err := o.Next(c)
		if err != nil {
			return actions, err
		}
		actions = append(actions, a)
		more, err := c.Apply(a)
		if err != nil {
			return actions, errors.Wrap(errors.ErrCodeInternal, err, "oracle chose an invalid action")
		}
		if !more {
			return actions, nil
		}
	}
	return actions, errors.New(errors.ErrCodeInternal, "oracle did not finish within %d actions", limit)
}
