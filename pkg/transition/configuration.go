package transition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
)

// Configuration is the state of the transition system: a stack, a buffer,
// every transient node created so far, and an implicit root that is never
// placed on the stack or the buffer.
//
// The zero value is not usable - use NewConfiguration or
// NewTrainingConfiguration. A Configuration is owned by one goroutine.
type Configuration struct {
	passageID  string
	paragraphs [][]string

	nodes  []*Node
	stack  []*Node
	buffer []*Node
	root   *Node

	steps    int
	finished bool
}

// NewConfiguration creates the initial configuration for plain text: one
// buffer node per token, in paragraph and token order.
func NewConfiguration(paragraphs [][]string, passageID string) (*Configuration, error) {
	c := &Configuration{passageID: passageID}
	for i, paragraph := range paragraphs {
		for j, token := range paragraph {
			if token == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "paragraph %d: token %d is empty", i+1, j+1)
			}
			c.nodes = append(c.nodes, newNode(len(c.nodes), token, ""))
		}
		c.paragraphs = append(c.paragraphs, slices.Clone(paragraph))
	}
	c.init("")
	return c, nil
}

// NewTrainingConfiguration creates the initial configuration for a gold
// passage: one buffer node per terminal carrying the terminal's identifier,
// and a root carrying the identifier of the foundational layer's root.
func NewTrainingConfiguration(gold *dag.Passage) (*Configuration, error) {
	terminals, err := layer0.Terminals(gold)
	if err != nil {
		return nil, err
	}
	paragraphs, err := layer0.Paragraphs(gold)
	if err != nil {
		return nil, err
	}
	c := &Configuration{passageID: gold.ID(), paragraphs: paragraphs}
	for _, t := range terminals {
		text := layer0.Text(t)
		if text == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "terminal %s has no text", t.ID())
		}
		c.nodes = append(c.nodes, newNode(len(c.nodes), text, t.ID()))
	}
	c.init(layer1.RootID)
	return c, nil
}

func (c *Configuration) init(rootID string) {
	c.buffer = slices.Clone(c.nodes)
	c.root = c.addNode(rootID)
}

func (c *Configuration) addNode(nodeID string) *Node {
	n := newNode(len(c.nodes), "", nodeID)
	c.nodes = append(c.nodes, n)
	return n
}

// PassageID returns the identifier the finalized passage will carry.
func (c *Configuration) PassageID() string { return c.passageID }

// Paragraphs returns the tokenized input.
func (c *Configuration) Paragraphs() [][]string { return c.paragraphs }

// Root returns the implicit root node.
func (c *Configuration) Root() *Node { return c.root }

// Nodes returns every transient node, including leaves and the root, in
// creation order.
func (c *Configuration) Nodes() []*Node { return slices.Clone(c.nodes) }

// Stack returns the stack, bottom first.
func (c *Configuration) Stack() []*Node { return slices.Clone(c.stack) }

// Buffer returns the buffer, front first.
func (c *Configuration) Buffer() []*Node { return slices.Clone(c.buffer) }

// Steps returns the number of actions applied so far.
func (c *Configuration) Steps() int { return c.steps }

// Finished reports whether FINISH has been applied.
func (c *Configuration) Finished() bool { return c.finished }

// Apply applies one action and reports whether construction should
// continue. It returns false only for FINISH.
//
// Preconditions are checked before anything changes, so a rejected action
// leaves the configuration as it was. Violations are reported as
// MALFORMED_TRANSITION errors; so is any action after FINISH.
func (c *Configuration) Apply(a Action) (bool, error) {
	if c.finished {
		return false, c.malformed(a, "configuration already finished")
	}

	switch a.Type {
	case ActionNode:
		if err := c.require(a, 0, 1); err != nil {
			return false, err
		}
		if err := checkTag(a); err != nil {
			return false, err
		}
		parent := c.addNode(a.NodeID)
		c.link(parent, c.buffer[0], a.Tag, false)
		c.stack = append(c.stack, parent)

	case ActionEdge, ActionRemote:
		if err := c.require(a, 1, 1); err != nil {
			return false, err
		}
		parent, child := c.stack[len(c.stack)-1], c.buffer[0]
		remote := a.Type == ActionRemote
		if err := c.checkEdge(a, parent, child, remote); err != nil {
			return false, err
		}
		c.link(parent, child, a.Tag, remote)

	case ActionRoot:
		if err := c.require(a, 1, 0); err != nil {
			return false, err
		}
		child := c.stack[len(c.stack)-1]
		if err := c.checkEdge(a, c.root, child, false); err != nil {
			return false, err
		}
		c.link(c.root, child, a.Tag, false)
		c.stack = c.stack[:len(c.stack)-1]

	case ActionReduce:
		if err := c.require(a, 1, 0); err != nil {
			return false, err
		}
		c.stack = c.stack[:len(c.stack)-1]

	case ActionShift:
		if err := c.require(a, 0, 1); err != nil {
			return false, err
		}
		c.stack = append(c.stack, c.buffer[0])
		c.buffer = c.buffer[1:]

	case ActionSwap:
		if err := c.require(a, 2, 0); err != nil {
			return false, err
		}
		top := len(c.stack) - 1
		c.stack[top], c.stack[top-1] = c.stack[top-1], c.stack[top]

	case ActionWrap:
		c.buffer = c.stack
		c.stack = nil

	case ActionFinish:
		c.steps++
		c.finished = true
		return false, nil

	default:
		return false, c.malformed(a, "unknown action type")
	}

	c.steps++
	if err := c.checkDisjoint(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Configuration) malformed(a Action, format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedTransition, "%s at step %d: %s", a, c.steps+1, fmt.Sprintf(format, args...))
}

// require checks the minimum stack and buffer sizes an action needs.
func (c *Configuration) require(a Action, stack, buffer int) error {
	if len(c.stack) < stack {
		if stack == 1 {
			return c.malformed(a, "stack is empty")
		}
		return c.malformed(a, "stack has %d elements, need %d", len(c.stack), stack)
	}
	if len(c.buffer) < buffer {
		return c.malformed(a, "buffer is empty")
	}
	return nil
}

func checkTag(a Action) error {
	if a.Tag == "" {
		return errors.New(errors.ErrCodeMalformedTransition, "%s: no tag given for new edge", a.Type)
	}
	return nil
}

func (c *Configuration) checkEdge(a Action, parent, child *Node, remote bool) error {
	if err := checkTag(a); err != nil {
		return err
	}
	if parent == child {
		return c.malformed(a, "self-loop on %s", parent)
	}
	for _, e := range parent.Outgoing {
		if e.Child == child && e.Tag == a.Tag && e.Remote == remote {
			return c.malformed(a, "edge %s already exists", e)
		}
	}
	return nil
}

func (c *Configuration) link(parent, child *Node, tag string, remote bool) {
	e := &Edge{Parent: parent, Child: child, Tag: tag, Remote: remote}
	parent.Outgoing = append(parent.Outgoing, e)
	child.Incoming = append(child.Incoming, e)
}

func (c *Configuration) checkDisjoint() error {
	onStack := make(map[*Node]bool, len(c.stack))
	for _, n := range c.stack {
		onStack[n] = true
	}
	for _, n := range c.buffer {
		if onStack[n] {
			return errors.New(errors.ErrCodeMalformedTransition, "stack and buffer overlap at %s", n)
		}
	}
	return nil
}

// String renders the stack and buffer, e.g. "stack: [1.2 John] buffer: [left]".
func (c *Configuration) String() string {
	return fmt.Sprintf("stack: [%s] buffer: [%s]", joinNodes(c.stack), joinNodes(c.buffer))
}

func joinNodes(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
