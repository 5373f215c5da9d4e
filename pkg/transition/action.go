package transition

import (
	"fmt"
	"strings"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// ActionType identifies one of the transitions a Configuration accepts.
type ActionType int

// Action types, in the order of the precondition table.
const (
	ActionNode   ActionType = iota + 1 // create a parent for the buffer head and push it
	ActionEdge                         // stack top -> buffer head
	ActionRemote                       // stack top -> buffer head, remote
	ActionRoot                         // root -> stack top, then pop
	ActionReduce                       // pop the stack
	ActionShift                        // move the buffer head onto the stack
	ActionSwap                         // exchange the top two stack elements
	ActionWrap                         // the stack becomes the buffer
	ActionFinish                       // terminate
)

var actionNames = map[ActionType]string{
	ActionNode:   "NODE",
	ActionEdge:   "EDGE",
	ActionRemote: "REMOTE",
	ActionRoot:   "ROOT",
	ActionReduce: "REDUCE",
	ActionShift:  "SHIFT",
	ActionSwap:   "SWAP",
	ActionWrap:   "WRAP",
	ActionFinish: "FINISH",
}

// String returns the upper-case action name.
func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

// Tagged reports whether actions of this type carry a tag.
func (t ActionType) Tagged() bool {
	switch t {
	case ActionNode, ActionEdge, ActionRemote, ActionRoot:
		return true
	}
	return false
}

// ParseActionType parses an action name, case-insensitively.
func ParseActionType(s string) (ActionType, error) {
	for t, name := range actionNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown action %q", s)
}

// Action is one step of an action stream. Tag is set for NODE, EDGE, REMOTE
// and ROOT. NodeID optionally names the gold node a NODE action creates.
type Action struct {
	Type   ActionType
	Tag    string
	NodeID string
}

// Common untagged actions.
var (
	Reduce = Action{Type: ActionReduce}
	Shift  = Action{Type: ActionShift}
	Swap   = Action{Type: ActionSwap}
	Wrap   = Action{Type: ActionWrap}
	Finish = Action{Type: ActionFinish}
)

// NodeAction returns a NODE action.
func NodeAction(tag string) Action { return Action{Type: ActionNode, Tag: tag} }

// EdgeAction returns an EDGE action.
func EdgeAction(tag string) Action { return Action{Type: ActionEdge, Tag: tag} }

// RemoteAction returns a REMOTE action.
func RemoteAction(tag string) Action { return Action{Type: ActionRemote, Tag: tag} }

// RootAction returns a ROOT action.
func RootAction(tag string) Action { return Action{Type: ActionRoot, Tag: tag} }

// String formats the action the way [ParseAction] reads it, e.g. "NODE A",
// "NODE A 1.2" or "SHIFT".
func (a Action) String() string {
	parts := []string{a.Type.String()}
	if a.Tag != "" {
		parts = append(parts, a.Tag)
	}
	if a.NodeID != "" {
		parts = append(parts, a.NodeID)
	}
	return strings.Join(parts, " ")
}

// ParseAction parses the textual form produced by [Action.String].
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Action{}, errors.New(errors.ErrCodeInvalidInput, "empty action")
	}
	t, err := ParseActionType(fields[0])
	if err != nil {
		return Action{}, err
	}
	a := Action{Type: t}
	args := fields[1:]

	switch {
	case !t.Tagged() && len(args) > 0:
		return Action{}, errors.New(errors.ErrCodeInvalidInput, "%s takes no arguments, got %q", t, s)
	case t.Tagged() && len(args) == 0:
		return Action{}, errors.New(errors.ErrCodeInvalidInput, "%s requires a tag", t)
	case t == ActionNode && len(args) > 2, t != ActionNode && len(args) > 1:
		return Action{}, errors.New(errors.ErrCodeInvalidInput, "too many arguments in %q", s)
	}
	if len(args) > 0 {
		a.Tag = args[0]
	}
	if len(args) > 1 {
		a.NodeID = args[1]
	}
	return a, nil
}
