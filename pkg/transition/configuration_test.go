package transition

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

func newTestConfiguration(t *testing.T, tokens ...string) *Configuration {
	t.Helper()
	c, err := NewConfiguration([][]string{tokens}, "test")
	if err != nil {
		t.Fatalf("NewConfiguration() error: %v", err)
	}
	return c
}

// apply applies every action and fails the test on the first error.
func apply(t *testing.T, c *Configuration, actions ...Action) {
	t.Helper()
	for i, a := range actions {
		if _, err := c.Apply(a); err != nil {
			t.Fatalf("action %d (%s): %v", i+1, a, err)
		}
	}
}

func names(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func TestNewConfiguration(t *testing.T) {
	c, err := NewConfiguration([][]string{{"John", "left"}, {"."}}, "p1")
	if err != nil {
		t.Fatalf("NewConfiguration() error: %v", err)
	}
	if got := names(c.Buffer()); got != "[John left .]" {
		t.Errorf("Buffer() = %s", got)
	}
	if len(c.Stack()) != 0 {
		t.Errorf("Stack() = %s, want empty", names(c.Stack()))
	}
	if got := len(c.Nodes()); got != 4 {
		t.Errorf("len(Nodes()) = %d, want 4 (3 leaves and the root)", got)
	}
	if c.Root().Index != 3 || c.Root().IsLeaf() {
		t.Errorf("Root() = %+v", c.Root())
	}

	if _, err := NewConfiguration([][]string{{"a", ""}}, "p1"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty token error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestShift(t *testing.T) {
	c := newTestConfiguration(t, "t1", "t2", "t3")
	apply(t, c, Shift)

	if got := names(c.Stack()); got != "[t1]" {
		t.Errorf("Stack() = %s, want [t1]", got)
	}
	if got := names(c.Buffer()); got != "[t2 t3]" {
		t.Errorf("Buffer() = %s, want [t2 t3]", got)
	}
}

func TestWrap(t *testing.T) {
	c := newTestConfiguration(t, "a", "b", "c")
	apply(t, c, Shift, Shift, Shift)
	if got := names(c.Stack()); got != "[a b c]" {
		t.Fatalf("Stack() = %s, want [a b c]", got)
	}

	apply(t, c, Wrap)
	if got := names(c.Buffer()); got != "[a b c]" {
		t.Errorf("Buffer() = %s, want [a b c]", got)
	}
	if len(c.Stack()) != 0 {
		t.Errorf("Stack() = %s, want empty", names(c.Stack()))
	}
}

func TestSwap(t *testing.T) {
	c := newTestConfiguration(t, "a", "b", "c")
	apply(t, c, Shift, Shift, Shift, Swap)
	if got := names(c.Stack()); got != "[a c b]" {
		t.Errorf("Stack() = %s, want [a c b]", got)
	}
}

func TestNodeEdgeRoot(t *testing.T) {
	c := newTestConfiguration(t, "Hi")
	apply(t, c, NodeAction("A"), EdgeAction("B"), RemoteAction("A"))

	stack := c.Stack()
	if len(stack) != 1 {
		t.Fatalf("Stack() = %s, want one new node", names(stack))
	}
	unit := stack[0]
	if got := fmt.Sprint(unit.Outgoing); got != "[2 -A-> Hi 2 -B-> Hi 2 -A-> Hi (remote)]" {
		t.Errorf("Outgoing = %s", got)
	}
	if got := len(c.Buffer()[0].Incoming); got != 3 {
		t.Errorf("len(Incoming) of Hi = %d, want 3", got)
	}

	apply(t, c, RootAction("H"))
	if len(c.Stack()) != 0 {
		t.Errorf("Stack() after ROOT = %s, want empty", names(c.Stack()))
	}
	if got := fmt.Sprint(c.Root().Outgoing); got != "[1 -H-> 2]" {
		t.Errorf("Root().Outgoing = %s", got)
	}

	cont, err := c.Apply(Finish)
	if err != nil || cont {
		t.Errorf("Apply(FINISH) = %v, %v; want false, nil", cont, err)
	}
	if !c.Finished() || c.Steps() != 5 {
		t.Errorf("Finished() = %v, Steps() = %d", c.Finished(), c.Steps())
	}
}

func TestPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		setup   []Action
		action  Action
		message string
	}{
		{"NODE empty buffer", []string{"a"}, []Action{Shift}, NodeAction("A"), "buffer is empty"},
		{"EDGE empty stack", []string{"a"}, nil, EdgeAction("A"), "stack is empty"},
		{"EDGE empty buffer", []string{"a"}, []Action{Shift}, EdgeAction("A"), "buffer is empty"},
		{"REMOTE empty stack", []string{"a"}, nil, RemoteAction("A"), "stack is empty"},
		{"ROOT empty stack", []string{"a"}, nil, RootAction("H"), "stack is empty"},
		{"REDUCE empty stack", []string{"a"}, nil, Reduce, "stack is empty"},
		{"SHIFT empty buffer", []string{"a"}, []Action{Shift}, Shift, "buffer is empty"},
		{"SWAP one element", []string{"a"}, []Action{Shift}, Swap, "need 2"},
		{"NODE missing tag", []string{"a"}, nil, Action{Type: ActionNode}, "no tag"},
		{"EDGE missing tag", []string{"a"}, []Action{NodeAction("A")}, Action{Type: ActionEdge}, "no tag"},
		{"duplicate edge", []string{"a"}, []Action{NodeAction("A")}, EdgeAction("A"), "already exists"},
		{"duplicate remote", []string{"a"}, []Action{NodeAction("A"), RemoteAction("B")}, RemoteAction("B"), "already exists"},
		{"after finish", []string{"a"}, []Action{Finish}, Shift, "already finished"},
		{"unknown", []string{"a"}, nil, Action{Type: ActionType(42)}, "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConfiguration(t, tt.tokens...)
			apply(t, c, tt.setup...)
			before := c.String()
			edgesBefore := countEdges(c)

			_, err := c.Apply(tt.action)
			if !errors.Is(err, errors.ErrCodeMalformedTransition) {
				t.Fatalf("Apply(%s) error = %v, want %s", tt.action, err, errors.ErrCodeMalformedTransition)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
			if c.String() != before || countEdges(c) != edgesBefore {
				t.Errorf("configuration changed by rejected action: %s, want %s", c, before)
			}
		})
	}
}

func countEdges(c *Configuration) int {
	total := 0
	for _, n := range c.Nodes() {
		total += len(n.Outgoing)
	}
	return total
}

func TestRemoteAndPrimaryCoexist(t *testing.T) {
	c := newTestConfiguration(t, "a")
	apply(t, c, NodeAction("A"), RemoteAction("A"))
	if got := len(c.Stack()[0].Outgoing); got != 2 {
		t.Errorf("len(Outgoing) = %d, want 2", got)
	}
}

func TestConfigurationString(t *testing.T) {
	c := newTestConfiguration(t, "John", "left")
	apply(t, c, NodeAction("A"), Shift)
	if got, want := c.String(), "stack: [3 John] buffer: [left]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTrainingConfiguration(t *testing.T) {
	gold := finalizeScript(t, [][]string{{"John", "left"}, {"."}},
		NodeAction("A"), RootAction("H"), Shift, Shift, Shift, Finish)

	c, err := NewTrainingConfiguration(gold)
	if err != nil {
		t.Fatalf("NewTrainingConfiguration() error: %v", err)
	}
	if c.PassageID() != gold.ID() {
		t.Errorf("PassageID() = %s, want %s", c.PassageID(), gold.ID())
	}
	buffer := c.Buffer()
	var ids []string
	for _, n := range buffer {
		ids = append(ids, fmt.Sprintf("%s=%s/%d", n.Text, n.NodeID, n.NodeIndex))
	}
	if got := strings.Join(ids, " "); got != "John=0.1/1 left=0.2/2 .=0.3/3" {
		t.Errorf("buffer = %s", got)
	}
	if c.Root().NodeID != "1.1" {
		t.Errorf("Root().NodeID = %q, want 1.1", c.Root().NodeID)
	}
	if got := fmt.Sprint(c.Paragraphs()); got != "[[John left] [.]]" {
		t.Errorf("Paragraphs() = %s", got)
	}
}
