package oracle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

func build(t *testing.T, tokens []string, script string) *dag.Passage {
	t.Helper()
	c, err := transition.NewConfiguration([][]string{tokens}, "gold")
	if err != nil {
		t.Fatalf("NewConfiguration() error: %v", err)
	}
	for _, line := range strings.Split(script, ",") {
		a, err := transition.ParseAction(line)
		if err != nil {
			t.Fatalf("ParseAction(%q) error: %v", line, err)
		}
		if _, err := c.Apply(a); err != nil {
			t.Fatalf("Apply(%s) error: %v", a, err)
		}
	}
	p, err := transition.Finalize(c)
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	return p
}

// withoutIDs renders actions without their gold node identifiers.
func withoutIDs(actions []transition.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		a.NodeID = ""
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func edgeList(p *dag.Passage) string {
	var lines []string
	for _, n := range p.Nodes() {
		for _, e := range n.Outgoing() {
			lines = append(lines, fmt.Sprintf("%s -%s-> %s remote=%v", n.ID(), e.Tag(), e.Child().ID(), layer1.IsRemote(e)))
		}
	}
	return strings.Join(lines, "\n")
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		script string
	}{
		{"single token", []string{"Hi"}, "NODE A,EDGE B,ROOT C,SHIFT,FINISH"},
		{"two words", []string{"John", "left"}, "NODE A,SHIFT,REDUCE,EDGE P,ROOT H,SHIFT,FINISH"},
		{"punctuation", []string{"left", "."}, "NODE P,ROOT H,SHIFT,REDUCE,NODE Terminal,ROOT U,SHIFT,FINISH"},
		{"remote", []string{"a", "b"}, "NODE A,SHIFT,REDUCE,EDGE P,REMOTE D,ROOT H,SHIFT,FINISH"},
		{
			"linkage", []string{"x", "y", "z"},
			"NODE C,ROOT H,NODE LR,SHIFT,REDUCE,EDGE LA,NODE C,ROOT H,SHIFT,REDUCE," +
				"EDGE LA,NODE C,ROOT H,REDUCE,SHIFT,FINISH",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gold := build(t, tt.tokens, tt.script)

			actions, err := Actions(gold)
			if err != nil {
				t.Fatalf("Actions() error: %v (after %s)", err, withoutIDs(actions))
			}
			if got := withoutIDs(actions); got != tt.script {
				t.Errorf("Actions() = %s\nwant %s", got, tt.script)
			}

			rebuilt := build(t, tt.tokens, withoutIDs(actions))
			if got, want := edgeList(rebuilt), edgeList(gold); got != want {
				t.Errorf("rebuilt edges:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestActionsCarryGoldIDs(t *testing.T) {
	gold := build(t, []string{"John", "left"}, "NODE A,SHIFT,REDUCE,EDGE P,ROOT H,SHIFT,FINISH")
	actions, err := Actions(gold)
	if err != nil {
		t.Fatalf("Actions() error: %v", err)
	}
	if got := actions[0]; got.Type != transition.ActionNode || got.NodeID != "1.2" {
		t.Errorf("first action = %s, want NODE A 1.2", got)
	}
}

func TestStuck(t *testing.T) {
	// 1.3 holds a remote edge to 1.2, which lies to its left. Rebuilding it
	// needs SWAP.
	gold, err := layer0.Builder{}.BuildTerminals([][]string{{"a", "b"}}, "stuck")
	if err != nil {
		t.Fatal(err)
	}
	l1, err := layer1.New(gold, layer1.DefaultVocabulary())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := gold.Node("0.1")
	b, _ := gold.Node("0.2")
	left, _ := l1.AddFNode(l1.Root(), "H")
	right, _ := l1.AddFNode(l1.Root(), "H")
	if _, err := left.Add("A", a, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := right.Add("P", b, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l1.AddRemote(right, "D", left); err != nil {
		t.Fatal(err)
	}

	_, err = Actions(gold)
	if !errors.Is(err, errors.ErrCodeMalformedTransition) || !strings.Contains(err.Error(), "stuck") {
		t.Errorf("Actions() error = %v, want stuck oracle", err)
	}
}

func TestNewWithoutFoundationalLayer(t *testing.T) {
	gold, err := layer0.Builder{}.BuildTerminals([][]string{{"a"}}, "bare")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(gold); !errors.Is(err, errors.ErrCodeMissingElement) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodeMissingElement)
	}
}
