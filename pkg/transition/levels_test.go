package transition

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

func newGraph(n int) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = &Node{Index: i}
	}
	return nodes
}

func connect(parent, child *Node, tag string) {
	e := &Edge{Parent: parent, Child: child, Tag: tag}
	parent.Outgoing = append(parent.Outgoing, e)
	child.Incoming = append(child.Incoming, e)
}

func TestLevels(t *testing.T) {
	nodes := newGraph(5)
	connect(nodes[0], nodes[1], "A")
	connect(nodes[0], nodes[2], "A")
	connect(nodes[1], nodes[2], "B")
	connect(nodes[2], nodes[3], "C")

	levels, err := Levels(nodes)
	if err != nil {
		t.Fatalf("Levels() error: %v", err)
	}
	want := []int{0, 1, 2, 3, 0}
	for i, n := range nodes {
		if levels[n] != want[i] {
			t.Errorf("level of node %d = %d, want %d", i, levels[n], want[i])
		}
	}
}

func TestLevelsRandomDAG(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := range 50 {
		nodes := newGraph(2 + rng.IntN(20))
		// Edges only run from lower to higher indices, so the graph is acyclic.
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				if rng.IntN(4) == 0 {
					connect(nodes[i], nodes[j], "E")
				}
			}
		}
		rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

		levels, err := Levels(nodes)
		if err != nil {
			t.Fatalf("trial %d: Levels() error: %v", trial, err)
		}
		for _, n := range nodes {
			want := 0
			for _, e := range n.Incoming {
				want = max(want, levels[e.Parent]+1)
			}
			if levels[n] != want {
				t.Fatalf("trial %d: level of node %d = %d, want %d", trial, n.Index, levels[n], want)
			}
		}
	}
}

func TestLevelsCycle(t *testing.T) {
	nodes := newGraph(3)
	connect(nodes[0], nodes[1], "A")
	connect(nodes[1], nodes[2], "B")
	connect(nodes[2], nodes[1], "C")

	_, err := Levels(nodes)
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("Levels(cycle) error = %v, want %s", err, errors.ErrCodeMalformedGraph)
	}
}

func TestOrder(t *testing.T) {
	nodes := newGraph(4)
	nodes[1].NodeIndex = 9
	nodes[2].NodeIndex = 3
	connect(nodes[0], nodes[3], "C")
	connect(nodes[0], nodes[2], "B")
	connect(nodes[0], nodes[1], "A")

	ordered, err := Order(nodes)
	if err != nil {
		t.Fatalf("Order() error: %v", err)
	}
	// Level 1 holds nodes 1, 2 and 3, keyed 9, 3 and 3 (its index).
	var got []int
	for _, n := range ordered {
		got = append(got, n.Index)
	}
	want := []int{0, 2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Order() = %v, want %v", got, want)
		}
	}

	var tags string
	for _, e := range nodes[0].Outgoing {
		tags += e.Tag
	}
	if tags != "BCA" {
		t.Errorf("outgoing tags after Order = %s, want BCA", tags)
	}
}
