package transition

import (
	"cmp"
	"slices"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// Levels assigns every node a construction level: nodes without incoming
// edges sit at level 0, and every other node at one plus the maximum level
// of its parents, so parents always come before their children.
//
// Levels uses a longest-path traversal in topological order (Kahn's
// algorithm). Nodes that never become ready lie on a cycle; Levels reports
// them as a MALFORMED_GRAPH error.
//
// Time complexity is O(V + E).
func Levels(nodes []*Node) (map[*Node]int, error) {
	inDegree := make(map[*Node]int, len(nodes))
	levels := make(map[*Node]int, len(nodes))
	queue := make([]*Node, 0, len(nodes))

	for _, n := range nodes {
		inDegree[n] = len(n.Incoming)
		if len(n.Incoming) == 0 {
			queue = append(queue, n)
			levels[n] = 0
		}
	}

	done := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		done++

		for _, e := range curr.Outgoing {
			child := e.Child
			if level := levels[curr] + 1; level > levels[child] {
				levels[child] = level
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if done < len(nodes) {
		return nil, errors.New(errors.ErrCodeMalformedGraph,
			"transient graph contains a cycle (%d of %d nodes unresolved)", len(nodes)-done, len(nodes))
	}
	return levels, nil
}

// Order sorts nodes by level, then within a level by gold local index when
// known, else by creation index. It also re-sorts every node's edge lists so
// edges to and from earlier nodes come first.
func Order(nodes []*Node) ([]*Node, error) {
	levels, err := Levels(nodes)
	if err != nil {
		return nil, err
	}

	ordered := slices.Clone(nodes)
	slices.SortStableFunc(ordered, func(a, b *Node) int {
		return cmp.Or(
			cmp.Compare(levels[a], levels[b]),
			cmp.Compare(a.orderKey(), b.orderKey()),
			cmp.Compare(a.Index, b.Index),
		)
	})

	pos := make(map[*Node]int, len(ordered))
	for i, n := range ordered {
		pos[n] = i
	}
	for _, n := range ordered {
		slices.SortStableFunc(n.Outgoing, func(a, b *Edge) int { return cmp.Compare(pos[a.Child], pos[b.Child]) })
		slices.SortStableFunc(n.Incoming, func(a, b *Edge) int { return cmp.Compare(pos[a.Parent], pos[b.Parent]) })
	}
	return ordered, nil
}
