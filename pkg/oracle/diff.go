package oracle

import (
	"fmt"
	"slices"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
)

// Diff compares two passages by node tags and edges and returns one line
// per difference, sorted. A nil result means the passages are structurally
// equal. Attributes and remarks are not compared.
func Diff(want, got *dag.Passage) []string {
	var diffs []string

	wantNodes, gotNodes := nodeTags(want), nodeTags(got)
	for id, tag := range wantNodes {
		switch other, ok := gotNodes[id]; {
		case !ok:
			diffs = append(diffs, fmt.Sprintf("- node %s [%s]", id, tag))
		case other != tag:
			diffs = append(diffs, fmt.Sprintf("~ node %s [%s] became [%s]", id, tag, other))
		}
	}
	for id, tag := range gotNodes {
		if _, ok := wantNodes[id]; !ok {
			diffs = append(diffs, fmt.Sprintf("+ node %s [%s]", id, tag))
		}
	}

	wantEdges, gotEdges := edgeSet(want), edgeSet(got)
	for e := range wantEdges {
		if !gotEdges[e] {
			diffs = append(diffs, "- edge "+e)
		}
	}
	for e := range gotEdges {
		if !wantEdges[e] {
			diffs = append(diffs, "+ edge "+e)
		}
	}

	slices.Sort(diffs)
	return diffs
}

func nodeTags(p *dag.Passage) map[string]string {
	tags := make(map[string]string, p.NodeCount())
	for _, n := range p.Nodes() {
		tags[n.ID()] = n.Tag()
	}
	return tags
}

func edgeSet(p *dag.Passage) map[string]bool {
	set := make(map[string]bool, p.EdgeCount())
	for _, n := range p.Nodes() {
		for _, e := range n.Outgoing() {
			key := e.ID()
			if layer1.IsRemote(e) {
				key += " (remote)"
			}
			set[key] = true
		}
	}
	return set
}
