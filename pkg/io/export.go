package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
)

type passage struct {
	ID     string         `json:"id"`
	Frozen bool           `json:"frozen"`
	Attrib dag.Attributes `json:"attrib,omitempty"`
	Layers []layer        `json:"layers"`
	Nodes  []node         `json:"nodes"`
	Edges  []edge         `json:"edges"`
}

type layer struct {
	ID    string   `json:"id"`
	Heads []string `json:"heads"`
	Nodes []string `json:"nodes"`
}

type node struct {
	ID     string         `json:"id"`
	Tag    string         `json:"tag"`
	Attrib dag.Attributes `json:"attrib,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

type edge struct {
	Parent string         `json:"parent"`
	Child  string         `json:"child"`
	Tag    string         `json:"tag"`
	Attrib dag.Attributes `json:"attrib,omitempty"`
}

// WriteJSON encodes p as indented JSON and writes it to w. Nodes are listed
// in identifier order and edges in parent order, then in each parent's
// edge order.
func WriteJSON(p *dag.Passage, w io.Writer) error {
	out := passage{ID: p.ID(), Frozen: p.Frozen(), Attrib: attributes(p.Attrib())}

	for _, l := range p.Layers() {
		out.Layers = append(out.Layers, layer{
			ID:    l.ID(),
			Heads: ids(l.Heads()),
			Nodes: ids(l.All()),
		})
	}
	for _, n := range p.Nodes() {
		nd := node{ID: n.ID(), Tag: n.Tag(), Attrib: attributes(n.Attrib())}
		if len(n.Extra) > 0 {
			nd.Extra = n.Extra
		}
		out.Nodes = append(out.Nodes, nd)
		for _, e := range n.Outgoing() {
			out.Edges = append(out.Edges, edge{
				Parent: n.ID(),
				Child:  e.Child().ID(),
				Tag:    e.Tag(),
				Attrib: attributes(e.Attrib()),
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode passage %s", p.ID())
	}
	return nil
}

// ExportJSON writes p to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *dag.Passage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

func attributes(a *dag.Attrib) dag.Attributes {
	if a.Len() == 0 {
		return nil
	}
	return a.Copy()
}

func ids(nodes []*dag.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}
