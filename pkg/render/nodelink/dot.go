package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
	"github.com/matzehuels/shiftgraph/pkg/render"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node identifiers, tags, attributes and remarks to the
	// labels. When false, terminals show their text and units their
	// identifier.
	Detailed bool
}

// ToDOT converts a passage to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(p *dag.Passage, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=14];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var terminals []string
	for _, n := range p.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
		if n.LayerID() == layer0.LayerID {
			terminals = append(terminals, strconv.Quote(n.ID()))
		}
	}
	if len(terminals) > 0 {
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(terminals, "; "))
		// Invisible chain keeps terminals in token order.
		if len(terminals) > 1 {
			fmt.Fprintf(&buf, "  %s [style=invis];\n", strings.Join(terminals, " -> "))
		}
	}

	buf.WriteString("\n")
	for _, n := range p.Nodes() {
		for _, e := range n.Outgoing() {
			attrs := []string{fmt.Sprintf("label=%q", e.Tag())}
			switch {
			case layer1.IsRemote(e):
				attrs = append(attrs, "style=dashed")
			case n.Tag() == layer1.NodeTagLinkage:
				attrs = append(attrs, "style=dotted", "color=grey40")
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", n.ID(), e.Child().ID(), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *dag.Node, detailed bool) string {
	name := n.ID()
	if text := layer0.Text(n); text != "" {
		name = text
	}
	if !detailed {
		return name
	}

	parts := []string{name, n.ID() + " " + n.Tag()}
	for _, k := range n.Attrib().Keys() {
		v, _ := n.Attrib().Get(k)
		parts = append(parts, fmt.Sprintf("%s: %v", k, v))
	}
	if remarks, ok := n.Extra[transition.RemarksKey]; ok {
		parts = append(parts, fmt.Sprintf("remarks: %v", remarks))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Tag() {
	case layer1.NodeTagLinkage:
		attrs = append(attrs, "shape=diamond", "style=filled", "fillcolor=lightyellow")
	case layer1.NodeTagPunctuation:
		attrs = append(attrs, "fillcolor=lightgrey")
	case layer0.TagWord, layer0.TagPunctuation:
		attrs = append(attrs, "shape=plaintext", "style=\"\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
