// Package nodelink renders passages as node-link diagrams.
//
// # Usage
//
// Convert a passage to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Layout
//
// Layers are drawn top to bottom with the root unit at the top. Terminals
// share the bottom rank in token order and are labeled with their text.
// Edges carry their tag. Remote edges are dashed, linkage nodes are diamonds
// with dotted edges, and punctuation units are drawn grey.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
