// Package render converts rendered passages between output formats.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Diagrams themselves are
// produced by the [nodelink] subpackage:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [nodelink]: github.com/matzehuels/shiftgraph/pkg/render/nodelink
package render
