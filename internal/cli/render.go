package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// validFormats lists the output formats of the render command.
var validFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	passageID string   // passage identifier
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats
	detailed  bool     // show identifiers, tags and attributes in labels
	scale     float64  // PNG scale factor
}

// renderCommand creates the render command for drawing finalized passages.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render <tokens> <actions>",
		Short: "Render a finalized passage as DOT, SVG, PDF or PNG",
		Long: `Build a passage from a token file and action script and draw it as a
node-link diagram. Terminals are ranked on one line in text order, remote
edges are dashed and linkage nodes are drawn as diamonds.

PDF and PNG output require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, passageInput{tokens: args[0], actions: args[1], passageID: opts.passageID}, opts)
		},
	}

	cmd.Flags().StringVar(&opts.passageID, "id", "", "passage identifier (default: token file name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show identifiers, tags and attributes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be one of %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

// outputPath returns where format is written. A single format uses -o as
// given; several formats use -o (or the token file) as base name.
func outputPath(opts renderOpts, tokensPath, format string) string {
	if opts.output != "" && len(opts.formats) == 1 {
		return opts.output
	}
	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(tokensPath, filepath.Ext(tokensPath))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + "." + format
}

func (c *CLI) runRender(cmd *cobra.Command, in passageInput, opts renderOpts) error {
	out := cmd.OutOrStdout()
	p, _, err := c.buildPassage(cmd.Context(), in)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.detailed})
	c.Logger.Debug("generated DOT", "passage", p.ID(), "bytes", len(dot))

	var written []string
	for _, format := range opts.formats {
		data, err := renderFormat(dot, format, opts.scale)
		if err != nil {
			return err
		}
		path := outputPath(opts, in.tokens, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}

	printSuccess(out, "Rendered %s", StyleHighlight.Render(p.ID()))
	for _, path := range written {
		printFile(out, path)
	}
	return nil
}

func renderFormat(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPDF:
		return nodelink.RenderPDF(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot, scale)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
