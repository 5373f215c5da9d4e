package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/io"
	"github.com/matzehuels/shiftgraph/pkg/render/nodelink"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	passageID string // passage identifier; defaults to the token file name
	output    string // JSON dump path
	dot       string // DOT output path
	freeze    bool   // freeze the finalized passage
	detailed  bool   // detailed DOT labels
}

// buildCommand creates the build command, which replays an action script
// over a token file and finalizes the result.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <tokens> <actions>",
		Short: "Replay an action script and finalize the passage",
		Long: `Replay an action script over a token file and finalize the configuration
into a passage. The passage is summarized on stdout and can be written as a
JSON dump (-o) or a Graphviz DOT file (--dot).`,
		Example: `  shiftgraph build passage.tokens passage.actions -o passage.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, passageInput{tokens: args[0], actions: args[1], passageID: opts.passageID}, opts)
		},
	}

	cmd.Flags().StringVar(&opts.passageID, "id", "", "passage identifier (default: token file name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the passage as JSON")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the passage as Graphviz DOT")
	cmd.Flags().BoolVar(&opts.freeze, "freeze", false, "freeze the finalized passage")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show identifiers and attributes in DOT labels")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, in passageInput, opts buildOpts) error {
	if opts.freeze {
		c.Config.Runner.Freeze = true
	}
	out := cmd.OutOrStdout()

	p, res, err := c.buildPassage(cmd.Context(), in)
	if err != nil {
		if res != nil && res.Configuration != nil {
			printDetail(out, "stopped at %s", res.Configuration)
		}
		return err
	}

	printSuccess(out, "Built passage %s", StyleHighlight.Render(p.ID()))
	printStats(out, res.Stats)

	if opts.output != "" {
		if err := io.ExportJSON(p, opts.output); err != nil {
			return err
		}
		printFile(out, opts.output)
	}
	if opts.dot != "" {
		dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.detailed})
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return err
		}
		printFile(out, opts.dot)
	}
	return nil
}
