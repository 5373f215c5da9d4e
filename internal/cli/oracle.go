package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/io"
	"github.com/matzehuels/shiftgraph/pkg/oracle"
	"github.com/matzehuels/shiftgraph/pkg/pipeline"
)

// oracleOpts holds the command-line flags for the oracle command.
type oracleOpts struct {
	passageID string // gold passage identifier
	output    string // path for the derived action script
	show      bool   // print the derived actions
}

// oracleCommand creates the oracle command. It builds a gold passage from a
// script, derives a fresh script from the gold passage, and checks that
// replaying the derived script reproduces the gold passage.
func (c *CLI) oracleCommand() *cobra.Command {
	var opts oracleOpts

	cmd := &cobra.Command{
		Use:   "oracle <tokens> <actions>",
		Short: "Derive an action script from a gold passage and check the round trip",
		Long: `Build the gold passage from a token file and action script, let the oracle
derive an action sequence for it, replay that sequence, and compare the
result with the gold passage. Differences are listed and make the command
fail.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOracle(cmd, passageInput{tokens: args[0], actions: args[1], passageID: opts.passageID}, opts)
		},
	}

	cmd.Flags().StringVar(&opts.passageID, "id", "", "passage identifier (default: token file name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the derived action script")
	cmd.Flags().BoolVar(&opts.show, "print", false, "print the derived actions")

	return cmd
}

func (c *CLI) runOracle(cmd *cobra.Command, in passageInput, opts oracleOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prog := newProgress(c.Logger)

	gold, _, err := c.buildPassage(ctx, in)
	if err != nil {
		return fmt.Errorf("gold passage: %w", err)
	}

	src, err := oracle.New(gold)
	if err != nil {
		return err
	}
	res, err := c.newRunner().Run(ctx, pipeline.Job{Gold: gold, Source: src})
	if err != nil {
		if res != nil {
			printDetail(out, "oracle stopped after %d actions at %s", len(res.Actions), res.Configuration)
		}
		return err
	}
	prog.done(fmt.Sprintf("Derived %d actions", len(res.Actions)))

	if opts.show {
		for _, a := range res.Actions {
			fmt.Fprintln(out, "  "+a.String())
		}
	}
	if opts.output != "" {
		if err := io.ExportActions(opts.output, res.Actions); err != nil {
			return err
		}
		printFile(out, opts.output)
	}

	if diffs := oracle.Diff(gold, res.Passage); len(diffs) > 0 {
		for _, d := range diffs {
			printDetail(out, "%s", d)
		}
		return errors.New(errors.ErrCodeMalformedGraph,
			"round trip of %s differs in %d places:\n%s", gold.ID(), len(diffs), strings.Join(diffs, "\n"))
	}
	printSuccess(out, "Round trip of %s reproduces the gold passage", StyleHighlight.Render(gold.ID()))
	printStats(out, res.Stats)
	return nil
}
