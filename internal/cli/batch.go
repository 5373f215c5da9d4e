package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/io"
	"github.com/matzehuels/shiftgraph/pkg/pipeline"
)

const (
	tokensExt  = ".tokens"
	actionsExt = ".actions"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	output      string // directory for JSON dumps
	concurrency int    // passages built at once; 0 keeps the configured value
	failFast    bool   // stop at the first failed passage
}

// batchCommand creates the batch command, which builds every passage of a
// directory concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Build every passage in a directory",
		Long: `Build every passage in a directory. Each NAME.tokens file is paired with
NAME.actions; the passage is named NAME. Passages are independent and are
built concurrently. Failed passages are reported and make the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write each passage as JSON into this directory")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, "passages built at once (default from config)")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failed passage")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, dir string, opts batchOpts) error {
	if opts.concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", opts.concurrency)
	}
	if opts.concurrency > 0 {
		c.Config.Runner.Concurrency = opts.concurrency
	}
	if opts.failFast {
		c.Config.Runner.FailFast = true
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	out := cmd.OutOrStdout()

	jobs, err := collectJobs(ctx, dir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		printWarning(out, "No *%s files with matching *%s scripts in %s", tokensExt, actionsExt, dir)
		return nil
	}
	if opts.output != "" {
		if err := os.MkdirAll(opts.output, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.output)
		}
	}

	printInfo(out, "Building %d passages from %s", len(jobs), dir)
	prog := newProgress(c.Logger)
	outcomes, batchErr := c.newRunner().RunBatch(ctx, jobs)
	prog.done(fmt.Sprintf("Built %d passages", len(jobs)))

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			printError(out, "%s: %s", o.Job.ID(), errors.UserMessage(o.Err))
		case o.Result == nil:
			printWarning(out, "%s: skipped", o.Job.ID())
		default:
			printSuccess(out, "%s", o.Job.ID())
			printStats(out, o.Result.Stats)
			if opts.output != "" {
				path := filepath.Join(opts.output, o.Job.ID()+".json")
				if err := io.ExportJSON(o.Result.Passage, path); err != nil {
					return err
				}
				printFile(out, path)
			}
		}
	}

	if batchErr != nil {
		return batchErr
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d passages failed", failed, len(outcomes))
	}
	return nil
}

// collectJobs pairs the token files in dir with their action scripts.
// Token files without a script are logged and skipped.
func collectJobs(ctx context.Context, dir string) ([]pipeline.Job, error) {
	logger := loggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), tokensExt) {
			names = append(names, strings.TrimSuffix(e.Name(), tokensExt))
		}
	}
	slices.Sort(names)

	var jobs []pipeline.Job
	for _, name := range names {
		in := passageInput{
			tokens:    filepath.Join(dir, name+tokensExt),
			actions:   filepath.Join(dir, name+actionsExt),
			passageID: name,
		}
		if _, err := os.Stat(in.actions); err != nil {
			logger.Warn("no action script", "passage", name, "want", in.actions)
			continue
		}
		job, err := in.job()
		if err != nil {
			return nil, fmt.Errorf("passage %s: %w", name, err)
		}
		jobs = append(jobs, job)
	}
	logger.Debug("collected passages", "dir", dir, "count", len(jobs))
	return jobs, nil
}
