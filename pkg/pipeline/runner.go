package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/observability"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// Runner builds passages from action sources.
//
// The Runner holds no per-passage state. Multiple goroutines can safely use
// the same Runner with different jobs, as long as each job has its own
// action source.
type Runner struct {
	Finalizer *transition.Finalizer
	Logger    *log.Logger
	Options   Options
}

// NewRunner creates a runner. A nil finalizer means
// [transition.NewFinalizer]; a nil logger discards output.
func NewRunner(f *transition.Finalizer, logger *log.Logger, opts Options) *Runner {
	if f == nil {
		f = transition.NewFinalizer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Finalizer: f, Logger: logger, Options: opts.WithDefaults()}
}

// Run builds one passage. The context is checked between actions; a
// cancelled run returns the non-terminal configuration in the result
// together with the context's error.
func (r *Runner) Run(ctx context.Context, job Job) (*Result, error) {
	id := job.ID()
	if job.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "passage %s: no action source", id)
	}
	c, err := r.configuration(job)
	if err != nil {
		return nil, fmt.Errorf("passage %s: %w", id, err)
	}

	hooks := observability.Pipeline()
	result := &Result{Configuration: c}
	result.Stats.Tokens = tokenCount(c.Paragraphs())
	hooks.OnPassageStart(ctx, id, result.Stats.Tokens)

	buildStart := time.Now()
	if err := r.apply(ctx, id, c, job.Source, result); err != nil {
		return result, fmt.Errorf("passage %s: %w", id, err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Actions = len(result.Actions)

	finalizeStart := time.Now()
	p, err := r.Finalizer.Finalize(c)
	result.Stats.FinalizeTime = time.Since(finalizeStart)
	if err != nil {
		hooks.OnFinalizeComplete(ctx, id, 0, result.Stats.FinalizeTime, err)
		return result, fmt.Errorf("passage %s: finalize: %w", id, err)
	}
	if r.Options.Freeze {
		p.Freeze()
	}
	hooks.OnFinalizeComplete(ctx, id, p.NodeCount(), result.Stats.FinalizeTime, nil)

	result.Passage = p
	result.Stats.NodeCount = p.NodeCount()
	result.Stats.EdgeCount = p.EdgeCount()
	r.Logger.Info("built passage",
		"passage", id,
		"actions", result.Stats.Actions,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime+result.Stats.FinalizeTime)
	return result, nil
}

func (r *Runner) configuration(job Job) (*transition.Configuration, error) {
	if job.Gold != nil {
		return transition.NewTrainingConfiguration(job.Gold)
	}
	if err := errors.ValidatePassageID(job.PassageID); err != nil {
		return nil, err
	}
	return transition.NewConfiguration(job.Paragraphs, job.PassageID)
}

func (r *Runner) apply(ctx context.Context, id string, c *transition.Configuration, src ActionSource, result *Result) error {
	hooks := observability.Pipeline()
	limit := r.Options.WithDefaults().MaxActions

	for {
		if err := ctx.Err(); err != nil {
			r.Logger.Warn("passage cancelled", "passage", id, "actions", len(result.Actions))
			return err
		}
		if len(result.Actions) >= limit {
			return errors.New(errors.ErrCodeMalformedTransition, "no FINISH after %d actions", limit)
		}

		a, err := src.Next(c)
		if err != nil {
			return fmt.Errorf("action source: %w", err)
		}
		result.Actions = append(result.Actions, a)

		more, err := c.Apply(a)
		hooks.OnAction(ctx, id, a.String(), err)
		if err != nil {
			return err
		}
		r.Logger.Debug("applied action", "passage", id, "step", c.Steps(), "action", a.String(), "state", c.String())
		if !more {
			return nil
		}
	}
}

func tokenCount(paragraphs [][]string) int {
	n := 0
	for _, p := range paragraphs {
		n += len(p)
	}
	return n
}

// Outcome is the result of one job in a batch.
type Outcome struct {
	Job    Job
	Result *Result
	Err    error
}

// RunBatch builds independent passages concurrently, at most
// Options.Concurrency at a time. Outcomes are returned in job order.
//
// Without FailFast every job runs and per-passage errors are reported only
// in the outcomes; the returned error is the context's, if it was
// cancelled. With FailFast the first failure cancels the remaining jobs
// and is returned.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job) ([]Outcome, error) {
	opts := r.Options.WithDefaults()
	outcomes := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Run(gctx, job)
			outcomes[i] = Outcome{Job: job, Result: res, Err: err}
			if err != nil {
				r.Logger.Error("passage failed", "passage", job.ID(), "err", err)
				if opts.FailFast {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
