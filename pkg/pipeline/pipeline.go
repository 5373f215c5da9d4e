// Package pipeline drives passages from tokens to finalized graphs.
//
// A [Runner] creates the initial configuration for a [Job], asks the job's
// [ActionSource] for one action at a time until FINISH, and hands the
// finished configuration to a [transition.Finalizer]. Independent passages
// can be built concurrently with [Runner.RunBatch].
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger, pipeline.Options{})
//	result, err := runner.Run(ctx, pipeline.Job{
//	    PassageID:  "120",
//	    Paragraphs: [][]string{{"John", "left", "."}},
//	    Source:     pipeline.NewScriptSource(actions),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Passage.NodeCount())
//
// For training, set [Job.Gold] and use an oracle as the source; the
// configuration is then built from the gold passage's terminals.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultConcurrency is the number of passages RunBatch builds at once.
	DefaultConcurrency = 4

	// DefaultMaxActions bounds the actions applied to one passage. An action
	// source that never emits FINISH is stopped here.
	DefaultMaxActions = 100_000
)

// =============================================================================
// Action Sources
// =============================================================================

// ActionSource supplies the next action for a configuration. An oracle and
// a trained classifier are both action sources; the pipeline places no
// constraint on how the action is chosen.
type ActionSource interface {
	Next(c *transition.Configuration) (transition.Action, error)
}

// ScriptSource replays a fixed list of actions.
type ScriptSource struct {
	actions []transition.Action
	pos     int
}

// NewScriptSource returns a source replaying actions in order.
func NewScriptSource(actions []transition.Action) *ScriptSource {
	return &ScriptSource{actions: actions}
}

// Next returns the next scripted action. Running out of actions before
// FINISH is a MALFORMED_TRANSITION error.
func (s *ScriptSource) Next(*transition.Configuration) (transition.Action, error) {
	if s.pos >= len(s.actions) {
		return transition.Action{}, errors.New(errors.ErrCodeMalformedTransition,
			"action script ended after %d actions without FINISH", len(s.actions))
	}
	a := s.actions[s.pos]
	s.pos++
	return a, nil
}

// =============================================================================
// Options, Jobs and Results
// =============================================================================

// Options configures a Runner.
type Options struct {
	// MaxActions stops a passage whose source has not emitted FINISH after
	// this many actions. Zero means DefaultMaxActions.
	MaxActions int `toml:"max_actions"`

	// Freeze freezes every finalized passage.
	Freeze bool `toml:"freeze"`

	// Concurrency is the number of passages RunBatch builds at once.
	// Zero means DefaultConcurrency.
	Concurrency int `toml:"concurrency"`

	// FailFast makes RunBatch stop at the first failed passage.
	FailFast bool `toml:"fail_fast"`
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.MaxActions < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_actions must not be negative, got %d", o.MaxActions)
	}
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	return nil
}

// WithDefaults returns o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.MaxActions == 0 {
		o.MaxActions = DefaultMaxActions
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o
}

// Job describes one passage to build.
type Job struct {
	// PassageID names the resulting passage. Ignored when Gold is set.
	PassageID string

	// Paragraphs holds the tokenized input. Ignored when Gold is set.
	Paragraphs [][]string

	// Gold, when set, starts a training configuration from its terminals.
	Gold *dag.Passage

	// Source supplies the actions.
	Source ActionSource
}

// ID returns the identifier of the passage the job builds.
func (j Job) ID() string {
	if j.Gold != nil {
		return j.Gold.ID()
	}
	return j.PassageID
}

// Result contains the outputs of building one passage.
type Result struct {
	// Passage is the finalized graph; nil if the passage failed.
	Passage *dag.Passage

	// Configuration is the final configuration. After a failure or
	// cancellation it shows how far construction got.
	Configuration *transition.Configuration

	// Actions lists every action the source supplied, including a rejected
	// last one.
	Actions []transition.Action

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains passage statistics.
type Stats struct {
	Tokens       int
	Actions      int
	NodeCount    int
	EdgeCount    int
	BuildTime    time.Duration
	FinalizeTime time.Duration
}

// String summarizes the statistics on one line.
func (s Stats) String() string {
	return fmt.Sprintf("%d tokens, %d actions, %d nodes, %d edges (build %s, finalize %s)",
		s.Tokens, s.Actions, s.NodeCount, s.EdgeCount,
		s.BuildTime.Round(time.Microsecond), s.FinalizeTime.Round(time.Microsecond))
}
