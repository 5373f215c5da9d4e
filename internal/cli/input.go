package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/io"
	"github.com/matzehuels/shiftgraph/pkg/pipeline"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// passageInput names the files of one passage.
type passageInput struct {
	tokens    string // token file
	actions   string // action script
	passageID string // empty means derive from the token file name
}

// load reads both files and resolves the passage identifier.
func (in passageInput) load() (id string, paragraphs [][]string, actions []transition.Action, err error) {
	if paragraphs, err = io.ImportTokens(in.tokens); err != nil {
		return "", nil, nil, err
	}
	if actions, err = io.ImportActions(in.actions); err != nil {
		return "", nil, nil, err
	}
	id = in.passageID
	if id == "" {
		id = passageIDFromPath(in.tokens)
	}
	if err := errors.ValidatePassageID(id); err != nil {
		return "", nil, nil, err
	}
	return id, paragraphs, actions, nil
}

// job returns a pipeline job replaying the script of in.
func (in passageInput) job() (pipeline.Job, error) {
	id, paragraphs, actions, err := in.load()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{
		PassageID:  id,
		Paragraphs: paragraphs,
		Source:     pipeline.NewScriptSource(actions),
	}, nil
}

// passageIDFromPath returns the file name without extension, or a random
// identifier when that is not a valid passage ID.
func passageIDFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if errors.ValidatePassageID(base) == nil {
		return base
	}
	return uuid.NewString()
}

// buildPassage replays in and returns the finalized passage.
func (c *CLI) buildPassage(ctx context.Context, in passageInput) (*dag.Passage, *pipeline.Result, error) {
	job, err := in.job()
	if err != nil {
		return nil, nil, err
	}
	res, err := c.newRunner().Run(ctx, job)
	if err != nil {
		return nil, res, err
	}
	return res.Passage, res, nil
}
