package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// ReadActions parses an action script from r. ReadActions does not close r.
func ReadActions(r io.Reader) ([]transition.Action, error) {
	var actions []transition.Action
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := stripComment(scanner.Text())
		if text == "" {
			continue
		}
		a, err := transition.ParseAction(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		actions = append(actions, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read actions: %w", err)
	}
	return actions, nil
}

// ImportActions reads the action script at path.
func ImportActions(path string) ([]transition.Action, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	actions, err := ReadActions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}

// WriteActions writes actions to w, one per line.
func WriteActions(w io.Writer, actions []transition.Action) error {
	bw := bufio.NewWriter(w)
	for _, a := range actions {
		if _, err := fmt.Fprintln(bw, a); err != nil {
			return fmt.Errorf("write actions: %w", err)
		}
	}
	return bw.Flush()
}

// ExportActions writes actions to a file at path.
func ExportActions(path string, actions []transition.Action) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteActions(f, actions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
