package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// ReadTokens parses a token file from r into paragraphs. A file without any
// token is an INVALID_INPUT error.
func ReadTokens(r io.Reader) ([][]string, error) {
	var paragraphs [][]string
	var current []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	if len(paragraphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tokens")
	}
	return paragraphs, nil
}

// ImportTokens reads the token file at path.
func ImportTokens(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	paragraphs, err := ReadTokens(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return paragraphs, nil
}

// WriteTokens writes paragraphs in the format ReadTokens reads: one
// paragraph per line, separated by blank lines.
func WriteTokens(w io.Writer, paragraphs [][]string) error {
	bw := bufio.NewWriter(w)
	for i, p := range paragraphs {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(strings.Join(p, " "))
		bw.WriteString("\n")
	}
	return bw.Flush()
}
