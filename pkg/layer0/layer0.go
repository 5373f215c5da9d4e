// Package layer0 implements the terminal layer of a passage: one leaf node
// per token, in paragraph and token order.
//
// The package also provides [Builder], the text-to-graph builder that turns
// tokenized paragraphs into a fresh passage holding only terminals.
package layer0

import (
	"strconv"
	"unicode"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/errors"
)

// LayerID is the identifier of the terminal layer.
const LayerID = "0"

// Node tags of terminals.
const (
	TagWord        = "Word"
	TagPunctuation = "Punctuation"
)

// Attribute keys stored on every terminal.
const (
	AttrText              = "text"
	AttrParagraph         = "paragraph"
	AttrParagraphPosition = "paragraph_position"
)

// IsPunctText reports whether a token is punctuation: it contains no letter
// and no digit. The empty string is not punctuation.
func IsPunctText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether n is a punctuation terminal.
func IsPunct(n *dag.Node) bool {
	return n.LayerID() == LayerID && n.Tag() == TagPunctuation
}

// Text returns the token text of a terminal, or "" for other nodes.
func Text(n *dag.Node) string {
	v, _ := n.Attrib().Get(AttrText)
	s, _ := v.(string)
	return s
}

// Paragraph returns the 1-based paragraph number of a terminal, or 0 when
// the terminal carries none.
func Paragraph(n *dag.Node) int {
	v, _ := n.Attrib().Get(AttrParagraph)
	i, _ := v.(int)
	return i
}

// Terminals returns the terminals of p in token order.
func Terminals(p *dag.Passage) ([]*dag.Node, error) {
	l, err := p.Layer(LayerID)
	if err != nil {
		return nil, err
	}
	return l.All(), nil
}

// Paragraphs regroups the terminals of p into tokenized paragraphs.
func Paragraphs(p *dag.Passage) ([][]string, error) {
	terminals, err := Terminals(p)
	if err != nil {
		return nil, err
	}
	var paragraphs [][]string
	current := -1
	for _, t := range terminals {
		if par := Paragraph(t); par != current || paragraphs == nil {
			paragraphs = append(paragraphs, nil)
			current = par
		}
		last := len(paragraphs) - 1
		paragraphs[last] = append(paragraphs[last], Text(t))
	}
	return paragraphs, nil
}

// Builder builds passages holding only the terminal layer.
type Builder struct{}

// BuildTerminals creates a passage with one terminal per token. Terminals
// are numbered 0.1, 0.2, ... across all paragraphs; punctuation tokens are
// tagged [TagPunctuation], all others [TagWord]. Empty paragraphs produce no
// terminals but still advance the paragraph number.
func (Builder) BuildTerminals(paragraphs [][]string, id string) (*dag.Passage, error) {
	if err := errors.ValidatePassageID(id); err != nil {
		return nil, err
	}
	p := dag.NewPassage(id, nil)
	if _, err := p.NewLayer(LayerID, nil); err != nil {
		return nil, err
	}

	next := 1
	for i, paragraph := range paragraphs {
		for j, token := range paragraph {
			if token == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "paragraph %d: token %d is empty", i+1, j+1)
			}
			tag := TagWord
			if IsPunctText(token) {
				tag = TagPunctuation
			}
			attrib := dag.Attributes{
				AttrText:              token,
				AttrParagraph:         i + 1,
				AttrParagraphPosition: j + 1,
			}
			if _, err := p.NewNode(LayerID, strconv.Itoa(next), tag, attrib); err != nil {
				return nil, err
			}
			next++
		}
	}
	return p, nil
}
