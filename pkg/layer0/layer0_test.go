package layer0

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

func TestIsPunctText(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{".", true},
		{"...", true},
		{"?!", true},
		{"«", true},
		{"", false},
		{"a", false},
		{"3", false},
		{"U.S.", false},
		{"'s", false},
	}
	for _, tt := range tests {
		if got := IsPunctText(tt.input); got != tt.want {
			t.Errorf("IsPunctText(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBuildTerminals(t *testing.T) {
	paragraphs := [][]string{{"John", "left", "."}, {"Bye", "!"}}
	p, err := Builder{}.BuildTerminals(paragraphs, "p1")
	if err != nil {
		t.Fatalf("BuildTerminals() error: %v", err)
	}
	if p.ID() != "p1" {
		t.Errorf("ID() = %s, want p1", p.ID())
	}

	terminals, err := Terminals(p)
	if err != nil {
		t.Fatalf("Terminals() error: %v", err)
	}
	if got := fmt.Sprint(terminals); got != "[0.1 0.2 0.3 0.4 0.5]" {
		t.Errorf("Terminals() = %s", got)
	}

	tests := []struct {
		idx       int
		text      string
		punct     bool
		paragraph int
	}{
		{0, "John", false, 1},
		{2, ".", true, 1},
		{3, "Bye", false, 2},
		{4, "!", true, 2},
	}
	for _, tt := range tests {
		n := terminals[tt.idx]
		if Text(n) != tt.text || IsPunct(n) != tt.punct || Paragraph(n) != tt.paragraph {
			t.Errorf("terminal %s = (%q, %v, %d), want (%q, %v, %d)",
				n, Text(n), IsPunct(n), Paragraph(n), tt.text, tt.punct, tt.paragraph)
		}
	}
	if v, _ := terminals[4].Attrib().Get(AttrParagraphPosition); v != 2 {
		t.Errorf("paragraph_position of 0.5 = %v, want 2", v)
	}

	got, err := Paragraphs(p)
	if err != nil {
		t.Fatalf("Paragraphs() error: %v", err)
	}
	if !reflect.DeepEqual(got, paragraphs) {
		t.Errorf("Paragraphs() = %v, want %v", got, paragraphs)
	}
}

func TestBuildTerminalsErrors(t *testing.T) {
	if _, err := (Builder{}).BuildTerminals([][]string{{"a", ""}}, "p"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty token error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := (Builder{}).BuildTerminals([][]string{{"a"}}, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty id error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestBuildTerminalsEmpty(t *testing.T) {
	p, err := Builder{}.BuildTerminals(nil, "empty")
	if err != nil {
		t.Fatalf("BuildTerminals(nil) error: %v", err)
	}
	if p.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", p.NodeCount())
	}
}
