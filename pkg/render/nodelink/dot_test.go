package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/dag"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// samplePassage builds "John left ." with a scene, a punctuation unit, a
// remote edge and a linkage.
func samplePassage(t *testing.T) *dag.Passage {
	t.Helper()
	p, err := layer0.Builder{}.BuildTerminals([][]string{{"John", "left", "."}}, "sample")
	if err != nil {
		t.Fatal(err)
	}
	l1, err := layer1.New(p, layer1.DefaultVocabulary())
	if err != nil {
		t.Fatal(err)
	}
	john, _ := p.Node("0.1")
	left, _ := p.Node("0.2")
	stop, _ := p.Node("0.3")

	scene, _ := l1.AddFNode(l1.Root(), "H")
	other, _ := l1.AddFNode(l1.Root(), "H")
	if _, err := scene.Add("A", john, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := other.Add("P", left, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l1.AddRemote(other, "A", john); err != nil {
		t.Fatal(err)
	}
	if _, err := l1.AddPunct(l1.Root(), stop); err != nil {
		t.Fatal(err)
	}
	if _, err := l1.AddLinkage(left, scene, other); err != nil {
		t.Fatal(err)
	}
	scene.Extra[transition.RemarksKey] = "1.7"
	return p
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(samplePassage(t), Options{})

	for _, want := range []string{
		"digraph G",
		`"0.1" [label="John"`,
		`"1.1" -> "1.2" [label="H"]`,
		`"1.2" -> "0.1" [label="A"]`,
		`{ rank=same; "0.1"; "0.2"; "0.3"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestToDOT_Styles(t *testing.T) {
	dot := ToDOT(samplePassage(t), Options{})

	if !strings.Contains(dot, `"1.3" -> "0.1" [label="A", style=dashed]`) {
		t.Error("ToDOT() remote edge missing dashed style")
	}
	if !strings.Contains(dot, "shape=diamond") {
		t.Error("ToDOT() linkage missing diamond shape")
	}
	if !strings.Contains(dot, `"1.5" -> "0.2" [label="LR", style=dotted`) {
		t.Error("ToDOT() linkage edge missing dotted style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() punctuation unit missing lightgrey fill")
	}
}

func TestFmtLabel(t *testing.T) {
	p := samplePassage(t)
	john, _ := p.Node("0.1")
	scene, _ := p.Node("1.2")

	if got := fmtLabel(john, false); got != "John" {
		t.Errorf("fmtLabel(terminal) = %q, want John", got)
	}
	if got := fmtLabel(scene, false); got != "1.2" {
		t.Errorf("fmtLabel(unit) = %q, want 1.2", got)
	}

	detailed := fmtLabel(john, true)
	for _, want := range []string{"0.1 Word", "text: John", "paragraph: 1"} {
		if !strings.Contains(detailed, want) {
			t.Errorf("fmtLabel(terminal, detailed) = %q, missing %q", detailed, want)
		}
	}
	if got := fmtLabel(scene, true); !strings.Contains(got, "remarks: 1.7") {
		t.Errorf("fmtLabel(unit, detailed) = %q, missing remarks", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed an SVG without viewBox")
	}
}
