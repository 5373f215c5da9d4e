package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/shiftgraph/pkg/transition"
)

func TestSnapshots(t *testing.T) {
	c, err := transition.NewConfiguration([][]string{{"a", "b"}}, "p")
	if err != nil {
		t.Fatal(err)
	}
	states := snapshots(c, []transition.Action{
		transition.Shift, transition.NodeAction("A"), transition.Shift, transition.Shift, transition.Finish,
	})

	if len(states) != 5 {
		t.Fatalf("len(states) = %d, want 5 (start, SHIFT, NODE A, SHIFT, rejected SHIFT)", len(states))
	}
	if got := strings.Join(states[0].Buffer, " "); got != "a b" {
		t.Errorf("start buffer = %q", got)
	}
	if got := states[2]; got.Action != "NODE A" || got.Edges != 1 || len(got.Stack) != 2 {
		t.Errorf("after NODE A = %+v", got)
	}
	if last := states[4]; last.Action != "SHIFT" || !strings.Contains(last.Err, "buffer is empty") {
		t.Errorf("rejected state = %+v, want an error", last)
	}
}

func TestStepModel(t *testing.T) {
	states := []Snapshot{
		{Action: "start", Buffer: []string{"a"}},
		{Action: "SHIFT", Stack: []string{"a"}},
		{Action: "FINISH", Stack: []string{"a"}},
	}
	var m tea.Model = NewStepModel("p", states)

	keys := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{tea.KeyMsg{Type: tea.KeyRight}, 1},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyRight}, 2},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, 0},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, 2},
	}
	for i, k := range keys {
		m, _ = m.Update(k.msg)
		if got := m.(StepModel).Cursor; got != k.want {
			t.Errorf("key %d (%s): Cursor = %d, want %d", i, k.msg, got, k.want)
		}
	}

	if view := m.View(); !strings.Contains(view, "FINISH") || !strings.Contains(view, "Passage p") {
		t.Errorf("View() = %q", view)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q did not quit")
	}
}

func TestRenderSnapshotTruncates(t *testing.T) {
	s := Snapshot{Action: "start", Buffer: []string{"a", "b", "c", "d"}}
	got := renderSnapshot(s, 0, 3, 2)
	if !strings.Contains(got, "2 more") || strings.Contains(got, " c ") {
		t.Errorf("renderSnapshot() = %q", got)
	}
}
