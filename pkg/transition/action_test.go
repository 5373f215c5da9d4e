package transition

import (
	"testing"

	"github.com/matzehuels/shiftgraph/pkg/errors"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"SHIFT", Shift},
		{"reduce", Reduce},
		{"  FINISH  ", Finish},
		{"NODE A", NodeAction("A")},
		{"NODE A 1.2", Action{Type: ActionNode, Tag: "A", NodeID: "1.2"}},
		{"edge P", EdgeAction("P")},
		{"REMOTE D", RemoteAction("D")},
		{"ROOT H", RootAction("H")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if err != nil {
				t.Fatalf("ParseAction(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			again, err := ParseAction(got.String())
			if err != nil || again != got {
				t.Errorf("ParseAction(%q) = %+v, %v; want %+v", got.String(), again, err, got)
			}
		})
	}
}

func TestParseActionErrors(t *testing.T) {
	for _, in := range []string{"", "JUMP", "SHIFT X", "NODE", "EDGE A B", "NODE A 1.2 x"} {
		if _, err := ParseAction(in); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseAction(%q) error = %v, want %s", in, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestActionTypeString(t *testing.T) {
	if got := ActionWrap.String(); got != "WRAP" {
		t.Errorf("ActionWrap.String() = %q", got)
	}
	if got := ActionType(0).String(); got != "ActionType(0)" {
		t.Errorf("ActionType(0).String() = %q", got)
	}
	if ActionShift.Tagged() || !ActionRoot.Tagged() {
		t.Error("Tagged() mismatch")
	}
}
