package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// =============================================================================
// Snapshots
// =============================================================================

// Snapshot is the state of a configuration after one action.
type Snapshot struct {
	Action string
	Stack  []string
	Buffer []string
	Edges  int
	Err    string
}

// snapshots replays actions on c and records the state before the first
// action and after every applied one. Replay stops at FINISH or at the
// first rejected action, whose error is recorded on an extra snapshot.
func snapshots(c *transition.Configuration, actions []transition.Action) []Snapshot {
	states := []Snapshot{takeSnapshot(c, "start")}
	for _, a := range actions {
		more, err := c.Apply(a)
		if err != nil {
			s := takeSnapshot(c, a.String())
			s.Err = err.Error()
			return append(states, s)
		}
		states = append(states, takeSnapshot(c, a.String()))
		if !more {
			break
		}
	}
	return states
}

func takeSnapshot(c *transition.Configuration, action string) Snapshot {
	s := Snapshot{Action: action}
	for _, n := range c.Stack() {
		s.Stack = append(s.Stack, n.String())
	}
	for _, n := range c.Buffer() {
		s.Buffer = append(s.Buffer, n.String())
	}
	for _, n := range c.Nodes() {
		s.Edges += len(n.Outgoing)
	}
	return s
}

// =============================================================================
// StepModel - Interactive walk through a construction
// =============================================================================

// StepModel is the bubbletea model for stepping through configuration
// states.
type StepModel struct {
	PassageID string
	States    []Snapshot
	Cursor    int
	Height    int
}

// NewStepModel creates a step model positioned at the initial state.
func NewStepModel(passageID string, states []Snapshot) StepModel {
	return StepModel{PassageID: passageID, States: states, Height: 10}
}

func (m StepModel) Init() tea.Cmd {
	return nil
}

func (m StepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "up", "k", "backspace":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j", " ", "enter":
			if m.Cursor < len(m.States)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.States) - 1
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m StepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Passage " + m.PassageID))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")
	b.WriteString(renderSnapshot(m.States[m.Cursor], m.Cursor, len(m.States)-1, m.Height))
	return b.String()
}

// renderSnapshot draws one state: the action that led to it, a stack and
// buffer table with the stack top and buffer head on the first row, and the
// error of a rejected action. At most height rows are shown.
func renderSnapshot(s Snapshot, step, last, height int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s  %s\n",
		StyleDim.Render(fmt.Sprintf("[%d/%d]", step, last)),
		StyleHighlight.Render(s.Action),
		StyleDim.Render(fmt.Sprintf("%d edges", s.Edges)))

	rows := make([][]string, 0, max(len(s.Stack), len(s.Buffer)))
	for i := 0; i < max(len(s.Stack), len(s.Buffer)) && i < height; i++ {
		var top, head string
		if i < len(s.Stack) {
			top = s.Stack[len(s.Stack)-1-i]
		}
		if i < len(s.Buffer) {
			head = s.Buffer[i]
		}
		rows = append(rows, []string{top, head})
	}
	t := newTable([]string{"Stack", "Buffer"}, rows, func(row int) bool { return row == 0 })
	b.WriteString(t.Render())
	b.WriteString("\n")

	if hidden := max(len(s.Stack), len(s.Buffer)) - height; hidden > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  … %d more", hidden)))
		b.WriteString("\n")
	}
	if s.Err != "" {
		b.WriteString(styleIconError.Render(iconError + " " + s.Err))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// stepCommand creates the step command, an interactive viewer of the
// configuration after every action of a script.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		passageID string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "step <tokens> <actions>",
		Short: "Step through the configurations of an action script",
		Long: `Replay an action script and browse the stack and buffer after every action.
With --plain every state is printed instead of opening the interactive view.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := passageInput{tokens: args[0], actions: args[1], passageID: passageID}
			return c.runStep(cmd, in, plain)
		},
	}

	cmd.Flags().StringVar(&passageID, "id", "", "passage identifier (default: token file name)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print all states instead of the interactive view")

	return cmd
}

func (c *CLI) runStep(cmd *cobra.Command, in passageInput, plain bool) error {
	id, paragraphs, actions, err := in.load()
	if err != nil {
		return err
	}
	conf, err := transition.NewConfiguration(paragraphs, id)
	if err != nil {
		return err
	}
	states := snapshots(conf, actions)
	c.Logger.Debug("replayed script", "passage", id, "states", len(states))

	if plain {
		printSnapshots(cmd.OutOrStdout(), states)
		return nil
	}
	_, err = tea.NewProgram(NewStepModel(id, states), tea.WithContext(cmd.Context())).Run()
	return err
}

// printSnapshots writes every state in order.
func printSnapshots(w io.Writer, states []Snapshot) {
	for i, s := range states {
		height := max(len(s.Stack), len(s.Buffer))
		fmt.Fprint(w, renderSnapshot(s, i, len(states)-1, height))
	}
}
