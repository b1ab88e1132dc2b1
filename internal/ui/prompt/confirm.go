package prompt

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

// render keeps the answer on screen once given, so the terminal records
// what was approved. A cancelled prompt is cleared.
func (m confirmModel) render() string {
	switch {
	case m.cancelled:
		return ""
	case m.done && m.confirmed:
		return fmt.Sprintf("%s [y/N] yes\n", m.prompt)
	case m.done:
		return fmt.Sprintf("%s [y/N] no\n", m.prompt)
	default:
		return fmt.Sprintf("%s [y/N] ", m.prompt)
	}
}

// Confirm shows a yes/no prompt on out, reads the answer from stdin and
// returns the user's choice. Enter alone answers "no".
func Confirm(out io.Writer, prompt string) (ConfirmResult, error) {
	return confirm(os.Stdin, out, prompt)
}

func confirm(in io.Reader, out io.Writer, prompt string) (ConfirmResult, error) {
	p := tea.NewProgram(confirmModel{prompt: prompt}, tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	m := finalModel.(confirmModel)
	return ConfirmResult{
		Confirmed: m.confirmed,
		Cancelled: m.cancelled,
	}, nil
}
