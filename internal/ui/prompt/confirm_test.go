package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func keyPress(key string) tea.KeyPressMsg {
	if len(key) == 1 {
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0])}
	}
}

func TestConfirmModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		confirmed bool
		done      bool
		cancelled bool
		wantCmd   bool
	}{
		{"y confirms", "y", true, true, false, true},
		{"Y confirms", "Y", true, true, false, true},
		{"n declines", "n", false, true, false, true},
		{"N declines", "N", false, true, false, true},
		{"enter defaults no", "enter", false, true, false, true},
		{"ctrl+c cancels", "ctrl+c", false, true, true, true},
		{"esc cancels", "esc", false, true, true, true},
		{"q cancels", "q", false, true, true, true},
		{"unhandled is no-op", "x", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := confirmModel{prompt: "Continue?"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(confirmModel)

			if um.confirmed != tt.confirmed {
				t.Errorf("confirmed = %v, want %v", um.confirmed, tt.confirmed)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.wantCmd)
			}
		})
	}
}

func TestConfirmModel_Render(t *testing.T) {
	t.Parallel()

	const prompt = "Force delete tmp, wip?"
	tests := []struct {
		name  string
		model confirmModel
		want  string
	}{
		{"waiting", confirmModel{prompt: prompt}, prompt + " [y/N] "},
		{"confirmed keeps answer", confirmModel{prompt: prompt, done: true, confirmed: true}, prompt + " [y/N] yes\n"},
		{"declined keeps answer", confirmModel{prompt: prompt, done: true}, prompt + " [y/N] no\n"},
		{"cancelled clears", confirmModel{prompt: prompt, done: true, cancelled: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.model.render(); got != tt.want {
				t.Errorf("render() = %q, want %q", got, tt.want)
			}
			if got := fmt.Sprint(tt.model.View().Content); got != tt.want {
				t.Errorf("View().Content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirm_ReadsInputWritesOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   ConfirmResult
		answer string
	}{
		{"yes", "y", ConfirmResult{Confirmed: true}, "yes"},
		{"no", "n", ConfirmResult{}, "no"},
		{"quit cancels", "q", ConfirmResult{Cancelled: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			type outcome struct {
				res ConfirmResult
				err error
			}
			done := make(chan outcome, 1)
			go func() {
				res, err := confirm(strings.NewReader(tt.input), &out, "Force delete tmp?")
				done <- outcome{res, err}
			}()

			var got outcome
			select {
			case got = <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("confirm did not return")
			}
			if got.err != nil {
				t.Fatalf("confirm() error = %v", got.err)
			}
			if got.res != tt.want {
				t.Errorf("confirm() = %+v, want %+v", got.res, tt.want)
			}
			if tt.answer != "" {
				text := ansi.Strip(out.String())
				if !strings.Contains(text, "Force delete tmp?") || !strings.Contains(text, tt.answer) {
					t.Errorf("output = %q, want prompt and answer %q", text, tt.answer)
				}
			}
		})
	}
}

func TestConfirmModel_Init(t *testing.T) {
	t.Parallel()

	m := confirmModel{prompt: "test"}
	cmd := m.Init()
	if cmd != nil {
		t.Error("Init() should return nil cmd")
	}
}
