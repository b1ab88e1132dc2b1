// Package progress shows a progress bar while a batch of branches is processed.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/branchwipe/internal/ui/styles"
)

// progressUpdate is sent to update the progress bar
type progressUpdate struct {
	current int
	message string
}

// Bar wraps a Bubbletea progress bar for non-interactive use.
type Bar struct {
	out       io.Writer
	theme     styles.Theme
	program   *tea.Program
	updateCh  chan progressUpdate
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	total     int
	current   int
	message   string
}

type barModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updateCh chan progressUpdate
}

func (m barModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m barModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updateCh
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) View() tea.View {
	return tea.NewView(m.render())
}

// render formats: [████████░░░░░░░░] 2/5 Deleting feature/x
func (m barModel) render() string {
	if m.message == "" {
		return ""
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	return fmt.Sprintf("%s %d/%d %s", m.progress.ViewAs(percent), m.current, m.total, m.message)
}

// NewBar creates a progress bar over total steps, drawn on out.
func NewBar(out io.Writer, theme styles.Theme, total int) *Bar {
	return &Bar{
		out:      out,
		theme:    theme,
		updateCh: make(chan progressUpdate, 10),
		done:     make(chan struct{}),
		total:    total,
	}
}

func (b *Bar) model() barModel {
	return barModel{
		progress: progress.New(
			progress.WithWidth(30),
			progress.WithoutPercentage(),
			progress.WithColors(b.theme.Primary, b.theme.Accent),
		),
		total:    b.total,
		current:  b.current,
		message:  b.message,
		updateCh: b.updateCh,
	}
}

// Start begins drawing the bar.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isRunning {
		return
	}

	b.program = tea.NewProgram(b.model(), tea.WithoutSignalHandler(), tea.WithInput(nil), tea.WithOutput(b.out))
	b.isRunning = true

	go func() {
		_, _ = b.program.Run()
		close(b.done)
	}()
}

// Set updates the completed step count and message.
func (b *Bar) Set(current int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = current
	b.message = message
	if !b.isRunning {
		return
	}

	// Drops the update if the channel is full; the next one catches up.
	select {
	case b.updateCh <- progressUpdate{current: current, message: message}:
	default:
	}
}

// Stop removes the bar and waits briefly for the program to exit.
func (b *Bar) Stop() {
	b.mu.Lock()
	if !b.isRunning {
		b.mu.Unlock()
		return
	}
	b.isRunning = false
	close(b.updateCh)
	b.mu.Unlock()

	b.program.Quit()

	select {
	case <-b.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(b.out, "\r\033[K")
}

// Total returns the number of steps.
func (b *Bar) Total() int {
	return b.total
}
