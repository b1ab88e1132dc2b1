package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/branchwipe/internal/branch"
	"github.com/raphi011/branchwipe/internal/ui/styles"
)

// collectionReplacedMsg and entryRemovedMsg carry store notifications.
type collectionReplacedMsg struct {
	entries []branch.Entry
}

type entryRemovedMsg struct {
	position int
}

// opDoneMsg ends a store call started by the model.
type opDoneMsg struct {
	op   string // "refresh" or "delete"
	name string
	err  error
}

// notifier forwards store notifications into the program as messages.
type notifier struct {
	send func(tea.Msg)
}

func (n *notifier) CollectionReplaced(entries []branch.Entry) {
	n.send(collectionReplacedMsg{entries: entries})
}

func (n *notifier) EntryRemoved(position int) {
	n.send(entryRemovedMsg{position: position})
}

// row is a visible line: a store position plus fuzzy-matched byte offsets.
type row struct {
	position int
	matched  []int
}

type branchModel struct {
	ctx     context.Context
	store   *branch.Store
	styles  styles.Styles
	keys    keyMap
	help    help.Model
	spin    spinner.Model
	confirm bool
	copy    func(string) error

	names     []string // mirror of the store's collection
	visible   []row
	cursor    int
	filter    textinput.Model
	filtering bool

	busy        bool
	pending     int // position awaiting y/N, -1 when none
	pendingName string
	status      string
	statusErr   bool
	loaded      bool
	height      int
}

func newBranchModel(ctx context.Context, store *branch.Store, opts Options) *branchModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter branches"
	ti.CharLimit = 100
	ti.SetWidth(40)

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Muted

	return &branchModel{
		ctx:     ctx,
		spin:    sp,
		store:   store,
		styles:  opts.Styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		confirm: opts.ConfirmDelete,
		copy:    copyFn,
		filter:  ti,
		pending: -1,
		height:  20,
	}
}

func (m *branchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.spin.Tick)
}

func (m *branchModel) refresh() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	m.setStatus("Loading branches…", false)
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		_, err := store.Refresh(ctx)
		return opDoneMsg{op: "refresh", err: err}
	}
}

func (m *branchModel) deleteAt(position int) tea.Cmd {
	if m.busy || position < 0 || position >= len(m.names) {
		return nil
	}
	m.busy = true
	name := m.names[position]
	m.setStatus(fmt.Sprintf("Deleting %s…", name), false)
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return opDoneMsg{op: "delete", name: name, err: store.DeleteAt(ctx, position)}
	}
}

func (m *branchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectionReplacedMsg:
		m.names = make([]string, len(msg.entries))
		for i, e := range msg.entries {
			m.names[i] = e.Name
		}
		m.loaded = true
		m.applyFilter()
		return m, nil

	case entryRemovedMsg:
		if msg.position >= 0 && msg.position < len(m.names) {
			m.names = slices.Delete(m.names, msg.position, msg.position+1)
		}
		m.applyFilter()
		return m, nil

	case opDoneMsg:
		m.busy = false
		m.handleDone(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-6)
		return m, nil

	case tea.KeyPressMsg:
		if m.pending >= 0 {
			return m, m.handleConfirmKey(msg)
		}
		if m.filtering {
			return m, m.handleFilterKey(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *branchModel) handleDone(msg opDoneMsg) {
	if msg.err == nil {
		switch msg.op {
		case "delete":
			m.setStatus(fmt.Sprintf("Deleted %s", msg.name), false)
		default:
			m.setStatus("", false)
		}
		return
	}

	var delErr *branch.DeleteError
	switch {
	case errors.As(msg.err, &delErr) && delErr.Stderr != "":
		m.setStatus(delErr.Stderr, true)
	default:
		m.setStatus(msg.err.Error(), true)
	}
}

func (m *branchModel) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	position := m.pending
	m.pending = -1
	m.pendingName = ""
	if msg.String() == "y" || msg.String() == "Y" {
		return m.deleteAt(position)
	}
	m.setStatus("Delete cancelled", false)
	return nil
}

func (m *branchModel) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	case "up", "ctrl+p":
		m.moveCursor(-1)
		return nil
	case "down", "ctrl+n":
		m.moveCursor(1)
		return nil
	case "ctrl+c":
		return tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *branchModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(m.visible)-1)
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.applyFilter()
	case key.Matches(msg, m.keys.Copy):
		if position, ok := m.selected(); ok {
			name := m.names[position]
			if err := m.copy(name); err != nil {
				m.setStatus(fmt.Sprintf("copy failed: %v", err), true)
			} else {
				m.setStatus(fmt.Sprintf("Copied %s", name), false)
			}
		}
	case key.Matches(msg, m.keys.Delete):
		position, ok := m.selected()
		if !ok || m.busy {
			return nil
		}
		if m.confirm {
			m.pending = position
			m.pendingName = m.names[position]
			return nil
		}
		return m.deleteAt(position)
	}
	return nil
}

// selected returns the store position under the cursor.
func (m *branchModel) selected() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return 0, false
	}
	return m.visible[m.cursor].position, true
}

func (m *branchModel) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), max(0, len(m.visible)-1))
}

// applyFilter rebuilds the visible rows from names and the filter query.
func (m *branchModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = make([]row, len(m.names))
		for i := range m.names {
			m.visible[i] = row{position: i}
		}
	} else {
		matches := fuzzy.Find(query, m.names)
		m.visible = make([]row, len(matches))
		for i, match := range matches {
			m.visible[i] = row{position: match.Index, matched: match.MatchedIndexes}
		}
	}
	m.cursor = min(m.cursor, max(0, len(m.visible)-1))
}

func (m *branchModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *branchModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *branchModel) render() string {
	var sb strings.Builder
	s := m.styles

	title := fmt.Sprintf("Branches in %s", m.store.Repository().Dir)
	sb.WriteString(s.Title.Render(title))
	sb.WriteString(s.Muted.Render(fmt.Sprintf("  %d", len(m.names))))
	sb.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		sb.WriteString(m.filter.View())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch {
	case !m.loaded:
		sb.WriteString(s.Muted.Render("  Loading branches…"))
		sb.WriteString("\n")
	case len(m.visible) == 0 && len(m.names) == 0:
		sb.WriteString(s.Muted.Render("  No branches"))
		sb.WriteString("\n")
	case len(m.visible) == 0:
		sb.WriteString(s.Muted.Render("  No matches found"))
		sb.WriteString("\n")
	default:
		start, end := m.window()
		for i := start; i < end; i++ {
			sb.WriteString(m.renderRow(i))
			sb.WriteString("\n")
		}
		if len(m.visible) > end-start {
			sb.WriteString(s.Muted.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.visible))))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	switch {
	case m.pending >= 0:
		sb.WriteString(s.Error.Render(fmt.Sprintf("Force delete %s? [y/N]", m.pendingName)))
	case m.busy:
		sb.WriteString(m.spin.View() + " " + s.Muted.Render(m.status))
	case m.status != "" && m.statusErr:
		sb.WriteString(s.Error.Render(m.status))
	case m.status != "":
		sb.WriteString(s.Success.Render(m.status))
	default:
		sb.WriteString(m.help.View(m.keys))
	}
	return sb.String()
}

// window returns the visible slice of rows, keeping the cursor centred.
func (m *branchModel) window() (int, int) {
	n := len(m.visible)
	if n <= m.height {
		return 0, n
	}
	start := max(0, m.cursor-m.height/2)
	end := start + m.height
	if end > n {
		end = n
		start = end - m.height
	}
	return start, end
}

func (m *branchModel) renderRow(i int) string {
	r := m.visible[i]
	name := m.names[r.position]
	s := m.styles

	base := s.Normal
	prefix := "  "
	if i == m.cursor {
		base = s.Selected
		prefix = s.Cursor.Render("> ")
	}

	if len(r.matched) == 0 {
		return prefix + base.Render(name)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	for off, ch := range name {
		if slices.Contains(r.matched, off) {
			sb.WriteString(s.Match.Render(string(ch)))
		} else {
			sb.WriteString(base.Render(string(ch)))
		}
	}
	return sb.String()
}
