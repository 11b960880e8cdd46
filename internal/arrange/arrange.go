// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arrange is an interactive terminal list for reordering and
// pruning the image collection before export. Each row shows the image's
// color tag so entries stay recognizable while they move.
package arrange

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/snap2pdf/internal/collection"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// ErrAborted is returned when the user quits without confirming.
var ErrAborted = errors.New("arrange aborted")

// Model is the bubbletea model for the arrange list.
type Model struct {
	Entries   []types.ImageEntry
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool
	Aborted   bool
}

// NewModel returns a model over a copy of entries.
func NewModel(entries []types.ImageEntry) Model {
	return Model{
		Entries: append([]types.ImageEntry(nil), entries...),
		Height:  15,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "shift+up", "K":
			m.moveEntry(-1)
		case "shift+down", "J":
			m.moveEntry(1)
		case "d", "delete", "backspace":
			m.remove()
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Entries) {
		return
	}
	m.Cursor = next
	m.scroll()
}

// moveEntry swaps the entry under the cursor with its neighbour and keeps
// the cursor on the moved entry.
func (m *Model) moveEntry(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Entries) {
		return
	}
	m.Entries[m.Cursor], m.Entries[next] = m.Entries[next], m.Entries[m.Cursor]
	m.Cursor = next
	m.scroll()
}

func (m *Model) remove() {
	if len(m.Entries) == 0 {
		return
	}
	m.Entries = append(m.Entries[:m.Cursor], m.Entries[m.Cursor+1:]...)
	if m.Cursor >= len(m.Entries) && m.Cursor > 0 {
		m.Cursor--
	}
	m.scroll()
}

func (m *Model) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Arrange Pages"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ navigate  shift+↑/↓ move  d remove  ⏎ export  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(warnStyle.Render("  no images left, press q to quit"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		style := normalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = selectedStyle
		}
		fmt.Fprintf(&b, "%s%s %s %s\n",
			cursor,
			swatch(e.Color),
			dimStyle.Render(fmt.Sprintf("%3d", i+1)),
			style.Render(filepath.Base(e.URI)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	return b.String()
}

// Run shows the list on out, reading keys from in, and returns the final
// order. Quitting without confirming returns ErrAborted.
func Run(ctx context.Context, entries []types.ImageEntry, in io.Reader, out io.Writer) ([]types.ImageEntry, error) {
	p := tea.NewProgram(NewModel(entries),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running arrange list: %w", err)
	}
	m, ok := final.(Model)
	if !ok || !m.Confirmed {
		return nil, ErrAborted
	}
	return m.Entries, nil
}

// Apply brings c in line with arranged: entries missing from arranged are
// removed, then the rest are reordered to match.
func Apply(c *collection.Collection, arranged []types.ImageEntry) error {
	current := c.Entries()
	have := make(map[types.ImageEntry]int, len(current))
	for _, e := range current {
		have[e]++
	}
	keep := make(map[types.ImageEntry]int, len(arranged))
	for _, e := range arranged {
		keep[e]++
		if keep[e] > have[e] {
			return fmt.Errorf("%w: unexpected image %s", collection.ErrNotPermutation, e.URI)
		}
	}
	for i := len(current) - 1; i >= 0; i-- {
		if keep[current[i]] > 0 {
			keep[current[i]]--
			continue
		}
		if _, err := c.Remove(i); err != nil {
			return err
		}
	}
	return c.Reorder(arranged)
}
