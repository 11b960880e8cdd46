// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arrange

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snap2pdf/internal/collection"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

var (
	imgA = types.ImageEntry{URI: "/cache/a.jpg", Color: "#AA0000"}
	imgB = types.ImageEntry{URI: "/cache/b.jpg", Color: "#00BB00"}
	imgC = types.ImageEntry{URI: "/cache/c.jpg", Color: "#0000CC"}
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_CursorBounds(t *testing.T) {
	m := NewModel([]types.ImageEntry{imgA, imgB, imgC})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor)

	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.Cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Cursor)
}

func TestUpdate_MoveEntry(t *testing.T) {
	m := NewModel([]types.ImageEntry{imgA, imgB, imgC})

	m = press(t, m, runes("J"), runes("J"))
	assert.Equal(t, []types.ImageEntry{imgB, imgC, imgA}, m.Entries)
	assert.Equal(t, 2, m.Cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftUp})
	assert.Equal(t, []types.ImageEntry{imgB, imgA, imgC}, m.Entries)
	assert.Equal(t, 1, m.Cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftDown}, tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, []types.ImageEntry{imgB, imgC, imgA}, m.Entries)
}

func TestUpdate_Remove(t *testing.T) {
	m := NewModel([]types.ImageEntry{imgA, imgB})

	m = press(t, m, runes("j"), runes("d"))
	assert.Equal(t, []types.ImageEntry{imgA}, m.Entries)
	assert.Equal(t, 0, m.Cursor)

	m = press(t, m, runes("d"), runes("d"))
	assert.Empty(t, m.Entries)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Confirmed, "enter does nothing with an empty list")
	assert.Contains(t, m.View(), "no images left")
}

func TestUpdate_ConfirmAndAbort(t *testing.T) {
	m := NewModel([]types.ImageEntry{imgA})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, next.(Model).Confirmed)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(Model).Aborted)
	assert.False(t, next.(Model).Confirmed)
	require.NotNil(t, cmd)
}

func TestNewModel_CopiesEntries(t *testing.T) {
	in := []types.ImageEntry{imgA, imgB}
	m := NewModel(in)
	m = press(t, m, runes("J"))
	assert.Equal(t, []types.ImageEntry{imgA, imgB}, in)
}

func TestUpdate_Scrolls(t *testing.T) {
	entries := make([]types.ImageEntry, 10)
	for i := range entries {
		entries[i] = types.ImageEntry{URI: string(rune('a'+i)) + ".jpg", Color: "#000000"}
	}
	next, _ := NewModel(entries).Update(tea.WindowSizeMsg{Height: 8})
	m := next.(Model)
	assert.Equal(t, 5, m.Height)

	for range 7 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 7, m.Cursor)
	assert.Equal(t, 3, m.Offset)
	assert.NotContains(t, m.View(), "a.jpg")

	for range 7 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.Offset)
}

func TestView_ShowsEntries(t *testing.T) {
	m := NewModel([]types.ImageEntry{imgA, imgB})
	view := m.View()
	assert.Contains(t, view, "Arrange Pages")
	assert.Contains(t, view, "a.jpg")
	assert.Contains(t, view, "b.jpg")
	assert.Contains(t, view, "[1/2]")
}

func TestApply(t *testing.T) {
	t.Run("reorder and remove", func(t *testing.T) {
		c := collection.New(imgA, imgB, imgC)
		require.NoError(t, Apply(c, []types.ImageEntry{imgC, imgA}))
		assert.Equal(t, []types.ImageEntry{imgC, imgA}, c.Entries())
	})

	t.Run("duplicates", func(t *testing.T) {
		c := collection.New(imgA, imgB, imgA)
		require.NoError(t, Apply(c, []types.ImageEntry{imgA, imgB}))
		assert.Equal(t, []types.ImageEntry{imgA, imgB}, c.Entries())
	})

	t.Run("unknown entry", func(t *testing.T) {
		c := collection.New(imgA)
		err := Apply(c, []types.ImageEntry{imgB})
		assert.ErrorIs(t, err, collection.ErrNotPermutation)
		assert.Equal(t, []types.ImageEntry{imgA}, c.Entries(), "collection unchanged")
	})
}
