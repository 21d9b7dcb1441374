package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zmask/internal/store"
)

// listModel displays saved records in a scrollable list.
type listModel struct {
	entries []store.Entry
	cursor  int
	flash   string
}

// viewRecordMsg requests viewing a saved record.
type viewRecordMsg struct {
	entry store.Entry
}

// forgetStartMsg asks for confirmation before deleting a record.
type forgetStartMsg struct {
	entry store.Entry
}

func newListModel(es []store.Entry) listModel {
	return listModel{entries: es}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.entries) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil
	}

	e := m.entries[m.cursor]

	if key.Matches(msg, zstyle.KeyEnter) {
		return m, func() tea.Msg { return viewRecordMsg{entry: e} }
	}

	if msg.String() == "d" {
		return m, func() tea.Msg { return forgetStartMsg{entry: e} }
	}

	return m, nil
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n"

	if len(m.entries) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved records") + "\n"
		s += "\n"
		// reserved flash line
		if m.flash != "" {
			s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
		} else {
			s += "\n"
		}
		return s
	}

	for i, e := range m.entries {
		name := truncate(e.Record.FirstName+" "+e.Record.LastName, 20)
		email := truncate(e.Record.Email, 30)
		line := fmt.Sprintf("%-20s %-30s %s", name, email, zstyle.MutedText.Render(string(e.Kind)))

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
