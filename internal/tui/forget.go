package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zmask/internal/store"
)

type forgetPhase int

const (
	forgetConfirm forgetPhase = iota
	forgetDone
)

// forgetRecordMsg requests deletion of a confirmed record.
type forgetRecordMsg struct {
	entry store.Entry
}

// forgetResultMsg carries the outcome of a deletion.
type forgetResultMsg struct {
	err error
}

// forgetModel manages the delete confirmation and its result.
type forgetModel struct {
	entry store.Entry
	phase forgetPhase
	err   error
}

func newForgetModel(e store.Entry) forgetModel {
	return forgetModel{entry: e, phase: forgetConfirm}
}

func (m forgetModel) Init() tea.Cmd {
	return nil
}

func (m forgetModel) Update(msg tea.Msg) (forgetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case forgetResultMsg:
		m.err = msg.err
		m.phase = forgetDone
		return m, nil
	}

	return m, nil
}

func (m forgetModel) handleKey(msg tea.KeyMsg) (forgetModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if m.phase == forgetDone {
		// any key returns to list
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if msg.String() == "y" {
		e := m.entry
		return m, func() tea.Msg { return forgetRecordMsg{entry: e} }
	}

	// any other key cancels
	return m, func() tea.Msg { return navigateMsg{view: viewList} }
}

func (m forgetModel) View() string {
	rec := m.entry.Record
	name := rec.FirstName + " " + rec.LastName

	if m.phase == forgetDone {
		s := "\n"
		if m.err != nil {
			s += "  " + zstyle.StatusErr.Render("forget failed: "+m.err.Error()) + "\n"
		} else {
			s += "  " + zstyle.StatusOK.Render("forgot "+name) + "\n"
		}
		s += "\n  " + zstyle.MutedText.Render("press any key to continue") + "\n"
		return s
	}

	s := "\n  " + zstyle.Subtitle.Render("forget "+name+"?") + "\n\n"
	s += "  " + zstyle.MutedText.Render("record "+rec.ID) + "\n"
	if m.entry.BatchID != "" {
		s += "  " + zstyle.MutedText.Render("it will also be removed from its saved batch") + "\n"
	}
	s += "\n  " + zstyle.StatusErr.Render("this cannot be undone.") + " (y/n)\n"
	return s
}

// backToListAfter returns to the list after a short pause.
func backToListAfter() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return navigateMsg{view: viewList}
	})
}
