package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zmask/internal/identity"
)

// recordField is a labeled field for display and selection.
type recordField struct {
	label string
	value string
}

// sectionBreaks marks the field indexes that start a new visual group:
// government ids, postal address, contact.
var sectionBreaks = map[int]bool{4: true, 6: true, 10: true}

// generateModel displays a generated record with actions.
type generateModel struct {
	record  identity.Record
	hint    identity.Gender
	fields  []recordField
	cursor  int
	flash   string
	flashAt time.Time
}

// saveRecordMsg requests saving the current record.
type saveRecordMsg struct {
	record identity.Record
}

// recordSavedMsg confirms the record was saved.
type recordSavedMsg struct{}

// cycleGenderMsg advances the gender hint and regenerates.
type cycleGenderMsg struct{}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel(rec identity.Record, hint identity.Gender) generateModel {
	return generateModel{
		record: rec,
		hint:   hint,
		fields: recordFields(rec),
	}
}

func recordFields(rec identity.Record) []recordField {
	dob := ""
	if !rec.BirthDate.IsZero() {
		dob = rec.BirthDate.Format(identity.DateLayout)
	}
	return []recordField{
		{"id", rec.ID},
		{"name", strings.TrimSpace(rec.FirstName + " " + rec.LastName)},
		{"gender", string(rec.Gender)},
		{"dob", dob},
		{"ssn", rec.SSN},
		{"card", rec.CreditCard},
		{"street", rec.Address},
		{"city", rec.City},
		{"state", rec.State},
		{"zip", rec.PostalCode},
		{"email", rec.Email},
		{"phone", rec.Phone},
	}
}

func fieldsText(fields []recordField) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func hintLabel(g identity.Gender) string {
	if g == "" {
		return "random"
	}
	return strings.ToLower(string(g))
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case recordSavedMsg:
		return m.setFlash("saved"), clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if err := copyToClipboard(m.fields[m.cursor].value); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()
	}

	switch msg.String() {
	case "s":
		rec := m.record
		return m, func() tea.Msg { return saveRecordMsg{record: rec} }

	case "c":
		if err := copyToClipboard(fieldsText(m.fields)); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied all!"), clearFlashAfter()

	case "n":
		return m, func() tea.Msg { return navigateMsg{view: viewGenerate} }

	case "g":
		return m, func() tea.Msg { return cycleGenderMsg{} }
	}

	return m, nil
}

func (m generateModel) setFlash(msg string) generateModel {
	m.flash = msg
	m.flashAt = time.Now()
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m generateModel) View() string {
	title := zstyle.Title.Render("generated record")
	gender := zstyle.MutedText.Render("gender: " + hintLabel(m.hint))
	s := fmt.Sprintf("\n  %s  %s\n\n", title, gender)

	for i, f := range m.fields {
		if sectionBreaks[i] {
			s += "\n"
		}
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == m.cursor {
			s += zstyle.ActiveBorder.Render(fmt.Sprintf("  > %s %s", label, f.value)) + "\n"
		} else {
			s += fmt.Sprintf("    %s %s\n", label, f.value)
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
