package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/store"
)

type menuChoice int

const (
	menuGenerate menuChoice = iota
	menuBrowse
	menuQuit
)

type menuItem struct {
	label string
	blurb string
}

var menuItems = []menuItem{
	{"Generate record", "compose one synthetic persona"},
	{"Browse saved records", "reuse personas kept in the encrypted vault"},
	{"Quit", "close the vault and exit"},
}

// vaultSummary counts what the vault holds for the menu footer.
type vaultSummary struct {
	records   int
	masked    int
	generated int
	batches   int
}

func summarize(es []store.Entry, ms []store.Manifest) vaultSummary {
	s := vaultSummary{records: len(es), batches: len(ms)}
	for _, e := range es {
		switch e.Kind {
		case store.KindMasked:
			s.masked++
		case store.KindGenerated:
			s.generated++
		}
	}
	return s
}

func (s vaultSummary) String() string {
	if s.records == 0 {
		return "vault is empty"
	}
	out := fmt.Sprintf("%d saved (%d generated, %d masked)", s.records, s.generated, s.masked)
	if s.batches > 0 {
		out += fmt.Sprintf(" in %d batches", s.batches)
	}
	return out
}

// menuModel is the main menu view.
type menuModel struct {
	cursor  int
	version string
	hint    identity.Gender
	vault   vaultSummary
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

func newMenuModel(version string, hint identity.Gender) menuModel {
	return menuModel{version: version, hint: hint}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}

		switch msg.String() {
		case "g":
			return m, func() tea.Msg { return cycleGenderMsg{} }
		case "n":
			m.cursor = int(menuGenerate)
			return m, m.selectItem()
		case "b":
			m.cursor = int(menuBrowse)
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuGenerate:
		return func() tea.Msg { return navigateMsg{view: viewGenerate} }
	case menuBrowse:
		return func() tea.Msg { return navigateMsg{view: viewList} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	var b strings.Builder

	title := zstyle.Title.Render("zmask")
	ver := zstyle.MutedText.Render(m.version)
	fmt.Fprintf(&b, "\n  %s %s\n", title, ver)
	b.WriteString("  " + zstyle.Subtitle.Render("synthetic personas for test fixtures") + "\n\n")

	for i, item := range menuItems {
		label := item.label
		if menuChoice(i) == menuBrowse && m.vault.records > 0 {
			label += zstyle.MutedText.Render(fmt.Sprintf(" (%d)", m.vault.records))
		}
		if m.cursor == i {
			b.WriteString(zstyle.Highlight.Render("  > "+label) + "\n")
		} else {
			b.WriteString("    " + label + "\n")
		}
	}

	b.WriteString("\n  " + zstyle.MutedText.Render(menuItems[m.cursor].blurb) + "\n")
	b.WriteString("  " + zstyle.MutedText.Render("gender: "+hintLabel(m.hint)+"  "+m.vault.String()) + "\n")

	b.WriteString("\n  " + zstyle.MutedText.Render("j/k navigate  enter select  n new  b browse  g gender  q quit") + "\n\n")
	return b.String()
}
