// Package tui implements the root Bubble Tea model for zmask.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/store"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewGenerate
	viewList
	viewDetail
	viewForget
)

// accent is the colour used for cursors and the logo.
var accent = zstyle.ZburnAccent

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	gen      *identity.Generator
	vault    *store.Vault
	firstRun bool

	// gender hint for generated records; empty means random
	hint identity.Gender

	active   viewID
	password passwordModel
	menu     menuModel
	generate generateModel
	list     listModel
	detail   detailModel
	forget   forgetModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, gen *identity.Generator, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		gen:      gen,
		firstRun: firstRun,
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version, ""),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case saveRecordMsg:
		return m.handleSave(msg.record)

	case cycleGenderMsg:
		return m.handleCycleGender()

	case viewRecordMsg:
		m.detail = newDetailModel(msg.entry)
		m.active = viewDetail
		return m, nil

	case forgetStartMsg:
		m.forget = newForgetModel(msg.entry)
		m.active = viewForget
		return m, nil

	case forgetRecordMsg:
		return m.handleForget(msg.entry)

	case forgetResultMsg:
		m.forget, _ = m.forget.Update(msg)
		return m, backToListAfter()
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu include the logo, render directly
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewForget:
		content = m.forget.View()
	}

	header := zstyle.RenderHeader("zmask", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate Record"
	case viewList:
		return "Saved Records"
	case viewDetail:
		return "Record Details"
	case viewForget:
		return "Forget"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy all"},
			{Key: "enter", Desc: "copy field"},
			{Key: "n", Desc: "new"},
			{Key: "g", Desc: "gender"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "forget"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "d", Desc: "forget"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewForget:
		return []zstyle.HelpPair{
			{Key: "y", Desc: "confirm"},
			{Key: "n", Desc: "cancel"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewForget:
		m.forget, cmd = m.forget.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password []byte) (tea.Model, tea.Cmd) {
	v, err := store.Open(m.dataDir, password)
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.vault = v
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version, m.hint)
		if m.vault != nil {
			es, err := m.vault.Entries()
			if err == nil {
				ms, _ := m.vault.Batches()
				mm.vault = summarize(es, ms)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		m.generate = newGenerateModel(m.gen.Compose(m.hint), m.hint)
		m.active = viewGenerate
		return m, tea.ClearScreen

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) loadList() (tea.Model, tea.Cmd) {
	es, err := m.vault.Entries()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	m.list = newListModel(es)
	m.active = viewList
	return m, nil
}

// handleCycleGender advances the hint. On the generate view the record is
// regenerated under the new hint.
func (m Model) handleCycleGender() (tea.Model, tea.Cmd) {
	m.hint = nextHint(m.hint)
	m.menu.hint = m.hint
	if m.active == viewGenerate {
		m.generate = newGenerateModel(m.gen.Compose(m.hint), m.hint)
	}
	return m, nil
}

var hintOrder = []identity.Gender{"", identity.Male, identity.Female, identity.Unspecified}

func nextHint(g identity.Gender) identity.Gender {
	for i, h := range hintOrder {
		if h == g {
			return hintOrder[(i+1)%len(hintOrder)]
		}
	}
	return ""
}

func (m Model) handleSave(rec identity.Record) (tea.Model, tea.Cmd) {
	if err := m.vault.Save(store.KindGenerated, rec); err != nil {
		m.generate.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.generate, _ = m.generate.Update(recordSavedMsg{})
	return m, clearFlashAfter()
}

func (m Model) handleForget(e store.Entry) (tea.Model, tea.Cmd) {
	err := m.vault.Delete(e.Record.ID)
	return m, func() tea.Msg { return forgetResultMsg{err: err} }
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.vault != nil {
		m.vault.Close()
	}
}
