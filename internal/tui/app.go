// Package tui provides the interactive Bubble Tea checklist for julmat.
package tui

import (
	"strings"
	"time"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/checklist"
	"github.com/theirongolddev/julmat/internal/config"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/store"
	"github.com/theirongolddev/julmat/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Options configure a new App.
type Options struct {
	Source     string // data.json path or URL
	Catalog    catalog.Options
	Store      *store.Store
	Sorter     *checklist.Sorter
	Filter     checklist.Filter
	ReadOnly   bool
	ExportPath string
	NeedSetup  bool
}

type rowKind int

const (
	rowHeader rowKind = iota
	rowItem
)

// listRow is one line of the flattened, scrollable list.
type listRow struct {
	kind    rowKind
	section int
	item    checklist.Row
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	cat     *catalog.Catalog
	loaded  bool
	loadErr error

	// Derived from cat + store status + filter; rebuilt by recompute.
	filter    checklist.Filter
	view      checklist.View
	rows      []listRow
	collapsed map[string]bool

	// UI state
	width      int
	height     int
	cursor     int
	offset     int
	showHelp   bool
	searching  bool
	search     textinput.Model
	confirming bool // reset confirmation pending

	message    string
	messageErr bool
	messageID  int

	spinner spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140

	headerHeight = 8 // title + KPI cards + filter line
	footerHeight = 1

	messageTTL = 2 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	if opts.Sorter == nil {
		opts.Sorter = checklist.NewSorter(checklist.DefaultLocale)
	}

	a := App{
		opts:      opts,
		filter:    opts.Filter,
		collapsed: make(map[string]bool),
		search:    newSearchInput(),
		spinner:   sp,
	}

	if opts.NeedSetup {
		cfg, _ := config.Load()
		a.setupVals = newSetupValues(cfg)
		a.setupForm = NewSetupForm(a.setupVals)
	}

	return a
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "sök namn, kategori, familj, anteckning"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 40
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return tea.Batch(
		loadCmd(a.opts.Source, a.opts.Catalog, a.opts.Store),
		a.spinner.Tick,
	)
}

// recompute rebuilds the view and the flattened row list. Called explicitly
// after every load, mutation and filter change.
func (a *App) recompute() {
	if a.cat == nil {
		return
	}

	status := a.opts.Store.Status()
	a.view = checklist.BuildView(a.cat, status, a.filter, a.opts.Sorter)

	rows := make([]listRow, 0, a.view.Visible+len(a.view.Sections))
	for i, sec := range a.view.Sections {
		rows = append(rows, listRow{kind: rowHeader, section: i})
		if a.collapsed[sec.Family] {
			continue
		}
		for _, r := range sec.Rows {
			rows = append(rows, listRow{kind: rowItem, section: i, item: r})
		}
	}
	a.rows = rows

	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.ensureVisible()
}

func (a App) listHeight() int {
	h := a.height - headerHeight - footerHeight
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) ensureVisible() {
	h := a.listHeight()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+h {
		a.offset = a.cursor - h + 1
	}
	if a.offset < 0 {
		a.offset = 0
	}
}

// selected returns the row under the cursor.
func (a App) selected() (listRow, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return listRow{}, false
	}
	return a.rows[a.cursor], true
}

// familyOptions is the family filter cycle: all, then each family in order.
func (a App) familyOptions() []string {
	opts := []string{checklist.AllFamilies}
	if a.cat != nil {
		opts = append(opts, a.cat.Families...)
	}
	return opts
}

func (a *App) cycleFamily() {
	opts := a.familyOptions()
	cur := a.filter.Family
	if cur == "" {
		cur = checklist.AllFamilies
	}
	next := 0
	for i, f := range opts {
		if f == cur {
			next = (i + 1) % len(opts)
			break
		}
	}
	a.filter.Family = opts[next]
	a.filter.Category = ""
	a.cursor, a.offset = 0, 0
}

// cycleCategory steps through "" (all) and the categories of the selected
// family.
func (a *App) cycleCategory() {
	if a.cat == nil {
		return
	}
	opts := append([]string{""}, checklist.Categories(a.cat.Items, a.filter.Family, a.opts.Sorter)...)
	next := 0
	for i, c := range opts {
		if c == a.filter.Category {
			next = (i + 1) % len(opts)
			break
		}
	}
	a.filter.Category = opts[next]
	a.cursor, a.offset = 0, 0
}

func (a *App) cycleStatus() {
	cur := a.filter.Status
	if cur == "" {
		cur = checklist.StatusAll
	}
	next := 0
	for i, f := range checklist.StatusFilters {
		if f == cur {
			next = (i + 1) % len(checklist.StatusFilters)
			break
		}
	}
	a.filter.Status = checklist.StatusFilters[next]
	a.cursor, a.offset = 0, 0
}

func (a *App) setAllCollapsed(v bool) {
	if a.cat == nil {
		return
	}
	for _, f := range a.cat.Families {
		a.collapsed[f] = v
	}
}

// flash shows a transient status-line message.
func (a *App) flash(msg string, isErr bool) tea.Cmd {
	a.message = msg
	a.messageErr = isErr
	a.messageID++
	return clearMessageCmd(a.messageID)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.ensureVisible()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if !a.loaded {
			if msg.String() == "q" {
				return a, tea.Quit
			}
			return a, nil
		}
		return a.updateKey(msg)

	case loadedMsg:
		a.cat = msg.cat
		a.loaded = true
		a.recompute()
		return a, nil

	case loadFailedMsg:
		a.loadErr = msg.err
		return a, nil

	case toggledMsg:
		if msg.err != nil {
			return a, a.flash("Kunde inte spara: "+msg.err.Error(), true)
		}
		a.recompute()
		return a, nil

	case importedMsg:
		if msg.err != nil {
			return a, a.flash("Import misslyckades. Kontrollera att JSON kommer från exporten.", true)
		}
		a.recompute()
		return a, a.flash(msg.text, false)

	case exportedMsg:
		if msg.err != nil {
			return a, a.flash("Export misslyckades: "+msg.err.Error(), true)
		}
		return a, a.flash(msg.text, false)

	case resetMsg:
		if msg.err != nil {
			return a, a.flash("Kunde inte nollställa: "+msg.err.Error(), true)
		}
		a.recompute()
		return a, a.flash("Nollställt!", false)

	case clearMessageMsg:
		if msg.id == a.messageID {
			a.message = ""
			a.messageErr = false
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded && a.loadErr == nil {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.searching {
		return a.updateSearch(msg)
	}

	if a.confirming {
		a.confirming = false
		if key == "y" || key == "j" {
			return a, resetCmd(a.opts.Store)
		}
		return a, a.flash("Avbrutet.", false)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.rows) - 1
		if a.cursor < 0 {
			a.cursor = 0
		}
	case "ctrl+d", "pgdown":
		a.cursor += a.listHeight() / 2
		if a.cursor > len(a.rows)-1 {
			a.cursor = len(a.rows) - 1
		}
	case "ctrl+u", "pgup":
		a.cursor -= a.listHeight() / 2
		if a.cursor < 0 {
			a.cursor = 0
		}

	case "enter", " ":
		if row, ok := a.selected(); ok && row.kind == rowHeader {
			fam := a.view.Sections[row.section].Family
			a.collapsed[fam] = !a.collapsed[fam]
			a.recompute()
		}
	case "E":
		a.setAllCollapsed(false)
		a.recompute()
	case "C":
		a.setAllCollapsed(true)
		a.recompute()

	case "/":
		a.searching = true
		a.search.SetValue(a.filter.Query)
		a.search.CursorEnd()
		a.search.Focus()
		return a, textinput.Blink
	case "f":
		a.cycleFamily()
		a.recompute()
	case "a":
		a.cycleCategory()
		a.recompute()
	case "s":
		a.cycleStatus()
		a.recompute()
	case "esc":
		a.filter = checklist.Filter{}
		a.recompute()

	case "b", "c":
		if a.opts.ReadOnly {
			return a, a.flash("Skrivskyddad vy.", true)
		}
		row, ok := a.selected()
		if !ok || row.kind != rowItem {
			return a, nil
		}
		field := model.FieldBought
		if key == "c" {
			field = model.FieldCooked
		}
		return a, toggleCmd(a.opts.Store, row.item.ID, field)

	case "y":
		return a, copyCmd(a.opts.Store)
	case "e":
		return a, exportFileCmd(a.opts.Store, a.opts.ExportPath)
	case "p", "i", "X":
		if a.opts.ReadOnly {
			return a, a.flash("Skrivskyddad vy.", true)
		}
		switch key {
		case "p":
			return a, pasteCmd(a.opts.Store)
		case "i":
			return a, importFileCmd(a.opts.Store, a.opts.ExportPath)
		default:
			a.confirming = true
			return a, nil
		}
	}

	a.ensureVisible()
	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.searching = false
		a.search.Blur()
		a.filter.Query = ""
		a.cursor, a.offset = 0, 0
		a.recompute()
		return a, nil
	case "enter":
		a.searching = false
		a.search.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if q := strings.TrimSpace(a.search.Value()); q != a.filter.Query {
		a.filter.Query = q
		a.cursor, a.offset = 0, 0
		a.recompute()
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, err := saveSetup(a.setupVals)
		a.setupForm = nil
		if cfg.General.DataSource != "" {
			a.opts.Source = cfg.General.DataSource
		}
		var flash tea.Cmd
		if err != nil {
			flash = a.flash("Kunde inte spara inställningar: "+err.Error(), true)
		} else {
			flash = a.flash("Sparat till "+config.Path(), false)
		}
		return a, tea.Batch(a.Init(), flash)
	case huh.StateAborted:
		a.setupForm = nil
		return a, a.Init()
	}

	return a, cmd
}
