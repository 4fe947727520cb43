package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"lockin/internal/config"
	"lockin/internal/dashboard"
	"lockin/internal/entity"
	"lockin/internal/form"
	"lockin/internal/render"
	"lockin/internal/stats"
)

type tab int

const (
	tabPlanner tab = iota
	tabNotes
	tabGoals
	tabHabits
	tabStats
)

var tabNames = []string{"Planner", "Notes", "Goals", "Habits", "Stats"}

func parseTab(s string) tab {
	for i, name := range tabNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return tab(i)
		}
	}
	return tabPlanner
}

type pollMsg time.Time

type Model struct {
	dash     *dashboard.Dashboard
	cfg      config.Config
	log      *log.Logger
	tables   dashboard.Tables
	summary  stats.Summary
	watcher  *stats.Watcher
	interval time.Duration

	tab     tab
	archive bool
	tier    int
	cursor  int

	input      textinput.Model
	edit       *editState
	status     string
	failed     bool
	confirmDel bool
	pendingDel *dashboard.Event
	pendingMsg string
}

func Run(d *dashboard.Dashboard, cfg config.Config, logger *log.Logger) error {
	m, err := New(d, cfg, logger)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func New(d *dashboard.Dashboard, cfg config.Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	interval, err := cfg.PollInterval()
	if err != nil {
		return Model{}, err
	}
	tables, err := d.Tables()
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		dash:     d,
		cfg:      cfg,
		log:      logger,
		tables:   tables,
		watcher:  stats.NewWatcher(d.TaskCount),
		interval: interval,
		tab:      parseTab(cfg.DefaultTab),
		input:    ti,
		status:   fmt.Sprintf("Press '%s' to add, '%s' to switch tabs.", cfg.Keys.Add, cfg.Keys.NextTab),
	}
	if _, err := m.watcher.Changed(); err != nil {
		return Model{}, err
	}
	m.refreshSummary()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.poll()
}

func (m Model) poll() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.edit != nil {
			return m.updateEditMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-30, 20)
	case pollMsg:
		changed, err := m.watcher.Changed()
		if err != nil {
			m.setError("refresh failed", err)
		} else if changed {
			m.reload()
			m.status = "Stats refreshed"
		}
		return m, m.poll()
	}
	return m, nil
}

func (m Model) kind() dashboard.Kind {
	switch m.tab {
	case tabNotes:
		return dashboard.KindNote
	case tabGoals:
		return dashboard.KindGoal
	case tabHabits:
		return dashboard.KindHabit
	}
	return dashboard.KindTask
}

func (m Model) currentTier() entity.Tier {
	return entity.Tiers()[m.tier]
}

func (m Model) table() (render.Table, bool) {
	switch m.tab {
	case tabPlanner:
		if m.archive {
			return m.tables.Archive, true
		}
		return m.tables.Planner, true
	case tabNotes:
		return m.tables.Notes, true
	case tabGoals:
		return m.tables.Goals[m.currentTier()], true
	case tabHabits:
		return m.tables.Habits, true
	}
	return render.Table{}, false
}

func (m Model) rowCount() int {
	t, ok := m.table()
	if !ok {
		return 0
	}
	return len(t.DataRows())
}

func (m Model) selected() (render.Row, bool) {
	t, ok := m.table()
	if !ok {
		return render.Row{}, false
	}
	rows := t.DataRows()
	if len(rows) == 0 {
		return render.Row{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) event(r render.Row, a render.Action) dashboard.Event {
	return dashboard.Event{Kind: m.kind(), Action: a, ID: r.ID, Index: r.Index, Tier: m.currentTier()}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.NextTab:
		m.tab = tab(wrapIndex(int(m.tab)+1, len(tabNames)))
		m.cursor = 0
	case k.PrevTab:
		m.tab = tab(wrapIndex(int(m.tab)-1, len(tabNames)))
		m.cursor = 0
	case k.NextTier, k.PrevTier:
		delta := 1
		if key == k.PrevTier {
			delta = -1
		}
		switch m.tab {
		case tabPlanner:
			m.archive = !m.archive
			m.cursor = 0
		case tabGoals:
			m.tier = wrapIndex(m.tier+delta, len(entity.Tiers()))
			m.cursor = 0
			if err := m.dash.SelectTier(m.currentTier()); err != nil {
				m.setError("select tier", err)
			}
		}
	case k.Down, "down":
		if n := m.rowCount(); n > 0 {
			m.cursor = clampCursor(m.cursor+1, n)
		}
	case k.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, m.rowCount())
		}
	case k.Add:
		if m.tab == tabStats {
			return m, nil
		}
		return m.startAdd()
	case k.Edit:
		r, ok := m.selected()
		if !ok || !r.Has(render.ActionEdit) {
			m.status = "Nothing to edit"
			return m, nil
		}
		return m.startEdit(r)
	case k.Complete:
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		switch {
		case r.Has(render.ActionComplete):
			m.dispatch(m.event(r, render.ActionComplete), "Task completed")
		case r.Has(render.ActionRestore):
			m.dispatch(m.event(r, render.ActionRestore), "Task restored")
		case r.Has(render.ActionToggle):
			m.dispatch(m.event(r, render.ActionToggle), "Goal toggled")
		}
	case k.Delete:
		r, ok := m.selected()
		if !ok || !r.Has(render.ActionDelete) {
			return m, nil
		}
		ev := m.event(r, render.ActionDelete)
		m.confirmDel = true
		m.pendingDel = &ev
		m.pendingMsg = r.Cells[0]
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", r.Cells[0])
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			break
		}
		m.dispatch(*m.pendingDel, fmt.Sprintf("Deleted \"%s\"", m.pendingMsg))
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	m.pendingMsg = ""
	return m, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	var f form.Fields
	switch m.kind() {
	case dashboard.KindTask:
		m.dash.TaskForm.OpenForAdd()
		f = m.dash.TaskForm.Fields()
	case dashboard.KindNote:
		m.dash.NoteForm.OpenForAdd()
		f = m.dash.NoteForm.Fields()
	case dashboard.KindHabit:
		m.dash.Cancel(dashboard.KindHabit)
	}
	return m.openEditor(false, f)
}

func (m Model) startEdit(r render.Row) (tea.Model, tea.Cmd) {
	if _, err := m.dash.Dispatch(m.event(r, render.ActionEdit)); err != nil {
		m.setError("edit", err)
		m.reload()
		return m, nil
	}
	var f form.Fields
	switch m.kind() {
	case dashboard.KindTask:
		f = m.dash.TaskForm.Fields()
	case dashboard.KindNote:
		f = m.dash.NoteForm.Fields()
	case dashboard.KindHabit:
		f = form.Fields{Title: r.Cells[0]}
	}
	return m.openEditor(true, f)
}

func (m Model) openEditor(editing bool, f form.Fields) (tea.Model, tea.Cmd) {
	m.edit = newEditState(m.kind(), editing, f, m.cfg.Schema.TaskTypes, m.currentTier())
	m.input.SetValue(m.edit.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.edit.currentLabel()
	m.input.Focus()
	m.failed = false
	m.status = m.edit.prompt()
	return m, textinput.Blink
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.dash.Cancel(m.edit.kind)
		m.edit = nil
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "shift+tab":
		m.edit.setCurrentValue(m.input.Value())
		if key == "tab" {
			m.edit.move(1)
		} else {
			m.edit.move(-1)
		}
		m.syncInput()
		return m, nil
	case "up", "down":
		m.edit.setCurrentValue(m.input.Value())
		delta := 1
		if key == "up" {
			delta = -1
		}
		if m.edit.cycle(delta) {
			m.input.SetValue(m.edit.currentValue())
			m.input.CursorEnd()
		}
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.edit.setCurrentValue(m.input.Value())
		if m.edit.last() {
			return m.save()
		}
		m.edit.move(1)
		m.syncInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncInput() {
	m.input.SetValue(m.edit.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.edit.currentLabel()
	m.failed = false
	m.status = m.edit.prompt()
}

func (m Model) save() (tea.Model, tea.Cmd) {
	e := m.edit
	tables, err := m.dash.Submit(e.kind, e.fields())
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			e.focus(verr.Fields[0].Field)
			m.input.SetValue(e.currentValue())
			m.input.Placeholder = e.currentLabel()
			m.status = verr.Fields[0].Message
			m.failed = true
			return m, nil
		}
		m.setError("save failed", err)
		if errors.Is(err, entity.ErrIndexOutOfRange) {
			m.edit = nil
			m.input.Blur()
			m.reload()
		}
		return m, nil
	}
	verb := "Added"
	if e.editing {
		verb = "Saved"
	}
	m.edit = nil
	m.input.Blur()
	m.input.SetValue("")
	m.setTables(tables)
	if !e.editing {
		m.cursor = clampCursor(m.rowCount()-1, m.rowCount())
	}
	m.status = fmt.Sprintf("%s %s", verb, e.kind)
	m.failed = false
	return m, nil
}

// dispatch applies ev and resyncs the tables; a stale target reloads
// the lists so the cursor points at current rows again.
func (m *Model) dispatch(ev dashboard.Event, done string) {
	tables, err := m.dash.Dispatch(ev)
	if err != nil {
		m.setError(string(ev.Action)+" failed", err)
		m.reload()
		return
	}
	m.setTables(tables)
	m.status = done
	m.failed = false
}

func (m *Model) setTables(t dashboard.Tables) {
	m.tables = t
	m.cursor = clampCursor(m.cursor, m.rowCount())
	m.refreshSummary()
}

func (m *Model) reload() {
	tables, err := m.dash.Tables()
	if err != nil {
		m.setError("reload failed", err)
		return
	}
	m.setTables(tables)
}

func (m *Model) refreshSummary() {
	s, err := m.dash.Summary(m.dash.Now())
	if err != nil {
		m.setError("stats failed", err)
		return
	}
	m.summary = s
}

func (m *Model) setError(what string, err error) {
	m.log.Error(what, "err", err)
	m.status = fmt.Sprintf("%s: %v", what, err)
	m.failed = true
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
