package ui

import (
	"fmt"
	"strings"

	"lockin/internal/config"
	"lockin/internal/entity"
	"lockin/internal/render"
	"lockin/internal/stats"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lock In"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabStats:
		b.WriteString(stats.Format(m.summary))
	case tabPlanner:
		b.WriteString(m.renderSwitch([]string{"Active", "Archive"}, boolIndex(m.archive)))
		b.WriteString("\n\n")
		t, _ := m.table()
		b.WriteString(m.renderTable(t))
	case tabGoals:
		labels := make([]string, 0, len(entity.Tiers()))
		for _, tier := range entity.Tiers() {
			labels = append(labels, tier.Label())
		}
		b.WriteString(m.renderSwitch(labels, m.tier))
		b.WriteString("\n\n")
		t, _ := m.table()
		b.WriteString(m.renderTable(t))
	default:
		t, _ := m.table()
		b.WriteString(m.renderTable(t))
	}

	if m.edit != nil {
		b.WriteString("\n")
		box := titleStyle.Render(m.edit.heading()) + "\n\n" + m.edit.render() + "\n\n" +
			"Field: " + m.edit.currentLabel() + "\n" + m.input.View()
		b.WriteString(formStyle.Render(box))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys, m.tab)))
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, tabActiveStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderSwitch(labels []string, current int) string {
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		if i == current {
			parts = append(parts, selectedStyle.Render("["+l+"]"))
		} else {
			parts = append(parts, helpStyle.Render(" "+l+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTable(t render.Table) string {
	header, lines := render.Layout(t)
	var b strings.Builder
	b.WriteString(headerStyle.Render("      " + header))
	b.WriteString("\n")
	data := 0
	for i, r := range t.Rows {
		if r.Placeholder {
			b.WriteString(placeholderStyle.Render("  " + lines[i]))
			b.WriteString("\n")
			continue
		}
		cursor := " "
		if data == m.cursor && m.edit == nil {
			cursor = ">"
		}
		body := fmt.Sprintf("%s %s %s", cursor, checkbox(r), lines[i])
		switch {
		case cursor == ">":
			body = selectedStyle.Render(body)
		case r.Done:
			body = doneStyle.Render(body)
		}
		b.WriteString(body)
		b.WriteString("\n")
		data++
	}
	return b.String()
}

func checkbox(r render.Row) string {
	if r.Done {
		return "[x]"
	}
	return "[ ]"
}

func renderHelp(k config.Keymap, t tab) string {
	base := fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s/%s tab • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.NextTab, k.PrevTab, k.Quit)
	switch t {
	case tabPlanner:
		return fmt.Sprintf("%s • %q complete/restore • %s/%s active/archive", base, k.Complete, k.PrevTier, k.NextTier)
	case tabGoals:
		return fmt.Sprintf("%s • %q toggle • %s/%s tier", base, k.Complete, k.PrevTier, k.NextTier)
	case tabStats:
		return fmt.Sprintf("%s/%s tab • %s quit", k.NextTab, k.PrevTab, k.Quit)
	}
	return base
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
