package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/concentria/internal/core/countdown"
	"github.com/comitanigiacomo/concentria/internal/core/tree"
)

const (
	labelWidth = 44
	maxRows    = 18
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Concentria"))
	if m.quote != "" {
		b.WriteString("  " + quoteStyle.Render(m.quote))
	}
	b.WriteString("\n\n")

	for i := fieldTitle; i <= fieldNote; i++ {
		b.WriteString(m.fieldLine(i) + "\n")
	}
	b.WriteString(m.timerLine() + "\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", max(40, min(m.width, 100)))) + "\n")

	b.WriteString(m.treeView())

	b.WriteString("\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) fieldLine(i int) string {
	label := labelStyle.Render(fieldLabels[i])
	if m.focus == i {
		label = labelStyle.Bold(true).Render("› " + fieldLabels[i])
	}
	return label + m.inputs[i].View()
}

func (m *Model) timerLine() string {
	state := m.timer.State()
	clock := "00:00"
	if state != countdown.Idle {
		clock = m.timer.Format()
	}

	autoLog := "off"
	if m.autoLog {
		autoLog = "on"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.fieldLine(fieldTimer),
		"  ",
		timerStyle.Render(clock),
		"  ",
		m.bar.ViewAs(m.timer.Progress()),
		"  ",
		mutedStyle.Render(fmt.Sprintf("%s · auto-log %s", state, autoLog)),
	)
}

func (m *Model) treeView() string {
	rows := m.tree.Flat()
	if len(rows) == 0 {
		return mutedStyle.Render("No sessions yet.") + "\n"
	}

	header := fmt.Sprintf("%-*s %8s %4s  %-18s %s", labelWidth, "Day", "Min", "H", "Title", "Note")
	var b strings.Builder
	b.WriteString(mutedStyle.Render(header) + "\n")

	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := min(len(rows), start+maxRows)

	for i := start; i < end; i++ {
		line := formatRow(rows[i])
		switch {
		case i == m.cursor && m.focus == focusTree:
			line = selectedStyle.Render(line)
		case rows[i].Row.Kind == tree.RowParent:
			line = parentStyle.Render(line)
		case rows[i].Row.Kind == tree.RowFooter:
			line = footerStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if end < len(rows) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("… %d more", len(rows)-end)) + "\n")
	}
	return b.String()
}

func formatRow(fr tree.FlatRow) string {
	label := strings.Repeat("  ", fr.Depth) + fr.Row.Label
	if n := len([]rune(label)); n > labelWidth {
		label = string([]rune(label)[:labelWidth-1]) + "…"
	}
	v := fr.Row.Values()
	return fmt.Sprintf("%-*s %8s %4s  %-18s %s", labelWidth, label, v[0], v[1], v[2], v[3])
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusWarn:
		return warnStyle.Render(m.status)
	case statusError:
		return errorStyle.Render(m.status)
	default:
		return infoStyle.Render(m.status)
	}
}
