package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/render"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	tabs := make([]string, len(m.presets))
	for i, p := range m.presets {
		style := inactiveTabStyle
		if i == m.selected {
			style = activeTabStyle
		}
		tabs[i] = style.Render(p.Description())
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(render.Muted("Loading..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(render.AnalyticsReport(*m.result, m.presets[m.selected].Description()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}
