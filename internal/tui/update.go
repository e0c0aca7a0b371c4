package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case analyticsMsg:
		// results for a preset the user already moved away from are stale
		if msg.index != m.selected {
			return m, nil
		}
		m.loading = false
		m.rng = msg.rng
		m.err = msg.err
		if msg.err != nil {
			logger.Error("dashboard failed to compute analytics", "error", msg.err)
			m.result = nil
			return m, nil
		}
		result := msg.result
		m.result = &result
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.selected = (m.selected + 1) % len(m.presets)
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Prev):
			m.selected = (m.selected - 1 + len(m.presets)) % len(m.presets)
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}

	return m, nil
}
