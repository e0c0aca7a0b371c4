// Package tui implements the interactive analytics dashboard.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

// analyticsMsg carries a finished computation for the preset at index.
type analyticsMsg struct {
	index  int
	rng    analytics.DateRange
	result analytics.Result
	err    error
}

type Model struct {
	store      storage.Provider
	aggregator *analytics.Aggregator
	today      models.Date

	presets  []analytics.Preset
	selected int
	rng      analytics.DateRange
	result   *analytics.Result
	err      error
	loading  bool

	keys     KeyMap
	help     help.Model
	width    int
	quitting bool
}

// NewModel builds a dashboard starting on the given preset.
func NewModel(store storage.Provider, aggregator *analytics.Aggregator, today models.Date, start analytics.Preset) Model {
	selected := 0
	for i, p := range analytics.Presets {
		if p == start {
			selected = i
		}
	}

	return Model{
		store:      store,
		aggregator: aggregator,
		today:      today,
		presets:    analytics.Presets,
		selected:   selected,
		loading:    true,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// load computes analytics for the selected preset over every habit.
func (m Model) load() tea.Cmd {
	index, preset := m.selected, m.presets[m.selected]
	store, agg, today := m.store, m.aggregator, m.today

	return func() tea.Msg {
		rng, err := analytics.PresetRange(preset, today)
		if err != nil {
			return analyticsMsg{index: index, err: err}
		}
		habits, err := store.GetAllHabits()
		if err != nil {
			return analyticsMsg{index: index, rng: rng, err: err}
		}
		result, err := agg.GetHabitAnalytics(rng.Start, rng.End, habits)
		return analyticsMsg{index: index, rng: rng, result: result, err: err}
	}
}

// Run starts the dashboard program and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
