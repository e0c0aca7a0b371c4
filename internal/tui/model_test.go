package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
)

func setupModel(t *testing.T) Model {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tui.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	habit := models.Habit{Name: "Running", Unit: "km"}
	if err := store.AddHabit(&habit); err != nil {
		t.Fatal(err)
	}
	today := models.Date{Year: 2024, Month: 6, Day: 15}
	entry := models.HabitEntry{HabitID: habit.ID, Date: today, Quantity: decimal.NewFromInt(5)}
	if err := store.AddHabitEntry(&entry); err != nil {
		t.Fatal(err)
	}

	agg := analytics.NewAggregator(analytics.NewEngine(store))
	return NewModel(store, agg, today, analytics.PresetThisMonth)
}

// step applies msg and feeds the resulting command's message back in.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, ok := out.(analyticsMsg); ok {
				next, _ = m.Update(out)
				m = next.(Model)
			}
		}
	}
	return m
}

func TestDashboardLoadsSelectedPreset(t *testing.T) {
	m := setupModel(t)
	if m.presets[m.selected] != analytics.PresetThisMonth {
		t.Fatalf("Expected this-month selected, got %s", m.presets[m.selected])
	}

	next, _ := m.Update(m.Init()())
	m = next.(Model)
	if m.err != nil {
		t.Fatalf("Unexpected error: %v", m.err)
	}
	if m.result == nil || len(m.result.HabitStats) != 1 {
		t.Fatalf("Expected one habit stat, got %+v", m.result)
	}
	if !strings.Contains(m.View(), "Running") {
		t.Errorf("Expected view to show Running:\n%s", m.View())
	}
}

func TestDashboardCyclesPresets(t *testing.T) {
	m := setupModel(t)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.presets[m.selected] != analytics.PresetLastMonth {
		t.Errorf("Expected last-month, got %s", m.presets[m.selected])
	}
	if m.result == nil || m.result.HabitStats[0].TotalEntries != 0 {
		t.Errorf("Expected no entries last month, got %+v", m.result)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != 0 {
		t.Errorf("Expected wrap to first preset, got %d", m.selected)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.presets[m.selected] != analytics.PresetLastMonth {
		t.Errorf("Expected shift+tab back to last-month, got %s", m.presets[m.selected])
	}
}

func TestDashboardIgnoresStaleResults(t *testing.T) {
	m := setupModel(t)
	stale := m.Init()()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	next, _ = m.Update(stale)
	m = next.(Model)

	if m.result != nil || !m.loading {
		t.Error("Expected stale result to be dropped")
	}
}

func TestDashboardQuit(t *testing.T) {
	m := setupModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Error("Expected quit")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}
