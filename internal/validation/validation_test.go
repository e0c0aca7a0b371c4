package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/models"
)

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestHabitNameAndUnit(t *testing.T) {
	name, err := HabitName("  Reading ")
	if err != nil || name != "Reading" {
		t.Errorf("HabitName = %q, %v", name, err)
	}
	if _, err := HabitName("   "); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for blank name, got %v", err)
	}
	if _, err := Unit(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for blank unit, got %v", err)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"5", "5", false},
		{"0", "0", false},
		{" 2.75 ", "2.75", false},
		{"1,5", "1.5", false},
		{"-1", "", true},
		{"abc", "", true},
		{"", "", true},
		{"1e3", "", true},
		{"1E1000000", "", true},
		{"123456789012345678", "123456789012345678", false},
		{"1234567890123456789", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Quantity(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUserDate(t *testing.T) {
	today := date("2024-06-10")

	d, err := UserDate("09-06-2024", today)
	if err != nil || d != date("2024-06-09") {
		t.Errorf("UserDate = %v, %v", d, err)
	}
	if _, err := UserDate("10-06-24", today); err != nil {
		t.Errorf("Expected today to be accepted, got %v", err)
	}
	if _, err := UserDate("11-06-2024", today); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for future date, got %v", err)
	}
	if _, err := UserDate("June 9th", today); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for garbage, got %v", err)
	}
}

func TestValidateHabits(t *testing.T) {
	v := New(date("2024-06-10"))

	result := v.ValidateHabits([]models.Habit{
		{ID: "1", Name: "Reading", Unit: "pages"},
		{ID: "2", Name: "reading", Unit: "pages"},
		{ID: "3", Name: "Running", Unit: ""},
	})

	types := map[ConflictType]int{}
	for _, c := range result.Conflicts {
		types[c.Type]++
	}
	if types[ConflictDuplicateHabitName] != 1 {
		t.Errorf("Expected one duplicate name conflict, got %d", types[ConflictDuplicateHabitName])
	}
	if types[ConflictEmptyField] != 1 {
		t.Errorf("Expected one empty field conflict, got %d", types[ConflictEmptyField])
	}

	clean := v.ValidateHabits([]models.Habit{{ID: "1", Name: "Water", Unit: "glasses"}})
	if clean.HasConflicts() {
		t.Errorf("Expected no conflicts, got %v", clean.Conflicts)
	}
	if clean.FormatReport() != "No conflicts detected." {
		t.Errorf("Unexpected report %q", clean.FormatReport())
	}
}

func TestValidateEntries(t *testing.T) {
	v := New(date("2024-06-10"))
	habit := models.Habit{ID: "h", Name: "Water"}

	result := v.ValidateEntries(habit, []models.HabitEntry{
		{ID: "a", Date: date("2024-06-01"), Quantity: decimal.NewFromInt(3)},
		{ID: "b", Date: date("2024-06-01"), Quantity: decimal.NewFromInt(4)},
		{ID: "c", Date: date("2024-06-02"), Quantity: decimal.NewFromInt(-1)},
		{ID: "d", Date: date("2024-06-11"), Quantity: decimal.NewFromInt(1)},
	})

	if len(result.Conflicts) != 3 {
		t.Fatalf("Expected 3 conflicts, got %d: %v", len(result.Conflicts), result.Conflicts)
	}
	report := result.FormatReport()
	for _, want := range []string{"more than one entry", "negative quantity", "in the future"} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected report to mention %q:\n%s", want, report)
		}
	}
}
