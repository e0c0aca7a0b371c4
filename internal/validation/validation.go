package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// ErrInvalid wraps every input rule violation.
var ErrInvalid = errors.New("invalid input")

// HabitName trims s and rejects it when empty.
func HabitName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: habit name cannot be empty", ErrInvalid)
	}
	return s, nil
}

// Unit trims s and rejects it when empty.
func Unit(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: unit of measurement cannot be empty", ErrInvalid)
	}
	return s, nil
}

// Quantity parses a non-negative decimal. Both '.' and ',' are accepted as the
// decimal separator.
func Quantity(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: quantity cannot be empty", ErrInvalid)
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q is not a plain number", ErrInvalid, s)
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalid, s)
	}
	if q.NumDigits() > constants.MaxQuantityDigits {
		return decimal.Zero, fmt.Errorf("%w: quantity has more than %d digits", ErrInvalid, constants.MaxQuantityDigits)
	}
	if q.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: quantity cannot be negative", ErrInvalid)
	}
	return q, nil
}

// UserDate parses a user-entered date and rejects days after today.
func UserDate(s string, today models.Date) (models.Date, error) {
	d, err := models.ParseUserDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := NotFuture(d, today); err != nil {
		return models.Date{}, err
	}
	return d, nil
}

func NotFuture(d, today models.Date) error {
	if d.After(today) {
		return fmt.Errorf("%w: date %s is in the future", ErrInvalid, d.Display())
	}
	return nil
}

// ConflictType identifies a data integrity problem found in stored records.
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictEmptyField         ConflictType = "empty_field"
	ConflictNegativeQuantity   ConflictType = "negative_quantity"
	ConflictFutureEntry        ConflictType = "future_entry"
	ConflictDuplicateEntry     ConflictType = "duplicate_entry"
)

// Conflict is one integrity problem.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
}

// ValidationResult collects the conflicts found by a Validator.
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts.
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks stored habits and entries for integrity problems. The
// store enforces most of these rules, so conflicts point at data written by
// other tools or older builds.
type Validator struct {
	today models.Date
}

func New(today models.Date) *Validator {
	return &Validator{today: today}
}

// ValidateHabits reports empty names or units and names that collide when
// compared case-insensitively.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byName := make(map[string][]string)
	for _, h := range habits {
		name := strings.TrimSpace(h.Name)
		if name == "" || strings.TrimSpace(h.Unit) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyField,
				Description: fmt.Sprintf("Habit %s has an empty name or unit", h.ID),
				Items:       []string{h.ID},
			})
		}
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		byName[key] = append(byName[key], h.Name)
	}

	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		names := byName[k]
		if len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (%d habits)", names[0], len(names)),
				Items:       names,
			})
		}
	}

	return result
}

// ValidateEntries reports negative quantities, entries dated after today and
// more than one entry for the same habit and day.
func (v *Validator) ValidateEntries(habit models.Habit, entries []models.HabitEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[models.Date]bool, len(entries))
	for _, e := range entries {
		if e.Quantity.IsNegative() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeQuantity,
				Description: fmt.Sprintf("%s entry on %s has negative quantity %s", habit.Name, e.Date.Display(), e.Quantity),
				Items:       []string{e.ID},
			})
		}
		if e.Date.After(v.today) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureEntry,
				Description: fmt.Sprintf("%s entry is dated in the future (%s)", habit.Name, e.Date.Display()),
				Items:       []string{e.ID},
			})
		}
		if seen[e.Date] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntry,
				Description: fmt.Sprintf("%s has more than one entry on %s", habit.Name, e.Date.Display()),
				Items:       []string{e.ID},
			})
		}
		seen[e.Date] = true
	}

	return result
}
