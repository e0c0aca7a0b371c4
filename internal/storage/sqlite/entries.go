package sqlite

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func scanEntry(row rowScanner) (models.HabitEntry, error) {
	var e models.HabitEntry
	var quantity, day string

	if err := row.Scan(&e.ID, &e.HabitID, &quantity, &day); err != nil {
		return models.HabitEntry{}, err
	}

	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse quantity for entry %s: %w", e.ID, err)
	}
	d, err := models.ParseDate(day)
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("failed to parse day for entry %s: %w", e.ID, err)
	}

	e.Quantity = q
	e.Date = d
	return e, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HabitEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// AddHabitEntry inserts a new entry. Logging the same habit twice on one day
// fails with storage.ErrEntryExists and leaves the first entry as it was.
func (s *Store) AddHabitEntry(entry *models.HabitEntry) error {
	if entry.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative: %s", entry.Quantity)
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("entry date is required")
	}

	exists, err := s.HabitEntryExists(entry.HabitID, entry.Date)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", storage.ErrEntryExists, entry.Date.Display())
	}

	id := uuid.New().String()
	_, err = s.db.Exec(`
		INSERT INTO habit_entries (id, habit_id, quantity, day)
		VALUES (?, ?, ?, ?)`,
		id, entry.HabitID, entry.Quantity.String(), entry.Date.String())
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", storage.ErrEntryExists, entry.Date.Display())
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s", storage.ErrHabitNotFound, entry.HabitID)
	case err != nil:
		return err
	}

	entry.ID = id
	return nil
}

func (s *Store) HabitEntryExists(habitID string, day models.Date) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM habit_entries WHERE habit_id = ? AND day = ?`,
		habitID, day.String()).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetHabitEntriesForHabit returns the habit's entries between start and end,
// inclusive, oldest first.
func (s *Store) GetHabitEntriesForHabit(habitID string, start, end models.Date) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT id, habit_id, quantity, day
		FROM habit_entries
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day`, habitID, start.String(), end.String())
}

// GetHabitEntriesForDate returns the entries logged on day, restricted to
// habitIDs when any are given, in habit creation order.
func (s *Store) GetHabitEntriesForDate(day models.Date, habitIDs []string) ([]models.HabitEntry, error) {
	query := `
		SELECT e.id, e.habit_id, e.quantity, e.day
		FROM habit_entries e JOIN habits h ON h.id = e.habit_id
		WHERE e.day = ?`
	args := []any{day.String()}

	if len(habitIDs) > 0 {
		query += " AND e.habit_id IN (?" + strings.Repeat(", ?", len(habitIDs)-1) + ")"
		for _, id := range habitIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY h.created_at, h.rowid"

	return s.queryEntries(query, args...)
}

func (s *Store) GetEntryCounts() ([]models.HabitEntryCount, error) {
	rows, err := s.db.Query(`
		SELECT h.id, h.name, COUNT(e.id)
		FROM habits h LEFT JOIN habit_entries e ON e.habit_id = h.id
		GROUP BY h.id
		ORDER BY h.created_at, h.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.HabitEntryCount{}
	for rows.Next() {
		var c models.HabitEntryCount
		if err := rows.Scan(&c.HabitID, &c.HabitName, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// GetHabitAggregates reads the window's entries once and folds them with
// models.SummarizeEntries. Quantities are stored as decimal text, so sums are
// done in Go rather than with SQL SUM over floats.
func (s *Store) GetHabitAggregates(habitID string, start, end models.Date) (models.HabitAggregates, error) {
	entries, err := s.GetHabitEntriesForHabit(habitID, start, end)
	if err != nil {
		return models.HabitAggregates{}, fmt.Errorf("failed to load entries for habit %s: %w", habitID, err)
	}
	return models.SummarizeEntries(entries), nil
}
