package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

const habitColumns = `h.id, h.name, h.unit, h.created_at,
	(SELECT COUNT(*) FROM habit_entries e WHERE e.habit_id = h.id)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string

	if err := row.Scan(&h.ID, &h.Name, &h.Unit, &createdAt, &h.TotalEntries); err != nil {
		return models.Habit{}, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.CreatedAt = t
	return h, nil
}

func (s *Store) AddHabit(habit *models.Habit) error {
	habit.Name = strings.TrimSpace(habit.Name)
	habit.Unit = strings.TrimSpace(habit.Unit)
	if habit.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	exists, err := s.HabitExists(habit.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", storage.ErrHabitExists, habit.Name)
	}

	habit.ID = uuid.New().String()
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}
	habit.TotalEntries = 0

	_, err = s.db.Exec(`
		INSERT INTO habits (id, name, unit, created_at)
		VALUES (?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Unit, habit.CreatedAt.UTC().Format(time.RFC3339))
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", storage.ErrHabitExists, habit.Name)
	}
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits h WHERE h.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("%w: %s", storage.ErrHabitNotFound, id)
	}
	return h, err
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	h, err := scanHabit(s.db.QueryRow(`SELECT `+habitColumns+` FROM habits h WHERE h.name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("%w: %q", storage.ErrHabitNotFound, name)
	}
	return h, err
}

// GetAllHabits returns habits in creation order with TotalEntries populated.
func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits h ORDER BY h.created_at, h.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) HabitExists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM habits WHERE name = ?`, strings.TrimSpace(name)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateHabit changes a habit's name and unit. CreatedAt is never touched.
func (s *Store) UpdateHabit(id, name, unit string) error {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	result, err := s.db.Exec(`UPDATE habits SET name = ?, unit = ? WHERE id = ?`, name, unit, id)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", storage.ErrHabitExists, name)
	}
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrHabitNotFound, id)
	}

	return nil
}

func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", storage.ErrHabitNotFound, id)
	}

	return nil
}
