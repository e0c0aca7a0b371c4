package storage

import "errors"

var (
	ErrNotInitialized = errors.New("storage not initialized, run 'habitlog init' first")
	ErrHabitNotFound  = errors.New("habit not found")
	ErrHabitExists    = errors.New("habit already exists")
	ErrEntryExists    = errors.New("entry already exists for this date")
)
