package repository

import "errors"

// Storage keys for the persisted collections.
const (
	keyStudents    = "students"
	keyTasks       = "tasks"
	keySubmissions = "submissions"
	keySession     = "session"

	keySeenTasksPrefix = "seen_tasks:"
	keyBonusDatePrefix = "last_bonus_date:"
)

// Sentinel errors surfaced by repositories; services map them onto the
// API error taxonomy.
var (
	ErrNotFound            = errors.New("repository: not found")
	ErrAlreadyResolved     = errors.New("repository: submission already resolved")
	ErrInsufficientBalance = errors.New("repository: insufficient coin balance")
)
