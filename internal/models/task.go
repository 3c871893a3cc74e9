package models

import "time"

// TaskLifetime is how long a task stays active after creation.
const TaskLifetime = 24 * time.Hour

// Task is a time-boxed assignment worth a fixed coin reward. Tasks are
// immutable after creation; "active" is derived, never stored.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Coins     int    `json:"coins"`
	Category  string `json:"category"`
	ExpiresAt int64  `json:"expiresAt"` // unix milliseconds
	Link      string `json:"link,omitempty"`
}

// Active reports whether the task has not yet expired at the given instant.
func (t Task) Active(now time.Time) bool {
	return t.ExpiresAt > now.UnixMilli()
}

// TimeLeft returns the remaining active duration, clamped at zero.
func (t Task) TimeLeft(now time.Time) time.Duration {
	diff := t.ExpiresAt - now.UnixMilli()
	if diff <= 0 {
		return 0
	}
	return time.Duration(diff) * time.Millisecond
}
