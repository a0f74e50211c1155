package domain

import "time"

// Task is a to-do item. Only its owner may see, complete or delete it.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
