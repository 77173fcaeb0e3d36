// Package persistence implements the task repository over SQLite and Postgres.
package persistence

import "errors"

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")
