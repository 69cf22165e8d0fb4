// Package storage defines the Storage interface — the contract every
// backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete backend.
// Swapping the in-memory store for SQLite is one line in main.go, and
// tests can run against whichever backend is convenient.
//
// Create and Update own their existence checks: the check and the write
// execute as one exclusive section inside the backend, so concurrent
// calls against the same ID cannot interleave between the two.
package storage

import (
	"errors"

	"github.com/kmathur/student-registry/internal/types"
)

// Sentinel errors returned by every backend. Handlers use errors.Is on
// these to pick the HTTP status; the messages never reach the client.
var (
	// ErrStudentNotFound means no record exists under the given ID.
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentExists means a create targeted an ID that is already
	// taken.
	ErrStudentExists = errors.New("student id already exists")
)

// Storage is the backend contract. Any type implementing all of these
// methods satisfies it implicitly.
type Storage interface {
	// GetStudentByID fetches one record by its ID.
	// Returns ErrStudentNotFound on a miss.
	GetStudentByID(id int64) (types.Student, error)

	// CreateStudent inserts a new record under id.
	// Returns ErrStudentExists if the ID is already taken; the record
	// is only written when the ID was free.
	CreateStudent(id int64, student types.Student) error

	// UpdateStudent replaces the record under id wholesale (no merge).
	// Returns ErrStudentNotFound if the ID has never been written.
	UpdateStudent(id int64, student types.Student) error

	// SearchStudents returns records whose name contains the given
	// substring, compared case-insensitively. An empty name returns
	// every record. Results are ordered by ascending ID so responses
	// are deterministic; an empty result is an empty slice, not nil.
	SearchStudents(name string) ([]types.Student, error)
}
