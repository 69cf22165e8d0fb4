// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It is the optional alternative to the in-memory backend. The default
// DSN keeps the database in memory (shared cache, so every pooled
// connection sees the same data); point it at a file path to make
// records survive restarts.
//
// Importing mattn/go-sqlite3 registers the "sqlite3" driver with
// database/sql as a side effect; the package is also used directly for
// its constraint-error type when mapping duplicate-key inserts.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kmathur/student-registry/internal/storage"
	"github.com/kmathur/student-registry/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage backed by a
// *sql.DB connection pool. A single *sql.DB is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// seed rows present in a fresh store. INSERT OR IGNORE keeps them from
// clobbering data when the backend points at an existing file.
var seeds = []struct {
	id      int64
	student types.Student
}{
	{1, types.Student{Name: "Alice", Age: 20}},
	{2, types.Student{Name: "Bob", Age: 22}},
	{3, types.Student{Name: "Charlie", Age: 23}},
}

// New opens the database at the given DSN, creates the students table
// if it does not exist, and inserts the seed records.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// IDs come from the client, so the primary key is plain INTEGER —
	// no AUTOINCREMENT. The UNIQUE property of the primary key is what
	// turns a duplicate create into a constraint error below.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id   INTEGER PRIMARY KEY,
			name TEXT    NOT NULL,
			age  INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	for _, s := range seeds {
		_, err = db.Exec(
			"INSERT OR IGNORE INTO students (id, name, age) VALUES (?, ?, ?)",
			s.id, s.student.Name, s.student.Age,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite.New: seed id %d: %w", s.id, err)
		}
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT name, age FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student
	err = stmt.QueryRow(id).Scan(&student.Name, &student.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// CreateStudent relies on the primary-key constraint for the duplicate
// check: the INSERT itself is the exclusive section, so there is no
// window between "does it exist" and "write it".
func (s *SQLite) CreateStudent(id int64, student types.Student) error {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (id, name, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(id, student.Name, student.Age)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return storage.ErrStudentExists
		}
		return fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return nil
}

func (s *SQLite) UpdateStudent(id int64, student types.Student) error {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, age = ? WHERE id = ?",
	)
	if err != nil {
		return fmt.Errorf("UpdateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, student.Age, id)
	if err != nil {
		return fmt.Errorf("UpdateStudent: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateStudent: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// SearchStudents uses instr on lowercased names rather than LIKE, so
// the needle never needs wildcard escaping. ORDER BY id matches the
// memory backend's ordering.
func (s *SQLite) SearchStudents(name string) ([]types.Student, error) {
	query := "SELECT name, age FROM students ORDER BY id"
	args := []any{}
	if name != "" {
		query = "SELECT name, age FROM students WHERE instr(lower(name), lower(?)) > 0 ORDER BY id"
		args = append(args, name)
	}

	stmt, err := s.Db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("SearchStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("SearchStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty result encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.Name, &student.Age); err != nil {
			return nil, fmt.Errorf("SearchStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchStudents: rows iteration: %w", err)
	}

	return students, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
