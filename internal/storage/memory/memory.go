// Package memory provides the default storage backend: a map from ID to
// student held in process memory. Nothing survives a restart.
//
// A single RWMutex guards the map. Reads take the shared lock; Create
// and Update take the exclusive lock for their whole check-then-write
// sequence, so two concurrent creates against the same ID cannot both
// succeed.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/kmathur/student-registry/internal/storage"
	"github.com/kmathur/student-registry/internal/types"
)

// Memory is the in-process implementation of storage.Storage.
type Memory struct {
	mu       sync.RWMutex
	students map[int64]types.Student
}

// New returns a store pre-populated with the three seed records the
// service starts with.
func New() *Memory {
	return &Memory{
		students: map[int64]types.Student{
			1: {Name: "Alice", Age: 20},
			2: {Name: "Bob", Age: 22},
			3: {Name: "Charlie", Age: 23},
		},
	}
}

func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.students[id]
	if !ok {
		return types.Student{}, storage.ErrStudentNotFound
	}
	return student, nil
}

func (m *Memory) CreateStudent(id int64, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; ok {
		return storage.ErrStudentExists
	}
	m.students[id] = student
	return nil
}

func (m *Memory) UpdateStudent(id int64, student types.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return storage.ErrStudentNotFound
	}
	m.students[id] = student
	return nil
}

// SearchStudents matches case-insensitively on a lowercased copy of
// both sides. Map iteration order is random, so results are sorted by
// ascending ID to keep responses stable.
func (m *Memory) SearchStudents(name string) ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.students))
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	needle := strings.ToLower(name)

	results := make([]types.Student, 0, len(ids))
	for _, id := range ids {
		student := m.students[id]
		if needle == "" || strings.Contains(strings.ToLower(student.Name), needle) {
			results = append(results, student)
		}
	}
	return results, nil
}
