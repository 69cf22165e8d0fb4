package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmathur/student-registry/internal/storage"
	"github.com/kmathur/student-registry/internal/types"
)

func TestNewSeedsRecords(t *testing.T) {
	store := New()

	alice, err := store.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.Student{Name: "Alice", Age: 20}, alice)

	bob, err := store.GetStudentByID(2)
	require.NoError(t, err)
	assert.Equal(t, types.Student{Name: "Bob", Age: 22}, bob)

	charlie, err := store.GetStudentByID(3)
	require.NoError(t, err)
	assert.Equal(t, types.Student{Name: "Charlie", Age: 23}, charlie)
}

func TestGetStudentByIDMiss(t *testing.T) {
	store := New()

	_, err := store.GetStudentByID(99)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestCreateStudent(t *testing.T) {
	store := New()

	david := types.Student{Name: "David", Age: 21}
	require.NoError(t, store.CreateStudent(4, david))

	got, err := store.GetStudentByID(4)
	require.NoError(t, err)
	assert.Equal(t, david, got)
}

func TestCreateStudentDuplicateID(t *testing.T) {
	store := New()

	err := store.CreateStudent(1, types.Student{Name: "X", Age: 1})
	assert.ErrorIs(t, err, storage.ErrStudentExists)

	// The existing record must be untouched.
	got, err := store.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.Student{Name: "Alice", Age: 20}, got)
}

func TestUpdateStudent(t *testing.T) {
	store := New()

	updated := types.Student{Name: "Alice Smith", Age: 21}
	require.NoError(t, store.UpdateStudent(1, updated))

	got, err := store.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateStudentIdempotent(t *testing.T) {
	store := New()

	updated := types.Student{Name: "Alice Smith", Age: 21}
	require.NoError(t, store.UpdateStudent(1, updated))
	require.NoError(t, store.UpdateStudent(1, updated))

	got, err := store.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateStudentMiss(t *testing.T) {
	store := New()

	err := store.UpdateStudent(99, types.Student{Name: "Ghost", Age: 1})
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestSearchStudentsAll(t *testing.T) {
	store := New()

	students, err := store.SearchStudents("")
	require.NoError(t, err)

	// Ordered by ascending ID.
	assert.Equal(t, []types.Student{
		{Name: "Alice", Age: 20},
		{Name: "Bob", Age: 22},
		{Name: "Charlie", Age: 23},
	}, students)
}

func TestSearchStudentsCaseInsensitiveSubstring(t *testing.T) {
	store := New()

	students, err := store.SearchStudents("ali")
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{Name: "Alice", Age: 20}}, students)

	students, err = store.SearchStudents("LIE")
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{Name: "Charlie", Age: 23}}, students)
}

func TestSearchStudentsNoMatch(t *testing.T) {
	store := New()

	students, err := store.SearchStudents("zelda")
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}
