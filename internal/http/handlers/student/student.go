// Package student contains the HTTP handlers for the student resource.
//
// Handlers use the closure/factory pattern: each exported function takes
// its dependencies (the storage backend) and returns the
// http.HandlerFunc the router registers. The factory runs once at
// startup; the returned closure runs on every request.
//
//	r.Post("/{id}", student.Create(storage))
//
// Every handler validates its input fully before touching the store, so
// a failed request never leaves a partial write behind.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kmathur/student-registry/internal/storage"
	"github.com/kmathur/student-registry/internal/types"
	"github.com/kmathur/student-registry/internal/utils/response"
)

// Client-facing error messages fixed by the API contract.
const (
	detailNotFound = "Student not found"
	detailConflict = "Student ID already exists"
)

// validate is shared across requests; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// studentPayload is the request-body shape for create and update. Age
// is a pointer so a missing field is distinguishable from an explicit
// zero: both fields must be present in the body, but "age": 0 is a
// valid value.
type studentPayload struct {
	Name string `json:"name" validate:"required"`
	Age  *int   `json:"age"  validate:"required"`
}

// parseID extracts and checks the {id} path parameter. Both a
// non-integer value and a non-positive one are input-schema violations,
// reported as 422 before any handler logic runs.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Detail(w, http.StatusUnprocessableEntity,
			"invalid id: must be an integer")
		return 0, false
	}
	if id <= 0 {
		response.Detail(w, http.StatusUnprocessableEntity,
			"invalid id: must be greater than zero")
		return 0, false
	}

	return id, true
}

// decodeStudent reads and validates the request body. On failure it has
// already written the 422 response and returns ok=false.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var payload studentPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if errors.Is(err, io.EOF) {
		response.Detail(w, http.StatusUnprocessableEntity, "request body is empty")
		return types.Student{}, false
	}
	if err != nil {
		response.Detail(w, http.StatusUnprocessableEntity,
			"invalid request body: "+err.Error())
		return types.Student{}, false
	}

	if err := validate.Struct(payload); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		response.ValidationDetail(w, validateErrs)
		return types.Student{}, false
	}

	return types.Student{Name: payload.Name, Age: *payload.Age}, true
}

// Welcome handles GET /. Always the same payload, no side effects.
func Welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK,
			map[string]string{"message": "Hello, World!"})
	}
}

// GetByID handles GET /students/{id}.
//
// Success (200) returns the bare record, not an envelope:
//
//	{ "name": "Alice", "age": 20 }
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		slog.Info("getting a student", slog.Int64("id", id))

		student, err := store.GetStudentByID(id)
		if err != nil {
			writeStoreError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Search handles GET /students/search?name=...
//
// With a name, matches case-insensitively on substrings and 404s when
// nothing matches. Without one, returns every record — an empty store
// yields {"data": []}, never an error.
func Search(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		slog.Info("searching students", slog.String("name", name))

		students, err := store.SearchStudents(name)
		if err != nil {
			slog.Error("error searching students", slog.String("error", err.Error()))
			response.Detail(w, http.StatusInternalServerError, "storage failure")
			return
		}

		if name != "" && len(students) == 0 {
			response.Detail(w, http.StatusNotFound,
				fmt.Sprintf("No students found with name: %s", name))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.List{Data: students})
	}
}

// Create handles POST /students/{id}.
//
// A duplicate ID fails with 400 regardless of the body, and the stored
// record is left untouched. The duplicate check lives inside the store,
// so concurrent creates against the same ID serialize there.
func Create(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		slog.Info("creating a student", slog.Int64("id", id))

		if err := store.CreateStudent(id, student); err != nil {
			if errors.Is(err, storage.ErrStudentExists) {
				response.Detail(w, http.StatusBadRequest, detailConflict)
				return
			}
			slog.Error("error creating student",
				slog.Int64("id", id), slog.String("error", err.Error()))
			response.Detail(w, http.StatusInternalServerError, "storage failure")
			return
		}

		slog.Info("student created", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{
			Message: "Student created successfully",
			Data:    student,
		})
	}
}

// Update handles PUT /students/{id}.
//
// Replaces the record wholesale — no field merging. Updating an ID that
// was never written is a 404. Idempotent: repeating the same PUT leaves
// the same stored record.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		slog.Info("updating a student", slog.Int64("id", id))

		if err := store.UpdateStudent(id, student); err != nil {
			writeStoreError(w, id, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{
			Message: "Student updated successfully",
			Data:    student,
		})
	}
}

// writeStoreError maps storage errors from get/update to HTTP
// responses: a miss is a 404 with the contract message, anything else
// is a 500.
func writeStoreError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, storage.ErrStudentNotFound) {
		response.Detail(w, http.StatusNotFound, detailNotFound)
		return
	}
	slog.Error("storage error",
		slog.Int64("id", id), slog.String("error", err.Error()))
	response.Detail(w, http.StatusInternalServerError, "storage failure")
}
