// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success bodies vary by route (a record, a data list, a message+data
// envelope), but every error response has the same shape:
//
//	{ "detail": "Student not found" }
//
// Centralising the write logic here keeps the header/status/body
// ordering correct in one place.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is the standard body for every non-2xx response.
type Error struct {
	Detail string `json:"detail"`
}

// Message wraps a mutation result: a human-readable confirmation plus
// the record as stored.
type Message struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// List wraps search results.
type List struct {
	Data any `json:"data"`
}

// WriteJSON writes data as a JSON body with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body. Once WriteHeader is
// called the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Detail writes an error response with the given status and detail
// message.
func Detail(w http.ResponseWriter, status int, detail string) error {
	return WriteJSON(w, status, Error{Detail: detail})
}

// ValidationDetail converts validator field errors into a single
// human-readable detail string and writes it as a 422.
//
// Example body:
//
//	{ "detail": "field Name is required" }
func ValidationDetail(w http.ResponseWriter, errs validator.ValidationErrors) error {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Detail(w, http.StatusUnprocessableEntity, strings.Join(msgs, ", "))
}
