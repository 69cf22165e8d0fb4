// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// handlers and storage can both import types without depending on
// each other.
package types

// Student is the stored record. It deliberately carries no ID field:
// identity lives in the store key (a positive integer supplied by the
// client in the URL), so the JSON body is just name and age.
//
// Field constraints (non-empty name, age present in request bodies)
// are enforced at the handler boundary before a Student is ever
// constructed; by the time one reaches storage it is valid.
type Student struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}
