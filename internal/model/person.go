// Package model defines the core person directory data types.
package model

import "strconv"

// Person is a record held by the remote store.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// NewPerson is the create payload. The remote store assigns the id.
type NewPerson struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// Draft is the raw, unvalidated text of a form.
type Draft struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Age  string `json:"age"`
}

// DraftOf prefills a draft from an existing person.
func DraftOf(p Person) Draft {
	return Draft{
		ID:   strconv.Itoa(p.ID),
		Name: p.Name,
		Age:  strconv.Itoa(p.Age),
	}
}

// IsZero reports whether every field of the draft is empty.
func (d Draft) IsZero() bool {
	return d == Draft{}
}

// Status is the single global status slot shown to the user.
type Status struct {
	Message string `json:"message"`
	IsError bool   `json:"is_error"`
}

// ReadyStatus is the status before any action ran.
var ReadyStatus = Status{Message: "Ready"}
