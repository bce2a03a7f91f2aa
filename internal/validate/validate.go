// Package validate checks person drafts and converts raw form text into
// typed fields.
package validate

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rcliao/persondir/internal/model"
)

// Field names used as keys in Errors.
const (
	FieldID   = "id"
	FieldName = "name"
	FieldAge  = "age"
)

// Messages reported per field.
const (
	MsgID   = "ID must be a positive integer"
	MsgName = "Name must have at least 2 characters"
	MsgAge  = "Age must be a non-negative integer"
)

// MinNameLength is the minimum trimmed name length, in characters.
const MinNameLength = 2

var (
	ErrNotNumber    = errors.New("not a number")
	ErrNotInteger   = errors.New("not an integer")
	ErrOutOfRange   = errors.New("out of range")
	ErrNameTooShort = errors.New("name too short")
)

// Errors maps a field name to its error message. A field without a key is
// valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// ParseNumber coerces raw input into a number. Surrounding white space is
// ignored; anything else that is not a finite decimal number fails.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrNotNumber
	}
	// ParseFloat also knows "inf", "nan" and hex floats; none of them are
	// plain decimal input.
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "x") {
		return 0, ErrNotNumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotNumber
	}
	return f, nil
}

// ParseInt coerces raw input into an integer no smaller than min.
func ParseInt(raw string, min int) (int, error) {
	f, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, ErrNotInteger
	}
	if f < float64(min) || f > math.MaxInt32 {
		return 0, ErrOutOfRange
	}
	return int(f), nil
}

// ParseAge parses a non-negative integer age.
func ParseAge(raw string) (int, error) {
	return ParseInt(raw, 0)
}

// ParseID parses a positive integer id.
func ParseID(raw string) (int, error) {
	return ParseInt(raw, 1)
}

// ParseName trims the name and checks its length.
func ParseName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < MinNameLength {
		return "", ErrNameTooShort
	}
	return name, nil
}

// Create checks the fields of a create draft. The id is not looked at.
func Create(d model.Draft) Errors {
	errs := Errors{}
	if _, err := ParseName(d.Name); err != nil {
		errs[FieldName] = MsgName
	}
	if _, err := ParseAge(d.Age); err != nil {
		errs[FieldAge] = MsgAge
	}
	return errs
}

// Edit checks the fields of an edit draft, id included.
func Edit(d model.Draft) Errors {
	errs := Create(d)
	if _, err := ParseID(d.ID); err != nil {
		errs[FieldID] = MsgID
	}
	return errs
}

// NewPerson converts a draft that passed Create into a payload.
func NewPerson(d model.Draft) (model.NewPerson, error) {
	name, err := ParseName(d.Name)
	if err != nil {
		return model.NewPerson{}, err
	}
	age, err := ParseAge(d.Age)
	if err != nil {
		return model.NewPerson{}, err
	}
	return model.NewPerson{Name: name, Age: age}, nil
}

// Person converts a draft that passed Edit into a full record.
func Person(d model.Draft) (model.Person, error) {
	id, err := ParseID(d.ID)
	if err != nil {
		return model.Person{}, err
	}
	np, err := NewPerson(d)
	if err != nil {
		return model.Person{}, err
	}
	return model.Person{ID: id, Name: np.Name, Age: np.Age}, nil
}
