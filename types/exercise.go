package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ExerciseType distinguishes how the sets of an exercise are measured.
type ExerciseType string

const (
	ExerciseTypeStrength ExerciseType = "strength"
	ExerciseTypeCardio   ExerciseType = "cardio"
)

// ExerciseID identifies a catalog exercise.
// Seeded entries use integers, remote catalog and custom entries use strings,
// so the value is kept as text and numeric ids round-trip as JSON numbers.
type ExerciseID string

// IsNumeric reports whether the id is an integer in canonical form, so that
// "7" is numeric while "007" and "+7" are not.
func (id ExerciseID) IsNumeric() bool {
	n, err := strconv.Atoi(string(id))
	return err == nil && strconv.Itoa(n) == string(id)
}

func (id ExerciseID) String() string {
	return string(id)
}

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id ExerciseID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ExerciseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExerciseID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errors.New("exercise id must be a number or a string")
		}
		*id = ExerciseID(n.String())
		return nil
	}
}

// Exercise is a single catalog definition.
type Exercise struct {
	// ID is an integer for seeded entries and a string for remote or custom ones.
	ID ExerciseID `json:"id"`

	// Name is the display name of the exercise.
	Name string `json:"name"`

	// Category groups exercises (e.g. "Chest", "Cardio", "strength").
	Category string `json:"category"`

	// PrimaryMuscles lists the muscles mainly targeted by the exercise.
	PrimaryMuscles []string `json:"primaryMuscles,omitempty"`

	// SecondaryMuscles lists supporting muscles, when the catalog provides them.
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`

	// Equipment names the gear required, if any.
	Equipment string `json:"equipment,omitempty"`

	// Type decides whether sets are measured as reps/weight or time/distance.
	Type ExerciseType `json:"type,omitempty"`

	Level        string   `json:"level,omitempty"`
	Force        string   `json:"force,omitempty"`
	Mechanic     string   `json:"mechanic,omitempty"`
	Instructions []string `json:"instructions,omitempty"`

	// IsCustom marks user-submitted entries. Only custom entries are mutable.
	IsCustom bool `json:"isCustom,omitempty"`

	// CreatedBy is the owning user id of a custom entry.
	CreatedBy *int `json:"createdBy,omitempty"`
}

// HasMuscle reports whether muscle is one of the primary muscles, ignoring case.
func (e Exercise) HasMuscle(muscle string) bool {
	for _, m := range e.PrimaryMuscles {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	return false
}

// OwnedBy reports whether the exercise is a custom entry created by userID.
func (e Exercise) OwnedBy(userID int) bool {
	return e.IsCustom && e.CreatedBy != nil && *e.CreatedBy == userID
}

// ExerciseFields carries the caller-supplied fields of a custom exercise.
// Nil fields are left untouched when merged over an existing record.
type ExerciseFields struct {
	Name             *string       `json:"name"`
	Category         *string       `json:"category"`
	PrimaryMuscles   []string      `json:"primaryMuscles"`
	SecondaryMuscles []string      `json:"secondaryMuscles"`
	Equipment        *string       `json:"equipment"`
	Type             *ExerciseType `json:"type"`
	Level            *string       `json:"level"`
	Force            *string       `json:"force"`
	Mechanic         *string       `json:"mechanic"`
	Instructions     []string      `json:"instructions"`
}

// Apply merges the provided fields over ex.
func (f ExerciseFields) Apply(ex *Exercise) {
	if f.Name != nil {
		ex.Name = *f.Name
	}
	if f.Category != nil {
		ex.Category = *f.Category
	}
	if f.PrimaryMuscles != nil {
		ex.PrimaryMuscles = f.PrimaryMuscles
	}
	if f.SecondaryMuscles != nil {
		ex.SecondaryMuscles = f.SecondaryMuscles
	}
	if f.Equipment != nil {
		ex.Equipment = *f.Equipment
	}
	if f.Type != nil {
		ex.Type = *f.Type
	}
	if f.Level != nil {
		ex.Level = *f.Level
	}
	if f.Force != nil {
		ex.Force = *f.Force
	}
	if f.Mechanic != nil {
		ex.Mechanic = *f.Mechanic
	}
	if f.Instructions != nil {
		ex.Instructions = f.Instructions
	}
}
