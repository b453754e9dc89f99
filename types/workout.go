package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// WorkoutEntry is one logged performance of a single exercise.
type WorkoutEntry struct {
	// ID is unique across all users.
	ID int `json:"id"`

	// UserID identifies the owner of the entry.
	UserID int `json:"userId"`

	// ExerciseID references the catalog entry. It is not validated.
	ExerciseID ExerciseID `json:"exerciseId"`

	// ExerciseName is a denormalized copy of the exercise name at log time.
	ExerciseName string `json:"exerciseName"`

	// Type tags the measurement shape of the sets. Empty means "infer from sets".
	Type ExerciseType `json:"type,omitempty"`

	// Sets holds the ordered measurements of the session.
	Sets []Set `json:"sets"`

	// Notes is free text attached by the user.
	Notes string `json:"notes,omitempty"`

	// Date is the server-assigned creation timestamp.
	Date time.Time `json:"date"`
}

// Kind returns the measurement shape of the entry.
func (w WorkoutEntry) Kind() ExerciseType {
	if w.Type != "" {
		return w.Type
	}
	for _, set := range w.Sets {
		if kind := set.Kind(); kind != "" {
			return kind
		}
	}
	return ExerciseTypeStrength
}

// Set is one measurement record within a workout entry: reps/weight for
// strength work or time/distance for cardio.
type Set struct {
	Reps     *Measurement `json:"reps,omitempty"`
	Weight   *Measurement `json:"weight,omitempty"`
	Time     *Measurement `json:"time,omitempty"`
	Distance *Measurement `json:"distance,omitempty"`
}

// StrengthSet builds a reps/weight set.
func StrengthSet(reps, weight int) Set {
	return Set{Reps: IntMeasurement(reps), Weight: IntMeasurement(weight)}
}

// CardioSet builds a time/distance set.
func CardioSet(time, distance int) Set {
	return Set{Time: IntMeasurement(time), Distance: IntMeasurement(distance)}
}

// Kind reports which variant the set holds, or "" for an empty set.
func (s Set) Kind() ExerciseType {
	switch {
	case s.Reps != nil || s.Weight != nil:
		return ExerciseTypeStrength
	case s.Time != nil || s.Distance != nil:
		return ExerciseTypeCardio
	default:
		return ""
	}
}

// Volume is reps*weight when both fields are present and parse as integers.
func (s Set) Volume() int {
	reps, ok := s.Reps.Int()
	if !ok {
		return 0
	}
	weight, ok := s.Weight.Int()
	if !ok {
		return 0
	}
	return reps * weight
}

// Measurement is a single set field as sent by the client: usually a JSON
// number or a string such as "100" or "100kg". Any other JSON value is kept
// verbatim and never parses as an integer.
type Measurement struct {
	raw    string
	quoted bool
}

// IntMeasurement wraps an integer value.
func IntMeasurement(v int) *Measurement {
	return &Measurement{raw: strconv.Itoa(v)}
}

// TextMeasurement wraps a free-form string value.
func TextMeasurement(s string) *Measurement {
	return &Measurement{raw: s, quoted: true}
}

// Int parses the leading integer of the measurement, the way lenient clients
// read "100kg" as 100 and 102.5 as 102. A nil measurement is not parseable.
func (m *Measurement) Int() (int, bool) {
	if m == nil {
		return 0, false
	}
	if !m.quoted {
		f, err := strconv.ParseFloat(m.raw, 64)
		if err != nil || math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
			return 0, false
		}
		return int(f), true
	}
	return leadingInt(m.raw)
}

func (m *Measurement) String() string {
	if m == nil {
		return ""
	}
	return m.raw
}

// MarshalJSON writes the value back in its original JSON form.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if m.quoted {
		return json.Marshal(m.raw)
	}
	return []byte(m.raw), nil
}

// UnmarshalJSON accepts any JSON value.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty measurement")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Measurement{raw: s, quoted: true}
		return nil
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}
	*m = Measurement{raw: compact.String()}
	return nil
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
