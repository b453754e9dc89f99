package types

import "time"

// Weekday is the name of a day of the week as used in weekly plans.
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays is Sunday-first, matching time.Weekday indexes.
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Valid reports whether d is one of the seven weekday names.
func (d Weekday) Valid() bool {
	for _, day := range Weekdays {
		if day == d {
			return true
		}
	}
	return false
}

// WeekdayOf returns the weekday name of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekdays[t.Weekday()]
}

// DefaultExercisesPerDay is the preference assigned to freshly created settings.
const DefaultExercisesPerDay = 5

// DayPlan is the intended training focus for one weekday.
type DayPlan struct {
	Muscles   []string     `json:"muscles"`
	Exercises []ExerciseID `json:"exercises"`
}

// Preferences holds per-user planning preferences.
type Preferences struct {
	ExercisesPerDay int      `json:"exercisesPerDay"`
	RestDays        []string `json:"restDays"`
}

// UserSettings is the single settings record of a user.
type UserSettings struct {
	UserID      int                 `json:"userId"`
	WeeklyPlan  map[Weekday]DayPlan `json:"weeklyPlan"`
	Preferences Preferences         `json:"preferences"`
}

// DefaultSettings returns an all-empty plan for every weekday.
func DefaultSettings(userID int) UserSettings {
	plan := make(map[Weekday]DayPlan, len(Weekdays))
	for _, day := range Weekdays {
		plan[day] = DayPlan{
			Muscles:   []string{},
			Exercises: []ExerciseID{},
		}
	}
	return UserSettings{
		UserID:     userID,
		WeeklyPlan: plan,
		Preferences: Preferences{
			ExercisesPerDay: DefaultExercisesPerDay,
			RestDays:        []string{},
		},
	}
}

// TodayPlan is the plan resolved for the current weekday.
// Day is empty when the user has no settings at all.
type TodayPlan struct {
	Day       Weekday      `json:"day,omitempty"`
	Muscles   []string     `json:"muscles"`
	Exercises []ExerciseID `json:"exercises"`
	RestDay   bool         `json:"restDay"`
}
