package types

import "time"

// Analytics aggregates a user's workout log at request time.
type Analytics struct {
	TotalWorkouts     int                        `json:"totalWorkouts"`
	TotalSets         int                        `json:"totalSets"`
	ExerciseFrequency map[string]int             `json:"exerciseFrequency"`
	VolumeOverTime    []DailyVolume              `json:"volumeOverTime"`
	StrengthProgress  map[string][]StrengthPoint `json:"strengthProgress"`
}

// DailyVolume is the load moved on one UTC calendar date.
type DailyVolume struct {
	// Date is the UTC date formatted as YYYY-MM-DD.
	Date     string `json:"date"`
	Volume   int    `json:"volume"`
	Workouts int    `json:"workouts"`
}

// StrengthPoint is the heaviest set weight of a single workout entry.
type StrengthPoint struct {
	Date   time.Time `json:"date"`
	Weight int       `json:"weight"`
}
