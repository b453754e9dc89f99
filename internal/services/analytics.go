package services

import (
	"context"
	"sort"
	"time"

	"github.com/arjohnson15/workoutapp/types"
)

// VolumeWindow bounds the history considered by volume-over-time.
const VolumeWindow = 30 * 24 * time.Hour

const dateLayout = "2006-01-02"

// WorkoutLister lists a user's workout entries.
type WorkoutLister interface {
	ListByUser(ctx context.Context, userID int) ([]types.WorkoutEntry, error)
}

// AnalyticsService derives statistics from a user's workout log on demand.
type AnalyticsService struct {
	workouts WorkoutLister
	now      func() time.Time
}

func NewAnalyticsService(workouts WorkoutLister) *AnalyticsService {
	return &AnalyticsService{workouts: workouts, now: time.Now}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) Compute(ctx context.Context, userID int) (types.Analytics, error) {
	entries, err := s.workouts.ListByUser(ctx, userID)
	if err != nil {
		return types.Analytics{}, err
	}
	return BuildAnalytics(entries, s.now()), nil
}

// BuildAnalytics aggregates entries as of now.
//
// Totals and frequencies cover the full history. Volume covers entries dated
// no earlier than now minus VolumeWindow, grouped by UTC date. Strength
// progress records the heaviest positive set weight of every strength entry
// in log order. Cardio entries add to totals but not to volume or progress.
func BuildAnalytics(entries []types.WorkoutEntry, now time.Time) types.Analytics {
	result := types.Analytics{
		ExerciseFrequency: make(map[string]int),
		VolumeOverTime:    make([]types.DailyVolume, 0),
		StrengthProgress:  make(map[string][]types.StrengthPoint),
	}

	windowStart := now.Add(-VolumeWindow)
	byDate := make(map[string]*types.DailyVolume)

	for _, e := range entries {
		result.TotalWorkouts++
		result.TotalSets += len(e.Sets)
		result.ExerciseFrequency[e.ExerciseName]++

		strength := e.Kind() == types.ExerciseTypeStrength

		if !e.Date.Before(windowStart) {
			key := e.Date.UTC().Format(dateLayout)
			day, ok := byDate[key]
			if !ok {
				day = &types.DailyVolume{Date: key}
				byDate[key] = day
			}
			day.Workouts++
			if strength {
				for _, set := range e.Sets {
					day.Volume += set.Volume()
				}
			}
		}

		if !strength {
			continue
		}
		maxWeight := 0
		for _, set := range e.Sets {
			if w, ok := set.Weight.Int(); ok && w > maxWeight {
				maxWeight = w
			}
		}
		if maxWeight > 0 {
			result.StrengthProgress[e.ExerciseName] = append(result.StrengthProgress[e.ExerciseName], types.StrengthPoint{
				Date:   e.Date,
				Weight: maxWeight,
			})
		}
	}

	for _, day := range byDate {
		result.VolumeOverTime = append(result.VolumeOverTime, *day)
	}
	sort.Slice(result.VolumeOverTime, func(i, j int) bool {
		return result.VolumeOverTime[i].Date < result.VolumeOverTime[j].Date
	})
	return result
}
