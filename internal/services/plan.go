package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// SettingsRepository defines persistence operations for user settings.
type SettingsRepository interface {
	Get(ctx context.Context, userID int) (types.UserSettings, error)
	GetOrCreate(ctx context.Context, userID int, def types.UserSettings) (types.UserSettings, error)
	Put(ctx context.Context, settings types.UserSettings) (types.UserSettings, error)
}

// PlanService manages weekly plans and resolves today's plan.
type PlanService struct {
	repo SettingsRepository
	now  func() time.Time
}

func NewPlanService(repo SettingsRepository) *PlanService {
	return &PlanService{repo: repo, now: time.Now}
}

func (s *PlanService) WithClock(now func() time.Time) *PlanService {
	s.now = now
	return s
}

// GetSettings returns the user's settings, persisting the defaults on first access.
func (s *PlanService) GetSettings(ctx context.Context, userID int) (types.UserSettings, error) {
	return s.repo.GetOrCreate(ctx, userID, types.DefaultSettings(userID))
}

// UpdateSettings replaces the user's settings wholesale.
func (s *PlanService) UpdateSettings(ctx context.Context, userID int, settings types.UserSettings) (types.UserSettings, error) {
	settings.UserID = userID
	return s.repo.Put(ctx, settings)
}

// ResolveToday returns the plan for the current weekday. Without settings
// the plan is empty and unlabeled, and nothing is persisted.
func (s *PlanService) ResolveToday(ctx context.Context, userID int) (types.TodayPlan, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return emptyPlan(""), nil
		}
		return types.TodayPlan{}, err
	}

	day := types.WeekdayOf(s.now())
	plan := emptyPlan(day)
	if dayPlan, ok := settings.WeeklyPlan[day]; ok {
		if dayPlan.Muscles != nil {
			plan.Muscles = dayPlan.Muscles
		}
		if dayPlan.Exercises != nil {
			plan.Exercises = dayPlan.Exercises
		}
	}
	for _, rest := range settings.Preferences.RestDays {
		if strings.EqualFold(rest, string(day)) {
			plan.RestDay = true
			break
		}
	}
	return plan, nil
}

func emptyPlan(day types.Weekday) types.TodayPlan {
	return types.TodayPlan{
		Day:       day,
		Muscles:   []string{},
		Exercises: []types.ExerciseID{},
	}
}
