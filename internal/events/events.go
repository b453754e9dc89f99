// Package events publishes workout lifecycle events to the message queue.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjohnson15/workoutapp/internal/mq"
	"github.com/arjohnson15/workoutapp/types"
)

type Type string

const (
	WorkoutLogged  Type = "workout.logged"
	WorkoutDeleted Type = "workout.deleted"
)

// WorkoutEvent describes a change to a user's workout log.
type WorkoutEvent struct {
	Type         Type             `json:"type"`
	WorkoutID    int              `json:"workoutId"`
	UserID       int              `json:"userId"`
	ExerciseID   types.ExerciseID `json:"exerciseId"`
	ExerciseName string           `json:"exerciseName"`
	Sets         int              `json:"sets"`
	Volume       int              `json:"volume"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

// NewWorkoutEvent summarizes entry as an event of type t.
func NewWorkoutEvent(t Type, entry types.WorkoutEntry, at time.Time) WorkoutEvent {
	volume := 0
	if entry.Kind() == types.ExerciseTypeStrength {
		for _, set := range entry.Sets {
			volume += set.Volume()
		}
	}
	return WorkoutEvent{
		Type:         t,
		WorkoutID:    entry.ID,
		UserID:       entry.UserID,
		ExerciseID:   entry.ExerciseID,
		ExerciseName: entry.ExerciseName,
		Sets:         len(entry.Sets),
		Volume:       volume,
		OccurredAt:   at,
	}
}

// Publisher sends events to a single queue channel.
type Publisher struct {
	queue   *mq.MQ
	channel string
}

func NewPublisher(queue *mq.MQ, channel string) *Publisher {
	return &Publisher{queue: queue, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, event WorkoutEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	attrs := map[string]string{
		"type":   string(event.Type),
		"userId": fmt.Sprint(event.UserID),
	}
	if _, err := p.queue.Publish(ctx, p.channel, data, attrs); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Decode parses a message produced by Publisher.
func Decode(msg mq.Message) (WorkoutEvent, error) {
	var event WorkoutEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		return WorkoutEvent{}, fmt.Errorf("decode event %s: %w", msg.ID, err)
	}
	return event, nil
}
