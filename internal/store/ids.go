package store

import (
	"context"

	"github.com/arjohnson15/workoutapp/internal/docstore"
)

// nextID returns max(ids)+1, or 1 for an empty collection.
func nextID[T any](records []T, id func(T) int) int {
	next := 1
	for _, r := range records {
		if v := id(r); v >= next {
			next = v + 1
		}
	}
	return next
}

type counter struct {
	Name string `json:"name"`
	Last int    `json:"last"`
}

// sequence hands out increasing ids for one collection. The last issued id
// is persisted, so ids freed by deletions are never handed out again.
type sequence struct {
	name     string
	counters *docstore.Collection[counter]
}

func newSequence(s docstore.Store, name string) *sequence {
	return &sequence{name: name, counters: docstore.NewCollection[counter](s, docstore.Sequences)}
}

// next returns an id above the last issued one and never below floor.
// Callers pass max+1 of the live records as floor so data written without a
// counter stays collision free.
func (q *sequence) next(ctx context.Context, floor int) (int, error) {
	var id int
	err := q.counters.Update(ctx, func(counters []counter) ([]counter, error) {
		for i := range counters {
			if counters[i].Name == q.name {
				id = max(counters[i].Last+1, floor)
				counters[i].Last = id
				return counters, nil
			}
		}
		id = max(1, floor)
		return append(counters, counter{Name: q.name, Last: id}), nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
