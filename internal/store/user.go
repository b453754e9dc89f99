package store

import (
	"context"
	"time"

	"github.com/arjohnson15/workoutapp/internal/docstore"
	"github.com/arjohnson15/workoutapp/types"
)

// userRecord is the persisted shape of a user. Unlike types.User it carries
// the password hash.
type userRecord struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r userRecord) toUser() types.User {
	return types.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
	}
}

// UserRepository handles persistence for users.
type UserRepository struct {
	users *docstore.Collection[userRecord]
	ids   *sequence
}

func NewUserRepository(s docstore.Store) *UserRepository {
	return &UserRepository{
		users: docstore.NewCollection[userRecord](s, docstore.Users),
		ids:   newSequence(s, docstore.Users),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	records, err := r.users.All(ctx)
	if err != nil {
		return types.User{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.toUser(), nil
		}
	}
	return types.User{}, ErrNotFound
}

// GetByUsername matches usernames case-sensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	records, err := r.users.All(ctx)
	if err != nil {
		return types.User{}, err
	}
	for _, rec := range records {
		if rec.Username == username {
			return rec.toUser(), nil
		}
	}
	return types.User{}, ErrNotFound
}

// Create assigns the next sequential id and stores the user. It fails with
// ErrDuplicateUsername when the username is taken.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	err := r.users.Update(ctx, func(records []userRecord) ([]userRecord, error) {
		for _, rec := range records {
			if rec.Username == user.Username {
				return nil, ErrDuplicateUsername
			}
		}
		id, err := r.ids.next(ctx, nextID(records, func(rec userRecord) int { return rec.ID }))
		if err != nil {
			return nil, err
		}
		user.ID = id
		return append(records, userRecord{
			ID:        user.ID,
			Username:  user.Username,
			Password:  user.PasswordHash,
			CreatedAt: user.CreatedAt,
		}), nil
	})
	if err != nil {
		return types.User{}, err
	}
	return user, nil
}
