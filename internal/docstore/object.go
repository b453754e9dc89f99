package docstore

import (
	"context"
	"errors"

	"github.com/arjohnson15/workoutapp/internal/storage"
)

// ObjectStore keeps each collection as the object <prefix>/<collection>.json.
type ObjectStore struct {
	storage *storage.Storage
}

func NewObjectStore(s *storage.Storage) *ObjectStore {
	return &ObjectStore{storage: s}
}

func (s *ObjectStore) Read(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.storage.GetBytes(ctx, s.storage.Key(collection+".json"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return emptyArray, nil
		}
		return nil, err
	}
	return normalize(data), nil
}

func (s *ObjectStore) Write(ctx context.Context, collection string, data []byte) error {
	return s.storage.PutBytes(ctx, s.storage.Key(collection+".json"), data, "application/json")
}

func (s *ObjectStore) Close() error {
	return nil
}
