package docstore

import (
	"context"
	"fmt"

	"github.com/arjohnson15/workoutapp/config"
	"github.com/arjohnson15/workoutapp/internal/db"
	"github.com/arjohnson15/workoutapp/internal/storage"
	"github.com/go-redis/redis/v8"
)

// Open builds the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return NewFileStore(cfg.DataDir)
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		conn, err := db.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return NewPostgresStore(conn), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	case "minio", "gcs":
		storageCfg := cfg.Storage
		storageCfg.Backend = cfg.StoreBackend
		s, err := storage.Open(ctx, storageCfg)
		if err != nil {
			return nil, fmt.Errorf("open object storage: %w", err)
		}
		return NewObjectStore(s), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
