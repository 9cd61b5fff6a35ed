package roster

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// Redis keys mirror the browser-storage slots the save data came from.
const (
	redisKeyRosters        = "rosters"
	redisKeyActive         = "activeRosterName"
	redisKeyExportSettings = "imageExportSettings"
)

// RedisStore persists the roster collection in a Redis hash plus two
// plain keys, for deployments where the service runs stateless.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client. Ping it before serving.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load reads the snapshot. Absent keys yield an empty snapshot.
func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	snap := NewSnapshot()

	entries, err := s.rdb.HGetAll(ctx, redisKeyRosters).Result()
	if err != nil {
		return nil, err
	}
	for name, rec := range entries {
		snap.Rosters[name] = json.RawMessage(rec)
	}

	active, err := s.rdb.Get(ctx, redisKeyActive).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	snap.Active = active

	settings, err := s.rdb.Get(ctx, redisKeyExportSettings).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if settings != "" {
		snap.ExportSettings = json.RawMessage(settings)
	}

	return snap, nil
}

// Save replaces the stored snapshot atomically via a pipeline.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, redisKeyRosters)
	if len(snap.Rosters) > 0 {
		fields := make(map[string]interface{}, len(snap.Rosters))
		for name, rec := range snap.Rosters {
			fields[name] = string(rec)
		}
		pipe.HSet(ctx, redisKeyRosters, fields)
	}
	pipe.Set(ctx, redisKeyActive, snap.Active, 0)
	if snap.ExportSettings != nil {
		pipe.Set(ctx, redisKeyExportSettings, string(snap.ExportSettings), 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}
