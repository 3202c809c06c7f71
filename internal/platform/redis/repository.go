package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"segmentation-service/internal/segmentation"

	"github.com/redis/go-redis/v9"
)

const recentKey = "strategies:recent"

type Repository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRepository builds a strategy cache. A zero ttl keeps entries forever.
func NewRepository(rdb *redis.Client, ttl time.Duration) *Repository {
	return &Repository{rdb: rdb, ttl: ttl}
}

func strategyKey(id string) string {
	return fmt.Sprintf("strategy:%s", id)
}

// GetStrategy returns the cached strategy, or nil when it is not cached.
func (r *Repository) GetStrategy(ctx context.Context, id string) (*segmentation.SavedStrategy, error) {
	val, err := r.rdb.Get(ctx, strategyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy %s: %w", id, err)
	}

	var st segmentation.SavedStrategy
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("failed to decode cached strategy %s: %w", id, err)
	}
	return &st, nil
}

// RecentStrategyIDs lists cached strategy ids, newest first (ZSET scored by
// creation time).
func (r *Repository) RecentStrategyIDs(ctx context.Context, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := r.rdb.ZRevRange(ctx, recentKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent strategies: %w", err)
	}
	return ids, nil
}

// SaveStrategy writes the strategy payload and indexes it by creation time.
func (r *Repository) SaveStrategy(ctx context.Context, st *segmentation.SavedStrategy) error {
	bytes, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode strategy %s: %w", st.ID, err)
	}

	pipe := r.rdb.Pipeline()
	pipe.Set(ctx, strategyKey(st.ID), bytes, r.ttl)
	pipe.ZAdd(ctx, recentKey, redis.Z{Score: float64(st.CreatedAt.Unix()), Member: st.ID})
	if r.ttl > 0 {
		// drop index entries whose payload has certainly expired
		cutoff := time.Now().Add(-r.ttl).Unix()
		pipe.ZRemRangeByScore(ctx, recentKey, "-inf", fmt.Sprintf("(%d", cutoff))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repository) RemoveStrategy(ctx context.Context, id string) error {
	pipe := r.rdb.Pipeline()
	pipe.ZRem(ctx, recentKey, id)
	pipe.Del(ctx, strategyKey(id))
	_, err := pipe.Exec(ctx)
	return err
}
