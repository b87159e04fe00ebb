package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

const (
	activityMaxEntries = 50
	activityTTL        = 30 * 24 * time.Hour
)

type redisActivityStore struct {
	rdb *redis.Client
}

// NewRedisActivityStore keeps a capped per-user list of recent contract and
// rating events, written by the worker and read by the news feed endpoint.
func NewRedisActivityStore(rdb *redis.Client) session.ActivityStore {
	return &redisActivityStore{rdb: rdb}
}

func activityKey(userID string) string {
	return "activity:" + userID
}

func (s *redisActivityStore) Append(ctx context.Context, userID string, entry *session.ActivityEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return apperror.NewInternal("failed to encode activity entry", err)
	}

	key := activityKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, activityMaxEntries-1)
	pipe.Expire(ctx, key, activityTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewInternal("failed to append activity entry", err)
	}
	return nil
}

func (s *redisActivityStore) Recent(ctx context.Context, userID string, limit int) ([]session.ActivityEntry, error) {
	if limit <= 0 || limit > activityMaxEntries {
		limit = activityMaxEntries
	}

	raws, err := s.rdb.LRange(ctx, activityKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read activity feed", err)
	}

	out := make([]session.ActivityEntry, 0, len(raws))
	for _, raw := range raws {
		var e session.ActivityEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
