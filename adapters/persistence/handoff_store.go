package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

type redisHandoffStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisHandoffStore holds the notification→rating handoff payload for a
// short while. Take uses GETDEL so the payload is consumed exactly once,
// like the sessionStorage entry the web client cleared after reading.
func NewRedisHandoffStore(rdb *redis.Client, ttl time.Duration) session.HandoffStore {
	return &redisHandoffStore{rdb: rdb, ttl: ttl}
}

func handoffKey(sessionID uuid.UUID) string {
	return "handoff:rating:" + sessionID.String()
}

func (s *redisHandoffStore) Put(ctx context.Context, sessionID uuid.UUID, h *session.RatingHandoff) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return apperror.NewInternal("failed to encode rating handoff", err)
	}
	if err := s.rdb.Set(ctx, handoffKey(sessionID), raw, s.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to store rating handoff", err)
	}
	return nil
}

func (s *redisHandoffStore) Take(ctx context.Context, sessionID uuid.UUID) (*session.RatingHandoff, error) {
	raw, err := s.rdb.GetDel(ctx, handoffKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to take rating handoff", err)
	}

	h := &session.RatingHandoff{}
	if err := json.Unmarshal(raw, h); err != nil {
		return nil, apperror.NewInternal("failed to decode rating handoff", err)
	}
	return h, nil
}
