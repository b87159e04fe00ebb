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

type redisSessionStore struct {
	rdb         *redis.Client
	idleTimeout time.Duration
}

// NewRedisSessionStore keeps sessions under a sliding idle TTL. Every Get
// re-arms the expiry, so a session dies only after idleTimeout without any
// authenticated request — the server-side version of the web client's
// inactivity logout.
func NewRedisSessionStore(rdb *redis.Client, idleTimeout time.Duration) session.Store {
	return &redisSessionStore{rdb: rdb, idleTimeout: idleTimeout}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (s *redisSessionStore) Save(ctx context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return apperror.NewInternal("failed to encode session", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), raw, s.idleTimeout).Err(); err != nil {
		return apperror.NewInternal("failed to store session", err)
	}
	return nil
}

func (s *redisSessionStore) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	raw, err := s.rdb.GetEx(ctx, sessionKey(id), s.idleTimeout).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NewUnauthorized("session expired or unknown", nil)
		}
		return nil, apperror.NewInternal("failed to load session", err)
	}

	sess := &session.Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, apperror.NewInternal("failed to decode session", err)
	}
	return sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return apperror.NewInternal("failed to delete session", err)
	}
	return nil
}
