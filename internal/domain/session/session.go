package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
)

// Session is the server-side record for one logged-in client. It carries the
// upstream bearer token so clients only ever hold the gateway's own JWT.
type Session struct {
	ID            uuid.UUID    `json:"id"`
	UserID        string       `json:"user_id"`
	ProfileID     string       `json:"profile_id"`
	Role          profile.Role `json:"role"`
	Name          string       `json:"name"`
	Avatar        string       `json:"avatar"`
	UpstreamToken string       `json:"upstream_token"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Store persists sessions with a sliding idle TTL: any Get refreshes the
// expiry, so an idle client is logged out server-side the way the web UI's
// inactivity timer used to do it.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingHandoff is the short-lived payload passed from the notifications
// screen to the rating screen: who is being rated, under which contract.
// It is consumed exactly once.
type RatingHandoff struct {
	ContractID  string         `json:"contract_id"`
	Counterpart contract.Party `json:"counterpart"`
}

type HandoffStore interface {
	Put(ctx context.Context, sessionID uuid.UUID, h *RatingHandoff) error
	// Take returns the stored handoff and removes it atomically; nil when
	// none is pending.
	Take(ctx context.Context, sessionID uuid.UUID) (*RatingHandoff, error)
}

// ActivityEntry is one line of the per-user recent activity feed maintained
// by the event worker.
type ActivityEntry struct {
	Kind       string    `json:"kind"`
	ContractID string    `json:"contract_id,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ActivityStore interface {
	Append(ctx context.Context, userID string, entry *ActivityEntry) error
	Recent(ctx context.Context, userID string, limit int) ([]ActivityEntry, error)
}
