package rating

import (
	"context"
	"strings"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

const (
	MinScore = 1
	MaxScore = 5

	MaxCommentLength = 500

	// DefaultEditWindow is how long after creation a rating stays editable.
	DefaultEditWindow = 72 * time.Hour
)

// Key identifies the at-most-one rating allowed between two parties of a
// contract.
type Key struct {
	RaterID    string
	RateeID    string
	ContractID string
}

type Rating struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	RaterID    string    `json:"rater_id"`
	RateeID    string    `json:"ratee_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"created_at"`
}

// EditableAt reports whether the rating may still be edited or deleted at the
// given instant. The window closes exactly at creation time plus window.
func (r *Rating) EditableAt(now time.Time, window time.Duration) bool {
	return now.Sub(r.CreatedAt) < window
}

// Validate enforces the submission contract before any network call: an
// integer score in 1..5 and a non-empty trimmed comment of at most 500 chars.
func Validate(score int, comment string) error {
	if score < MinScore || score > MaxScore {
		return apperror.NewInvalidInput("score must be between 1 and 5", nil)
	}
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return apperror.NewInvalidInput("comment must not be empty", nil)
	}
	if len([]rune(trimmed)) > MaxCommentLength {
		return apperror.NewInvalidInput("comment must be at most 500 characters", nil)
	}
	return nil
}

// Service is the remote rating API. Find returns nil when no rating exists
// for the key yet.
type Service interface {
	Find(ctx context.Context, token string, key Key) (*Rating, error)
	Create(ctx context.Context, token string, key Key, score int, comment string) (*Rating, error)
	Update(ctx context.Context, token, ratingID string, key Key, score int, comment string) (*Rating, error)
	Delete(ctx context.Context, token, ratingID string) error
}
