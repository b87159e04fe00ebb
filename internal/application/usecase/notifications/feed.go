package notifications

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
)

const defaultFeedLimit = 20

// FeedUseCase reads the activity feed built by the event worker.
type FeedUseCase struct {
	activity session.ActivityStore
}

func NewFeedUseCase(activity session.ActivityStore) *FeedUseCase {
	return &FeedUseCase{activity: activity}
}

func (uc *FeedUseCase) Execute(ctx context.Context, sess *session.Session, limit int) ([]session.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return uc.activity.Recent(ctx, sess.UserID, limit)
}
