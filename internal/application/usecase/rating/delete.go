package rating

import (
	"context"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/rating"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type DeleteUseCase struct {
	ratings    rating.Service
	publisher  Publisher
	editWindow time.Duration
	logger     logger.Logger
}

func NewDeleteUseCase(svc rating.Service, pub Publisher, editWindow time.Duration, log logger.Logger) *DeleteUseCase {
	if editWindow <= 0 {
		editWindow = rating.DefaultEditWindow
	}
	return &DeleteUseCase{
		ratings:    svc,
		publisher:  pub,
		editWindow: editWindow,
		logger:     log,
	}
}

type DeleteInput struct {
	ContractID string
	RateeID    string
	// Confirmed reflects the client-side confirmation prompt. An
	// unconfirmed request is a no-op, not an error path worth retrying.
	Confirmed bool
}

func (uc *DeleteUseCase) Execute(ctx context.Context, sess *session.Session, input DeleteInput) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	if !input.Confirmed {
		return apperror.NewInvalidInput("deletion requires confirmation", nil)
	}

	key := rating.Key{
		RaterID:    sess.UserID,
		RateeID:    input.RateeID,
		ContractID: input.ContractID,
	}
	existing, err := uc.ratings.Find(ctx, sess.UpstreamToken, key)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if existing == nil {
		return apperror.NewNotFound("rating", input.ContractID)
	}
	if !existing.EditableAt(time.Now().UTC(), uc.editWindow) {
		return apperror.NewConflict("rating", "the edit window has closed")
	}

	if err := uc.ratings.Delete(ctx, sess.UpstreamToken, existing.ID); err != nil {
		span.RecordError(err)
		return err
	}

	payload := event.RatingEventPayload{
		EventType:  event.RatingEventDeleted,
		RatingID:   existing.ID,
		ContractID: existing.ContractID,
		RaterID:    existing.RaterID,
		RateeID:    existing.RateeID,
		Score:      existing.Score,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := uc.publisher.PublishRatingEvent(context.Background(), payload); err != nil {
			uc.logger.Warn("failed to publish rating event",
				zap.String("event_type", payload.EventType), zap.String("rating_id", existing.ID), zap.Error(err))
		}
	}()
	return nil
}
