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

// Publisher is the slice of the kafka client the rating flow needs.
type Publisher interface {
	PublishRatingEvent(ctx context.Context, payload event.RatingEventPayload) error
}

type SubmitUseCase struct {
	ratings    rating.Service
	publisher  Publisher
	editWindow time.Duration
	logger     logger.Logger
}

func NewSubmitUseCase(svc rating.Service, pub Publisher, editWindow time.Duration, log logger.Logger) *SubmitUseCase {
	if editWindow <= 0 {
		editWindow = rating.DefaultEditWindow
	}
	return &SubmitUseCase{
		ratings:    svc,
		publisher:  pub,
		editWindow: editWindow,
		logger:     log,
	}
}

type SubmitInput struct {
	ContractID string
	RateeID    string
	Score      int
	Comment    string
}

// Execute creates or updates the caller's rating for the counterpart.
// Validation runs before any backend call; an invalid submission never
// reaches the network. A rating older than the edit window is immutable.
func (uc *SubmitUseCase) Execute(ctx context.Context, sess *session.Session, input SubmitInput) (*rating.Rating, error) {
	ctx, span := tracer.Start(ctx, "Submit")
	defer span.End()

	if err := rating.Validate(input.Score, input.Comment); err != nil {
		return nil, err
	}
	if input.RateeID == sess.UserID {
		return nil, apperror.NewInvalidInput("you cannot rate yourself", nil)
	}

	key := rating.Key{
		RaterID:    sess.UserID,
		RateeID:    input.RateeID,
		ContractID: input.ContractID,
	}

	existing, err := uc.ratings.Find(ctx, sess.UpstreamToken, key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var (
		saved     *rating.Rating
		eventType string
	)
	if existing == nil {
		saved, err = uc.ratings.Create(ctx, sess.UpstreamToken, key, input.Score, input.Comment)
		eventType = event.RatingEventCreated
	} else {
		if !existing.EditableAt(time.Now().UTC(), uc.editWindow) {
			return nil, apperror.NewConflict("rating", "the edit window has closed")
		}
		saved, err = uc.ratings.Update(ctx, sess.UpstreamToken, existing.ID, key, input.Score, input.Comment)
		eventType = event.RatingEventUpdated
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.publish(eventType, saved)
	return saved, nil
}

func (uc *SubmitUseCase) publish(eventType string, r *rating.Rating) {
	payload := event.RatingEventPayload{
		EventType:  eventType,
		RatingID:   r.ID,
		ContractID: r.ContractID,
		RaterID:    r.RaterID,
		RateeID:    r.RateeID,
		Score:      r.Score,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := uc.publisher.PublishRatingEvent(context.Background(), payload); err != nil {
			uc.logger.Warn("failed to publish rating event",
				zap.String("event_type", eventType), zap.String("rating_id", r.ID), zap.Error(err))
		}
	}()
}
