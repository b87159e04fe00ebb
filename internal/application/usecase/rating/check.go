package rating

import (
	"context"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/rating"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("rating_usecase")

// Mode tells the rating screen what to render.
type Mode string

const (
	// ModeCreate means no rating exists yet and the blank form is shown.
	ModeCreate Mode = "create"
	// ModeEdit means a rating exists and is still inside the edit window.
	ModeEdit Mode = "edit"
	// ModeReadOnly means a rating exists but the edit window has closed.
	ModeReadOnly Mode = "read_only"
)

type CheckUseCase struct {
	ratings    rating.Service
	handoffs   session.HandoffStore
	editWindow time.Duration
	logger     logger.Logger
}

func NewCheckUseCase(svc rating.Service, handoffs session.HandoffStore, editWindow time.Duration, log logger.Logger) *CheckUseCase {
	if editWindow <= 0 {
		editWindow = rating.DefaultEditWindow
	}
	return &CheckUseCase{
		ratings:    svc,
		handoffs:   handoffs,
		editWindow: editWindow,
		logger:     log,
	}
}

type CheckOutput struct {
	Mode        Mode
	Counterpart contract.Party
	ContractID  string
	Existing    *rating.Rating
}

// Execute resolves what the rating screen should show. The counterpart
// snapshot staged by the notifications screen is consumed here, once; a
// reload without a fresh handoff has nothing to rate.
func (uc *CheckUseCase) Execute(ctx context.Context, sess *session.Session) (*CheckOutput, error) {
	ctx, span := tracer.Start(ctx, "Check")
	defer span.End()

	h, err := uc.handoffs.Take(ctx, sess.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if h == nil {
		return nil, apperror.NewNotFound("pending rating", sess.ID.String())
	}

	key := rating.Key{
		RaterID:    sess.UserID,
		RateeID:    h.Counterpart.UserID,
		ContractID: h.ContractID,
	}
	existing, err := uc.ratings.Find(ctx, sess.UpstreamToken, key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &CheckOutput{
		Mode:        ModeCreate,
		Counterpart: h.Counterpart,
		ContractID:  h.ContractID,
	}
	if existing != nil {
		out.Existing = existing
		if existing.EditableAt(time.Now().UTC(), uc.editWindow) {
			out.Mode = ModeEdit
		} else {
			out.Mode = ModeReadOnly
		}
	}
	return out, nil
}
