package profile

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("profile_usecase")

type GetProfileUseCase struct {
	directory profile.Directory
	logger    logger.Logger
}

func NewGetProfileUseCase(dir profile.Directory, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{directory: dir, logger: log}
}

// Execute loads a profile by id. An empty id falls back to the caller's own
// profile.
func (uc *GetProfileUseCase) Execute(ctx context.Context, sess *session.Session, profileID string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	if profileID == "" {
		profileID = sess.ProfileID
	}

	p, err := uc.directory.FetchByID(ctx, sess.UpstreamToken, profileID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}
