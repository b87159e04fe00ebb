package profile

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type UpdateProfileUseCase struct {
	directory profile.Directory
	sessions  session.Store
	logger    logger.Logger
}

func NewUpdateProfileUseCase(dir profile.Directory, sessions session.Store, log logger.Logger) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		directory: dir,
		sessions:  sessions,
		logger:    log,
	}
}

// Execute pushes the edited profile to the backend. When the edit switches
// the account role the session record is updated too, so every later request
// is scoped under the new role.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, sess *session.Session, upd profile.Update) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	if upd.Role != "" && !upd.Role.Valid() {
		return nil, apperror.NewInvalidInput("unknown role", nil)
	}

	p, err := uc.directory.Update(ctx, sess.UpstreamToken, sess.ProfileID, upd)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	changed := false
	if p.Role.Valid() && p.Role != sess.Role {
		sess.Role = p.Role
		changed = true
	}
	if p.Name != "" && p.Name != sess.Name {
		sess.Name = p.Name
		changed = true
	}
	if p.AvatarURL != sess.Avatar {
		sess.Avatar = p.AvatarURL
		changed = true
	}
	if changed {
		if err := uc.sessions.Save(ctx, sess); err != nil {
			uc.logger.Error("Failed to refresh session after profile update", err,
				zap.String("session_id", sess.ID.String()))
			span.RecordError(err)
			return nil, apperror.NewInternal("profile saved but the session could not be refreshed, please log in again", err)
		}
	}

	return p, nil
}
