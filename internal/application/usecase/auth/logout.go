package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/notifications"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type LogoutUseCase struct {
	sessions session.Store
	registry *notifications.Registry
	logger   logger.Logger
}

func NewLogoutUseCase(sessions session.Store, registry *notifications.Registry, log logger.Logger) *LogoutUseCase {
	return &LogoutUseCase{
		sessions: sessions,
		registry: registry,
		logger:   log,
	}
}

// Execute closes the session and throws away its in-memory notification
// state. The next login starts with a clean badge.
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		uc.logger.Error("Failed to delete session", err, zap.String("session_id", sessionID.String()))
		span.RecordError(err)
		return err
	}
	uc.registry.Drop(sessionID)
	return nil
}
