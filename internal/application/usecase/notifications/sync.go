package notifications

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type SyncUseCase struct {
	contracts contract.Service
	registry  *Registry
	logger    logger.Logger
}

func NewSyncUseCase(svc contract.Service, registry *Registry, log logger.Logger) *SyncUseCase {
	return &SyncUseCase{
		contracts: svc,
		registry:  registry,
		logger:    log,
	}
}

type SyncOutput struct {
	Contracts []contract.Contract
	Unseen    int
}

// Execute pulls the full notification list from the upstream, scopes it to
// the session's party and folds it into the inbox. A fetch failure leaves
// the caller with an empty list and the error; the inbox keeps its last
// confirmed state.
func (uc *SyncUseCase) Execute(ctx context.Context, sess *session.Session) (*SyncOutput, error) {
	all, err := uc.contracts.FetchAll(ctx, sess.UpstreamToken)
	if err != nil {
		uc.logger.Warn("notification sync failed",
			zap.String("user_id", sess.UserID), zap.Error(err))
		return &SyncOutput{Contracts: []contract.Contract{}}, err
	}

	filtered := contract.FilterForUser(all, sess.UserID, sess.Role)

	inbox := uc.registry.Inbox(sess.ID)
	inbox.ApplySync(sess.UserID, sess.Role, filtered)

	visible, unseen := inbox.Snapshot()
	return &SyncOutput{Contracts: visible, Unseen: unseen}, nil
}

type MarkReadUseCase struct {
	registry *Registry
}

func NewMarkReadUseCase(registry *Registry) *MarkReadUseCase {
	return &MarkReadUseCase{registry: registry}
}

// Execute acknowledges every currently visible notification and zeroes the
// badge, the way opening the notifications screen did in the web client.
func (uc *MarkReadUseCase) Execute(_ context.Context, sess *session.Session) *SyncOutput {
	inbox := uc.registry.Inbox(sess.ID)
	inbox.MarkRead()

	visible, unseen := inbox.Snapshot()
	return &SyncOutput{Contracts: visible, Unseen: unseen}
}
