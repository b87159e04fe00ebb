package notifications

import (
	"context"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type HireUseCase struct {
	contracts contract.Service
	directory profile.Directory
	publisher Publisher
	logger    logger.Logger
}

func NewHireUseCase(svc contract.Service, dir profile.Directory, pub Publisher, log logger.Logger) *HireUseCase {
	return &HireUseCase{
		contracts: svc,
		directory: dir,
		publisher: pub,
		logger:    log,
	}
}

type HireInput struct {
	WorkerProfileID string
}

// Execute files a hiring request against a worker profile. Both parties'
// profile data is snapshotted into the contract at creation time; the new
// contract starts pending and shows up on the next notification sync of
// both sides.
func (uc *HireUseCase) Execute(ctx context.Context, sess *session.Session, input HireInput) (*contract.Contract, error) {
	if sess.Role != profile.RoleHirer {
		return nil, apperror.NewPermissionDenied("only hirers can create hiring requests")
	}

	worker, err := uc.directory.FetchByID(ctx, sess.UpstreamToken, input.WorkerProfileID)
	if err != nil {
		return nil, err
	}
	if worker.Role != profile.RoleWorker {
		return nil, apperror.NewInvalidInput("the selected profile is not a worker", nil)
	}
	if worker.UserID == sess.UserID {
		return nil, apperror.NewInvalidInput("you cannot hire yourself", nil)
	}

	hirerProfile, err := uc.directory.FetchByID(ctx, sess.UpstreamToken, sess.ProfileID)
	if err != nil {
		return nil, err
	}

	created, err := uc.contracts.Create(ctx, sess.UpstreamToken, input.WorkerProfileID,
		partyFromProfile(hirerProfile), partyFromProfile(worker))
	if err != nil {
		return nil, err
	}

	// Legacy backends answer without the created record; without an id
	// there is no event worth fanning out.
	if created.ID != "" {
		payload := event.ContractEventPayload{
			EventType:  event.ContractEventCreated,
			ContractID: created.ID,
			ActorID:    sess.UserID,
			ActorName:  sess.Name,
			HirerID:    created.Hirer.UserID,
			WorkerID:   created.Worker.UserID,
			OccurredAt: time.Now().UTC(),
		}
		go func() {
			if err := uc.publisher.PublishContractEvent(context.Background(), payload); err != nil {
				uc.logger.Warn("failed to publish contract event",
					zap.String("event_type", payload.EventType), zap.String("contract_id", created.ID), zap.Error(err))
			}
		}()
	}

	return created, nil
}

func partyFromProfile(p *profile.Profile) contract.Party {
	return contract.Party{
		UserID:     p.UserID,
		Name:       p.Name,
		Role:       string(p.Role),
		Avatar:     p.AvatarURL,
		Phone:      p.Phone,
		Profession: p.Profession,
		Rating:     p.Rating,
	}
}
