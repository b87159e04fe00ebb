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

// Publisher is the slice of the kafka client these use cases need.
type Publisher interface {
	PublishContractEvent(ctx context.Context, payload event.ContractEventPayload) error
}

type ResolveUseCase struct {
	contracts contract.Service
	registry  *Registry
	publisher Publisher
	logger    logger.Logger
}

func NewResolveUseCase(svc contract.Service, registry *Registry, pub Publisher, log logger.Logger) *ResolveUseCase {
	return &ResolveUseCase{
		contracts: svc,
		registry:  registry,
		publisher: pub,
		logger:    log,
	}
}

type ResolveInput struct {
	ContractID string
	Accept     bool
}

// Execute moves a pending contract to accepted or rejected. Only the hired
// worker may resolve, only while pending, and only one mutation per contract
// may be in flight. The local copy is patched after the upstream confirms,
// never before.
func (uc *ResolveUseCase) Execute(ctx context.Context, sess *session.Session, input ResolveInput) (*contract.Contract, error) {
	inbox := uc.registry.Inbox(sess.ID)

	c, ok := inbox.Find(input.ContractID)
	if !ok {
		return nil, apperror.NewNotFound("notification", input.ContractID)
	}

	if err := c.Resolvable(sess.UserID, sess.Role); err != nil {
		switch err {
		case contract.ErrNotPending:
			return nil, apperror.NewConflict("contract state", err.Error())
		default:
			return nil, apperror.NewPermissionDenied(err.Error())
		}
	}

	target := contract.StateRejected
	eventType := event.ContractEventRejected
	if input.Accept {
		target = contract.StateAccepted
		eventType = event.ContractEventAccepted
	}
	if !c.CanTransition(target) {
		return nil, apperror.NewConflict("contract state", "transition not allowed")
	}

	if err := inbox.BeginOp(c.ID); err != nil {
		return nil, err
	}
	defer inbox.EndOp(c.ID)

	updated, err := uc.contracts.UpdateState(ctx, sess.UpstreamToken, c.ID, target)
	if err != nil {
		return nil, err
	}

	c.State = updated.State
	inbox.Patch(c)

	uc.publish(sess, eventType, &c)
	return &c, nil
}

func (uc *ResolveUseCase) publish(sess *session.Session, eventType string, c *contract.Contract) {
	payload := event.ContractEventPayload{
		EventType:  eventType,
		ContractID: c.ID,
		ActorID:    sess.UserID,
		ActorName:  sess.Name,
		HirerID:    c.Hirer.UserID,
		WorkerID:   c.Worker.UserID,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := uc.publisher.PublishContractEvent(context.Background(), payload); err != nil {
			uc.logger.Warn("failed to publish contract event",
				zap.String("event_type", eventType), zap.String("contract_id", c.ID), zap.Error(err))
		}
	}()
}

type DeleteUseCase struct {
	contracts contract.Service
	registry  *Registry
	publisher Publisher
	logger    logger.Logger
}

func NewDeleteUseCase(svc contract.Service, registry *Registry, pub Publisher, log logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{
		contracts: svc,
		registry:  registry,
		publisher: pub,
		logger:    log,
	}
}

type DeleteInput struct {
	ContractID string
	// Confirmed reflects the client-side confirmation prompt. An
	// unconfirmed request is a no-op, not an error path worth retrying.
	Confirmed bool
}

// Execute removes a notification for good. Either party may delete at any
// state, after confirming. The upstream delete is hard, the local removal
// follows only on success.
func (uc *DeleteUseCase) Execute(ctx context.Context, sess *session.Session, input DeleteInput) error {
	if !input.Confirmed {
		return apperror.NewInvalidInput("deletion requires confirmation", nil)
	}
	contractID := input.ContractID

	inbox := uc.registry.Inbox(sess.ID)

	c, ok := inbox.Find(contractID)
	if !ok {
		return apperror.NewNotFound("notification", contractID)
	}
	if !c.IsParty(sess.UserID, sess.Role) {
		return apperror.NewPermissionDenied("not a party of this contract")
	}

	if err := inbox.BeginOp(contractID); err != nil {
		return err
	}
	defer inbox.EndOp(contractID)

	if err := uc.contracts.Delete(ctx, sess.UpstreamToken, contractID); err != nil {
		return err
	}

	inbox.Remove(contractID)

	payload := event.ContractEventPayload{
		EventType:  event.ContractEventDeleted,
		ContractID: c.ID,
		ActorID:    sess.UserID,
		ActorName:  sess.Name,
		HirerID:    c.Hirer.UserID,
		WorkerID:   c.Worker.UserID,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := uc.publisher.PublishContractEvent(context.Background(), payload); err != nil {
			uc.logger.Warn("failed to publish contract event",
				zap.String("event_type", payload.EventType), zap.String("contract_id", c.ID), zap.Error(err))
		}
	}()
	return nil
}

type ContactUseCase struct {
	registry *Registry
}

func NewContactUseCase(registry *Registry) *ContactUseCase {
	return &ContactUseCase{registry: registry}
}

// Execute builds the WhatsApp deep link for an accepted contract. Only the
// hirer side gets the contact action.
func (uc *ContactUseCase) Execute(_ context.Context, sess *session.Session, contractID string) (string, error) {
	if sess.Role != profile.RoleHirer {
		return "", apperror.NewPermissionDenied("only hirers can contact the worker")
	}

	inbox := uc.registry.Inbox(sess.ID)
	c, ok := inbox.Find(contractID)
	if !ok {
		return "", apperror.NewNotFound("notification", contractID)
	}
	if !c.IsParty(sess.UserID, sess.Role) {
		return "", apperror.NewPermissionDenied("not a party of this contract")
	}

	link, err := c.ContactLink()
	if err != nil {
		switch err {
		case contract.ErrNotAccepted:
			return "", apperror.NewConflict("contract state", "the job must be accepted before contacting")
		case contract.ErrNoPhone:
			return "", apperror.NewNotFound("worker phone number", contractID)
		default:
			return "", apperror.NewInternal("failed to build contact link", err)
		}
	}
	return link, nil
}

type StartRatingUseCase struct {
	registry *Registry
	handoffs session.HandoffStore
}

func NewStartRatingUseCase(registry *Registry, handoffs session.HandoffStore) *StartRatingUseCase {
	return &StartRatingUseCase{registry: registry, handoffs: handoffs}
}

// Execute stages the counterpart snapshot for the rating screen. The payload
// lives in the handoff store until the rating screen takes it, once.
func (uc *StartRatingUseCase) Execute(ctx context.Context, sess *session.Session, contractID string) (*session.RatingHandoff, error) {
	inbox := uc.registry.Inbox(sess.ID)

	c, ok := inbox.Find(contractID)
	if !ok {
		return nil, apperror.NewNotFound("notification", contractID)
	}
	if !c.IsParty(sess.UserID, sess.Role) {
		return nil, apperror.NewPermissionDenied("not a party of this contract")
	}
	if c.State != contract.StateAccepted {
		return nil, apperror.NewConflict("contract state", "the job must be accepted before rating")
	}

	h := &session.RatingHandoff{
		ContractID:  c.ID,
		Counterpart: c.Counterpart(sess.Role),
	}
	if err := uc.handoffs.Put(ctx, sess.ID, h); err != nil {
		return nil, err
	}
	return h, nil
}
