package notifications

import (
	"context"
	"fmt"

	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type ProcessContractEventUseCase struct {
	activity session.ActivityStore
	logger   logger.Logger
}

func NewProcessContractEventUseCase(activity session.ActivityStore, log logger.Logger) *ProcessContractEventUseCase {
	return &ProcessContractEventUseCase{activity: activity, logger: log}
}

// Execute fans a contract event out to the activity feed of both parties,
// skipping the actor's own feed for their own action.
func (uc *ProcessContractEventUseCase) Execute(ctx context.Context, payload event.ContractEventPayload) error {
	entry := &session.ActivityEntry{
		Kind:       payload.EventType,
		ContractID: payload.ContractID,
		Actor:      payload.ActorName,
		Message:    contractEventMessage(payload),
		OccurredAt: payload.OccurredAt,
	}

	for _, userID := range []string{payload.HirerID, payload.WorkerID} {
		if userID == "" || userID == payload.ActorID {
			continue
		}
		if err := uc.activity.Append(ctx, userID, entry); err != nil {
			uc.logger.Error("failed to append activity entry", err,
				zap.String("user_id", userID), zap.String("contract_id", payload.ContractID))
			return err
		}
	}
	return nil
}

func contractEventMessage(p event.ContractEventPayload) string {
	switch p.EventType {
	case event.ContractEventCreated:
		return fmt.Sprintf("%s sent a new hiring request", p.ActorName)
	case event.ContractEventAccepted:
		return fmt.Sprintf("%s accepted the job", p.ActorName)
	case event.ContractEventRejected:
		return fmt.Sprintf("%s turned down the job", p.ActorName)
	case event.ContractEventDeleted:
		return fmt.Sprintf("%s removed a hiring request", p.ActorName)
	default:
		return "hiring request updated"
	}
}

type ProcessRatingEventUseCase struct {
	activity session.ActivityStore
	logger   logger.Logger
}

func NewProcessRatingEventUseCase(activity session.ActivityStore, log logger.Logger) *ProcessRatingEventUseCase {
	return &ProcessRatingEventUseCase{activity: activity, logger: log}
}

func (uc *ProcessRatingEventUseCase) Execute(ctx context.Context, payload event.RatingEventPayload) error {
	if payload.RateeID == "" {
		return nil
	}

	var msg string
	switch payload.EventType {
	case event.RatingEventCreated:
		msg = fmt.Sprintf("You received a new %d-star rating", payload.Score)
	case event.RatingEventUpdated:
		msg = fmt.Sprintf("A rating about you was updated to %d stars", payload.Score)
	case event.RatingEventDeleted:
		msg = "A rating about you was removed"
	default:
		return nil
	}

	entry := &session.ActivityEntry{
		Kind:       payload.EventType,
		ContractID: payload.ContractID,
		Message:    msg,
		OccurredAt: payload.OccurredAt,
	}
	if err := uc.activity.Append(ctx, payload.RateeID, entry); err != nil {
		uc.logger.Error("failed to append rating activity", err,
			zap.String("user_id", payload.RateeID))
		return err
	}
	return nil
}
