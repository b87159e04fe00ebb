package upstream

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/rating"
)

// One HTTP client backs every port; these adapters only resolve the method
// name clashes between interfaces.

func NewProfileDirectory(c *Client) profile.Directory { return c }

type contractService struct{ c *Client }

func NewContractService(c *Client) contract.Service { return &contractService{c} }

func (s *contractService) FetchAll(ctx context.Context, token string) ([]contract.Contract, error) {
	return s.c.FetchAllContracts(ctx, token)
}

func (s *contractService) Create(ctx context.Context, token, workerProfileID string, hirer, worker contract.Party) (*contract.Contract, error) {
	return s.c.CreateContract(ctx, token, workerProfileID, hirer, worker)
}

func (s *contractService) UpdateState(ctx context.Context, token, contractID string, state contract.State) (*contract.Contract, error) {
	return s.c.UpdateContractState(ctx, token, contractID, state)
}

func (s *contractService) Delete(ctx context.Context, token, contractID string) error {
	return s.c.DeleteContract(ctx, token, contractID)
}

type ratingService struct{ c *Client }

func NewRatingService(c *Client) rating.Service { return &ratingService{c} }

func (s *ratingService) Find(ctx context.Context, token string, key rating.Key) (*rating.Rating, error) {
	return s.c.FindRating(ctx, token, key)
}

func (s *ratingService) Create(ctx context.Context, token string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	return s.c.CreateRating(ctx, token, key, score, comment)
}

func (s *ratingService) Update(ctx context.Context, token, ratingID string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	return s.c.UpdateRating(ctx, token, ratingID, key, score, comment)
}

func (s *ratingService) Delete(ctx context.Context, token, ratingID string) error {
	return s.c.DeleteRating(ctx, token, ratingID)
}
