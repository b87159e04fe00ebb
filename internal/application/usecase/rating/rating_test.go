package rating

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redoficios2025-Inicial/redoficios-gateway/adapters/event"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/rating"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRatingService struct {
	mu      sync.Mutex
	stored  *rating.Rating
	finds   int
	creates int
	updates int
	deletes int
}

func (f *fakeRatingService) Find(_ context.Context, _ string, _ rating.Key) (*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	return f.stored, nil
}

func (f *fakeRatingService) Create(_ context.Context, _ string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.stored = &rating.Rating{
		ID:         "r1",
		ContractID: key.ContractID,
		RaterID:    key.RaterID,
		RateeID:    key.RateeID,
		Score:      score,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	return f.stored, nil
}

func (f *fakeRatingService) Update(_ context.Context, _ string, ratingID string, key rating.Key, score int, comment string) (*rating.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	f.stored.Score = score
	f.stored.Comment = comment
	f.stored.Edited = true
	return f.stored, nil
}

func (f *fakeRatingService) Delete(_ context.Context, _ string, ratingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.stored = nil
	return nil
}

func (f *fakeRatingService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds + f.creates + f.updates + f.deletes
}

type fakeRatingPublisher struct {
	mu     sync.Mutex
	events []event.RatingEventPayload
}

func (f *fakeRatingPublisher) PublishRatingEvent(_ context.Context, p event.RatingEventPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, p)
	return nil
}

type fakeHandoffStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*session.RatingHandoff
}

func newFakeHandoffStore() *fakeHandoffStore {
	return &fakeHandoffStore{entries: map[uuid.UUID]*session.RatingHandoff{}}
}

func (f *fakeHandoffStore) Put(_ context.Context, id uuid.UUID, h *session.RatingHandoff) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[id] = h
	return nil
}

func (f *fakeHandoffStore) Take(_ context.Context, id uuid.UUID) (*session.RatingHandoff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.entries[id]
	delete(f.entries, id)
	return h, nil
}

func raterSession() *session.Session {
	return &session.Session{
		ID:            uuid.New(),
		UserID:        "h1",
		Role:          profile.RoleHirer,
		Name:          "Carlos",
		UpstreamToken: "tok",
	}
}

func existingRating(age time.Duration) *rating.Rating {
	return &rating.Rating{
		ID:         "r1",
		ContractID: "n1",
		RaterID:    "h1",
		RateeID:    "w1",
		Score:      4,
		Comment:    "muy prolijo",
		CreatedAt:  time.Now().UTC().Add(-age),
	}
}

func TestCheck_NoHandoffMeansNothingToRate(t *testing.T) {
	uc := NewCheckUseCase(&fakeRatingService{}, newFakeHandoffStore(), 0, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), raterSession())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCheck_HandoffIsConsumedOnce(t *testing.T) {
	handoffs := newFakeHandoffStore()
	sess := raterSession()
	require.NoError(t, handoffs.Put(context.Background(), sess.ID, &session.RatingHandoff{
		ContractID:  "n1",
		Counterpart: contract.Party{UserID: "w1", Name: "Mariela"},
	}))

	uc := NewCheckUseCase(&fakeRatingService{}, handoffs, 0, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, out.Mode)
	assert.Equal(t, "w1", out.Counterpart.UserID)
	assert.Nil(t, out.Existing)

	_, err = uc.Execute(context.Background(), sess)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCheck_ModeFollowsEditWindow(t *testing.T) {
	cases := []struct {
		name string
		age  time.Duration
		want Mode
	}{
		{"fresh rating is editable", time.Hour, ModeEdit},
		{"just inside the window", 72*time.Hour - time.Minute, ModeEdit},
		{"window closed", 72 * time.Hour, ModeReadOnly},
		{"old rating is read only", 30 * 24 * time.Hour, ModeReadOnly},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handoffs := newFakeHandoffStore()
			sess := raterSession()
			require.NoError(t, handoffs.Put(context.Background(), sess.ID, &session.RatingHandoff{
				ContractID:  "n1",
				Counterpart: contract.Party{UserID: "w1"},
			}))
			svc := &fakeRatingService{stored: existingRating(tc.age)}
			uc := NewCheckUseCase(svc, handoffs, 72*time.Hour, logger.NewZapLogger("development"))

			out, err := uc.Execute(context.Background(), sess)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Mode)
			require.NotNil(t, out.Existing)
			assert.Equal(t, "r1", out.Existing.ID)
		})
	}
}

func TestSubmit_InvalidInputNeverReachesBackend(t *testing.T) {
	cases := []struct {
		name    string
		score   int
		comment string
	}{
		{"score too low", 0, "buen trabajo"},
		{"score too high", 6, "buen trabajo"},
		{"empty comment", 3, ""},
		{"whitespace comment", 3, "   \t  "},
		{"comment too long", 3, strings.Repeat("a", 501)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeRatingService{}
			uc := NewSubmitUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

			_, err := uc.Execute(context.Background(), raterSession(), SubmitInput{
				ContractID: "n1", RateeID: "w1", Score: tc.score, Comment: tc.comment,
			})
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Equal(t, 0, svc.calls())
		})
	}
}

func TestSubmit_CreatesWhenNoneExists(t *testing.T) {
	svc := &fakeRatingService{}
	uc := NewSubmitUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

	saved, err := uc.Execute(context.Background(), raterSession(), SubmitInput{
		ContractID: "n1", RateeID: "w1", Score: 5, Comment: "excelente",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Score)
	assert.Equal(t, 1, svc.creates)
	assert.Equal(t, 0, svc.updates)
}

func TestSubmit_UpdatesInsideWindow(t *testing.T) {
	svc := &fakeRatingService{stored: existingRating(time.Hour)}
	uc := NewSubmitUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

	saved, err := uc.Execute(context.Background(), raterSession(), SubmitInput{
		ContractID: "n1", RateeID: "w1", Score: 2, Comment: "cambió mi opinión",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Score)
	assert.True(t, saved.Edited)
	assert.Equal(t, 0, svc.creates)
	assert.Equal(t, 1, svc.updates)
}

func TestSubmit_RejectsEditAfterWindow(t *testing.T) {
	svc := &fakeRatingService{stored: existingRating(73 * time.Hour)}
	uc := NewSubmitUseCase(svc, &fakeRatingPublisher{}, 72*time.Hour, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), raterSession(), SubmitInput{
		ContractID: "n1", RateeID: "w1", Score: 1, Comment: "tarde",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 0, svc.updates)
}

func TestSubmit_RejectsSelfRating(t *testing.T) {
	svc := &fakeRatingService{}
	uc := NewSubmitUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), raterSession(), SubmitInput{
		ContractID: "n1", RateeID: "h1", Score: 5, Comment: "yo mismo",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, svc.calls())
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	svc := &fakeRatingService{stored: existingRating(time.Hour)}
	uc := NewDeleteUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), raterSession(), DeleteInput{
		ContractID: "n1", RateeID: "w1", Confirmed: false,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, svc.deletes)
}

func TestDelete_RemovesInsideWindow(t *testing.T) {
	svc := &fakeRatingService{stored: existingRating(time.Hour)}
	uc := NewDeleteUseCase(svc, &fakeRatingPublisher{}, 0, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), raterSession(), DeleteInput{
		ContractID: "n1", RateeID: "w1", Confirmed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.deletes)
	assert.Nil(t, svc.stored)
}

func TestDelete_RejectedAfterWindow(t *testing.T) {
	svc := &fakeRatingService{stored: existingRating(80 * time.Hour)}
	uc := NewDeleteUseCase(svc, &fakeRatingPublisher{}, 72*time.Hour, logger.NewZapLogger("development"))

	err := uc.Execute(context.Background(), raterSession(), DeleteInput{
		ContractID: "n1", RateeID: "w1", Confirmed: true,
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 0, svc.deletes)
}
