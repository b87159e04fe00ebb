package contract

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
)

type State string

const (
	StatePending  State = "pendiente"
	StateAccepted State = "aceptado"
	StateRejected State = "rechazado"
)

var (
	ErrNotPending   = errors.New("contract is no longer pending")
	ErrNotWorker    = errors.New("only the hired worker can resolve a contract")
	ErrNotParty     = errors.New("user is not a party of this contract")
	ErrNotAccepted  = errors.New("contract must be accepted first")
	ErrNoPhone      = errors.New("worker has no phone number on file")
	ErrInvalidState = errors.New("unknown contract state")
)

// Party is the profile snapshot embedded in a contract at creation time.
// It is denormalized on purpose: the upstream stores both parties as they
// looked when the hiring request was made.
type Party struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Avatar     string  `json:"avatar,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Profession string  `json:"profession,omitempty"`
	Rating     float64 `json:"rating"`
}

// Contract is a hiring request between a hirer and a worker. The upstream
// calls these "notificaciones"; each one carries exactly one state.
type Contract struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Hirer     Party     `json:"hirer"`
	Worker    Party     `json:"worker"`
}

func (s State) Valid() bool {
	switch s {
	case StatePending, StateAccepted, StateRejected:
		return true
	}
	return false
}

// Terminal reports whether no further state change is possible. Accepted and
// rejected are both terminal; there is no way back to pending.
func (s State) Terminal() bool {
	return s == StateAccepted || s == StateRejected
}

// CanTransition reports whether the state machine allows moving to the target
// state. The only legal moves are pending→accepted and pending→rejected.
func (c *Contract) CanTransition(to State) bool {
	return c.State == StatePending && (to == StateAccepted || to == StateRejected)
}

// Resolvable checks that the given user may accept or reject this contract:
// they must be the worker party, acting as a worker, and the contract must
// still be pending.
func (c *Contract) Resolvable(userID string, role profile.Role) error {
	if role != profile.RoleWorker || c.Worker.UserID != userID {
		return ErrNotWorker
	}
	if c.State != StatePending {
		return ErrNotPending
	}
	return nil
}

// IsParty reports whether the user participates in this contract under the
// given role. Hirers match the hirer snapshot, workers the worker snapshot;
// visitors match nothing.
func (c *Contract) IsParty(userID string, role profile.Role) bool {
	switch role {
	case profile.RoleWorker:
		return c.Worker.UserID == userID
	case profile.RoleHirer:
		return c.Hirer.UserID == userID
	default:
		return false
	}
}

// Counterpart returns the other party from the viewpoint of the given role.
func (c *Contract) Counterpart(role profile.Role) Party {
	if role == profile.RoleWorker {
		return c.Hirer
	}
	return c.Worker
}

// FilterForUser keeps the contracts where the user is a party under the given
// role. The upstream list endpoint is unscoped, so this filter is the only
// thing standing between a session and everybody else's contracts; it is
// idempotent by construction.
func FilterForUser(all []Contract, userID string, role profile.Role) []Contract {
	out := make([]Contract, 0, len(all))
	for _, c := range all {
		if c.IsParty(userID, role) {
			out = append(out, c)
		}
	}
	return out
}

// ContactLink builds the WhatsApp deep link a hirer uses to reach the worker
// of an accepted contract.
func (c *Contract) ContactLink() (string, error) {
	if c.State != StateAccepted {
		return "", ErrNotAccepted
	}
	phone := digitsOnly(c.Worker.Phone)
	if phone == "" {
		return "", ErrNoPhone
	}
	msg := "Hola " + c.Worker.Name + ", te contacto por el trabajo de RedOficios."
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(msg), nil
}

func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

// Service is the remote hiring API. FetchAll returns the full unscoped list;
// scoping happens in FilterForUser.
type Service interface {
	FetchAll(ctx context.Context, token string) ([]Contract, error)
	Create(ctx context.Context, token, workerProfileID string, hirer, worker Party) (*Contract, error)
	UpdateState(ctx context.Context, token, contractID string, state State) (*Contract, error)
	Delete(ctx context.Context, token, contractID string) error
}
