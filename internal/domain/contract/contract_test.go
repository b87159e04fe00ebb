package contract

import (
	"testing"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContracts() []Contract {
	return []Contract{
		{ID: "c1", State: StatePending, Hirer: Party{UserID: "h1"}, Worker: Party{UserID: "w1"}},
		{ID: "c2", State: StateAccepted, Hirer: Party{UserID: "h2"}, Worker: Party{UserID: "w1"}},
		{ID: "c3", State: StatePending, Hirer: Party{UserID: "h1"}, Worker: Party{UserID: "w2"}},
		{ID: "c4", State: StateRejected, Hirer: Party{UserID: "h3"}, Worker: Party{UserID: "w3"}},
		{ID: "c5", State: StatePending, Hirer: Party{UserID: "h2"}, Worker: Party{UserID: "w2"}},
	}
}

func TestFilterForUser_WorkerMatchesWorkerParty(t *testing.T) {
	got := FilterForUser(sampleContracts(), "w1", profile.RoleWorker)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c2", got[1].ID)
}

func TestFilterForUser_HirerMatchesHirerParty(t *testing.T) {
	got := FilterForUser(sampleContracts(), "h1", profile.RoleHirer)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)
}

func TestFilterForUser_VisitorSeesNothing(t *testing.T) {
	got := FilterForUser(sampleContracts(), "w1", profile.RoleVisitor)
	assert.Empty(t, got)
}

func TestFilterForUser_Idempotent(t *testing.T) {
	once := FilterForUser(sampleContracts(), "w1", profile.RoleWorker)
	twice := FilterForUser(once, "w1", profile.RoleWorker)
	assert.Equal(t, once, twice)
}

func TestCanTransition(t *testing.T) {
	pending := Contract{State: StatePending}
	assert.True(t, pending.CanTransition(StateAccepted))
	assert.True(t, pending.CanTransition(StateRejected))
	assert.False(t, pending.CanTransition(StatePending))

	accepted := Contract{State: StateAccepted}
	assert.False(t, accepted.CanTransition(StateRejected))
	assert.False(t, accepted.CanTransition(StatePending))

	rejected := Contract{State: StateRejected}
	assert.False(t, rejected.CanTransition(StateAccepted))
}

func TestResolvable(t *testing.T) {
	c := Contract{State: StatePending, Worker: Party{UserID: "w1"}, Hirer: Party{UserID: "h1"}}

	assert.NoError(t, c.Resolvable("w1", profile.RoleWorker))
	assert.ErrorIs(t, c.Resolvable("h1", profile.RoleHirer), ErrNotWorker)
	assert.ErrorIs(t, c.Resolvable("w2", profile.RoleWorker), ErrNotWorker)

	c.State = StateAccepted
	assert.ErrorIs(t, c.Resolvable("w1", profile.RoleWorker), ErrNotPending)
}

func TestContactLink(t *testing.T) {
	c := Contract{
		State:  StateAccepted,
		Worker: Party{UserID: "w1", Name: "Mariela", Phone: "+54 (341) 555-0101"},
	}

	link, err := c.ContactLink()
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/543415550101?text=Hola+Mariela%2C+te+contacto+por+el+trabajo+de+RedOficios.", link)
}

func TestContactLink_RequiresAcceptedAndPhone(t *testing.T) {
	c := Contract{State: StatePending, Worker: Party{Phone: "123"}}
	_, err := c.ContactLink()
	assert.ErrorIs(t, err, ErrNotAccepted)

	c = Contract{State: StateAccepted, Worker: Party{Phone: "n/a"}}
	_, err = c.ContactLink()
	assert.ErrorIs(t, err, ErrNoPhone)
}
