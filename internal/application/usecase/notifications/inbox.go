package notifications

import (
	"sync"

	"github.com/google/uuid"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
)

// Inbox is the per-session, in-memory notification state: the party-filtered
// contract list, the acknowledged ("seen") id set behind the unread badge,
// and the per-contract in-flight marks that serialize mutations. It is not
// persisted; a new session starts with a clean badge, like a fresh browser
// tab.
type Inbox struct {
	mu sync.Mutex

	userID string
	role   profile.Role

	visible []contract.Contract
	seen    map[string]struct{}
	counted map[string]struct{}
	unseen  int

	inFlight map[string]struct{}
}

func newInbox() *Inbox {
	return &Inbox{
		visible:  []contract.Contract{},
		seen:     map[string]struct{}{},
		counted:  map[string]struct{}{},
		inFlight: map[string]struct{}{},
	}
}

// ApplySync installs a freshly filtered list. The unseen counter grows only
// by ids never counted before, so overlapping syncs cannot double-count.
// When the session identity changed since the last sync (role switch,
// re-login) the whole state is rebuilt and the counter starts at zero
// instead of spuriously counting the re-scoped list as new.
func (in *Inbox) ApplySync(userID string, role profile.Role, filtered []contract.Contract) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.userID != userID || in.role != role {
		rebuild := in.userID != "" // a brand-new inbox still counts its first sync
		in.userID = userID
		in.role = role
		in.seen = map[string]struct{}{}
		in.counted = map[string]struct{}{}
		in.unseen = 0
		if rebuild {
			for _, c := range filtered {
				in.seen[c.ID] = struct{}{}
			}
			in.visible = filtered
			return
		}
	}

	for _, c := range filtered {
		if _, ok := in.seen[c.ID]; ok {
			continue
		}
		if _, ok := in.counted[c.ID]; ok {
			continue
		}
		in.counted[c.ID] = struct{}{}
		in.unseen++
	}
	in.visible = filtered
}

// MarkRead acknowledges everything currently visible: the seen set becomes
// the full visible id set and the badge drops to zero.
func (in *Inbox) MarkRead() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.seen = make(map[string]struct{}, len(in.visible))
	for _, c := range in.visible {
		in.seen[c.ID] = struct{}{}
	}
	in.counted = map[string]struct{}{}
	in.unseen = 0
}

// Snapshot returns a copy of the visible list and the current unseen count.
func (in *Inbox) Snapshot() ([]contract.Contract, int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]contract.Contract, len(in.visible))
	copy(out, in.visible)
	return out, in.unseen
}

func (in *Inbox) Find(contractID string) (contract.Contract, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, c := range in.visible {
		if c.ID == contractID {
			return c, true
		}
	}
	return contract.Contract{}, false
}

// Patch replaces the stored copy of a contract after a confirmed upstream
// mutation. Nothing is patched speculatively.
func (in *Inbox) Patch(c contract.Contract) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for i := range in.visible {
		if in.visible[i].ID == c.ID {
			in.visible[i] = c
			return
		}
	}
}

func (in *Inbox) Remove(contractID string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	for i := range in.visible {
		if in.visible[i].ID == contractID {
			in.visible = append(in.visible[:i], in.visible[i+1:]...)
			return
		}
	}
}

// BeginOp claims the contract for one mutation. A second accept/reject/delete
// while the first is still resolving is rejected instead of racing it.
func (in *Inbox) BeginOp(contractID string) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if _, busy := in.inFlight[contractID]; busy {
		return apperror.NewConflict("contract operation", "another operation on this contract is still in progress")
	}
	in.inFlight[contractID] = struct{}{}
	return nil
}

func (in *Inbox) EndOp(contractID string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	delete(in.inFlight, contractID)
}

// Registry hands out one Inbox per session.
type Registry struct {
	mu      sync.RWMutex
	inboxes map[uuid.UUID]*Inbox
}

func NewRegistry() *Registry {
	return &Registry{inboxes: map[uuid.UUID]*Inbox{}}
}

func (r *Registry) Inbox(sessionID uuid.UUID) *Inbox {
	r.mu.RLock()
	in, ok := r.inboxes[sessionID]
	r.mu.RUnlock()
	if ok {
		return in
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if in, ok := r.inboxes[sessionID]; ok {
		return in
	}
	in = newInbox()
	r.inboxes[sessionID] = in
	return in
}

// Drop forgets a session's inbox, e.g. on logout.
func (r *Registry) Drop(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inboxes, sessionID)
}
