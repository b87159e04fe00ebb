package http

import (
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
)

// Session DTOs
type SessionDTO struct {
	UserID    string `json:"user_id"`
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
}

func ToSessionDTO(s *session.Session) SessionDTO {
	return SessionDTO{
		UserID:    s.UserID,
		ProfileID: s.ProfileID,
		Role:      string(s.Role),
		Name:      s.Name,
		Avatar:    s.Avatar,
	}
}

// Notification DTOs. Each entry is rendered from the caller's side of the
// contract: the counterpart is the other party, and the action flags tell
// the client which buttons to draw.
type NotificationDTO struct {
	ID          string         `json:"id"`
	State       string         `json:"state"`
	CreatedAt   time.Time      `json:"created_at"`
	Counterpart contract.Party `json:"counterpart"`
	CanResolve  bool           `json:"can_resolve"`
	CanContact  bool           `json:"can_contact"`
	CanRate     bool           `json:"can_rate"`
}

func ToNotificationDTO(c contract.Contract, role profile.Role) NotificationDTO {
	return NotificationDTO{
		ID:          c.ID,
		State:       string(c.State),
		CreatedAt:   c.CreatedAt,
		Counterpart: c.Counterpart(role),
		CanResolve:  role == profile.RoleWorker && c.State == contract.StatePending,
		CanContact:  role == profile.RoleHirer && c.State == contract.StateAccepted,
		CanRate:     c.State == contract.StateAccepted,
	}
}

type NotificationListDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	Unseen        int               `json:"unseen"`
	// Error carries a human-readable notice when the backend refresh
	// failed and the list is the empty fallback.
	Error string `json:"error,omitempty"`
}

func ToNotificationListDTO(contracts []contract.Contract, unseen int, role profile.Role) NotificationListDTO {
	out := NotificationListDTO{
		Notifications: make([]NotificationDTO, len(contracts)),
		Unseen:        unseen,
	}
	for i, c := range contracts {
		out.Notifications[i] = ToNotificationDTO(c, role)
	}
	return out
}
