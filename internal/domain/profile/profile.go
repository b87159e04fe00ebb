package profile

import (
	"context"
	"io"
	"strings"
)

// Role values are the upstream's wire values. A user can switch between
// worker and hirer from their dashboard; visitors can only browse.
type Role string

const (
	RoleWorker  Role = "empleado"
	RoleHirer   Role = "empleador"
	RoleVisitor Role = "visitante"
)

func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleHirer, RoleVisitor:
		return true
	}
	return false
}

type Profile struct {
	UserID        string   `json:"user_id"`
	ProfileID     string   `json:"profile_id"`
	Role          Role     `json:"role"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Locality      string   `json:"locality"`
	Phone         string   `json:"phone,omitempty"`
	Profession    string   `json:"profession,omitempty"`
	Experience    int      `json:"experience"`
	HourlyPrice   float64  `json:"hourly_price"`
	Rating        float64  `json:"rating"`
	Tags          []string `json:"tags"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
	ResumeURL     string   `json:"resume_url,omitempty"`
	AcceptedTerms bool     `json:"accepted_terms"`
}

// SearchText is the haystack the directory search matches against:
// name, profession, tags and locality, lowercased.
func (p *Profile) SearchText() string {
	parts := make([]string, 0, 4+len(p.Tags))
	parts = append(parts, p.Name, p.Profession, p.Locality)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Update carries the editable profile fields. Avatar and Resume are opaque
// streams forwarded to the upstream; the gateway never stores them.
type Update struct {
	Name       string
	Email      string
	Locality   string
	Phone      string
	Profession string
	Experience int
	Price      float64
	Tags       []string
	Role       Role // empty means unchanged

	Avatar         io.Reader
	AvatarFilename string
	Resume         io.Reader
	ResumeFilename string
}

// Directory is the remote profile API.
type Directory interface {
	FetchByID(ctx context.Context, token, profileID string) (*Profile, error)
	FetchAll(ctx context.Context, token string) ([]Profile, error)
	Update(ctx context.Context, token, profileID string, upd Update) (*Profile, error)
}
