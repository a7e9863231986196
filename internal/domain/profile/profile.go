package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Experience is one work-history entry. The ID is its identity: entries are
// removed by ID, never by position, so concurrent inserts cannot shift a
// removal onto the wrong element.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// ResolvedUser is the owner reference expanded at read time with the display
// fields a profile listing needs. It is never stored on the profile row.
type ResolvedUser struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Profile struct {
	ID             uuid.UUID         `json:"id"`
	OwnerID        uuid.UUID         `json:"owner_id"`
	User           *ResolvedUser     `json:"user,omitempty"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `json:"status"`
	GithubUsername string            `json:"githubusername,omitempty"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Fields is the partial update applied by an upsert. Nil pointers mean the
// field was absent from the input and the stored value stays untouched.
// Social is replaced wholesale whenever non-nil.
type Fields struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Social         map[string]string
}

// SplitSkills turns the delimited skills input into the stored sequence:
// split on comma, each element trimmed.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, len(parts))
	for i, p := range parts {
		skills[i] = strings.TrimSpace(p)
	}
	return skills
}

// AddExperience prepends the entry so the sequence stays newest-first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience removes the entry with the given identity. Removing an
// absent identity is a no-op: the sequence is returned to the caller
// unchanged and the operation still counts as a success.
func (p *Profile) RemoveExperience(id uuid.UUID) {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return
		}
	}
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id uuid.UUID) {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return
		}
	}
}

type Repository interface {
	// GetByOwner returns the owner's profile with the user reference
	// resolved, or ErrProfileNotFound.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	// GetAll returns every profile, each with its owner resolved.
	GetAll(ctx context.Context) ([]*Profile, error)
	// Upsert creates or partially updates the owner's profile in a single
	// statement. One-profile-per-owner is enforced by the store, not here.
	Upsert(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Profile, error)
	// SaveExperience persists the owner's full experience sequence.
	SaveExperience(ctx context.Context, ownerID uuid.UUID, entries []Experience) error
	// SaveEducation persists the owner's full education sequence.
	SaveEducation(ctx context.Context, ownerID uuid.UUID, entries []Education) error
	// DeleteByOwner is idempotent: a missing profile is not an error.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
