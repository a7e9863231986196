package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
)

type ExperienceUseCase struct {
	profileRepo profile.Repository
}

func NewExperienceUseCase(repo profile.Repository) *ExperienceUseCase {
	return &ExperienceUseCase{profileRepo: repo}
}

type AddExperienceInput struct {
	OwnerID uuid.UUID
	Entry   profile.Experience
}

type ExperienceOutput struct {
	Profile *profile.Profile
}

// ExecuteAdd prepends the entry to the owner's experience under a fresh
// identity and persists the sequence. Fails with profile.ErrProfileNotFound
// when the owner has no profile yet.
func (uc *ExperienceUseCase) ExecuteAdd(ctx context.Context, input AddExperienceInput) (*ExperienceOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("add experience failed: %w", err)
	}

	entry := input.Entry
	entry.ID = uuid.New()
	p.AddExperience(entry)

	if err := uc.profileRepo.SaveExperience(ctx, input.OwnerID, p.Experience); err != nil {
		return nil, fmt.Errorf("add experience failed: %w", err)
	}
	return &ExperienceOutput{Profile: p}, nil
}

type RemoveExperienceInput struct {
	OwnerID uuid.UUID
	EntryID uuid.UUID
}

// ExecuteRemove deletes the entry with the given identity. An identity that
// matches nothing removes nothing and still succeeds.
func (uc *ExperienceUseCase) ExecuteRemove(ctx context.Context, input RemoveExperienceInput) (*ExperienceOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("remove experience failed: %w", err)
	}

	p.RemoveExperience(input.EntryID)

	if err := uc.profileRepo.SaveExperience(ctx, input.OwnerID, p.Experience); err != nil {
		return nil, fmt.Errorf("remove experience failed: %w", err)
	}
	return &ExperienceOutput{Profile: p}, nil
}
