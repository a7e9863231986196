package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
)

type EducationUseCase struct {
	profileRepo profile.Repository
}

func NewEducationUseCase(repo profile.Repository) *EducationUseCase {
	return &EducationUseCase{profileRepo: repo}
}

type AddEducationInput struct {
	OwnerID uuid.UUID
	Entry   profile.Education
}

type EducationOutput struct {
	Profile *profile.Profile
}

func (uc *EducationUseCase) ExecuteAdd(ctx context.Context, input AddEducationInput) (*EducationOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("add education failed: %w", err)
	}

	entry := input.Entry
	entry.ID = uuid.New()
	p.AddEducation(entry)

	if err := uc.profileRepo.SaveEducation(ctx, input.OwnerID, p.Education); err != nil {
		return nil, fmt.Errorf("add education failed: %w", err)
	}
	return &EducationOutput{Profile: p}, nil
}

type RemoveEducationInput struct {
	OwnerID uuid.UUID
	EntryID uuid.UUID
}

func (uc *EducationUseCase) ExecuteRemove(ctx context.Context, input RemoveEducationInput) (*EducationOutput, error) {
	p, err := uc.profileRepo.GetByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("remove education failed: %w", err)
	}

	p.RemoveEducation(input.EntryID)

	if err := uc.profileRepo.SaveEducation(ctx, input.OwnerID, p.Education); err != nil {
		return nil, fmt.Errorf("remove education failed: %w", err)
	}
	return &EducationOutput{Profile: p}, nil
}
