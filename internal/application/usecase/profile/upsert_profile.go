package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/application/service"
	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type UpsertProfileUseCase struct {
	profileRepo profile.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewUpsertProfileUseCase(repo profile.Repository, events service.EventPublisher, log logger.Logger) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{
		profileRepo: repo,
		events:      events,
		logger:      log,
	}
}

// UpsertProfileInput carries the whitelisted fields of the create-or-update
// request. Nil pointers are fields absent from the input; they never
// overwrite stored values. Social links rebuild the social map wholesale,
// matching the original create-or-update semantics.
type UpsertProfileInput struct {
	OwnerID        uuid.UUID
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	RawSkills      *string
	Social         map[string]string
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

func (uc *UpsertProfileUseCase) Execute(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()

	fields := profile.Fields{
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Social:         input.Social,
	}
	if input.RawSkills != nil {
		fields.Skills = profile.SplitSkills(*input.RawSkills)
	}

	p, err := uc.profileRepo.Upsert(ctx, input.OwnerID, fields)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upsert profile failed: %w", err)
	}
	span.SetAttributes(attribute.String("owner_id", input.OwnerID.String()))

	if err := uc.events.Publish(ctx, service.TopicProfileEvents, input.OwnerID.String(), map[string]any{
		"type":     "profile.upserted",
		"owner_id": input.OwnerID.String(),
	}); err != nil {
		uc.logger.Warn("failed to publish profile event", zap.String("owner_id", input.OwnerID.String()), zap.Error(err))
	}

	return &UpsertProfileOutput{Profile: p}, nil
}
