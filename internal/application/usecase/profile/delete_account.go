package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/application/service"
	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

type DeleteAccountUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(profileRepo profile.Repository, userRepo user.Repository, events service.EventPublisher, log logger.Logger) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		events:      events,
		logger:      log,
	}
}

type DeleteAccountInput struct {
	OwnerID uuid.UUID
}

// Execute removes the profile first and the user second. A failed profile
// removal fails the whole request before the user row is touched, so the
// caller never gets a success with half the account gone.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()

	if err := uc.profileRepo.DeleteByOwner(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete profile failed: %w", err)
	}

	if err := uc.userRepo.DeleteByID(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete user failed: %w", err)
	}

	if err := uc.events.Publish(ctx, service.TopicUserEvents, input.OwnerID.String(), map[string]any{
		"type":    "user.deleted",
		"user_id": input.OwnerID.String(),
	}); err != nil {
		uc.logger.Warn("failed to publish user event", zap.String("user_id", input.OwnerID.String()), zap.Error(err))
	}

	return nil
}
