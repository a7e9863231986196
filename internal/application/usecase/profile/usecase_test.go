package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

type fakeProfileRepo struct {
	profiles        map[uuid.UUID]*domain.Profile
	upsertedFields  *domain.Fields
	savedExperience []domain.Experience
	savedEducation  []domain.Education
	deletedOwners   []uuid.UUID
	deleteErr       error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{}}
}

func (f *fakeProfileRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[ownerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	cp.Experience = append([]domain.Experience(nil), p.Experience...)
	cp.Education = append([]domain.Education(nil), p.Education...)
	return &cp, nil
}

func (f *fakeProfileRepo) GetAll(_ context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, ownerID uuid.UUID, fields domain.Fields) (*domain.Profile, error) {
	f.upsertedFields = &fields
	p, ok := f.profiles[ownerID]
	if !ok {
		p = &domain.Profile{ID: uuid.New(), OwnerID: ownerID}
		f.profiles[ownerID] = p
	}
	if fields.Status != nil {
		p.Status = *fields.Status
	}
	if fields.Company != nil {
		p.Company = *fields.Company
	}
	if fields.Skills != nil {
		p.Skills = fields.Skills
	}
	if fields.Social != nil {
		p.Social = fields.Social
	}
	return p, nil
}

func (f *fakeProfileRepo) SaveExperience(_ context.Context, ownerID uuid.UUID, entries []domain.Experience) error {
	p, ok := f.profiles[ownerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	f.savedExperience = entries
	p.Experience = entries
	return nil
}

func (f *fakeProfileRepo) SaveEducation(_ context.Context, ownerID uuid.UUID, entries []domain.Education) error {
	p, ok := f.profiles[ownerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	f.savedEducation = entries
	p.Education = entries
	return nil
}

func (f *fakeProfileRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedOwners = append(f.deletedOwners, ownerID)
	delete(f.profiles, ownerID)
	return nil
}

type fakeUserRepo struct {
	users      map[uuid.UUID]*user.User
	deletedIDs []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.users, id)
	return nil
}

type capturingPublisher struct {
	topics []string
	err    error
}

func (p *capturingPublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	return nil
}

func seedProfile(repo *fakeProfileRepo, ownerID uuid.UUID) *domain.Profile {
	p := &domain.Profile{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  gofakeit.JobTitle(),
		Skills:  []string{"go", "sql"},
	}
	repo.profiles[ownerID] = p
	return p
}

func TestUpsertProfile_NormalizesSkills(t *testing.T) {
	repo := newFakeProfileRepo()
	events := &capturingPublisher{}
	uc := NewUpsertProfileUseCase(repo, events, logger.NewNop())

	ownerID := uuid.New()
	status := "Developer"
	skills := "node, react, css"

	output, err := uc.Execute(context.Background(), UpsertProfileInput{
		OwnerID:   ownerID,
		Status:    &status,
		RawSkills: &skills,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"node", "react", "css"}, repo.upsertedFields.Skills)
	assert.Equal(t, []string{"node", "react", "css"}, output.Profile.Skills)
	assert.Equal(t, []string{"profile.events"}, events.topics)
}

func TestUpsertProfile_AbsentFieldsStayNil(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := NewUpsertProfileUseCase(repo, &capturingPublisher{}, logger.NewNop())

	ownerID := uuid.New()
	status := "Student"
	skills := "go"

	_, err := uc.Execute(context.Background(), UpsertProfileInput{
		OwnerID:   ownerID,
		Status:    &status,
		RawSkills: &skills,
	})

	require.NoError(t, err)
	assert.Nil(t, repo.upsertedFields.Company)
	assert.Nil(t, repo.upsertedFields.Website)
	assert.Nil(t, repo.upsertedFields.Bio)
}

func TestUpsertProfile_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := newFakeProfileRepo()
	events := &capturingPublisher{err: errors.New("broker down")}
	uc := NewUpsertProfileUseCase(repo, events, logger.NewNop())

	status := "Developer"
	skills := "go"
	_, err := uc.Execute(context.Background(), UpsertProfileInput{
		OwnerID:   uuid.New(),
		Status:    &status,
		RawSkills: &skills,
	})

	assert.NoError(t, err)
}

func TestAddExperience_AssignsIdentityAndPrepends(t *testing.T) {
	repo := newFakeProfileRepo()
	ownerID := uuid.New()
	seedProfile(repo, ownerID)
	existing := domain.Experience{ID: uuid.New(), Title: "old role", Company: "Acme", From: time.Now().UTC()}
	repo.profiles[ownerID].Experience = []domain.Experience{existing}

	uc := NewExperienceUseCase(repo)
	output, err := uc.ExecuteAdd(context.Background(), AddExperienceInput{
		OwnerID: ownerID,
		Entry:   domain.Experience{Title: "new role", Company: "Globex", From: time.Now().UTC()},
	})

	require.NoError(t, err)
	require.Len(t, output.Profile.Experience, 2)
	assert.Equal(t, "new role", output.Profile.Experience[0].Title)
	assert.NotEqual(t, uuid.Nil, output.Profile.Experience[0].ID)
	assert.Equal(t, existing.ID, output.Profile.Experience[1].ID)
	assert.Equal(t, output.Profile.Experience, repo.savedExperience)
}

func TestAddExperience_NoProfile(t *testing.T) {
	uc := NewExperienceUseCase(newFakeProfileRepo())

	_, err := uc.ExecuteAdd(context.Background(), AddExperienceInput{
		OwnerID: uuid.New(),
		Entry:   domain.Experience{Title: "role", Company: "Acme"},
	})

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRemoveExperience_RoundTrip(t *testing.T) {
	repo := newFakeProfileRepo()
	ownerID := uuid.New()
	seedProfile(repo, ownerID)
	existing := domain.Experience{ID: uuid.New(), Title: "old role", Company: "Acme"}
	repo.profiles[ownerID].Experience = []domain.Experience{existing}

	uc := NewExperienceUseCase(repo)
	added, err := uc.ExecuteAdd(context.Background(), AddExperienceInput{
		OwnerID: ownerID,
		Entry:   domain.Experience{Title: "temp role", Company: "Globex"},
	})
	require.NoError(t, err)

	removed, err := uc.ExecuteRemove(context.Background(), RemoveExperienceInput{
		OwnerID: ownerID,
		EntryID: added.Profile.Experience[0].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Experience{existing}, removed.Profile.Experience)
}

func TestRemoveExperience_AbsentIdentityStillSucceeds(t *testing.T) {
	repo := newFakeProfileRepo()
	ownerID := uuid.New()
	seedProfile(repo, ownerID)
	existing := domain.Experience{ID: uuid.New(), Title: "role", Company: "Acme"}
	repo.profiles[ownerID].Experience = []domain.Experience{existing}

	uc := NewExperienceUseCase(repo)
	output, err := uc.ExecuteRemove(context.Background(), RemoveExperienceInput{
		OwnerID: ownerID,
		EntryID: uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Experience{existing}, output.Profile.Experience)
	assert.Equal(t, []domain.Experience{existing}, repo.savedExperience)
}

func TestAddEducation_AssignsIdentityAndPrepends(t *testing.T) {
	repo := newFakeProfileRepo()
	ownerID := uuid.New()
	seedProfile(repo, ownerID)

	uc := NewEducationUseCase(repo)
	output, err := uc.ExecuteAdd(context.Background(), AddEducationInput{
		OwnerID: ownerID,
		Entry:   domain.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"},
	})

	require.NoError(t, err)
	require.Len(t, output.Profile.Education, 1)
	assert.NotEqual(t, uuid.Nil, output.Profile.Education[0].ID)
	assert.Equal(t, output.Profile.Education, repo.savedEducation)
}

func TestDeleteAccount_RemovesProfileThenUser(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	userRepo := newFakeUserRepo()
	events := &capturingPublisher{}
	ownerID := uuid.New()
	seedProfile(profileRepo, ownerID)
	userRepo.users[ownerID] = &user.User{ID: ownerID, Email: gofakeit.Email()}

	uc := NewDeleteAccountUseCase(profileRepo, userRepo, events, logger.NewNop())
	err := uc.Execute(context.Background(), DeleteAccountInput{OwnerID: ownerID})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ownerID}, profileRepo.deletedOwners)
	assert.Equal(t, []uuid.UUID{ownerID}, userRepo.deletedIDs)
	assert.Equal(t, []string{"user.events"}, events.topics)
}

func TestDeleteAccount_ProfileDeleteFailureStopsUserDelete(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	profileRepo.deleteErr = errors.New("store down")
	userRepo := newFakeUserRepo()
	ownerID := uuid.New()
	userRepo.users[ownerID] = &user.User{ID: ownerID}

	uc := NewDeleteAccountUseCase(profileRepo, userRepo, &capturingPublisher{}, logger.NewNop())
	err := uc.Execute(context.Background(), DeleteAccountInput{OwnerID: ownerID})

	assert.Error(t, err)
	assert.Empty(t, userRepo.deletedIDs)
}
