package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

var profileColumns = []string{
	"p.id", "p.owner_id", "p.company", "p.website", "p.location", "p.bio",
	"p.status", "p.github_username", "p.skills", "p.social", "p.experience",
	"p.education", "p.created_at", "p.updated_at",
	"u.id", "u.name", "u.avatar",
}

// scanProfile reads one joined profiles+users row. The JSONB columns come
// back as raw bytes; bad JSON is logged and degraded to empty, never fatal.
func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	ru := &profile.ResolvedUser{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Company, &p.Website, &p.Location, &p.Bio,
		&p.Status, &p.GithubUsername, &skillsBytes, &socialBytes,
		&experienceBytes, &educationBytes, &p.CreatedAt, &p.UpdatedAt,
		&ru.ID, &ru.Name, &ru.Avatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}
	p.User = ru

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		l.Warn("failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		l.Warn("failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = map[string]string{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		l.Warn("failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		l.Warn("failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		Where(sq.Eq{"p.owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	return scanProfile(r.db.QueryRow(ctx, query, args...), r.logger)
}

func (r *postgresProfileRepo) GetAll(ctx context.Context) ([]*profile.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profiles query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

// Upsert is one INSERT ... ON CONFLICT statement. The UNIQUE owner_id index
// makes two concurrent creations collapse into create-then-update instead of
// two rows; no check-then-act happens here. NULL parameters (absent input
// fields) keep the stored value through COALESCE.
func (r *postgresProfileRepo) Upsert(ctx context.Context, ownerID uuid.UUID, fields profile.Fields) (*profile.Profile, error) {
	var skillsBytes, socialBytes []byte
	var err error
	if fields.Skills != nil {
		if skillsBytes, err = json.Marshal(fields.Skills); err != nil {
			return nil, apperror.NewInternal("failed to marshal skills", err)
		}
	}
	if fields.Social != nil {
		if socialBytes, err = json.Marshal(fields.Social); err != nil {
			return nil, apperror.NewInternal("failed to marshal social", err)
		}
	}

	query := `
		INSERT INTO profiles (
			id, owner_id, company, website, location, bio, status,
			github_username, skills, social, experience, education,
			created_at, updated_at
		)
		VALUES (
			$1, $2,
			COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''),
			COALESCE($6, ''), COALESCE($7, ''), COALESCE($8, ''),
			COALESCE($9::jsonb, '[]'::jsonb), COALESCE($10::jsonb, '{}'::jsonb),
			'[]'::jsonb, '[]'::jsonb, NOW(), NOW()
		)
		ON CONFLICT (owner_id) DO UPDATE SET
			company         = COALESCE($3, profiles.company),
			website         = COALESCE($4, profiles.website),
			location        = COALESCE($5, profiles.location),
			bio             = COALESCE($6, profiles.bio),
			status          = COALESCE($7, profiles.status),
			github_username = COALESCE($8, profiles.github_username),
			skills          = COALESCE($9::jsonb, profiles.skills),
			social          = COALESCE($10::jsonb, profiles.social),
			updated_at      = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		uuid.New(), ownerID,
		fields.Company, fields.Website, fields.Location, fields.Bio,
		fields.Status, fields.GithubUsername, skillsBytes, socialBytes,
	)
	if err != nil {
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}

	return r.GetByOwner(ctx, ownerID)
}

func (r *postgresProfileRepo) SaveExperience(ctx context.Context, ownerID uuid.UUID, entries []profile.Experience) error {
	experienceBytes, err := json.Marshal(entries)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	return r.saveEntries(ctx, ownerID, "experience", experienceBytes)
}

func (r *postgresProfileRepo) SaveEducation(ctx context.Context, ownerID uuid.UUID, entries []profile.Education) error {
	educationBytes, err := json.Marshal(entries)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}
	return r.saveEntries(ctx, ownerID, "education", educationBytes)
}

func (r *postgresProfileRepo) saveEntries(ctx context.Context, ownerID uuid.UUID, column string, payload []byte) error {
	query, args, err := psql.Update("profiles").
		Set(column, payload).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build "+column+" update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update "+column, err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	query, args, err := psql.Delete("profiles").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile delete", err)
	}

	// Deleting an absent profile is fine; the operation is idempotent.
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
