package introductions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/dbx"
	"github.com/dmitrijs2005/alumni/internal/server/models"
)

const introColumns = `id, user_id, user_name, user_graduation_class, current_status, field, organization, location, ` +
	`self_introduction, interests, recent_projects, career_path, advice_for_juniors, looking_for, ` +
	`contact_preference, linked_in, website, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIntroduction(row scanner) (*models.Introduction, error) {
	var in models.Introduction
	err := row.Scan(&in.ID, &in.UserID, &in.UserName, &in.UserGraduationClass, &in.CurrentStatus,
		&in.Field, &in.Organization, &in.Location, &in.SelfIntroduction, &in.Interests,
		&in.RecentProjects, &in.CareerPath, &in.AdviceForJuniors, &in.LookingFor,
		&in.ContactPreference, &in.LinkedIn, &in.Website, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *PostgresRepository) Create(ctx context.Context, intro *models.Introduction) (*models.Introduction, error) {
	query :=
		`INSERT INTO introductions (id, user_id, user_name, user_graduation_class, current_status, field,
		   organization, location, self_introduction, interests, recent_projects, career_path,
		   advice_for_juniors, looking_for, contact_preference, linked_in, website)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING created_at, updated_at`

	in := *intro
	in.ID = common.NewID(common.IntroductionIDPrefix)

	err := r.db.QueryRowContext(ctx, query,
		in.ID, in.UserID, in.UserName, in.UserGraduationClass, in.CurrentStatus, in.Field,
		in.Organization, in.Location, in.SelfIntroduction, in.Interests, in.RecentProjects, in.CareerPath,
		in.AdviceForJuniors, in.LookingFor, in.ContactPreference, in.LinkedIn, in.Website,
	).Scan(&in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &in, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Introduction, error) {
	in, err := scanIntroduction(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return in, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Introduction, error) {
	return r.getOne(ctx, `SELECT `+introColumns+` FROM introductions WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Introduction, error) {
	return r.getOne(ctx, `SELECT `+introColumns+` FROM introductions WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.IntroductionPatch) (*models.Introduction, error) {
	query :=
		`UPDATE introductions SET
		   current_status     = COALESCE($2, current_status),
		   field              = COALESCE($3, field),
		   organization       = COALESCE($4, organization),
		   location           = COALESCE($5, location),
		   self_introduction  = COALESCE($6, self_introduction),
		   interests          = COALESCE($7, interests),
		   recent_projects    = COALESCE($8, recent_projects),
		   career_path        = COALESCE($9, career_path),
		   advice_for_juniors = COALESCE($10, advice_for_juniors),
		   looking_for        = COALESCE($11, looking_for),
		   contact_preference = COALESCE($12, contact_preference),
		   linked_in          = COALESCE($13, linked_in),
		   website            = COALESCE($14, website),
		   updated_at         = now()
		 WHERE id = $1
		 RETURNING ` + introColumns

	if patch == nil {
		patch = &models.IntroductionPatch{}
	}
	return r.getOne(ctx, query, id,
		patch.CurrentStatus, patch.Field, patch.Organization, patch.Location, patch.SelfIntroduction,
		patch.Interests, patch.RecentProjects, patch.CareerPath, patch.AdviceForJuniors,
		patch.LookingFor, patch.ContactPreference, patch.LinkedIn, patch.Website)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM introductions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Introduction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Introduction, 0)
	for rows.Next() {
		in, err := scanIntroduction(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Introduction, error) {
	return r.list(ctx, `SELECT `+introColumns+` FROM introductions ORDER BY created_at DESC, seq`)
}

func (r *PostgresRepository) GetByGraduationClass(ctx context.Context, class int) ([]*models.Introduction, error) {
	return r.list(ctx, `SELECT `+introColumns+` FROM introductions WHERE user_graduation_class = $1 ORDER BY seq`, class)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresRepository) Search(ctx context.Context, query string) ([]*models.Introduction, error) {
	if query == "" {
		return r.list(ctx, `SELECT `+introColumns+` FROM introductions ORDER BY seq`)
	}
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return r.list(ctx,
		`SELECT `+introColumns+` FROM introductions
		 WHERE user_name ILIKE $1 OR field ILIKE $1 OR organization ILIKE $1 OR self_introduction ILIKE $1
		 ORDER BY seq`, pattern)
}
