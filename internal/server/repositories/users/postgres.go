package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/dbx"
	"github.com/dmitrijs2005/alumni/internal/server/models"
)

const userColumns = `id, email, password_hash, name, graduation_class, status, is_admin, created_at, approved_at, rejected_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var (
		u          models.User
		status     string
		approvedAt sql.NullTime
		rejectedAt sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.GraduationClass,
		&status, &u.IsAdmin, &u.CreatedAt, &approvedAt, &rejectedAt)
	if err != nil {
		return nil, err
	}
	u.Status = models.UserStatus(status)
	if !u.Status.Valid() {
		return nil, fmt.Errorf("user %s has unknown status %q", u.ID, status)
	}
	if approvedAt.Valid {
		u.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		u.RejectedAt = &rejectedAt.Time
	}
	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, password_hash, name, graduation_class, status, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`

	u := user.Clone()
	u.ID = common.NewID(common.UserIDPrefix)
	u.ApprovedAt = nil
	u.RejectedAt = nil
	if u.Status == "" {
		u.Status = models.UserStatusPending
	}

	err := r.db.QueryRowContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.GraduationClass, string(u.Status), u.IsAdmin).Scan(&u.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) Seed(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, email, password_hash, name, graduation_class, status, is_admin, created_at, approved_at, rejected_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.GraduationClass, string(user.Status),
		user.IsAdmin, user.CreatedAt, user.ApprovedAt, user.RejectedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	query :=
		`UPDATE users SET status = $2,
		   approved_at = CASE WHEN $2 = 'approved' THEN now() ELSE approved_at END,
		   rejected_at = CASE WHEN $2 = 'rejected' THEN now() ELSE rejected_at END
		 WHERE id = $1
		 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetPending(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE status = $1 ORDER BY seq`, string(models.UserStatusPending))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
}
