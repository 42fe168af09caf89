package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var columns = strings.Split(strings.ReplaceAll(userColumns, " ", ""), ",")

func userRow(id, email string, status models.UserStatus, approvedAt any) *sqlmock.Rows {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).
		AddRow(id, email, "hash", "Kim", 12, string(status), false, created, approvedAt, nil)
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*name,\s*graduation_class,\s*status,\s*is_admin\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "kim@example.com", "hash", "Kim", 12, "pending", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	got, err := repo.Create(context.Background(), &models.User{
		Email: "kim@example.com", PasswordHash: "hash", Name: "Kim", GraduationClass: 12,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ID, "user-"))
	assert.Equal(t, models.UserStatusPending, got.Status)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Email: "kim@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "kim@example.com"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSeed_IgnoresConflicts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now()
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users\s*\(.+\)\s*VALUES\s*\(.+\)\s*ON\s+CONFLICT\s+DO\s+NOTHING$`).
		WithArgs("admin-1", "admin@example.com", "hash", "관리자", 1, "approved", true, at, at, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Seed(context.Background(), &models.User{
		ID: "admin-1", Email: "admin@example.com", PasswordHash: "hash", Name: "관리자",
		GraduationClass: 1, Status: models.UserStatusApproved, IsAdmin: true, CreatedAt: at, ApprovedAt: &at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("kim@example.com").
		WillReturnRows(userRow("user-1", "kim@example.com", models.UserStatusPending, nil))

	got, err := repo.GetUserByEmail(context.Background(), "kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Nil(t, got.ApprovedAt)
	assert.Nil(t, got.RejectedAt)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByID_UnknownStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("user-1").
		WillReturnRows(userRow("user-1", "kim@example.com", models.UserStatus("banned"), nil))

	_, err := repo.GetUserByID(context.Background(), "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), `unknown status "banned"`)
}

func TestGetUserByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("user-1").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByID(context.Background(), "user-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+status\s*=\s*\$2,.+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,.+$`
	approved := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs("user-1", "approved").
		WillReturnRows(userRow("user-1", "kim@example.com", models.UserStatusApproved, approved))

	got, err := repo.UpdateStatus(context.Background(), "user-1", models.UserStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, got.Status)
	require.NotNil(t, got.ApprovedAt)
	assert.Equal(t, approved, *got.ApprovedAt)

	mock.ExpectQuery(q).
		WithArgs("missing", "rejected").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.UpdateStatus(context.Background(), "missing", models.UserStatusRejected)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateStatus_UnknownStatusSkipsDB(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.UpdateStatus(context.Background(), "user-1", models.UserStatus("banned"))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPending(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := userRow("user-1", "a@example.com", models.UserStatusPending, nil)
	rows.AddRow("user-2", "b@example.com", "hash", "Lee", 13, "pending", false, time.Now(), nil, nil)
	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+WHERE\s+status\s*=\s*\$1\s+ORDER\s+BY\s+seq$`).
		WithArgs("pending").
		WillReturnRows(rows)

	got, err := repo.GetPending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "user-1", got[0].ID)
	assert.Equal(t, "user-2", got[1].ID)
}

func TestGetAll_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+ORDER\s+BY\s+seq$`).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetAll_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,.+FROM\s+users\s+ORDER\s+BY\s+seq$`).
		WillReturnError(errors.New("db err"))

	_, err := repo.GetAll(context.Background())
	assert.Error(t, err)
}
