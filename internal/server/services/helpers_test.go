package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumni/internal/server/config"
	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/sessions"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	rm       *repomanager.InMemoryRepositoryManager
	sessions *sessions.InMemoryRepository
	users    *UserService
	intros   *IntroductionService
}

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.AdminEmail = "admin@example.com"
	c.AdminPassword = "admin123"
	c.SessionValidityDuration = time.Hour
	return &c
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()
	ss := sessions.NewInMemoryRepository()
	f := &fixture{
		rm:       rm,
		sessions: ss,
		users:    NewUserService(nil, rm, ss, testConfig()),
		intros:   NewIntroductionService(nil, rm),
	}
	require.NoError(t, f.users.SeedAdmin(context.Background()))
	return f
}

// member registers a user and optionally approves them.
func (f *fixture) member(t *testing.T, email string, class int, approve bool) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.users.Register(ctx, RegisterInput{Email: email, Password: "pw", Name: "Member " + email, GraduationClass: class})
	require.NoError(t, err)
	if approve {
		u, err = f.users.Approve(ctx, AdminID, u.ID)
		require.NoError(t, err)
	}
	return u
}

func requireKind(t *testing.T, err error, kind ErrorKind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se), "expected *services.Error, got %T: %v", err, err)
	require.Equal(t, kind, se.Kind, "message: %s", se.Message)
	if msg != "" {
		require.Equal(t, msg, se.Message)
	}
}

func str(s string) *string { return &s }

func fullForm() *models.IntroductionPatch {
	return &models.IntroductionPatch{
		CurrentStatus:    str("employee"),
		Field:            str("Software"),
		Organization:     str("Acme"),
		SelfIntroduction: str("hello"),
	}
}
