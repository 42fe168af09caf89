package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserStatus_Valid(t *testing.T) {
	assert.True(t, UserStatusPending.Valid())
	assert.True(t, UserStatusApproved.Valid())
	assert.True(t, UserStatusRejected.Valid())
	assert.False(t, UserStatus("banned").Valid())
}

func TestUser_Clone(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u := &User{ID: "user-1", Status: UserStatusApproved, ApprovedAt: &at}

	c := u.Clone()
	c.Name = "changed"
	*c.ApprovedAt = at.Add(time.Hour)

	assert.Empty(t, u.Name)
	assert.Equal(t, at, *u.ApprovedAt)
	assert.True(t, u.IsApproved())
}

func TestIntroductionPatch_Apply(t *testing.T) {
	in := &Introduction{
		CurrentStatus:    "employee",
		Field:            "AI",
		Organization:     "Acme",
		SelfIntroduction: "hello",
		Location:         "Seoul",
	}
	field := "Bio"
	empty := ""
	p := &IntroductionPatch{Field: &field, Location: &empty}

	p.Apply(in)

	assert.Equal(t, "Bio", in.Field)
	assert.Equal(t, "", in.Location)
	assert.Equal(t, "employee", in.CurrentStatus)
	assert.Equal(t, "Acme", in.Organization)
	assert.Equal(t, "hello", in.SelfIntroduction)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}
