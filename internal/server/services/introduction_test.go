package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntroductionCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.member(t, "kim@example.com", 12, true)

	form := fullForm()
	form.Location = str("Incheon")
	in, err := f.intros.Create(ctx, u.ID, form)
	require.NoError(t, err)
	assert.Equal(t, u.ID, in.UserID)
	assert.Equal(t, u.Name, in.UserName)
	assert.Equal(t, 12, in.UserGraduationClass)
	assert.Equal(t, "Incheon", in.Location)
	assert.Equal(t, in.CreatedAt, in.UpdatedAt)

	got, err := f.intros.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestIntroductionCreate_Policy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := f.member(t, "pending@example.com", 10, false)
	approved := f.member(t, "ok@example.com", 10, true)

	_, err := f.intros.Create(ctx, "", fullForm())
	requireKind(t, err, KindUnauthenticated, MsgLoginRequired)

	_, err = f.intros.Create(ctx, pending.ID, fullForm())
	requireKind(t, err, KindForbidden, MsgIntroCreateNotApproved)

	_, err = f.intros.Create(ctx, "user-gone", fullForm())
	requireKind(t, err, KindForbidden, MsgIntroCreateNotApproved)

	missing := fullForm()
	missing.Organization = str("")
	_, err = f.intros.Create(ctx, approved.ID, missing)
	requireKind(t, err, KindValidation, MsgIntroMissingFields)

	_, err = f.intros.Create(ctx, approved.ID, nil)
	requireKind(t, err, KindValidation, MsgIntroMissingFields)

	_, err = f.intros.Create(ctx, approved.ID, fullForm())
	require.NoError(t, err)

	_, err = f.intros.Create(ctx, approved.ID, fullForm())
	requireKind(t, err, KindConflict, MsgIntroExists)

	_, err = f.intros.Create(ctx, approved.ID, missing)
	requireKind(t, err, KindConflict, MsgIntroExists)
}

func TestIntroductionSnapshotIsNotResynced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.member(t, "kim@example.com", 12, true)
	in, err := f.intros.Create(ctx, u.ID, fullForm())
	require.NoError(t, err)

	_, err = f.users.Reject(ctx, AdminID, u.ID)
	require.NoError(t, err)

	got, err := f.intros.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Name, got.UserName)
	assert.Equal(t, 12, got.UserGraduationClass)
}

func TestIntroductionUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.member(t, "owner@example.com", 12, true)
	other := f.member(t, "other@example.com", 13, true)
	in, err := f.intros.Create(ctx, owner.ID, fullForm())
	require.NoError(t, err)

	form := fullForm()
	form.Field = str("Biology")
	updated, err := f.intros.Update(ctx, owner.ID, in.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "Biology", updated.Field)
	assert.Equal(t, in.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(in.UpdatedAt))

	_, err = f.intros.Update(ctx, other.ID, in.ID, form)
	requireKind(t, err, KindForbidden, MsgIntroUpdateNotOwner)

	got, _ := f.intros.Get(ctx, in.ID)
	assert.Equal(t, "Biology", got.Field, "a rejected update leaves the record unchanged")

	_, err = f.intros.Update(ctx, owner.ID, "intro-missing", form)
	requireKind(t, err, KindNotFound, MsgIntroNotFound)

	_, err = f.intros.Update(ctx, "", in.ID, form)
	requireKind(t, err, KindUnauthenticated, MsgLoginRequired)

	missing := fullForm()
	missing.SelfIntroduction = nil
	_, err = f.intros.Update(ctx, owner.ID, in.ID, missing)
	requireKind(t, err, KindValidation, MsgIntroMissingFields)

	_, err = f.users.Reject(ctx, AdminID, owner.ID)
	require.NoError(t, err)
	_, err = f.intros.Update(ctx, owner.ID, in.ID, form)
	requireKind(t, err, KindForbidden, MsgIntroUpdateNotApproved)
}

func TestIntroductionDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.member(t, "owner@example.com", 12, true)
	other := f.member(t, "other@example.com", 13, true)
	in, err := f.intros.Create(ctx, owner.ID, fullForm())
	require.NoError(t, err)

	err = f.intros.Delete(ctx, "", in.ID)
	requireKind(t, err, KindUnauthenticated, MsgLoginRequired)

	err = f.intros.Delete(ctx, other.ID, in.ID)
	requireKind(t, err, KindForbidden, MsgIntroDeleteNotOwner)

	err = f.intros.Delete(ctx, owner.ID, "intro-missing")
	requireKind(t, err, KindNotFound, MsgIntroNotFound)

	require.NoError(t, f.intros.Delete(ctx, owner.ID, in.ID))
	_, err = f.intros.Get(ctx, in.ID)
	requireKind(t, err, KindNotFound, MsgIntroNotFound)
}

func TestIntroductionList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.member(t, "a@example.com", 5, true)
	b := f.member(t, "b@example.com", 6, true)

	ia, err := f.intros.Create(ctx, a.ID, fullForm())
	require.NoError(t, err)
	form := fullForm()
	form.Organization = str("KAIST")
	ib, err := f.intros.Create(ctx, b.ID, form)
	require.NoError(t, err)

	all, err := f.intros.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	class := 5
	byClass, err := f.intros.List(ctx, ListQuery{GraduationClass: &class})
	require.NoError(t, err)
	require.Len(t, byClass, 1)
	assert.Equal(t, ia.ID, byClass[0].ID)

	found, err := f.intros.List(ctx, ListQuery{Query: "kaist"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ib.ID, found[0].ID)

	none, err := f.intros.List(ctx, ListQuery{Query: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestCheckRequired(t *testing.T) {
	require.NoError(t, checkRequired(fullForm()))
	requireKind(t, checkRequired(&models.IntroductionPatch{}), KindValidation, MsgIntroMissingFields)
}

func TestIntroductionCheckCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := f.member(t, "pending@example.com", 10, false)
	approved := f.member(t, "ok@example.com", 10, true)

	requireKind(t, f.intros.CheckCreate(ctx, ""), KindUnauthenticated, MsgLoginRequired)
	requireKind(t, f.intros.CheckCreate(ctx, pending.ID), KindForbidden, MsgIntroCreateNotApproved)
	require.NoError(t, f.intros.CheckCreate(ctx, approved.ID))

	_, err := f.intros.Create(ctx, approved.ID, fullForm())
	require.NoError(t, err)
	requireKind(t, f.intros.CheckCreate(ctx, approved.ID), KindConflict, MsgIntroExists)
}

func TestIntroductionCheckUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.member(t, "owner@example.com", 12, true)
	other := f.member(t, "other@example.com", 13, true)
	pending := f.member(t, "pending@example.com", 14, false)
	in, err := f.intros.Create(ctx, owner.ID, fullForm())
	require.NoError(t, err)

	require.NoError(t, f.intros.CheckUpdate(ctx, owner.ID, in.ID))
	requireKind(t, f.intros.CheckUpdate(ctx, "", in.ID), KindUnauthenticated, MsgLoginRequired)
	requireKind(t, f.intros.CheckUpdate(ctx, pending.ID, in.ID), KindForbidden, MsgIntroUpdateNotApproved)
	requireKind(t, f.intros.CheckUpdate(ctx, owner.ID, "intro-missing"), KindNotFound, MsgIntroNotFound)
	requireKind(t, f.intros.CheckUpdate(ctx, other.ID, in.ID), KindForbidden, MsgIntroUpdateNotOwner)
}
