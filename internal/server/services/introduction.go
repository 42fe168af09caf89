package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/dbx"
	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/introductions"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/users"
)

// requiredIntroduction lists the introduction fields that must be non-empty.
type requiredIntroduction struct {
	CurrentStatus    string `validate:"required"`
	Field            string `validate:"required"`
	Organization     string `validate:"required"`
	SelfIntroduction string `validate:"required"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func checkRequired(in *models.IntroductionPatch) error {
	tags, err := failedTags(requiredIntroduction{
		CurrentStatus:    deref(in.CurrentStatus),
		Field:            deref(in.Field),
		Organization:     deref(in.Organization),
		SelfIntroduction: deref(in.SelfIntroduction),
	})
	if err != nil {
		return internalError(err)
	}
	if len(tags) > 0 {
		return newError(KindValidation, MsgIntroMissingFields)
	}
	return nil
}

// ListQuery narrows List. Query takes precedence over GraduationClass.
type ListQuery struct {
	Query           string
	GraduationClass *int
}

type IntroductionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewIntroductionService constructs an IntroductionService. db may be nil
// for in-memory storage.
func NewIntroductionService(db *sql.DB, m repomanager.RepositoryManager) *IntroductionService {
	return &IntroductionService{db: db, repomanager: m}
}

// withRepos runs fn against repositories bound to one transaction when a
// database is configured.
func (s *IntroductionService) withRepos(ctx context.Context, fn func(users.Repository, introductions.Repository) error) error {
	if s.db == nil {
		return fn(s.repomanager.Users(nil), s.repomanager.Introductions(nil))
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(s.repomanager.Users(tx), s.repomanager.Introductions(tx))
	})
}

// List returns introductions newest first, or the search or class-filter
// results in store order when q narrows the listing.
func (s *IntroductionService) List(ctx context.Context, q ListQuery) ([]*models.Introduction, error) {
	repo := s.repomanager.Introductions(s.db)

	var (
		list []*models.Introduction
		err  error
	)
	switch {
	case q.Query != "":
		list, err = repo.Search(ctx, q.Query)
	case q.GraduationClass != nil:
		list, err = repo.GetByGraduationClass(ctx, *q.GraduationClass)
	default:
		list, err = repo.GetAll(ctx)
	}
	if err != nil {
		return nil, internalError(err)
	}
	return list, nil
}

func (s *IntroductionService) Get(ctx context.Context, id string) (*models.Introduction, error) {
	in, err := s.repomanager.Introductions(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, newError(KindNotFound, MsgIntroNotFound)
		}
		return nil, internalError(err)
	}
	return in, nil
}

// approvedUser loads userID and checks it may post; denied is the message
// returned when it may not.
func approvedUser(ctx context.Context, repo users.Repository, userID, denied string) (*models.User, error) {
	if userID == "" {
		return nil, newError(KindUnauthenticated, MsgLoginRequired)
	}
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, internalError(err)
	}
	if user == nil || !user.IsApproved() {
		return nil, newError(KindForbidden, denied)
	}
	return user, nil
}

// createAllowed checks the form-independent Create preconditions in order:
// session, approval, no existing introduction.
func createAllowed(ctx context.Context, ur users.Repository, ir introductions.Repository, userID string) (*models.User, error) {
	user, err := approvedUser(ctx, ur, userID, MsgIntroCreateNotApproved)
	if err != nil {
		return nil, err
	}

	_, err = ir.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, newError(KindConflict, MsgIntroExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError(err)
	}
	return user, nil
}

// CheckCreate reports the error Create would return before looking at the
// form, or nil when the caller may create an introduction.
func (s *IntroductionService) CheckCreate(ctx context.Context, userID string) error {
	err := s.withRepos(ctx, func(ur users.Repository, ir introductions.Repository) error {
		_, err := createAllowed(ctx, ur, ir, userID)
		return err
	})
	if err != nil {
		return AsError(err)
	}
	return nil
}

// Create stores the caller's introduction with a snapshot of their name and
// graduation class.
func (s *IntroductionService) Create(ctx context.Context, userID string, in *models.IntroductionPatch) (*models.Introduction, error) {
	var created *models.Introduction
	err := s.withRepos(ctx, func(ur users.Repository, ir introductions.Repository) error {
		user, err := createAllowed(ctx, ur, ir, userID)
		if err != nil {
			return err
		}

		if in == nil {
			in = &models.IntroductionPatch{}
		}
		if err := checkRequired(in); err != nil {
			return err
		}

		intro := &models.Introduction{
			UserID:              user.ID,
			UserName:            user.Name,
			UserGraduationClass: user.GraduationClass,
		}
		in.Apply(intro)

		created, err = ir.Create(ctx, intro)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return newError(KindConflict, MsgIntroExists)
			}
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, AsError(err)
	}
	return created, nil
}

// updateAllowed checks the form-independent Update preconditions in order:
// session, approval, existence, ownership.
func updateAllowed(ctx context.Context, ur users.Repository, ir introductions.Repository, userID, id string) error {
	if _, err := approvedUser(ctx, ur, userID, MsgIntroUpdateNotApproved); err != nil {
		return err
	}
	return checkOwner(ctx, ir, userID, id, MsgIntroUpdateNotOwner)
}

// CheckUpdate reports the error Update would return before looking at the
// form, or nil when the caller may edit introduction id.
func (s *IntroductionService) CheckUpdate(ctx context.Context, userID, id string) error {
	err := s.withRepos(ctx, func(ur users.Repository, ir introductions.Repository) error {
		return updateAllowed(ctx, ur, ir, userID, id)
	})
	if err != nil {
		return AsError(err)
	}
	return nil
}

// Update merges in into the caller's own introduction.
func (s *IntroductionService) Update(ctx context.Context, userID, id string, in *models.IntroductionPatch) (*models.Introduction, error) {
	var updated *models.Introduction
	err := s.withRepos(ctx, func(ur users.Repository, ir introductions.Repository) error {
		if err := updateAllowed(ctx, ur, ir, userID, id); err != nil {
			return err
		}

		if in == nil {
			in = &models.IntroductionPatch{}
		}
		if err := checkRequired(in); err != nil {
			return err
		}

		var err error
		updated, err = ir.Update(ctx, id, in)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return newError(KindNotFound, MsgIntroNotFound)
			}
			return internalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, AsError(err)
	}
	return updated, nil
}

// Delete removes the caller's own introduction.
func (s *IntroductionService) Delete(ctx context.Context, userID, id string) error {
	err := s.withRepos(ctx, func(_ users.Repository, ir introductions.Repository) error {
		if userID == "" {
			return newError(KindUnauthenticated, MsgLoginRequired)
		}
		if err := checkOwner(ctx, ir, userID, id, MsgIntroDeleteNotOwner); err != nil {
			return err
		}

		deleted, err := ir.Delete(ctx, id)
		if err != nil {
			return internalError(err)
		}
		if !deleted {
			return newError(KindInternal, MsgIntroDeleteFailed)
		}
		return nil
	})
	if err != nil {
		return AsError(err)
	}
	return nil
}

func checkOwner(ctx context.Context, ir introductions.Repository, userID, id, denied string) error {
	existing, err := ir.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return newError(KindNotFound, MsgIntroNotFound)
		}
		return internalError(err)
	}
	if existing.UserID != userID {
		return newError(KindForbidden, denied)
	}
	return nil
}
