package rest

import (
	"time"

	"github.com/dmitrijs2005/alumni/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registeredUser struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	Name            string            `json:"name"`
	GraduationClass int               `json:"graduationClass"`
	Status          models.UserStatus `json:"status"`
}

func toRegisteredUser(u *models.User) registeredUser {
	return registeredUser{ID: u.ID, Email: u.Email, Name: u.Name, GraduationClass: u.GraduationClass, Status: u.Status}
}

type sessionUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	GraduationClass int    `json:"graduationClass"`
	IsAdmin         bool   `json:"isAdmin"`
}

func toSessionUser(u *models.User) sessionUser {
	return sessionUser{ID: u.ID, Email: u.Email, Name: u.Name, GraduationClass: u.GraduationClass, IsAdmin: u.IsAdmin}
}

type currentUser struct {
	sessionUser
	Status models.UserStatus `json:"status"`
}

type pendingUser struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	Name            string            `json:"name"`
	GraduationClass int               `json:"graduationClass"`
	Status          models.UserStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func toPendingUsers(list []*models.User) []pendingUser {
	out := make([]pendingUser, 0, len(list))
	for _, u := range list {
		out = append(out, pendingUser{
			ID: u.ID, Email: u.Email, Name: u.Name, GraduationClass: u.GraduationClass,
			Status: u.Status, CreatedAt: u.CreatedAt,
		})
	}
	return out
}

func nonNil(list []*models.Introduction) []*models.Introduction {
	if list == nil {
		return []*models.Introduction{}
	}
	return list
}
