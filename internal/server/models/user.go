// Package models defines the records persisted by the server repositories.
package models

import "time"

// UserStatus is the approval state of a member account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// User is a registered member. PasswordHash never leaves the server.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Name            string     `json:"name"`
	GraduationClass int        `json:"graduationClass"`
	Status          UserStatus `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	IsAdmin         bool       `json:"isAdmin"`
}

// IsApproved reports whether the user may log in and post.
func (u *User) IsApproved() bool {
	return u.Status == UserStatusApproved
}

// Clone returns a deep copy of u so callers cannot alias stored state.
func (u *User) Clone() *User {
	c := *u
	if u.ApprovedAt != nil {
		t := *u.ApprovedAt
		c.ApprovedAt = &t
	}
	if u.RejectedAt != nil {
		t := *u.RejectedAt
		c.RejectedAt = &t
	}
	return &c
}
