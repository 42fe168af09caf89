package models

import "time"

// Introduction is a member's self-introduction post. UserName and
// UserGraduationClass are copied from the author at creation time and are
// not updated afterwards.
type Introduction struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	UserName            string    `json:"userName"`
	UserGraduationClass int       `json:"userGraduationClass"`
	CurrentStatus       string    `json:"currentStatus"`
	Field               string    `json:"field"`
	Organization        string    `json:"organization"`
	Location            string    `json:"location,omitempty"`
	SelfIntroduction    string    `json:"selfIntroduction"`
	Interests           string    `json:"interests,omitempty"`
	RecentProjects      string    `json:"recentProjects,omitempty"`
	CareerPath          string    `json:"careerPath,omitempty"`
	AdviceForJuniors    string    `json:"adviceForJuniors,omitempty"`
	LookingFor          string    `json:"lookingFor,omitempty"`
	ContactPreference   string    `json:"contactPreference,omitempty"`
	LinkedIn            string    `json:"linkedIn,omitempty"`
	Website             string    `json:"website,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// IntroductionPatch holds the fields supplied by an update. Nil fields keep
// their stored value.
type IntroductionPatch struct {
	CurrentStatus     *string `json:"currentStatus,omitempty"`
	Field             *string `json:"field,omitempty"`
	Organization      *string `json:"organization,omitempty"`
	Location          *string `json:"location,omitempty"`
	SelfIntroduction  *string `json:"selfIntroduction,omitempty"`
	Interests         *string `json:"interests,omitempty"`
	RecentProjects    *string `json:"recentProjects,omitempty"`
	CareerPath        *string `json:"careerPath,omitempty"`
	AdviceForJuniors  *string `json:"adviceForJuniors,omitempty"`
	LookingFor        *string `json:"lookingFor,omitempty"`
	ContactPreference *string `json:"contactPreference,omitempty"`
	LinkedIn          *string `json:"linkedIn,omitempty"`
	Website           *string `json:"website,omitempty"`
}

// Apply merges the non-nil patch fields into in.
func (p *IntroductionPatch) Apply(in *Introduction) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&in.CurrentStatus, p.CurrentStatus)
	set(&in.Field, p.Field)
	set(&in.Organization, p.Organization)
	set(&in.Location, p.Location)
	set(&in.SelfIntroduction, p.SelfIntroduction)
	set(&in.Interests, p.Interests)
	set(&in.RecentProjects, p.RecentProjects)
	set(&in.CareerPath, p.CareerPath)
	set(&in.AdviceForJuniors, p.AdviceForJuniors)
	set(&in.LookingFor, p.LookingFor)
	set(&in.ContactPreference, p.ContactPreference)
	set(&in.LinkedIn, p.LinkedIn)
	set(&in.Website, p.Website)
}
