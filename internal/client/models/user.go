// Package models defines the data types exchanged with the DevBoard
// backend: the user profile and the onboarding form.
package models

import "strings"

// Plan describes the subscription the account is on. The backend owns
// plan state; the client only displays it.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"priceCents"`
	Interval   string `json:"interval"`
}

// User is the profile portion of a session as returned by the backend.
type User struct {
	ID                 string `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email"`
	EmailVerified      bool   `json:"emailVerified"`
	AvatarURL          string `json:"avatarUrl"`
	Plan               Plan   `json:"plan"`
	OnboardingComplete bool   `json:"onboardingComplete"`
	OnboardingStep     int    `json:"onboardingStep"`
}

// FullName joins first and last name, tolerating either being empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
