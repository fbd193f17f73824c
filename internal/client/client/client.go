package client

import (
	"context"

	"github.com/dmitrijs2005/devboard/internal/client/models"
)

// SignUpRequest is the payload of POST /auth/signup.
type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is the success body of /auth/login and /auth/signup.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Client is the transport-agnostic contract for talking to the DevBoard
// backend. Implementations must honor context cancellation and map
// transport conditions to the sentinel errors in this package.
type Client interface {
	Close() error

	// SetToken installs the bearer token attached to authenticated calls.
	// An empty string clears it.
	SetToken(token string)

	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	FetchProfile(ctx context.Context) (*models.User, error)
	FetchOnboarding(ctx context.Context) (*models.OnboardingForm, error)
	SaveOnboarding(ctx context.Context, form *models.OnboardingForm) error

	Ping(ctx context.Context) error
}
