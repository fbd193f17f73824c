// Package services contains the application services of the DevBoard CLI.
// This file defines the authentication service: login, signup, logout,
// password reset, and profile refresh against the remote API.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devboard/internal/client/client"
	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/client/session"
	"github.com/dmitrijs2005/devboard/internal/common"
	"github.com/dmitrijs2005/devboard/internal/logging"
)

// ErrValidation signals that local field checks failed before any network
// call; details are in SignUpResult.FieldErrors.
var ErrValidation = errors.New("validation failed")

// SignUpInput is the transient signup payload. The password is wiped by the
// caller after the submit cycle; the service never retains it.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  []byte
}

// SignUpResult reports the two phases of signup separately: creating the
// account and establishing a session. The typed values come back so a form
// can be redisplayed without data loss.
type SignUpResult struct {
	AccountCreated     bool
	SessionEstablished bool

	// Message is a user-facing outcome note ("account created, please log
	// in") on the partial-success path. Empty on full success.
	Message string

	// FieldErrors maps field names to messages when local validation
	// failed; the operation made no network call in that case.
	FieldErrors map[string]string

	FirstName string
	LastName  string
	Email     string
}

// AuthService brokers identity between the remote API and the rest of the
// CLI. Every failure is converted into an error whose text is safe to show
// to the user; nothing here is fatal, the caller can always retry.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*session.Session, error)
	SignUp(ctx context.Context, in SignUpInput) (SignUpResult, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token string, newPassword, confirmPassword []byte) (string, error)
	RefreshProfile(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions *session.Manager
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session manager.
func NewAuthService(c client.Client, sessions *session.Manager, log logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, log: log}
}

// Login validates the email shape locally, then exchanges credentials for a
// session. Wrong credentials surface as common.ErrIncorrectCredentials;
// any other failure collapses into common.ErrSomethingWentWrong. A single
// failed attempt is reported directly, no retry.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*session.Session, error) {
	if !common.ValidEmail(email) {
		return nil, common.ErrInvalidEmailAddress
	}

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrInvalidCredentials) {
			return nil, common.ErrIncorrectCredentials
		}
		a.log.Debug(ctx, "login failed", "error", err)
		return nil, common.ErrSomethingWentWrong
	}

	s := session.Session{Token: resp.Token, User: resp.User}
	if err := a.sessions.Set(ctx, s); err != nil {
		a.log.Error(ctx, "storing session failed", "error", err)
		a.client.SetToken("")
		return nil, common.ErrSomethingWentWrong
	}

	out := s
	return &out, nil
}

// SignUp creates an account and then attempts an automatic login with the
// same credentials. The two phases are reported independently: a login
// failure after a created account is a partial success, not an error.
func (a *authService) SignUp(ctx context.Context, in SignUpInput) (SignUpResult, error) {
	res := SignUpResult{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}

	fieldErrs := map[string]string{}
	if in.FirstName == "" {
		fieldErrs["firstName"] = common.MsgFieldRequired
	}
	switch {
	case in.Email == "":
		fieldErrs["email"] = common.MsgFieldRequired
	case !common.ValidEmail(in.Email):
		fieldErrs["email"] = common.MsgInvalidEmail
	}
	if len(in.Password) == 0 {
		fieldErrs["password"] = common.MsgFieldRequired
	}
	if len(fieldErrs) > 0 {
		res.FieldErrors = fieldErrs
		return res, ErrValidation
	}

	_, err := a.client.SignUp(ctx, client.SignUpRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(in.Password),
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			// Server rejections are surfaced verbatim.
			return res, errors.New(apiErr.Message)
		}
		a.log.Debug(ctx, "signup failed", "error", err)
		return res, common.ErrSomethingWentWrong
	}
	res.AccountCreated = true

	if _, err := a.Login(ctx, in.Email, in.Password); err != nil {
		a.log.Warn(ctx, "post-signup login failed", "error", err)
		res.Message = "Your account was created, but signing you in failed. Please log in."
		return res, nil
	}
	res.SessionEstablished = true
	return res, nil
}

// Logout invalidates the session and clears the bearer token and the local
// cache. Confirmation is the caller's concern; by the time this runs the
// decision has been made.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "clearing session failed", "error", err)
		return common.ErrSomethingWentWrong
	}
	return nil
}

// RequestPasswordReset reports the same generic confirmation for every
// outcome, registered address or not, so responses cannot be used to probe
// which emails exist. Transport failures are logged, never surfaced.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if !common.ValidEmail(email) {
		return "", common.ErrInvalidEmailAddress
	}

	if err := a.client.RequestPasswordReset(ctx, email); err != nil {
		a.log.Debug(ctx, "password reset request failed", "error", err)
	}
	return common.MsgResetRequested, nil
}

// ResetPassword applies a new password using the token from the reset link.
func (a *authService) ResetPassword(ctx context.Context, token string, newPassword, confirmPassword []byte) (string, error) {
	if token == "" {
		return "", common.ErrMissingResetToken
	}
	if len(newPassword) == 0 {
		return "", common.ErrFieldRequired
	}
	if !bytes.Equal(newPassword, confirmPassword) {
		return "", common.ErrPasswordMismatch
	}

	if err := a.client.ResetPassword(ctx, token, string(newPassword)); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "", errors.New(apiErr.Message)
		}
		a.log.Debug(ctx, "password reset failed", "error", err)
		return "", common.ErrSomethingWentWrong
	}
	return "Your password has been updated. Please log in.", nil
}

// RefreshProfile fetches a fresh profile snapshot and re-derives the
// session from it. A 401 means the token is no longer honored; the session
// is destroyed so the caller lands back on the login surface.
func (a *authService) RefreshProfile(ctx context.Context) (*models.User, error) {
	if a.sessions.Token() == "" {
		return nil, session.ErrNotAuthenticated
	}

	u, err := a.client.FetchProfile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.client.SetToken("")
			if clearErr := a.sessions.Clear(ctx); clearErr != nil {
				a.log.Error(ctx, "clearing invalidated session failed", "error", clearErr)
			}
			return nil, session.ErrNotAuthenticated
		}
		a.log.Debug(ctx, "profile refresh failed", "error", err)
		return nil, common.ErrSomethingWentWrong
	}

	if err := a.sessions.UpdateProfile(ctx, *u); err != nil {
		a.log.Error(ctx, "updating session profile failed", "error", err)
		return nil, common.ErrSomethingWentWrong
	}
	return u, nil
}

// Ping checks server liveness.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases the underlying client resources.
func (a *authService) Close(ctx context.Context) error {
	if err := a.client.Close(); err != nil {
		return fmt.Errorf("close api client: %w", err)
	}
	return nil
}
