package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/devboard/internal/client/services"
	"github.com/dmitrijs2005/devboard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. On success the
// session is cached and, if the account has not finished onboarding, the
// wizard starts immediately. A failure prints a user-safe message; the
// user can simply retry.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Welcome back, %s!", s.User.FullName()))

	if !s.User.OnboardingComplete {
		return a.Onboard(ctx)
	}
	return nil
}

// SignUp collects the registration form and submits it. Account creation
// and session establishment are reported separately: if the account was
// created but the automatic login failed, the user is told to log in
// manually instead of seeing an error.
func (a *App) SignUp(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		printlnFn(common.MsgPasswordMismatch)
		return nil
	}

	res, err := a.auth.SignUp(ctx, services.SignUpInput{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		if len(res.FieldErrors) > 0 {
			for field, msg := range res.FieldErrors {
				printlnFn(fmt.Sprintf("%s: %s", field, msg))
			}
			return nil
		}
		printlnFn(err.Error())
		return err
	}

	if !res.SessionEstablished {
		printlnFn(res.Message)
		return nil
	}

	a.setMode(ModeOnline)
	printlnFn(fmt.Sprintf("Welcome, %s!", firstName))
	return a.Onboard(ctx)
}

// Logout asks for confirmation before ending the session, since it also
// clears the locally cached session. Anything but an explicit "y" keeps
// the session.
func (a *App) Logout(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This will end your session. Continue? [y/N]", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	if err := a.auth.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("You have been logged out.")
	return nil
}
