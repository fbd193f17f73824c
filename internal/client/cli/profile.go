package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/client/session"
)

// Profile fetches a fresh profile snapshot from the server and prints it.
// An expired or revoked token sends the user back to login.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.auth.RefreshProfile(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			printlnFn("Your session has expired. Please log in.")
			return err
		}
		printlnFn(err.Error())
		return err
	}

	fmt.Fprintf(os.Stdout, "Name:     %s\n", u.FullName())
	fmt.Fprintf(os.Stdout, "Email:    %s", u.Email)
	if u.EmailVerified {
		fmt.Fprint(os.Stdout, " (verified)")
	}
	fmt.Fprintln(os.Stdout)
	if u.Plan.Name != "" {
		fmt.Fprintf(os.Stdout, "Plan:     %s ($%d.%02d/%s)\n",
			u.Plan.Name, u.Plan.PriceCents/100, u.Plan.PriceCents%100, u.Plan.Interval)
	}
	if u.OnboardingComplete {
		fmt.Fprintln(os.Stdout, "Profile setup: complete")
	} else {
		fmt.Fprintf(os.Stdout, "Profile setup: step %d of %d\n", u.OnboardingStep+1, models.NumSteps)
	}
	return nil
}

// Status reports connectivity and session state.
func (a *App) Status(ctx context.Context) error {
	mode := a.Mode
	if mode == "" {
		mode = ModeOffline
	}
	printlnFn("Server:", string(mode))
	if cur, ok := a.sessions.Current(); ok {
		printlnFn("Logged in as:", cur.User.Email)
	} else {
		printlnFn("Not logged in.")
	}
	return nil
}
