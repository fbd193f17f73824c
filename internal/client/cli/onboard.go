package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/client/services"
)

// Wizard navigation keywords, checked before any value parsing.
const (
	cmdBack = "/back"
	cmdSkip = "/skip"
)

// Onboard runs the onboarding wizard: load saved progress, walk the
// remaining steps, and finish via submit or skip. Progress is saved after
// every step, so quitting mid-way and resuming later is fine.
//
// Each prompt accepts "/back" to return to the previous step and "/skip"
// to finish onboarding immediately with whatever has been entered so far.
func (a *App) Onboard(ctx context.Context) error {
	w := services.NewWizard(a.client, a.log)

	if err := w.Load(ctx); err != nil {
		if errors.Is(err, services.ErrOnboardingComplete) {
			printlnFn("Redirecting to your dashboard.")
			return nil
		}
		printlnFn("Could not load your onboarding progress. Please try again.")
		return err
	}

	printlnFn("Let's set up your profile. Type /back to go back, /skip to finish later.")

	for !w.Completed() {
		done, err := a.runStep(ctx, w)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// runStep shows the prompt for the wizard's current step, applies the
// answer, and advances. It returns done=true when the wizard loop should
// stop (completion or user exit).
func (a *App) runStep(ctx context.Context, w *services.Wizard) (bool, error) {
	step := w.Step()
	printlnFn(fmt.Sprintf("[%d/%d] %s", int(step)+1, models.NumSteps, stepTitle(step)))

	switch step {
	case models.StepLanguage:
		answer, err := getSimpleText(a.reader, "Primary programming language", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		w.SetPrimaryLanguage(answer)

	case models.StepExperience:
		answer, err := getSimpleText(a.reader, "Years of professional experience", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		years, convErr := parseYears(answer)
		if convErr != nil {
			printlnFn("Please enter a whole number.")
			return false, nil
		}
		w.SetYearsExperience(years)

	case models.StepTools:
		answer, err := getSimpleText(a.reader, "Preferred tools (comma-separated, may be empty)", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		w.SetPreferredTools(SplitList(answer))

	case models.StepInterests:
		answer, err := getSimpleText(a.reader, "Areas of interest (comma-separated, may be empty)", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		w.SetAreasOfInterest(SplitList(answer))

	case models.StepPortfolio:
		answer, err := getSimpleText(a.reader, "Portfolio URL (optional)", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		w.SetPortfolioURL(answer)

	case models.StepReview:
		a.printReview(w.Form())
		answer, err := getSimpleText(a.reader, "Type 'submit' to finish, /back to edit, /skip to finish without review", os.Stdout)
		if err != nil {
			return true, err
		}
		if nav, done, err := a.handleNav(ctx, w, answer); nav {
			return done, err
		}
		if !strings.EqualFold(answer, "submit") {
			printlnFn("Unrecognized answer.")
			return false, nil
		}
		if err := w.Submit(ctx); err != nil {
			printlnFn(err.Error())
			return false, nil
		}
		a.finishOnboarding(ctx)
		return true, nil
	}

	warning, err := w.Advance(ctx)
	if err != nil {
		printlnFn(err.Error())
		return false, nil
	}
	if warning != "" {
		printlnFn(warning)
	}
	return false, nil
}

// handleNav intercepts the navigation keywords. nav reports whether the
// answer was one of them; done mirrors runStep's contract.
func (a *App) handleNav(ctx context.Context, w *services.Wizard, answer string) (nav bool, done bool, err error) {
	switch strings.ToLower(answer) {
	case cmdBack:
		w.Retreat()
		return true, false, nil
	case cmdSkip:
		if err := w.Skip(ctx); err != nil {
			printlnFn("Could not skip onboarding right now. Please try again.")
			return true, false, nil
		}
		a.finishOnboarding(ctx)
		return true, true, nil
	}
	return false, false, nil
}

func (a *App) printReview(form models.OnboardingForm) {
	printlnFn("Review your answers:")
	printlnFn("  Language:   " + orDash(form.PrimaryLanguage))
	printlnFn(fmt.Sprintf("  Experience: %d years", form.YearsExperience))
	printlnFn("  Tools:      " + orDash(strings.Join(form.PreferredTools, ", ")))
	printlnFn("  Interests:  " + orDash(strings.Join(form.AreasOfInterest, ", ")))
	printlnFn("  Portfolio:  " + orDash(form.PortfolioURL))
}

// finishOnboarding refreshes the cached profile so the completion flag
// survives restarts, then sends the user onward. The refresh is best
// effort; the server already holds the truth.
func (a *App) finishOnboarding(ctx context.Context) {
	if _, err := a.auth.RefreshProfile(ctx); err != nil {
		a.log.Debug(ctx, "profile refresh after onboarding failed", "error", err)
	}
	printlnFn("All set. Redirecting to your dashboard.")
}

func stepTitle(s models.Step) string {
	switch s {
	case models.StepLanguage:
		return "Primary language"
	case models.StepExperience:
		return "Experience"
	case models.StepTools:
		return "Tools"
	case models.StepInterests:
		return "Interests"
	case models.StepPortfolio:
		return "Portfolio"
	case models.StepReview:
		return "Review"
	default:
		return "Unknown"
	}
}

func parseYears(s string) (int, error) {
	return strconv.Atoi(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
