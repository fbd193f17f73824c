package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devboard/internal/client/client"
	"github.com/dmitrijs2005/devboard/internal/client/models"
	"github.com/dmitrijs2005/devboard/internal/logging"
)

var (
	// ErrOnboardingComplete means the account is already onboarded; the
	// caller should go straight to the dashboard instead of running the
	// wizard.
	ErrOnboardingComplete = errors.New("onboarding already complete")

	// ErrNotOnFinalStep guards Submit, which is only valid from review.
	ErrNotOnFinalStep = errors.New("submit is only available from the review step")

	// ErrNoNextStep guards Advance past review; from there the only exits
	// are Submit and Skip.
	ErrNoNextStep = errors.New("no step after review")
)

// SaveFailedWarning is the non-blocking note shown when persisting a step
// did not reach the backend. The snapshot stays local and rides along with
// the next save, which always carries the whole form.
const SaveFailedWarning = "We couldn't save your progress just now. It will be retried with the next step."

// Wizard is the onboarding state machine. It walks a fixed sequence of
// profile-enrichment steps, persisting the full form snapshot after each
// completed step so an interrupted session resumes where it left off.
//
// Wizard is not safe for concurrent use; it is driven by sequential user
// steps from a single command loop.
type Wizard struct {
	client client.Client
	log    logging.Logger
	form   models.OnboardingForm
	dirty  bool
}

func NewWizard(c client.Client, log logging.Logger) *Wizard {
	return &Wizard{client: c, log: log}
}

// Load fetches previously saved progress. If the backend already reports
// completion it returns ErrOnboardingComplete and the wizard must not be
// shown. A stored step index outside the valid range is clamped.
func (w *Wizard) Load(ctx context.Context) error {
	form, err := w.client.FetchOnboarding(ctx)
	if err != nil {
		return fmt.Errorf("fetch onboarding progress: %w", err)
	}

	if form.StepIndex < 0 {
		form.StepIndex = 0
	}
	if form.StepIndex > models.NumSteps-1 {
		form.StepIndex = models.NumSteps - 1
	}
	form.PreferredTools = models.NormalizeSet(form.PreferredTools)
	form.AreasOfInterest = models.NormalizeSet(form.AreasOfInterest)

	w.form = *form
	w.dirty = false

	if form.Completed {
		return ErrOnboardingComplete
	}
	return nil
}

// Form returns a copy of the current snapshot.
func (w *Wizard) Form() models.OnboardingForm {
	f := w.form
	f.PreferredTools = append([]string(nil), w.form.PreferredTools...)
	f.AreasOfInterest = append([]string(nil), w.form.AreasOfInterest...)
	return f
}

// Step returns the wizard's current step.
func (w *Wizard) Step() models.Step {
	return models.Step(w.form.StepIndex)
}

// Completed reports whether the terminal state has been reached.
func (w *Wizard) Completed() bool {
	return w.form.Completed
}

// Dirty reports whether the last persist attempt failed and a retry is
// pending.
func (w *Wizard) Dirty() bool {
	return w.dirty
}

func (w *Wizard) SetPrimaryLanguage(v string) {
	w.form.PrimaryLanguage = v
}

func (w *Wizard) SetYearsExperience(v int) {
	w.form.YearsExperience = v
}

func (w *Wizard) SetPreferredTools(v []string) {
	w.form.PreferredTools = models.NormalizeSet(v)
}

func (w *Wizard) SetAreasOfInterest(v []string) {
	w.form.AreasOfInterest = models.NormalizeSet(v)
}

func (w *Wizard) SetPortfolioURL(v string) {
	w.form.PortfolioURL = v
}

// Advance validates the current step and, on success, persists the full
// snapshot (with the incremented index) and moves forward. A validation
// failure rejects the transition: the step does not change and the error
// text is the step-local message to display.
//
// A persistence failure does not block the user: the step still advances
// locally and the returned warning is non-empty. The next successful save
// carries the whole form, so nothing is lost unless the user quits first.
func (w *Wizard) Advance(ctx context.Context) (string, error) {
	if w.form.Completed {
		return "", ErrOnboardingComplete
	}
	step := w.Step()
	if step >= models.StepReview {
		return "", ErrNoNextStep
	}

	if err := w.form.ValidateStep(step); err != nil {
		return "", err
	}

	snapshot := w.form
	snapshot.StepIndex = w.form.StepIndex + 1

	if err := w.client.SaveOnboarding(ctx, &snapshot); err != nil {
		w.log.Warn(ctx, "saving onboarding progress failed", "step", step.String(), "error", err)
		w.dirty = true
		w.form.StepIndex = snapshot.StepIndex
		return SaveFailedWarning, nil
	}

	w.dirty = false
	w.form.StepIndex = snapshot.StepIndex
	return "", nil
}

// Retreat steps back without validating or persisting; it is local-only
// navigation, floored at the first step.
func (w *Wizard) Retreat() {
	if w.form.StepIndex > 0 {
		w.form.StepIndex--
	}
}

// Skip bypasses all remaining validation and marks the account onboarded
// immediately. Unlike step saves this persist is terminal, so a failure is
// surfaced instead of deferred.
func (w *Wizard) Skip(ctx context.Context) error {
	snapshot := w.form
	snapshot.Completed = true

	if err := w.client.SaveOnboarding(ctx, &snapshot); err != nil {
		return fmt.Errorf("save onboarding completion: %w", err)
	}

	w.form = snapshot
	w.dirty = false
	return nil
}

// Submit finalizes from the review step: the whole form is re-validated,
// persisted with the completion flag set, and the wizard reaches its
// terminal state.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.Step() != models.StepReview {
		return ErrNotOnFinalStep
	}

	for step := models.StepLanguage; step <= models.StepReview; step++ {
		if err := w.form.ValidateStep(step); err != nil {
			return fmt.Errorf("%s: %w", step.String(), err)
		}
	}

	snapshot := w.form
	snapshot.Completed = true

	if err := w.client.SaveOnboarding(ctx, &snapshot); err != nil {
		return fmt.Errorf("save onboarding completion: %w", err)
	}

	w.form = snapshot
	w.dirty = false
	return nil
}
