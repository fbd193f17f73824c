package models

import (
	"sort"

	"github.com/dmitrijs2005/devboard/internal/common"
)

// Step identifies one screen of the onboarding wizard. Steps are walked in
// declaration order; StepReview is the last one.
type Step int

const (
	StepLanguage Step = iota
	StepExperience
	StepTools
	StepInterests
	StepPortfolio
	StepReview
)

// NumSteps is the number of wizard steps; step indexes stay in [0, NumSteps-1].
const NumSteps = 6

func (s Step) String() string {
	switch s {
	case StepLanguage:
		return "primary language"
	case StepExperience:
		return "years of experience"
	case StepTools:
		return "preferred tools"
	case StepInterests:
		return "areas of interest"
	case StepPortfolio:
		return "portfolio URL"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// OnboardingForm is the profile-enrichment snapshot persisted to the
// backend after every completed step. The JSON field names are part of the
// wire contract of POST /api/user/onboarding.
type OnboardingForm struct {
	PrimaryLanguage string   `json:"primaryLanguage"`
	YearsExperience int      `json:"yearsExperience"`
	PreferredTools  []string `json:"preferredTools"`
	AreasOfInterest []string `json:"areasOfInterest"`
	PortfolioURL    string   `json:"portfolioUrl"`
	StepIndex       int      `json:"stepIndex"`
	Completed       bool     `json:"onboardingComplete"`
}

// ValidateStep checks the field group belonging to one step. It returns a
// user-facing error, or nil if the step may be left. Tools and interests
// have no minimum; the portfolio URL is only checked when present.
func (f *OnboardingForm) ValidateStep(step Step) error {
	switch step {
	case StepLanguage:
		if f.PrimaryLanguage == "" {
			return common.ErrFieldRequired
		}
	case StepExperience:
		if f.YearsExperience < 0 {
			return common.ErrFieldRequired
		}
	case StepTools, StepInterests, StepReview:
		// nothing to check
	case StepPortfolio:
		if f.PortfolioURL != "" && !common.ValidURL(f.PortfolioURL) {
			return common.ErrInvalidURL
		}
	}
	return nil
}

// NormalizeSet deduplicates and sorts a selection so repeated picks behave
// like a set regardless of input order.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
