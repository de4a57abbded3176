// Package reply builds the outbound WhatsApp text for each intake step.
package reply

import (
	"fmt"
	"strings"

	"github.com/BTreeMap/eSahyog/internal/models"
)

// MaxResults is the number of matched schemes shown to the user.
const MaxResults = 5

// FallbackURL is offered when no scheme matches.
const FallbackURL = "https://www.myscheme.gov.in/"

// Fixed message texts.
const (
	Welcome          = "🔁 Welcome back to eSahyog!\nLet’s find the perfect scheme for you.\nFirst — how old are you?"
	AgeRetry         = "Please enter your age as a number, like *23*."
	IncomePrompt     = "💰 Got it! Now tell me your *monthly income* in INR."
	IncomeRetry      = "Please enter income as a number, like *25000*."
	OccupationPrompt = "💼 What is your occupation? (e.g. farmer, student, worker)"
	GenderPrompt     = "🚻 And your gender? (male/female/other)"
	RestartHint      = "👋 Type *restart* to begin again."
	NoMatch          = "😔 Sorry, no matching schemes were found.\nYou can still explore: " + FallbackURL
	InternalError    = "⚠️ We encountered an issue processing your response. Please try again or contact support."

	resultsHeader = "🎯 Based on your profile, here are schemes you qualify for:\n\n"
	resultsFooter = "💡 Type 'restart' to try again."
)

// Results formats matched schemes as a numbered list limited to MaxResults.
// An empty match set yields NoMatch.
func Results(schemes []models.Scheme) string {
	if len(schemes) == 0 {
		return NoMatch
	}
	if len(schemes) > MaxResults {
		schemes = schemes[:MaxResults]
	}

	var b strings.Builder
	b.WriteString(resultsHeader)
	for i, s := range schemes {
		fmt.Fprintf(&b, "%d. *%s*\n%s\n🔗 %s\n\n", i+1, s.Name, s.Description, s.Link)
	}
	b.WriteString(resultsFooter)
	return b.String()
}

// PromptFor returns the question asked when a session enters step.
func PromptFor(step models.Step) string {
	switch step {
	case models.StepStart:
		return Welcome
	case models.StepIncome:
		return IncomePrompt
	case models.StepOccupation:
		return OccupationPrompt
	case models.StepGender:
		return GenderPrompt
	default:
		return RestartHint
	}
}

// RetryFor returns the re-prompt for invalid input at step.
func RetryFor(step models.Step) string {
	switch step {
	case models.StepStart:
		return AgeRetry
	case models.StepIncome:
		return IncomeRetry
	case models.StepOccupation:
		return OccupationPrompt
	default:
		return RestartHint
	}
}
