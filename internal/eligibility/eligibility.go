// Package eligibility matches a completed intake profile against the scheme catalog.
//
// Two criterion policies exist and are not equivalent, so the policy is an
// explicit choice rather than a merge of both:
//
//   - PolicyRange checks inclusive age_min/age_max and income_max bounds and a
//     gender criterion that accepts "all" as a wildcard. Occupation is ignored.
//   - PolicyOccupation checks only age_max and income_max, requires the
//     profile occupation to be listed when an occupation criterion exists, and
//     compares gender without a wildcard.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/BTreeMap/eSahyog/internal/models"
)

// Policy selects how scheme criteria are evaluated.
type Policy string

const (
	// PolicyRange is the range-tolerant policy without occupation.
	PolicyRange Policy = "range"
	// PolicyOccupation is the occupation-aware, max-only policy.
	PolicyOccupation Policy = "occupation"
)

// DefaultPolicy is the policy of the deployed bot.
const DefaultPolicy = PolicyRange

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "range", "a":
		return PolicyRange, nil
	case "occupation", "b":
		return PolicyOccupation, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", models.ErrInvalidPolicy, s, PolicyRange, PolicyOccupation)
	}
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	return string(p)
}

// AsksOccupation reports whether the intake must collect an occupation.
func (p Policy) AsksOccupation() bool {
	return p == PolicyOccupation
}

// Satisfied reports whether profile meets every criterion under the policy.
func (p Policy) Satisfied(c models.Criteria, profile models.Profile) bool {
	switch p {
	case PolicyOccupation:
		return satisfiedOccupation(c, profile)
	default:
		return satisfiedRange(c, profile)
	}
}

// Match returns every scheme whose criteria the profile satisfies, in catalog
// order. It does not truncate and does not modify its inputs.
func Match(profile models.Profile, schemes []models.Scheme, policy Policy) []models.Scheme {
	var matches []models.Scheme
	for _, s := range schemes {
		if policy.Satisfied(s.Criteria, profile) {
			matches = append(matches, s)
		}
	}
	return matches
}

func satisfiedRange(c models.Criteria, profile models.Profile) bool {
	if c.AgeMin != nil && profile.Age < *c.AgeMin {
		return false
	}
	if c.AgeMax != nil && profile.Age > *c.AgeMax {
		return false
	}
	if c.IncomeMax != nil && profile.Income > *c.IncomeMax {
		return false
	}
	if c.Gender != nil && !strings.EqualFold(*c.Gender, models.GenderAll) {
		if profile.Gender == "" || !strings.EqualFold(profile.Gender, *c.Gender) {
			return false
		}
	}
	return true
}

func satisfiedOccupation(c models.Criteria, profile models.Profile) bool {
	if c.AgeMax != nil && profile.Age > *c.AgeMax {
		return false
	}
	if c.IncomeMax != nil && profile.Income > *c.IncomeMax {
		return false
	}
	if c.Occupation != nil && !containsFold(c.Occupation, profile.Occupation) {
		return false
	}
	if c.Gender != nil && !strings.EqualFold(profile.Gender, *c.Gender) {
		return false
	}
	return true
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
