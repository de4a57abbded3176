package models

// Gender values recognised in scheme criteria.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
	// GenderAll matches every user under the range policy.
	GenderAll = "all"
)

// Scheme is a government assistance programme loaded from the catalog.
type Scheme struct {
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Description string   `json:"description" yaml:"description" validate:"required"`
	Link        string   `json:"link" yaml:"link" validate:"required,url"`
	Criteria    Criteria `json:"criteria,omitempty" yaml:"criteria,omitempty"`
}

// Criteria are the eligibility constraints of a scheme.
// A nil field is unconstrained.
type Criteria struct {
	AgeMin    *int    `json:"age_min,omitempty" yaml:"age_min,omitempty" validate:"omitempty,gte=0"`
	AgeMax    *int    `json:"age_max,omitempty" yaml:"age_max,omitempty" validate:"omitempty,gte=0"`
	IncomeMax *int    `json:"income_max,omitempty" yaml:"income_max,omitempty" validate:"omitempty,gte=0"`
	Gender    *string `json:"gender,omitempty" yaml:"gender,omitempty" validate:"omitempty,oneof=male female other all"`
	// Occupation constrains when non-nil, even if empty.
	Occupation []string `json:"occupation,omitempty" yaml:"occupation,omitempty" validate:"omitempty,dive,required"`
}

// IsEmpty reports whether no constraint is set.
func (c Criteria) IsEmpty() bool {
	return c.AgeMin == nil && c.AgeMax == nil && c.IncomeMax == nil && c.Gender == nil && c.Occupation == nil
}

// Profile is a completed set of intake answers.
type Profile struct {
	Age        int    `json:"age"`
	Income     int    `json:"income"`
	Occupation string `json:"occupation,omitempty"`
	Gender     string `json:"gender"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
