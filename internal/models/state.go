// Package models defines intake session structures for eSahyog.
package models

import "time"

// Step identifies the active question of the intake.
type Step string

const (
	// StepStart waits for the user's age.
	StepStart Step = "start"
	// StepIncome waits for the monthly income.
	StepIncome Step = "income"
	// StepOccupation waits for the occupation (occupation policy only).
	StepOccupation Step = "occupation"
	// StepGender waits for the gender and then runs matching.
	StepGender Step = "gender"
	// StepDone is terminal until the user restarts.
	StepDone Step = "done"
)

// Session is the intake progress of a single sender.
type Session struct {
	Sender     string    `json:"sender"`
	Step       Step      `json:"step"`
	Age        *int      `json:"age,omitempty"`
	Income     *int      `json:"income,omitempty"`
	Occupation string    `json:"occupation,omitempty"`
	Gender     string    `json:"gender,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSession returns a fresh session at StepStart.
func NewSession(sender string) Session {
	return Session{Sender: sender, Step: StepStart, UpdatedAt: time.Now()}
}

// Profile builds the matcher input from the collected answers.
// Unset numeric answers are reported as zero.
func (s Session) Profile() Profile {
	p := Profile{Occupation: s.Occupation, Gender: s.Gender}
	if s.Age != nil {
		p.Age = *s.Age
	}
	if s.Income != nil {
		p.Income = *s.Income
	}
	return p
}

// Clone returns a deep copy so stored sessions are never aliased.
func (s Session) Clone() Session {
	c := s
	if s.Age != nil {
		c.Age = IntPtr(*s.Age)
	}
	if s.Income != nil {
		c.Income = IntPtr(*s.Income)
	}
	return c
}
