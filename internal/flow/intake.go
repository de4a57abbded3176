// Package flow implements the eSahyog intake conversation.
//
// Each sender walks through start -> income -> [occupation ->] gender -> done.
// A restart keyword resets the sender to start from any step.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BTreeMap/eSahyog/internal/catalog"
	"github.com/BTreeMap/eSahyog/internal/eligibility"
	"github.com/BTreeMap/eSahyog/internal/models"
	"github.com/BTreeMap/eSahyog/internal/reply"
	"github.com/BTreeMap/eSahyog/internal/store"
)

// matchFunc is the eligibility matcher signature; replaceable in tests.
type matchFunc func(models.Profile, []models.Scheme, eligibility.Policy) []models.Scheme

// Intake drives the per-sender question sequence.
type Intake struct {
	store   store.SessionStore
	catalog *catalog.Catalog
	policy  eligibility.Policy
	locks   *senderLocks
	match   matchFunc
}

// NewIntake creates an Intake over the given store, catalog and policy.
func NewIntake(st store.SessionStore, cat *catalog.Catalog, policy eligibility.Policy) *Intake {
	slog.Debug("flow.NewIntake: creating intake", "schemes", cat.Len(), "policy", policy)
	return &Intake{
		store:   st,
		catalog: cat,
		policy:  policy,
		locks:   newSenderLocks(),
		match:   eligibility.Match,
	}
}

// Policy returns the eligibility policy in use.
func (in *Intake) Policy() eligibility.Policy {
	return in.policy
}

// Catalog returns the scheme catalog in use.
func (in *Intake) Catalog() *catalog.Catalog {
	return in.catalog
}

// ActiveSessions reports how many sender sessions are stored.
func (in *Intake) ActiveSessions() (int, error) {
	return in.store.CountSessions()
}

// HandleMessage advances the sender's session with body and returns the reply
// text. Invalid answers are reported in the reply, never as errors; a non-nil
// error means the session store failed.
func (in *Intake) HandleMessage(ctx context.Context, sender, body string) (string, error) {
	input := normalizeInput(body)

	unlock := in.locks.Lock(sender)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if RestartKeywords[input] {
		slog.Debug("flow.HandleMessage: restart keyword received", "sender", sender)
		if err := in.save(models.NewSession(sender)); err != nil {
			return "", err
		}
		return reply.Welcome, nil
	}

	sess, err := in.store.GetSession(sender)
	if err != nil {
		slog.Error("flow.HandleMessage: failed to load session", "sender", sender, "error", err)
		return "", fmt.Errorf("failed to load session for %s: %w", sender, err)
	}
	created := false
	if sess == nil {
		fresh := models.NewSession(sender)
		sess = &fresh
		created = true
		slog.Debug("flow.HandleMessage: new session created", "sender", sender)
	}

	next, text := in.advance(*sess, input)
	if next != nil {
		if err := in.save(*next); err != nil {
			return "", err
		}
		slog.Debug("flow.HandleMessage: session advanced", "sender", sender, "from", sess.Step, "to", next.Step)
	} else if created {
		if err := in.save(*sess); err != nil {
			return "", err
		}
	}
	return text, nil
}

// advance applies input to sess. It returns the updated session, or nil when
// the session must stay unchanged, together with the reply text.
func (in *Intake) advance(sess models.Session, input string) (*models.Session, string) {
	switch sess.Step {
	case models.StepStart:
		n := ParseNumber(input)
		if !n.Valid {
			return nil, reply.RetryFor(models.StepStart)
		}
		sess.Age = models.IntPtr(n.Value)
		sess.Step = models.StepIncome
		return &sess, reply.PromptFor(models.StepIncome)

	case models.StepIncome:
		n := ParseNumber(input)
		if !n.Valid {
			return nil, reply.RetryFor(models.StepIncome)
		}
		sess.Income = models.IntPtr(n.Value)
		if in.policy.AsksOccupation() {
			sess.Step = models.StepOccupation
		} else {
			sess.Step = models.StepGender
		}
		return &sess, reply.PromptFor(sess.Step)

	case models.StepOccupation:
		if input == "" {
			return nil, reply.RetryFor(models.StepOccupation)
		}
		sess.Occupation = input
		sess.Step = models.StepGender
		return &sess, reply.PromptFor(models.StepGender)

	case models.StepGender:
		sess.Gender = input
		sess.Step = models.StepDone
		matches := in.match(sess.Profile(), in.catalog.Schemes(), in.policy)
		slog.Info("flow.advance: intake completed", "sender", sess.Sender, "policy", in.policy, "matches", len(matches))
		return &sess, reply.Results(matches)

	default:
		return nil, reply.RestartHint
	}
}

func (in *Intake) save(sess models.Session) error {
	sess.UpdatedAt = time.Now()
	if err := in.store.SaveSession(sess); err != nil {
		slog.Error("flow.save: failed to save session", "sender", sess.Sender, "error", err)
		return fmt.Errorf("failed to save session for %s: %w", sess.Sender, err)
	}
	return nil
}
