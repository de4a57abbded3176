package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/BTreeMap/eSahyog/internal/models"
)

func TestInMemoryStore_GetMissing(t *testing.T) {
	s := NewInMemoryStore()
	sess, err := s.GetSession("whatsapp:+911234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}
}

func TestInMemoryStore_SaveAndGet(t *testing.T) {
	s := NewInMemoryStore()
	in := models.NewSession("alice")
	in.Step = models.StepIncome
	in.Age = models.IntPtr(23)

	if err := s.SaveSession(in); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	got, err := s.GetSession("alice")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.Step != models.StepIncome || got.Age == nil || *got.Age != 23 {
		t.Fatalf("unexpected session: %+v", got)
	}

	// Mutating either copy must not reach the stored session.
	*in.Age = 99
	*got.Age = 77
	got.Step = models.StepDone
	again, _ := s.GetSession("alice")
	if *again.Age != 23 || again.Step != models.StepIncome {
		t.Errorf("stored session was aliased: %+v", again)
	}

	if n, _ := s.CountSessions(); n != 1 {
		t.Errorf("expected 1 session, got %d", n)
	}
}

func TestInMemoryStore_Overwrite(t *testing.T) {
	s := NewInMemoryStore()
	first := models.NewSession("bob")
	first.Step = models.StepDone
	first.Gender = "male"
	s.SaveSession(first)
	s.SaveSession(models.NewSession("bob"))

	got, _ := s.GetSession("bob")
	if got.Step != models.StepStart || got.Gender != "" {
		t.Errorf("expected fresh session, got %+v", got)
	}
}

func TestInMemoryStore_MaxSessions(t *testing.T) {
	s := NewInMemoryStore(WithMaxSessions(2))
	for _, id := range []string{"a", "b", "c"} {
		s.SaveSession(models.NewSession(id))
	}
	if n, _ := s.CountSessions(); n != 2 {
		t.Errorf("expected 2 sessions, got %d", n)
	}
	if sess, _ := s.GetSession("a"); sess != nil {
		t.Errorf("expected oldest session to be evicted, got %+v", sess)
	}
	if sess, _ := s.GetSession("c"); sess == nil {
		t.Error("expected newest session to be present")
	}
}

func TestInMemoryStore_TTL(t *testing.T) {
	s := NewInMemoryStore(WithTTL(20 * time.Millisecond))
	s.SaveSession(models.NewSession("carol"))
	if sess, _ := s.GetSession("carol"); sess == nil {
		t.Fatal("expected session before expiry")
	}
	time.Sleep(60 * time.Millisecond)
	if sess, _ := s.GetSession("carol"); sess != nil {
		t.Errorf("expected session to expire, got %+v", sess)
	}
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sender := fmt.Sprintf("user-%d", i%10)
			s.SaveSession(models.NewSession(sender))
			s.GetSession(sender)
		}(i)
	}
	wg.Wait()
	if n, _ := s.CountSessions(); n != 10 {
		t.Errorf("expected 10 sessions, got %d", n)
	}
}
