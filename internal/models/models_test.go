package models

import (
	"encoding/json"
	"testing"
)

func TestSessionProfile(t *testing.T) {
	s := NewSession("whatsapp:+911234567890")
	if s.Step != StepStart {
		t.Errorf("expected new session at %q, got %q", StepStart, s.Step)
	}
	if p := s.Profile(); p.Age != 0 || p.Income != 0 {
		t.Errorf("unset answers should be zero, got %+v", p)
	}

	s.Age = IntPtr(25)
	s.Income = IntPtr(12000)
	s.Gender = GenderFemale
	s.Occupation = "student"
	want := Profile{Age: 25, Income: 12000, Occupation: "student", Gender: GenderFemale}
	if p := s.Profile(); p != want {
		t.Errorf("expected %+v, got %+v", want, p)
	}
}

func TestSessionClone(t *testing.T) {
	s := NewSession("a")
	s.Age = IntPtr(30)
	s.Income = IntPtr(5000)

	c := s.Clone()
	*c.Age = 99
	*c.Income = 1
	if *s.Age != 30 || *s.Income != 5000 {
		t.Error("Clone shares numeric answers with the original")
	}
}

func TestCriteriaIsEmpty(t *testing.T) {
	if !(Criteria{}).IsEmpty() {
		t.Error("zero Criteria should be empty")
	}
	if (Criteria{AgeMin: IntPtr(0)}).IsEmpty() {
		t.Error("explicit zero bound is still a constraint")
	}
	if (Criteria{Occupation: []string{"farmer"}}).IsEmpty() {
		t.Error("occupation list is a constraint")
	}
}

func TestSchemeJSONOmitsUnsetCriteria(t *testing.T) {
	data, err := json.Marshal(Scheme{Name: "Open", Description: "d", Link: "https://example.org"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(raw["criteria"]) != "{}" {
		t.Errorf("expected empty criteria object, got %s", raw["criteria"])
	}
}

func TestAPIResponseHelpers(t *testing.T) {
	if r := Success(1); r.Status != string(APIStatusOK) || r.Result != 1 {
		t.Errorf("unexpected Success response: %+v", r)
	}
	if r := Error("boom"); r.Status != string(APIStatusError) || r.Message != "boom" {
		t.Errorf("unexpected Error response: %+v", r)
	}
}
