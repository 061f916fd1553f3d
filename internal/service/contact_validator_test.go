package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
)

func validSubmission() *model.ContactSubmission {
	return &model.ContactSubmission{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "Hello there",
	}
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return ve.Reason
}

func TestValidateSubmission_Accepts(t *testing.T) {
	cases := map[string]func(s *model.ContactSubmission){
		"minimal":              func(s *model.ContactSubmission) {},
		"short domain":         func(s *model.ContactSubmission) { s.Email = "a@b.co" },
		"international phone":  func(s *model.ContactSubmission) { s.Phone = "+14155551234" },
		"phone with separator": func(s *model.ContactSubmission) { s.Phone = "415-555 1234" },
		"with subject":         func(s *model.ContactSubmission) { s.Subject = "Job offer" },
		"max length":           func(s *model.ContactSubmission) { s.Message = strings.Repeat("a", MaxMessageLength) },
		"max length multibyte": func(s *model.ContactSubmission) { s.Message = strings.Repeat("é", MaxMessageLength) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := validSubmission()
			mutate(s)
			if err := ValidateSubmission(s); err != nil {
				t.Errorf("expected valid, got %v", err)
			}
		})
	}
}

func TestValidateSubmission_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *model.ContactSubmission)
		reason string
		field  string
	}{
		{"missing name", func(s *model.ContactSubmission) { s.Name = "" }, "name is required", "name"},
		{"blank name", func(s *model.ContactSubmission) { s.Name = "   " }, "name is required", "name"},
		{"missing email", func(s *model.ContactSubmission) { s.Email = "" }, "email is required", "email"},
		{"missing message", func(s *model.ContactSubmission) { s.Message = "\n\t" }, "message is required", "message"},
		{"bad email", func(s *model.ContactSubmission) { s.Email = "not-an-email" }, "invalid email", "email"},
		{"email without tld", func(s *model.ContactSubmission) { s.Email = "a@b" }, "invalid email", "email"},
		{"short phone", func(s *model.ContactSubmission) { s.Phone = "123" }, "invalid phone", "phone"},
		{"letters in phone", func(s *model.ContactSubmission) { s.Phone = "555-CALL-NOW" }, "invalid phone", "phone"},
		{"too long", func(s *model.ContactSubmission) { s.Message = strings.Repeat("a", MaxMessageLength+1) }, "message too long", "message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSubmission()
			tc.mutate(s)
			err := ValidateSubmission(s)
			if got := reasonOf(t, err); got != tc.reason {
				t.Errorf("reason = %q, want %q", got, tc.reason)
			}
			var ve *ValidationError
			errors.As(err, &ve)
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidateSubmission_NoData(t *testing.T) {
	for name, s := range map[string]*model.ContactSubmission{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			if got := reasonOf(t, ValidateSubmission(s)); got != "no data provided" {
				t.Errorf("reason = %q", got)
			}
		})
	}
}

func TestValidateSubmission_UnknownKeysOnly(t *testing.T) {
	var s model.ContactSubmission
	if err := json.Unmarshal([]byte(`{"foo":1}`), &s); err != nil {
		t.Fatal(err)
	}
	if got := reasonOf(t, ValidateSubmission(&s)); got != "name is required" {
		t.Errorf("reason = %q, want name is required", got)
	}
}

func TestValidateSubmission_FirstFailureWins(t *testing.T) {
	s := &model.ContactSubmission{Email: "not-an-email", Phone: "1"}
	if got := reasonOf(t, ValidateSubmission(s)); got != "name is required" {
		t.Errorf("expected the name check first, got %q", got)
	}

	s = &model.ContactSubmission{Name: "A", Email: "bad", Phone: "1", Message: "m"}
	if got := reasonOf(t, ValidateSubmission(s)); got != "invalid email" {
		t.Errorf("expected the email check before phone, got %q", got)
	}
}

func TestValidateSubmission_DoesNotModify(t *testing.T) {
	s := &model.ContactSubmission{Name: "  Alice ", Email: "alice@example.com", Phone: "415 555 1234", Message: " hi "}
	before := *s
	if err := ValidateSubmission(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *s != before {
		t.Errorf("submission was modified: %+v", s)
	}
}
