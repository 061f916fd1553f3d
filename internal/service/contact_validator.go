package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
)

// MaxMessageLength is the longest accepted message, in characters.
const MaxMessageLength = 1000

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]?\d{9,15}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "")
)

// ValidationError describes why a submission was rejected.
// Field is empty when the rejection does not concern a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateSubmission applies the contact form acceptance rules in order and
// returns the first failure. The submission is never modified.
func ValidateSubmission(s *model.ContactSubmission) error {
	if s.IsEmpty() {
		return &ValidationError{Reason: "no data provided"}
	}

	required := []struct {
		field string
		value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"message", s.Message},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: r.field + " is required"}
		}
	}

	if !ValidEmail(s.Email) {
		return &ValidationError{Field: "email", Reason: "invalid email"}
	}

	if s.Phone != "" && !ValidPhone(s.Phone) {
		return &ValidationError{Field: "phone", Reason: "invalid phone"}
	}

	if utf8.RuneCountInString(s.Message) > MaxMessageLength {
		return &ValidationError{Field: "message", Reason: "message too long"}
	}
	return nil
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether phone, ignoring spaces and hyphens, is an
// optionally '+'-prefixed run of 9 to 16 digits. An empty phone is valid.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phoneSeparators.Replace(phone))
}
