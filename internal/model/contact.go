package model

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	// StatusUnread is assigned to every message when it is stored.
	StatusUnread = "unread"
	// StatusRead is the status used when a caller marks a message without naming one.
	StatusRead = "read"

	// DefaultSubject is stored when the submission carries no subject.
	DefaultSubject = "Portfolio Contact"
)

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
	Status    string    `json:"status"` // "unread" | "read" | caller supplied
}

// ContactSubmission is the candidate record posted by the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	// keys is the number of members in the decoded JSON object, known or not.
	keys int
}

// UnmarshalJSON decodes the submission and remembers whether the object had
// any members, so {"foo":1} is told apart from {}.
func (s *ContactSubmission) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	type plain ContactSubmission
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ContactSubmission(p)
	s.keys = len(members)
	return nil
}

// IsEmpty reports whether nothing was submitted: no field carries a value and
// the decoded object, if any, had no members.
func (s *ContactSubmission) IsEmpty() bool {
	return s == nil || (s.keys == 0 &&
		s.Name == "" && s.Email == "" && s.Phone == "" && s.Subject == "" && s.Message == "")
}

// ToMessage builds the record handed to the store. Fields are copied as-is;
// only an empty subject falls back to DefaultSubject.
func (s *ContactSubmission) ToMessage() *ContactMessage {
	subject := s.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	return &ContactMessage{
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Subject: subject,
		Message: s.Message,
	}
}

// ContactListOptions carries filter and ordering parameters for listing contact messages.
type ContactListOptions struct {
	// Status filters by message status. Empty string and "all" return all messages.
	Status string
	// Sort orders by timestamp: "desc" newest first, "asc" oldest first,
	// anything else keeps stored order.
	Sort string
}

// MatchesStatus reports whether m passes the status filter of opts.
func (opts ContactListOptions) MatchesStatus(m *ContactMessage) bool {
	status := strings.TrimSpace(opts.Status)
	return status == "" || status == "all" || m.Status == status
}

// SortByTimestamp orders msgs in place by timestamp. Equal timestamps keep
// their relative order.
func SortByTimestamp(msgs []*ContactMessage, desc bool) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if desc {
			return msgs[i].Timestamp.After(msgs[j].Timestamp.Time)
		}
		return msgs[i].Timestamp.Before(msgs[j].Timestamp.Time)
	})
}

// ApplyListOptions filters msgs by status and orders them as opts asks.
func ApplyListOptions(msgs []*ContactMessage, opts ContactListOptions) []*ContactMessage {
	out := make([]*ContactMessage, 0, len(msgs))
	for _, m := range msgs {
		if opts.MatchesStatus(m) {
			out = append(out, m)
		}
	}
	switch opts.Sort {
	case "desc":
		SortByTimestamp(out, true)
	case "asc":
		SortByTimestamp(out, false)
	}
	return out
}
