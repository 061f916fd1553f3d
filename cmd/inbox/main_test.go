package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/model"
)

func sampleMessages() []*model.ContactMessage {
	ts := model.NewTimestamp(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC))
	return []*model.ContactMessage{
		{ID: 2, Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "yo", Timestamp: ts, Status: "unread"},
		{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: "+14155551234", Subject: "Job", Message: "hello", Timestamp: ts, Status: "read"},
	}
}

func TestWriteMessages_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMessages(&buf, sampleMessages(), "table"); err != nil {
		t.Fatalf("writeMessages: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[1], "Bob <bob@example.com>") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "2024-02-01T08:00:00.000000Z") {
		t.Errorf("timestamp missing from row: %q", lines[2])
	}
}

func TestWriteMessages_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMessages(&buf, sampleMessages(), "json"); err != nil {
		t.Fatalf("writeMessages: %v", err)
	}
	var got []*model.ContactMessage
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 2 || got[1].Phone != "+14155551234" {
		t.Errorf("unexpected decode: %+v", got)
	}
}

func TestWriteMessages_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMessages(&buf, sampleMessages(), "yaml"); err != nil {
		t.Fatalf("writeMessages: %v", err)
	}
	var got []yamlMessage
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Bob" || got[0].Timestamp != "2024-02-01T08:00:00.000000Z" {
		t.Errorf("unexpected decode: %+v", got)
	}
	if strings.Contains(buf.String(), "phone: \"\"") {
		t.Error("empty phone should be omitted")
	}
}

func TestWriteMessages_UnknownFormat(t *testing.T) {
	if err := writeMessages(&bytes.Buffer{}, nil, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRootCommand_MarkRejectsBadID(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"mark", "abc"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid message id") {
		t.Errorf("expected invalid id error, got %v", err)
	}
}

func TestRootCommand_ListAgainstMemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DATA_DIR", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"list", "-o", "json"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("expected empty list, got %q", out.String())
	}
}
