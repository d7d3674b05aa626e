package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"habitual/internal/model"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	hs := []model.Habit{{ID: "1", Name: "Walk", Status: model.StatusDone}}
	if err := Write(&buf, hs, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `[{"_id":"1","name":"Walk","status":"done"}]` {
		t.Fatalf("unexpected json: %s", got)
	}

	buf.Reset()
	if err := Write(&buf, hs, "", true); err != nil {
		t.Fatalf("Write pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Fatalf("expected indented json, got %q", buf.String())
	}
}

func TestWrite_TextTable(t *testing.T) {
	var buf bytes.Buffer
	hs := []model.Habit{
		{ID: "1", Name: "Drink 8 glasses of water", Status: model.StatusDone},
		{ID: "3", Name: "Read for 20 minutes", Status: model.StatusMissed},
	}
	if err := WriteText(&buf, hs, true); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "NAME", "STATUS", "Drink 8 glasses of water", "[x] Done", "[!] Missed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestWrite_TextEmptyAndNonHabit(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []model.Habit{}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No habits yet" {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, map[string]string{"mode": "demo"}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var m map[string]string
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil || m["mode"] != "demo" {
		t.Fatalf("expected json fallback, got %q (%v)", buf.String(), err)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
