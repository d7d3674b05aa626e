package statusutil

import (
	"testing"

	"habitual/internal/model"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want model.Status
	}{
		{"done", model.StatusDone},
		{" DONE ", model.StatusDone},
		{"d", model.StatusDone},
		{"x", model.StatusDone},
		{"missed", model.StatusMissed},
		{"Miss", model.StatusMissed},
		{"m", model.StatusMissed},
		{"none", model.StatusNone},
		{"N", model.StatusNone},
	}
	for _, tc := range cases {
		got, err := NormalizeStatus(tc.in)
		if err != nil {
			t.Fatalf("NormalizeStatus(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeStatus(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "  ", "todo", "skipped"} {
		if _, err := NormalizeStatus(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestOrNone(t *testing.T) {
	if got := OrNone(""); got != model.StatusNone {
		t.Fatalf("expected empty => none, got %q", got)
	}
	if got := OrNone("bogus"); got != model.StatusNone {
		t.Fatalf("expected bogus => none, got %q", got)
	}
	if got := OrNone("DONE"); got != model.StatusDone {
		t.Fatalf("expected DONE => done, got %q", got)
	}
	if got := OrNone(model.StatusMissed); got != model.StatusMissed {
		t.Fatalf("expected missed preserved, got %q", got)
	}
}

func TestBadge(t *testing.T) {
	if got := Badge(model.StatusDone, false); got != "✅ Done" {
		t.Fatalf("unexpected done badge: %q", got)
	}
	if got := Badge(model.StatusMissed, false); got != "❌ Missed" {
		t.Fatalf("unexpected missed badge: %q", got)
	}
	if got := Badge(model.StatusNone, false); got != "⏺️ None" {
		t.Fatalf("unexpected none badge: %q", got)
	}
	if got := Badge(model.StatusMissed, true); got != "[!] Missed" {
		t.Fatalf("unexpected ascii missed badge: %q", got)
	}
	if got := Label(model.StatusNone); got != "None" {
		t.Fatalf("unexpected label: %q", got)
	}
}
