package statusutil

import (
	"fmt"
	"strings"

	"habitual/internal/model"
)

// NormalizeStatus parses a user-supplied status word.
//
// Accepted values are done, missed and none (any case), plus the single-letter
// keys the dashboard uses (d, m, n). Empty input is an error, not none.
func NormalizeStatus(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "done", "d", "x":
		return model.StatusDone, nil
	case "missed", "miss", "m":
		return model.StatusMissed, nil
	case "none", "n":
		return model.StatusNone, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %q (want done|missed|none)", strings.TrimSpace(s))
	}
}

// OrNone maps an empty or unknown status (e.g. from a sloppy backend) to none.
func OrNone(s model.Status) model.Status {
	if s.Valid() {
		return s
	}
	if v, err := NormalizeStatus(string(s)); err == nil {
		return v
	}
	return model.StatusNone
}

// Label is the capitalized button label for a status.
func Label(s model.Status) string {
	switch s {
	case model.StatusDone:
		return "Done"
	case model.StatusMissed:
		return "Missed"
	default:
		return "None"
	}
}

// Badge renders the status badge text. ascii selects a glyph-free variant for
// terminals that render emoji poorly.
func Badge(s model.Status, ascii bool) string {
	if ascii {
		switch s {
		case model.StatusDone:
			return "[x] Done"
		case model.StatusMissed:
			return "[!] Missed"
		default:
			return "[ ] None"
		}
	}
	switch s {
	case model.StatusDone:
		return "✅ Done"
	case model.StatusMissed:
		return "❌ Missed"
	default:
		return "⏺️ None"
	}
}
