package tui

import (
	"strings"
	"sync"

	"habitual/internal/model"
	"habitual/internal/notify"
	"habitual/internal/statusutil"
)

// Terminal apps can't change the user's font, so affordances come in a Unicode
// and an ASCII set for terminals that render emoji badly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) glyphSet {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func asciiGlyphs() bool { return glyphs() == glyphSetASCII }

func glyphBadge(s model.Status) string {
	return statusutil.Badge(s, asciiGlyphs())
}

func glyphLogo() string {
	if asciiGlyphs() {
		return "(o)"
	}
	return "◎"
}

func glyphBullet() string {
	if asciiGlyphs() {
		return "*"
	}
	return "•"
}

func glyphNotice(k notify.Kind) string {
	ascii := asciiGlyphs()
	switch k {
	case notify.KindError:
		if ascii {
			return "!"
		}
		return "✗"
	case notify.KindDemo:
		if ascii {
			return "~"
		}
		return "◌"
	default:
		if ascii {
			return "+"
		}
		return "✓"
	}
}
