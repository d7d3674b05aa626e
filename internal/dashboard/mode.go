package dashboard

import (
	"fmt"
	"strings"
)

// Mode states whether a backend is expected to serve the habits API.
type Mode string

const (
	// ModeAuto talks to the backend and drops to demo mode for the session when
	// the initial load finds the API not implemented.
	ModeAuto Mode = "auto"
	// ModeRemote always talks to the backend; failures fall back per operation.
	ModeRemote Mode = "remote"
	// ModeDemo never issues requests.
	ModeDemo Mode = "demo"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeRemote:
		return ModeRemote, nil
	case ModeDemo, "mock", "offline":
		return ModeDemo, nil
	default:
		return "", fmt.Errorf("unknown mode: %q (want auto|remote|demo)", s)
	}
}

// Outcome classifies how an operation settled.
type Outcome int

const (
	// OutcomeNoop: nothing happened (empty name, guard rejected the call).
	OutcomeNoop Outcome = iota
	// OutcomeSynced: the backend accepted the change.
	OutcomeSynced
	// OutcomeDemo: no backend API (demo mode or not implemented); applied locally.
	OutcomeDemo
	// OutcomeFallback: the request failed; applied locally.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSynced:
		return "synced"
	case OutcomeDemo:
		return "demo"
	case OutcomeFallback:
		return "fallback"
	default:
		return "noop"
	}
}

// Local reports whether the change only exists in memory.
func (o Outcome) Local() bool {
	return o == OutcomeDemo || o == OutcomeFallback
}
