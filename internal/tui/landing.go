package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const landingMarkdown = `
# Habitual

Transform your life one habit at a time. Track, monitor, and achieve your daily goals
with our intuitive habit tracking system.

### Simple Tracking

Mark habits as done, missed, or none with a single key. Keep it simple, keep it effective.

### Visual Progress

See your progress at a glance with status badges and intuitive color coding.

### Daily Focus

Focus on today's habits without overwhelming complexity. Build consistency one day at a time.

## Ready to build better habits?

Join thousands of people who are already transforming their lives with Habitual.
`

func (m appModel) viewLanding() string {
	w := m.viewWidth()
	mdW := w - 4
	if mdW > 88 {
		mdW = 88
	}
	body := renderMarkdown(landingMarkdown, mdW)

	primary := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	secondary := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		primary.Render("r  Get Started Free"),
		"  ",
		secondary.Render("l  Sign In"),
	)
	return strings.Join([]string{
		body,
		"",
		"  " + buttons,
		"",
		"  " + styleMuted().Render("q quit"),
	}, "\n")
}
