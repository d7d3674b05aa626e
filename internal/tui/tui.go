// Package tui is the full-screen terminal dashboard: a landing page, simulated
// sign-in pages and the habit dashboard itself.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	setGlyphs(parseGlyphSet(opts.Glyphs))

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
