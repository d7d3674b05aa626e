package tui

import (
	"strings"

	"habitual/internal/dashboard"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewLogin, viewRegister:
		body = m.viewAuth()
	case viewDashboard:
		if m.modal == modalConfirmDelete {
			return m.viewDeleteModal()
		}
		body = m.viewDashboard()
	default:
		body = m.viewLanding()
	}
	if t := m.renderToasts(); t != "" {
		body += "\n\n" + t
	}
	return body
}

func (m appModel) viewAuth() string {
	w := m.viewWidth()
	bodyW := modalBodyWidth(w)

	title, subtitle := "Habitual", "Track your daily habits"
	labels := []string{"Email", "Password"}
	submit, pending := "Sign In", "Signing in..."
	switchHint := "Don't have an account? ctrl+r: sign up"
	if m.view == viewRegister {
		title, subtitle = "Join Habitual", "Start building better habits today"
		labels = []string{"Full Name", "Email", "Password"}
		submit, pending = "Create Account", "Creating account..."
		switchHint = "Already have an account? ctrl+l: sign in"
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title),
		styleMuted().Render(subtitle),
		"",
	}
	for i, f := range m.authFields() {
		label := lipgloss.NewStyle().Bold(i == m.authFocus)
		if i == m.authFocus {
			label = label.Foreground(colorAccent)
		}
		lines = append(lines, label.Render(labels[i]), renderInputLine(bodyW, f.View()), "")
	}

	btn := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	if m.authPending {
		lines = append(lines, btn.Background(colorMuted).Render(m.spinner.View()+" "+pending))
	} else {
		lines = append(lines, btn.Render("enter  "+submit))
	}
	lines = append(lines, "", styleMuted().Render(switchHint), styleMuted().Render("tab: next field   esc: back"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, box)
}

func (m appModel) viewDashboard() string {
	w := m.viewWidth()
	innerW := w - 2
	if innerW < cardMinWidth {
		innerW = cardMinWidth
	}

	sections := []string{
		m.renderHeader(innerW),
		"",
		lipgloss.NewStyle().Bold(true).Render("Welcome to Your Habit Dashboard"),
		styleMuted().Render("Track your daily habits and build a better you, one day at a time."),
		"",
		m.renderAddForm(innerW),
		"",
	}
	used := lipgloss.Height(strings.Join(sections, "\n"))

	habits := m.ctrl.Snapshot()
	switch {
	case m.loading || !m.ctrl.Loaded():
		sections = append(sections, m.spinner.View()+" Loading your habits...")
	case len(habits) == 0:
		sections = append(sections,
			lipgloss.NewStyle().Bold(true).Render("No habits yet"),
			styleMuted().Render("Add your first habit above to get started on your journey!"),
		)
	default:
		cards := make([]habitCard, len(habits))
		for i, h := range habits {
			cards[i] = habitCard{
				habit:    h,
				selected: i == m.selected,
				updating: m.updating,
				deleting: m.deleting[h.ID],
			}
		}
		// Leave room for the toast stack and the help footer.
		avail := m.viewHeight() - used - 2 - maxToasts
		maxRows := avail / (cardHeight + cardSpacing)
		sections = append(sections, renderCardGrid(cards, m.selected, innerW, maxRows))
	}

	sections = append(sections, "", m.help.View(dashboardHelp{k: m.keys}))
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(sections, "\n"))
}

func (m appModel) renderHeader(w int) string {
	left := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(glyphLogo()+" Habitual") +
		"  " + m.renderModeBadge()
	if m.baseURL != "" && m.ctrl.Mode() != dashboard.ModeDemo {
		left += "  " + styleMuted().Render(m.baseURL)
	}
	right := styleMuted().Render("L logout")
	gap := w - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderModeBadge() string {
	mode := m.ctrl.Mode()
	st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorAccentFg)
	switch mode {
	case dashboard.ModeDemo:
		st = st.Background(colorToastDemo)
	default:
		st = st.Background(colorDone)
	}
	return st.Render(string(mode))
}

func (m appModel) renderAddForm(w int) string {
	title := lipgloss.NewStyle().Bold(true).Render("Add New Habit")
	btnLabel := "enter  Add"
	if m.adding {
		btnLabel = "Adding..."
	}
	btn := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	if m.adding || strings.TrimSpace(m.addInput.Value()) == "" {
		btn = btn.Background(colorMuted)
	}
	button := btn.Render(btnLabel)

	inputW := w - xansi.StringWidth(button) - 1
	if inputW > 60 {
		inputW = 60
	}
	input := m.addInput.View()
	if !m.addFocus && m.addInput.Value() == "" {
		input = styleMuted().Render("press a to add a habit")
	}
	return title + "\n" + renderInputLine(inputW, input) + " " + button
}

func (m appModel) viewDeleteModal() string {
	name := m.modalID
	if h, ok := m.ctrl.Find(m.modalID); ok {
		name = h.Name
	}
	box := renderConfirmModal(m.viewWidth(), "Delete habit", "Delete \""+name+"\"? This cannot be undone.", "Delete", "Cancel", m.modalFocus)
	return lipgloss.Place(m.viewWidth(), m.viewHeight(), lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	w := modalBodyWidth(m.viewWidth())
	out := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		c := noticeColor(t.notice.Kind)
		title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(glyphNotice(t.notice.Kind) + " " + t.notice.Title)
		line := title
		if t.notice.Description != "" {
			line += "  " + truncateToWidth(t.notice.Description, w-xansi.StringWidth(title)-2)
		}
		out = append(out, lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(c).
			PaddingLeft(1).
			Render(line))
	}
	return strings.Join(out, "\n")
}
