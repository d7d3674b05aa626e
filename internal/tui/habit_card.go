package tui

import (
	"strconv"
	"strings"

	"habitual/internal/model"
	"habitual/internal/statusutil"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	cardMinWidth = 34
	cardHeight   = 5 // 3 inner lines + border top/bottom
	cardSpacing  = 1
)

// statusKeys maps each status button to the key that presses it.
var statusKeys = map[model.Status]string{
	model.StatusDone:   "d",
	model.StatusMissed: "m",
	model.StatusNone:   "n",
}

type habitCard struct {
	habit    model.Habit
	selected bool
	// updating disables the status buttons on every card.
	updating bool
	deleting bool
}

func (c habitCard) deleteDisabled() bool { return c.deleting || c.updating }

func renderHabitCard(c habitCard, width int) string {
	if width < cardMinWidth {
		width = cardMinWidth
	}
	card := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)
	if c.selected {
		card = card.BorderForeground(colorSelectedBorder)
	}
	innerW := width - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}

	badge := lipgloss.NewStyle().Foreground(statusColor(c.habit.Status)).Render(glyphBadge(c.habit.Status))
	nameW := innerW - xansi.StringWidth(badge) - 1
	name := strings.TrimSpace(c.habit.Name)
	if name == "" {
		name = "(unnamed habit)"
	}
	title := lipgloss.NewStyle().Bold(true).Render(truncateToWidth(name, nameW))
	gap := innerW - xansi.StringWidth(title) - xansi.StringWidth(badge)
	if gap < 1 {
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + badge

	lines := []string{
		header,
		renderStatusButtons(c.habit.Status, c.updating),
		renderDeleteButton(c),
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	return card.Width(width - card.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func renderStatusButtons(current model.Status, disabled bool) string {
	btns := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		label := statusKeys[s] + " " + statusutil.Label(s)
		st := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case disabled:
			st = faintIfDark(st.Foreground(colorMuted))
		case s == current:
			st = st.Bold(true).Foreground(colorAccentFg).Background(statusColor(s))
		default:
			st = st.Foreground(statusColor(s)).Background(colorControlBg)
		}
		btns = append(btns, st.Render(label))
	}
	return strings.Join(btns, " ")
}

func renderDeleteButton(c habitCard) string {
	label := "x Delete Habit"
	if c.deleting {
		label = "Deleting..."
	}
	st := lipgloss.NewStyle().Padding(0, 1)
	if c.deleteDisabled() {
		return faintIfDark(st.Foreground(colorMuted)).Render(label)
	}
	return st.Foreground(colorMissed).Render(label)
}

// cardColumns is how many cards fit side by side in width.
func cardColumns(width int) int {
	n := width / (cardMinWidth + cardSpacing)
	switch {
	case n < 1:
		return 1
	case n > 3:
		return 3
	default:
		return n
	}
}

// renderCardGrid lays cards out in rows of cols, showing at most maxRows rows and
// keeping the row that holds selected in view.
func renderCardGrid(cards []habitCard, selected int, width int, maxRows int) string {
	if len(cards) == 0 {
		return ""
	}
	cols := cardColumns(width)
	cardW := (width - (cols-1)*cardSpacing) / cols
	if cardW < cardMinWidth {
		cardW = cardMinWidth
	}

	rows := (len(cards) + cols - 1) / cols
	if maxRows < 1 {
		maxRows = 1
	}
	first := 0
	if selRow := selected / cols; selRow >= maxRows {
		first = selRow - maxRows + 1
	}
	last := first + maxRows
	if last > rows {
		last = rows
	}

	out := make([]string, 0, last-first)
	for r := first; r < last; r++ {
		row := make([]string, 0, cols*2)
		for i := r * cols; i < (r+1)*cols && i < len(cards); i++ {
			if len(row) > 0 {
				row = append(row, strings.Repeat(" ", cardSpacing))
			}
			row = append(row, renderHabitCard(cards[i], cardW))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	grid := strings.Join(out, "\n")
	if hidden := rows - (last - first); hidden > 0 {
		grid += "\n" + styleMuted().Render(glyphBullet()+" "+plural(len(cards), "habit")+"; scroll with ↑/↓")
	}
	return grid
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
