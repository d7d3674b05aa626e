package tui

import (
	"errors"
	"strings"
	"time"

	"habitual/internal/dashboard"
	"habitual/internal/model"
	"habitual/internal/notify"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case authDoneMsg:
		if !m.authPending || msg.seq != m.authSeq || msg.from != m.view {
			return m, nil
		}
		m.authPending = false
		desc := "Successfully logged in"
		if msg.from == viewRegister {
			desc = "Account created successfully"
		}
		toastCmd := m.pushToast(notify.Notice{Kind: notify.KindSuccess, Title: "Welcome to Habitual!", Description: desc})
		loadCmd := m.enterDashboard()
		return m, tea.Batch(toastCmd, loadCmd)

	case habitsLoadedMsg:
		m.loading = false
		m.clampSelection()
		return m, m.drainNotices()

	case habitCreatedMsg:
		m.adding = false
		m.addInput.Reset()
		// Select the new card so status keys act on it next.
		if msg.out != dashboard.OutcomeNoop {
			if hs := m.ctrl.Snapshot(); len(hs) > 0 {
				m.selected = len(hs) - 1
			}
		}
		return m, m.drainNotices()

	case statusUpdatedMsg:
		m.updating = false
		m.logResult("update status", msg.id, msg.out, msg.err)
		return m, m.drainNotices()

	case habitDeletedMsg:
		delete(m.deleting, msg.id)
		m.clampSelection()
		m.logResult("delete", msg.id, msg.out, msg.err)
		return m, m.drainNotices()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case viewLanding:
			return m.updateLanding(msg)
		case viewLogin, viewRegister:
			return m.updateAuth(msg)
		case viewDashboard:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Register):
		return m.goTo(viewRegister), nil
	case key.Matches(msg, m.keys.SignIn):
		return m.goTo(viewLogin), nil
	}
	return m, nil
}

func (m appModel) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.authPending {
		return m, nil
	}
	fields := m.authFields()
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.goTo(viewLanding), nil
	case msg.String() == "ctrl+r" && m.view == viewLogin:
		return m.goTo(viewRegister), nil
	case msg.String() == "ctrl+l" && m.view == viewRegister:
		return m.goTo(viewLogin), nil
	case key.Matches(msg, m.keys.Next):
		m.focusAuthField((m.authFocus + 1) % len(fields))
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.focusAuthField((m.authFocus + len(fields) - 1) % len(fields))
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.authFocus < len(fields)-1 {
			m.focusAuthField(m.authFocus + 1)
			return m, nil
		}
		return m.submitAuth()
	}

	var cmd tea.Cmd
	fields[m.authFocus], cmd = fields[m.authFocus].Update(msg)
	return m, cmd
}

func (m appModel) submitAuth() (tea.Model, tea.Cmd) {
	for _, f := range m.authFields() {
		if f.Value() == "" {
			return m, m.pushToast(notify.Notice{Kind: notify.KindError, Title: "Error", Description: "Please fill in all fields"})
		}
	}
	m.authPending = true
	m.authSeq++
	seq, from := m.authSeq, m.view
	return m, tea.Tick(authDelay, func(time.Time) tea.Msg { return authDoneMsg{seq: seq, from: from} })
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalConfirmDelete {
		return m.updateConfirmDelete(msg)
	}
	if m.addFocus {
		return m.updateAddForm(msg)
	}
	if m.loading {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	habits := m.ctrl.Snapshot()
	cols := cardColumns(m.viewWidth())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-cols, len(habits))
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(cols, len(habits))
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1, len(habits))
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1, len(habits))
	case key.Matches(msg, m.keys.Done):
		return m.setStatus(habits, model.StatusDone)
	case key.Matches(msg, m.keys.Missed):
		return m.setStatus(habits, model.StatusMissed)
	case key.Matches(msg, m.keys.None):
		return m.setStatus(habits, model.StatusNone)
	case key.Matches(msg, m.keys.Delete):
		h, ok := m.selectedHabit(habits)
		if !ok || m.updating || m.deleting[h.ID] {
			return m, nil
		}
		id := h.ID
		m.modal = modalConfirmDelete
		m.modalID = id
		m.modalFocus = confirmFocusConfirm
	case key.Matches(msg, m.keys.Add):
		m.addFocus = true
		return m, m.addInput.Focus()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	}
	return m, nil
}

func (m appModel) setStatus(habits []model.Habit, s model.Status) (tea.Model, tea.Cmd) {
	// Every status button is disabled while any update is pending.
	h, ok := m.selectedHabit(habits)
	if m.updating || !ok {
		return m, nil
	}
	m.updating = true
	return m, m.updateStatusCmd(h.ID, s)
}

func (m appModel) selectedHabit(habits []model.Habit) (model.Habit, bool) {
	if m.selected < 0 || m.selected >= len(habits) {
		return model.Habit{}, false
	}
	return habits[m.selected], true
}

func (m appModel) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.addFocus = false
		m.addInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		name := strings.TrimSpace(m.addInput.Value())
		if name == "" {
			return m, nil
		}
		m.adding = true
		return m, m.createCmd(name)
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "q":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.modalFocus = m.modalFocus.toggle()
		return m, nil
	case "y":
		return m.confirmDelete()
	case "enter":
		if m.modalFocus == confirmFocusConfirm {
			return m.confirmDelete()
		}
		m.closeModal()
	}
	return m, nil
}

func (m appModel) confirmDelete() (tea.Model, tea.Cmd) {
	id := m.modalID
	m.closeModal()
	if id == "" || m.updating || m.deleting[id] {
		return m, nil
	}
	m.deleting[id] = true
	return m, m.deleteCmd(id)
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalID = ""
	m.modalFocus = confirmFocusConfirm
}

func (m appModel) logout() (tea.Model, tea.Cmd) {
	cmd := m.pushToast(notify.Notice{Kind: notify.KindSuccess, Title: "Goodbye!", Description: "You have been logged out"})
	return m.goTo(viewLogin), cmd
}

// goTo switches pages, resetting the forms of the page being entered.
func (m appModel) goTo(v view) appModel {
	m.log.Debug("navigate", zap.Stringer("from", m.view), zap.Stringer("to", v))
	m.view = v
	m.authPending = false
	m.addFocus = false
	m.addInput.Blur()
	m.closeModal()
	switch v {
	case viewLogin:
		m.loginFields = resetFields(m.loginFields)
		m.focusAuthField(0)
	case viewRegister:
		m.registerFields = resetFields(m.registerFields)
		m.focusAuthField(0)
	}
	return m
}

func (m *appModel) enterDashboard() tea.Cmd {
	*m = m.goTo(viewDashboard)
	m.loading = true
	m.selected = 0
	return m.loadCmd()
}

func resetFields(fields []textinput.Model) []textinput.Model {
	out := make([]textinput.Model, len(fields))
	for i, f := range fields {
		f.Reset()
		f.Blur()
		out[i] = f
	}
	return out
}

func (m *appModel) authFields() []textinput.Model {
	if m.view == viewRegister {
		return m.registerFields
	}
	return m.loginFields
}

func (m *appModel) focusAuthField(i int) {
	fields := m.authFields()
	for j := range fields {
		if j == i {
			fields[j].Focus()
		} else {
			fields[j].Blur()
		}
	}
	m.authFocus = i
}

func (m *appModel) moveSelection(delta, n int) {
	if n == 0 {
		m.selected = 0
		return
	}
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
}

func (m *appModel) clampSelection() {
	n := len(m.ctrl.Snapshot())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *appModel) pushToast(n notify.Notice) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toasts = append(m.toasts, toast{id: id, notice: n})
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m *appModel) dropToast(id int) {
	kept := make([]toast, 0, len(m.toasts))
	for _, t := range m.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func (m *appModel) drainNotices() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range m.notices.drain() {
		cmds = append(cmds, m.pushToast(n))
	}
	return tea.Batch(cmds...)
}

func (m appModel) logResult(op, id string, out dashboard.Outcome, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUpdateInFlight), errors.Is(err, dashboard.ErrDeleteInFlight):
		m.log.Debug("ignored; already in flight", zap.String("op", op), zap.String("habit_id", id))
	case err != nil:
		m.log.Warn("rejected", zap.String("op", op), zap.String("habit_id", id), zap.Error(err))
	default:
		m.log.Debug("settled", zap.String("op", op), zap.String("habit_id", id), zap.Stringer("outcome", out))
	}
}
