package tui

import (
	"sync"

	"habitual/internal/dashboard"
	"habitual/internal/model"
	"habitual/internal/notify"

	"github.com/charmbracelet/bubbles/key"
)

type view int

const (
	viewLanding view = iota
	viewLogin
	viewRegister
	viewDashboard
)

func (v view) String() string {
	switch v {
	case viewLogin:
		return "login"
	case viewRegister:
		return "register"
	case viewDashboard:
		return "dashboard"
	default:
		return "landing"
	}
}

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
)

type habitsLoadedMsg struct{ out dashboard.Outcome }

type habitCreatedMsg struct {
	habit model.Habit
	out   dashboard.Outcome
}

type statusUpdatedMsg struct {
	id  string
	out dashboard.Outcome
	err error
}

type habitDeletedMsg struct {
	id  string
	out dashboard.Outcome
	err error
}

// authDoneMsg ends the simulated sign-in. seq guards against a stale tick
// landing after the user navigated away.
type authDoneMsg struct {
	seq  int
	from view
}

type toastExpiredMsg struct{ id int }

type toast struct {
	id     int
	notice notify.Notice
}

// noticeQueue collects controller notices until the Update loop drains them. The
// controller notifies before its call returns, so a notice is always queued by the
// time the matching result message arrives.
type noticeQueue struct {
	mu      sync.Mutex
	pending []notify.Notice
}

func (q *noticeQueue) Notify(n notify.Notice) {
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()
}

func (q *noticeQueue) drain() []notify.Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Done    key.Binding
	Missed  key.Binding
	None    key.Binding
	Delete  key.Binding
	Add     key.Binding
	Reload  key.Binding
	Logout  key.Binding
	Quit    key.Binding
	Submit  key.Binding
	Back    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding

	Register key.Binding
	SignIn   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Done:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Missed:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "missed")),
		None:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Add:      key.NewBinding(key.WithKeys("a", "/"), key.WithHelp("a", "add habit")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Register: key.NewBinding(key.WithKeys("r", "g"), key.WithHelp("r", "get started")),
		SignIn:   key.NewBinding(key.WithKeys("s", "l"), key.WithHelp("l", "sign in")),
	}
}

// dashboardHelp implements help.KeyMap for the dashboard footer.
type dashboardHelp struct{ k keyMap }

func (h dashboardHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Done, h.k.Missed, h.k.None, h.k.Delete, h.k.Add, h.k.Reload, h.k.Logout, h.k.Quit}
}

func (h dashboardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Left, h.k.Right},
		{h.k.Done, h.k.Missed, h.k.None, h.k.Delete},
		{h.k.Add, h.k.Reload, h.k.Logout, h.k.Quit},
	}
}
