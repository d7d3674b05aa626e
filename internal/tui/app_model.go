package tui

import (
	"context"
	"time"

	"habitual/internal/dashboard"
	"habitual/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	toastLifetime   = 3 * time.Second
	authDelay       = time.Second
	maxToasts       = 3
	defaultWidth    = 80
	defaultHeight   = 24
	habitNameMaxLen = 120
)

// Options configures the dashboard app.
type Options struct {
	// Backend serves /api/habits. Nil runs the dashboard on demo data only.
	Backend dashboard.Backend
	Mode    dashboard.Mode
	// BaseURL is shown in the header.
	BaseURL string
	Logger  *zap.Logger
	// Theme is auto, light or dark. Glyphs is unicode or ascii.
	Theme  string
	Glyphs string
	// StartView skips the landing page ("login", "register" or "dashboard").
	StartView string
}

type appModel struct {
	ctrl    *dashboard.Controller
	notices *noticeQueue
	log     *zap.Logger
	baseURL string
	keys    keyMap
	help    help.Model

	width  int
	height int
	view   view

	// Sign-in forms. Fields are simulated; nothing is sent anywhere.
	loginFields    []textinput.Model
	registerFields []textinput.Model
	authFocus      int
	authPending    bool
	authSeq        int

	// Dashboard.
	loading    bool
	spinner    spinner.Model
	selected   int
	addInput   textinput.Model
	addFocus   bool
	adding     bool
	updating   bool
	deleting   map[string]bool
	modal      modalKind
	modalID    string
	modalFocus confirmModalFocus

	toasts   []toast
	toastSeq int
}

func newAppModel(opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	q := &noticeQueue{}
	ctrl := dashboard.New(opts.Backend,
		dashboard.WithLogger(log),
		dashboard.WithNotifier(q),
		dashboard.WithMode(opts.Mode),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(colorAccent)

	add := textinput.New()
	add.Placeholder = "Enter habit name..."
	add.CharLimit = habitNameMaxLen
	add.Prompt = ""

	m := appModel{
		ctrl:     ctrl,
		notices:  q,
		log:      log,
		baseURL:  opts.BaseURL,
		keys:     defaultKeyMap(),
		help:     help.New(),
		view:     viewLanding,
		spinner:  sp,
		addInput: add,
		deleting: map[string]bool{},
		loginFields: []textinput.Model{
			newField("Enter your email", false),
			newField("Enter your password", true),
		},
		registerFields: []textinput.Model{
			newField("Enter your full name", false),
			newField("Enter your email", false),
			newField("Create a password", true),
		},
	}
	switch opts.StartView {
	case "login":
		m.view = viewLogin
		m.focusAuthField(0)
	case "register":
		m.view = viewRegister
		m.focusAuthField(0)
	case "dashboard":
		m.view = viewDashboard
		m.loading = true
	}
	return m
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 200
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.view == viewDashboard {
		cmds = append(cmds, m.loadCmd())
	}
	return tea.Batch(cmds...)
}

func (m appModel) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return habitsLoadedMsg{out: ctrl.Load(context.Background())}
	}
}

func (m appModel) createCmd(name string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		h, out := ctrl.Create(context.Background(), name)
		return habitCreatedMsg{habit: h, out: out}
	}
}

func (m appModel) updateStatusCmd(id string, s model.Status) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		out, err := ctrl.UpdateStatus(context.Background(), id, s)
		return statusUpdatedMsg{id: id, out: out, err: err}
	}
}

func (m appModel) deleteCmd(id string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		out, err := ctrl.Delete(context.Background(), id)
		return habitDeletedMsg{id: id, out: out, err: err}
	}
}

func (m appModel) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m appModel) viewHeight() int {
	if m.height <= 0 {
		return defaultHeight
	}
	return m.height
}
