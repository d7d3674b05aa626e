// Package dashboard owns the in-memory habit collection shown by the dashboard and
// keeps it in step with the remote habits endpoint.
//
// Every operation converges to a locally consistent collection: when the backend is
// absent, not implemented or failing, the change is applied locally anyway and the
// user is told the change is local-only. Status updates and deletes never roll back.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"habitual/internal/api"
	"habitual/internal/model"
	"habitual/internal/notify"
	"habitual/internal/statusutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Backend is the remote habit collection. *api.Client implements it.
type Backend interface {
	List(ctx context.Context) ([]model.Habit, error)
	Create(ctx context.Context, name string, status model.Status) (model.Habit, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

var (
	// ErrUpdateInFlight is returned when a status update is requested while another is pending.
	ErrUpdateInFlight = errors.New("a status update is already in flight")
	// ErrDeleteInFlight is returned when the same habit is already being deleted.
	ErrDeleteInFlight = errors.New("habit is already being deleted")
)

type Controller struct {
	backend  Backend
	log      *zap.Logger
	notifier notify.Notifier
	now      func() time.Time

	mu       sync.Mutex
	habits   []model.Habit
	mode     Mode
	loaded   bool
	deleting map[string]bool

	updating atomic.Bool
	creating atomic.Int32

	loads singleflight.Group
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithMode(m Mode) Option {
	return func(c *Controller) {
		if m != "" {
			c.mode = m
		}
	}
}

// WithClock overrides the wall clock used for local IDs and notice timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a controller over backend. A nil backend forces demo mode.
func New(backend Backend, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		log:      zap.NewNop(),
		notifier: notify.Discard,
		now:      time.Now,
		mode:     ModeAuto,
		deleting: map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.backend == nil {
		c.mode = ModeDemo
	}
	return c
}

// Snapshot returns a copy of the collection in display order.
func (c *Controller) Snapshot() []model.Habit {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Habit, len(c.habits))
	copy(out, c.habits)
	return out
}

func (c *Controller) Find(id string) (model.Habit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.habits[i], true
	}
	return model.Habit{}, false
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Updating reports whether a status update is pending. While true, every status
// control on every card is disabled.
func (c *Controller) Updating() bool { return c.updating.Load() }

// Creating reports whether at least one create is pending.
func (c *Controller) Creating() bool { return c.creating.Load() > 0 }

func (c *Controller) Deleting(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[id]
}

// Load replaces the collection with the remote one, or with the demo dataset when
// the backend is absent or failing. Concurrent calls share one request.
func (c *Controller) Load(ctx context.Context) Outcome {
	v, _, _ := c.loads.Do("load", func() (any, error) {
		return c.load(ctx), nil
	})
	return v.(Outcome)
}

func (c *Controller) load(ctx context.Context) Outcome {
	var remote []model.Habit
	out := c.call(ctx, opLoad, "", func(ctx context.Context, b Backend) error {
		hs, err := b.List(ctx)
		remote = hs
		return err
	})

	c.mu.Lock()
	switch out {
	case OutcomeSynced:
		c.habits = normalizeAll(remote)
	default:
		c.habits = DemoHabits()
		if out == OutcomeDemo && c.mode == ModeAuto {
			c.mode = ModeDemo
			c.log.Info("habits api not implemented; switching to demo mode")
		}
	}
	c.loaded = true
	n := len(c.habits)
	c.mu.Unlock()

	c.notify(opLoad, out, n)
	return out
}

// Create appends a habit named name (trimmed). Empty names are a no-op: no request,
// no notice, no change.
func (c *Controller) Create(ctx context.Context, name string) (model.Habit, Outcome) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Habit{}, OutcomeNoop
	}

	c.creating.Add(1)
	defer c.creating.Add(-1)

	var created model.Habit
	out := c.call(ctx, opCreate, "", func(ctx context.Context, b Backend) error {
		h, err := b.Create(ctx, name, model.StatusNone)
		created = h
		return err
	})

	c.mu.Lock()
	if out == OutcomeSynced {
		created.Status = statusutil.OrNone(created.Status)
		if strings.TrimSpace(created.Name) == "" {
			created.Name = name
		}
	} else {
		created = model.Habit{ID: c.localIDLocked(), Name: name, Status: model.StatusNone}
	}
	c.habits = append(c.habits, created)
	c.mu.Unlock()

	c.notify(opCreate, out, 0)
	return created, out
}

// UpdateStatus sets the status of habit id. The local record always ends with the
// requested status, whatever the remote outcome. Only one update may be pending.
func (c *Controller) UpdateStatus(ctx context.Context, id string, status model.Status) (Outcome, error) {
	if !status.Valid() {
		return OutcomeNoop, fmt.Errorf("invalid status: %q", status)
	}
	if !c.updating.CompareAndSwap(false, true) {
		return OutcomeNoop, ErrUpdateInFlight
	}
	defer c.updating.Store(false)

	out := c.call(ctx, opUpdate, id, func(ctx context.Context, b Backend) error {
		return b.UpdateStatus(ctx, id, status)
	})

	c.mu.Lock()
	if i := c.indexLocked(id); i >= 0 {
		c.habits[i].Status = status
	}
	c.mu.Unlock()

	c.notify(opUpdate, out, 0)
	return out, nil
}

// Delete removes habit id locally whatever the remote outcome. Deleting an unknown
// id leaves the collection unchanged.
func (c *Controller) Delete(ctx context.Context, id string) (Outcome, error) {
	c.mu.Lock()
	if c.deleting[id] {
		c.mu.Unlock()
		return OutcomeNoop, ErrDeleteInFlight
	}
	c.deleting[id] = true
	c.mu.Unlock()

	out := c.call(ctx, opDelete, id, func(ctx context.Context, b Backend) error {
		return b.Delete(ctx, id)
	})

	c.mu.Lock()
	kept := c.habits[:0]
	for _, h := range c.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	// Clear the tail so removed records don't linger in the backing array.
	for i := len(kept); i < len(c.habits); i++ {
		c.habits[i] = model.Habit{}
	}
	c.habits = kept
	delete(c.deleting, id)
	c.mu.Unlock()

	c.notify(opDelete, out, 0)
	return out, nil
}

// call runs fn against the backend unless the controller is in demo mode, and
// classifies the result.
func (c *Controller) call(ctx context.Context, op op, id string, fn func(context.Context, Backend) error) Outcome {
	if c.Mode() == ModeDemo {
		c.log.Debug("demo mode; skipping request", zap.String("op", string(op)), zap.String("habit_id", id))
		return OutcomeDemo
	}

	err := fn(ctx, c.backend)
	out := classify(err)
	fields := []zap.Field{
		zap.String("op", string(op)),
		zap.String("outcome", out.String()),
	}
	if id != "" {
		fields = append(fields, zap.String("habit_id", id))
	}
	switch out {
	case OutcomeSynced:
		c.log.Debug("synced", fields...)
	case OutcomeDemo:
		c.log.Info("habits api not implemented; applying locally", append(fields, zap.Error(err))...)
	default:
		c.log.Warn("request failed; applying locally", append(fields, zap.Error(err))...)
	}
	return out
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSynced
	case api.IsNotImplemented(err):
		return OutcomeDemo
	default:
		return OutcomeFallback
	}
}

func (c *Controller) notify(op op, out Outcome, n int) {
	notice, ok := noticeFor(op, out, n)
	if !ok {
		return
	}
	notice.At = c.now()
	c.notifier.Notify(notice)
}

func (c *Controller) indexLocked(id string) int {
	for i := range c.habits {
		if c.habits[i].ID == id {
			return i
		}
	}
	return -1
}

// localIDLocked derives an ID from the wall clock (Unix milliseconds), bumped until
// it is unique within the collection.
func (c *Controller) localIDLocked() string {
	n := c.now().UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if c.indexLocked(id) < 0 {
			return id
		}
		n++
	}
}

func normalizeAll(hs []model.Habit) []model.Habit {
	out := make([]model.Habit, 0, len(hs))
	for _, h := range hs {
		h.Status = statusutil.OrNone(h.Status)
		out = append(out, h)
	}
	return out
}
