// Package doublecheck implements a confirm-before-acting gesture: a control
// that needs two consecutive activations before the guarded action runs.
//
// The first activation on an idle control suppresses the default behavior and
// arms the gesture. The next activation fires the caller's handler. Losing
// focus or releasing the cancel key puts the gesture back to idle.
//
// A Gesture knows nothing about rendering. Owners call ControlProps to get a
// handler set to attach to their control and read Armed to decide what to draw.
package doublecheck

import (
	"go.uber.org/zap"
)

// State is the gesture state.
type State int

const (
	// Idle is the initial state. The next activation arms the gesture.
	Idle State = iota
	// Armed means one activation has been swallowed and the next one fires.
	Armed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	default:
		return "unknown"
	}
}

// DefaultCancelKey is the key that disarms the gesture unless overridden.
const DefaultCancelKey = "esc"

// Gesture holds the armed flag for one control.
// It is not safe for concurrent use; callers drive it from their event loop.
type Gesture struct {
	state      State
	cancelKeys map[string]bool
	observer   func(from, to State)
	logger     *zap.Logger
}

// Option configures a Gesture.
type Option func(*Gesture)

// WithCancelKeys sets the keys that disarm the gesture on release.
func WithCancelKeys(keys ...string) Option {
	return func(g *Gesture) {
		g.cancelKeys = make(map[string]bool, len(keys))
		for _, k := range keys {
			g.cancelKeys[k] = true
		}
	}
}

// WithObserver registers fn to be called after every state change.
// No-op transitions (for example blurring an idle control) are not reported.
func WithObserver(fn func(from, to State)) Option {
	return func(g *Gesture) {
		g.observer = fn
	}
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gesture) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns an idle gesture.
func New(opts ...Option) *Gesture {
	g := &Gesture{
		state:      Idle,
		cancelKeys: map[string]bool{DefaultCancelKey: true},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State reports the current state.
func (g *Gesture) State() State { return g.state }

// Armed reports whether the next activation will fire.
func (g *Gesture) Armed() bool { return g.state == Armed }

// Reset puts the gesture back to Idle.
func (g *Gesture) Reset() { g.transition(Idle, "reset") }

// IsCancelKey reports whether releasing key disarms the gesture.
func (g *Gesture) IsCancelKey(key string) bool { return g.cancelKeys[key] }

func (g *Gesture) transition(to State, cause string) {
	from := g.state
	if from == to {
		return
	}
	g.state = to
	g.logger.Debug("gesture transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("cause", cause))
	if g.observer != nil {
		g.observer(from, to)
	}
}

// ControlProps composes overrides with the gesture's own handlers.
//
// The returned OnActivate swallows the first activation of an idle gesture
// (PreventDefault, then arm) and forwards every activation of an armed gesture
// to overrides.OnActivate. OnBlur and OnKeyUp disarm first and then always call
// their override. The state is read when a handler runs, so handlers obtained
// before a transition stay correct after it.
//
// A fresh Handlers value is returned on every call. Nil overrides are skipped.
func (g *Gesture) ControlProps(overrides Handlers) Handlers {
	return Handlers{
		OnActivate: func(e *ActivateEvent) {
			if g.state == Idle {
				e.PreventDefault()
				g.transition(Armed, "activate")
				return
			}
			if overrides.OnActivate != nil {
				overrides.OnActivate(e)
			}
		},
		OnBlur: func(e *BlurEvent) {
			g.transition(Idle, "blur")
			if overrides.OnBlur != nil {
				overrides.OnBlur(e)
			}
		},
		OnKeyUp: func(e *KeyEvent) {
			if g.cancelKeys[e.Key] {
				g.transition(Idle, "cancel key")
			}
			if overrides.OnKeyUp != nil {
				overrides.OnKeyUp(e)
			}
		},
	}
}
