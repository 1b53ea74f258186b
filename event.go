package doublecheck

// Handlers is a set of control event callbacks. Any field may be nil.
//
// Callers pass their own Handlers to Gesture.ControlProps and attach the
// returned Handlers to the control.
type Handlers struct {
	OnActivate func(*ActivateEvent)
	OnBlur     func(*BlurEvent)
	OnKeyUp    func(*KeyEvent)
}

// ActivateEvent is a primary activation of a control, such as a press or a click.
type ActivateEvent struct {
	// Source says where the activation came from, e.g. "key" or "mouse".
	Source string

	defaultPrevented bool
}

// PreventDefault marks the event so the control skips its default behavior.
func (e *ActivateEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *ActivateEvent) DefaultPrevented() bool { return e.defaultPrevented }

// KeyEvent is a key release on a control.
type KeyEvent struct {
	Key string
}

// BlurEvent is a focus loss on a control.
type BlurEvent struct{}
