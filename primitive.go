package tview

import "github.com/gdamore/tcell/v2"

// Primitive is the top-most interface for all graphical primitives.
type Primitive interface {
	// Draw draws this primitive onto the screen. Implementers can call the
	// screen's ShowCursor() function but should only do so when they have focus.
	// (They will need to keep track of this themselves.)
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)
	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler receives key events when this primitive has focus. A nil
	// command means the key was not handled and may be reinterpreted by an
	// outer primitive.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler receives mouse events.
	// The returned capture primitive (if non-nil) receives follow-up mouse events until the capture is released.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)

	// HasFocus determines if the primitive has focus. This function must return
	// true also if one of this primitive's child elements has focus.
	HasFocus() bool
	// Focus is called by the application when the primitive receives focus.
	// Implementers may call delegate() to pass the focus on to another primitive.
	Focus(delegate func(p Primitive))
	// Blur is called by the application when the primitive loses focus.
	Blur()
}

// CancelModer is implemented by primitives that keep transient pointer state
// (drags, pending taps, animations). CancelMode is called when the
// application takes the pointer away from them, e.g. on terminal focus loss.
type CancelModer interface {
	CancelMode()
}

// SchedulerSetter is implemented by primitives that run periodic callbacks on
// the event loop. Containers forward the scheduler to their children.
type SchedulerSetter interface {
	SetScheduler(scheduler Scheduler)
}

// Invalidator is implemented by primitives that repaint only what changed
// since their last Draw. Invalidate makes the next Draw repaint everything,
// as needed after the screen was cleared.
type Invalidator interface {
	Invalidate()
}

type dirtyTracker interface {
	IsDirty() bool
	MarkClean()
}
