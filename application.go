package tview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The size of the event channel fed by the screen.
	eventsQueueSize = 64
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// queuedUpdate represented the execution of f queued by
// Application.QueueUpdate(). If "done" is not nil, it receives exactly one
// element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application represents the top node of an application.
//
// It is not strictly required to use this class as none of the other classes
// depend on it. However, it provides useful tools to set up an application and
// plays nicely with all widgets.
//
// The following command displays a primitive p on the screen until the
// application is stopped (for example via QuitCommand):
//
//	if err := tview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
//
// Application is also the Scheduler of the primitives below its root: timer
// ticks run on the event loop, between input events.
type Application struct {
	sync.RWMutex

	// The application's screen. Apart from Run(), this variable should never be
	// set directly.
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	// Closed by Stop so timer goroutines do not block on a dead loop.
	done     chan struct{}
	stopOnce sync.Once

	enableMouse bool

	mouseCapturingPrimitive Primitive        // A Primitive returned by a MouseHandler which will capture future mouse events.
	lastMouseX, lastMouseY  int              // The last position of the mouse.
	mouseDownX, mouseDownY  int              // The position of the mouse when its button was last pressed.
	lastMouseClick          time.Time        // The time when a mouse button was last clicked.
	lastMouseButtons        tcell.ButtonMask // The last mouse button state.

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool

	logger zerolog.Logger
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
		done:    make(chan struct{}),
		logger:  zerolog.Nop(),
	}
}

// SetScreen sets the application's screen. The screen is initialized by Run,
// so it must not be initialized yet.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// EnableMouse enables mouse reporting when the application starts.
func (a *Application) EnableMouse(enable bool) *Application {
	a.Lock()
	defer a.Unlock()
	a.enableMouse = enable
	if a.screen != nil {
		if enable {
			a.screen.EnableMouse()
		} else {
			a.screen.DisableMouse()
		}
	}
	return a
}

// SetLogger sets the logger for event loop diagnostics.
func (a *Application) SetLogger(logger zerolog.Logger) *Application {
	a.Lock()
	defer a.Unlock()
	a.logger = logger
	return a
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called.
//
// While an application is running it fully claims stdin, stdout and stderr.
// Logs have to go to a file.
func (a *Application) Run() error {
	var appErr error
	a.Lock()

	// Make a screen if there is none yet.
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	screen := a.screen
	if err := screen.Init(); err != nil {
		a.Unlock()
		return err
	}
	if a.enableMouse {
		screen.EnableMouse()
	}
	screen.EnableFocus()

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	events := make(chan tcell.Event, eventsQueueSize)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	// Draw the screen for the first time.
	a.Unlock()
	a.draw()

	// Start event loop.
EventLoop:
	for {
		select {
		// If we received an event, handle it.
		case event, ok := <-events:
			if !ok || event == nil {
				break EventLoop
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				a.RLock()
				root := a.root
				a.RUnlock()

				// Pass key events to the root primitive.
				if root != nil && root.HasFocus() {
					cmd := root.InputHandler(event)
					a.drawAfter(a.executeCommand(cmd))
				}
			case *tcell.EventResize:
				a.Lock()
				// Resize events can imply terminal state changes even when size
				// reports unchanged, so force one redraw pass.
				a.forceRedraw = true
				a.Unlock()
				a.draw()
			case *tcell.EventMouse:
				handled, isMouseDownAction := a.fireMouseActions(event)
				a.drawAfter(handled)
				a.lastMouseButtons = event.Buttons()
				if isMouseDownAction {
					a.mouseDownX, a.mouseDownY = event.Position()
				}
			case *tcell.EventFocus:
				if !event.Focused {
					// The terminal took the pointer away; drags must not
					// survive that.
					a.cancelMode()
					a.drawAfter(true)
				}
			case *tcell.EventInterrupt:
				if cmd, ok := event.Data().(Command); ok {
					a.drawAfter(a.executeCommand(cmd))
				}
			case *tcell.EventError:
				appErr = event
				a.Stop()
			}

		// If we have updates, now is the time to execute them.
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}

	// Pointer capture does not outlive the loop.
	a.cancelMode()
	return appErr
}

// fireMouseActions analyzes the provided mouse event, derives mouse actions
// from it and then forwards them to the corresponding primitives.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled, isMouseDownAction bool) {
	// We want to relay follow-up events to the same target primitive.
	var targetPrimitive Primitive

	// Helper function to fire a mouse action.
	fire := func(action MouseAction) {
		switch action {
		case MouseLeftDown, MouseMiddleDown, MouseRightDown:
			isMouseDownAction = true
		}

		// Determine the target primitive.
		var primitive, capturingPrimitive Primitive
		if a.mouseCapturingPrimitive != nil {
			primitive = a.mouseCapturingPrimitive
			targetPrimitive = a.mouseCapturingPrimitive
		} else if targetPrimitive != nil {
			primitive = targetPrimitive
		} else {
			primitive = a.root
		}
		if primitive != nil {
			var cmd Command
			capturingPrimitive, cmd = primitive.MouseHandler(action, event)
			if a.executeCommand(cmd) {
				handled = true
			}
		}
		a.mouseCapturingPrimitive = capturingPrimitive
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != a.mouseDownX || y != a.mouseDownY
	buttonChanges := buttons ^ a.lastMouseButtons

	if x != a.lastMouseX || y != a.lastMouseY {
		fire(MouseMove)
		a.lastMouseX = x
		a.lastMouseY = y
	}

	for _, buttonEvent := range []struct {
		button                  tcell.ButtonMask
		down, up, click, dclick MouseAction
	}{
		{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
		{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
		{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
	} {
		if buttonChanges&buttonEvent.button != 0 {
			if buttons&buttonEvent.button != 0 {
				fire(buttonEvent.down)
			} else {
				fire(buttonEvent.up)
				if !clickMoved {
					if a.lastMouseClick.Add(DoubleClickInterval).Before(time.Now()) {
						fire(buttonEvent.click)
						a.lastMouseClick = time.Now()
					} else {
						fire(buttonEvent.dclick)
						a.lastMouseClick = time.Time{} // reset
					}
				}
			}
		}
	}

	for _, wheelEvent := range []struct {
		button tcell.ButtonMask
		action MouseAction
	}{
		{tcell.WheelUp, MouseScrollUp},
		{tcell.WheelDown, MouseScrollDown},
		{tcell.WheelLeft, MouseScrollLeft},
		{tcell.WheelRight, MouseScrollRight}} {
		if buttons&wheelEvent.button != 0 {
			fire(wheelEvent.action)
		}
	}

	return handled, isMouseDownAction
}

// cancelMode releases the pointer capture and cancels transient pointer state
// of the capturing and the focused primitive.
func (a *Application) cancelMode() {
	a.RLock()
	focus := a.focus
	a.RUnlock()

	capture := a.mouseCapturingPrimitive
	a.mouseCapturingPrimitive = nil
	a.lastMouseButtons = 0

	if c, ok := capture.(CancelModer); ok {
		c.CancelMode()
	}
	if c, ok := focus.(CancelModer); ok && focus != capture {
		c.CancelMode()
	}
	a.logger.Debug().Bool("captured", capture != nil).Msg("cancel mode")
}

// Every implements Scheduler. Ticks are executed as queued updates, followed
// by a redraw when the root became dirty.
func (a *Application) Every(interval time.Duration, tick func()) Timer {
	return startLoopTimer(interval, a.post, func() {
		tick()
		a.drawAfter(false)
	})
}

// post queues f on the event loop unless stop or the application finish
// first.
func (a *Application) post(f func(), stop <-chan struct{}) bool {
	select {
	case a.updates <- queuedUpdate{f: f}:
		return true
	case <-stop:
		return false
	case <-a.done:
		return false
	}
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	screen.Fini()
	a.screen = nil
}

// drawAfter redraws when an event was handled or left the root dirty.
func (a *Application) drawAfter(handled bool) {
	a.RLock()
	root := a.root
	a.RUnlock()
	if handled {
		a.draw()
		return
	}
	if d, ok := root.(dirtyTracker); ok && d.IsDirty() {
		a.draw()
	}
}

// draw actually does what Draw() promises to do.
func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.Unlock()

	// Maybe we're not ready yet or not anymore.
	if screen == nil || root == nil {
		return a
	}

	drawWidth, drawHeight := screen.Size()
	root.SetRect(0, 0, drawWidth, drawHeight)

	// tcell already keeps a logical back buffer and emits only visual deltas in
	// Show(). Avoid clearing on regular redraws so we don't rewrite the full
	// logical screen every frame; keep full clears for forced redraws.
	if forceRedraw {
		screen.Clear()
		if inv, ok := root.(Invalidator); ok {
			inv.Invalidate()
		}
	}
	root.Draw(screen)
	screen.Show()
	if d, ok := root.(dirtyTracker); ok {
		d.MarkClean()
	}

	a.Lock()
	a.forceRedraw = false
	a.Unlock()

	return a
}

// sync repaints the terminal from scratch, for when its contents got
// corrupted by other output.
func (a *Application) sync() {
	a.Lock()
	screen := a.screen
	a.forceRedraw = true
	a.Unlock()
	if screen != nil {
		screen.Sync()
	}
}

// SetRoot sets the root primitive for this application. This function must be
// called at least once or nothing will be displayed when the application
// starts.
//
// It also calls SetFocus() on the primitive and hands the application to it
// as Scheduler if the primitive runs timers.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	old := a.root
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	if old != nil && old != root {
		a.mouseCapturingPrimitive = nil
		if c, ok := old.(CancelModer); ok {
			c.CancelMode()
		}
	}
	if s, ok := root.(SchedulerSetter); ok {
		s.SetScheduler(a)
	}

	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. All key events will be directed
// down the hierarchy (starting at the root) until a primitive handles them,
// which per default goes towards the focused primitive.
//
// Blur() will be called on the previously focused primitive. Focus() will be
// called on the new primitive.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}

	return a
}

// GetFocus returns the primitive which has the current focus. If none has it,
// nil is returned.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate is used to synchronize access to primitives from non-main
// goroutines. The provided function will be executed as part of the event loop
// and thus will not race with event handling or drawing. The screen is not
// redrawn afterwards; return a RedrawCommand through QueueCommand for that.
//
// This function returns after f has executed.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	a.updates <- queuedUpdate{f: f, done: ch}
	<-ch
	return a
}

// QueueEvent sends an event to the Application event loop.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.RLock()
	screen := a.screen
	a.RUnlock()
	if screen == nil {
		return a
	}
	_ = screen.PostEvent(event)
	return a
}

// QueueCommand executes cmd on the event loop, as if a primitive had
// returned it.
func (a *Application) QueueCommand(cmd Command) *Application {
	return a.QueueEvent(tcell.NewEventInterrupt(cmd))
}

func (a *Application) executeCommand(cmd Command) bool {
	if cmd == nil {
		return false
	}

	switch c := cmd.(type) {
	case BatchCommand:
		handled := false
		for _, item := range c {
			if a.executeCommand(item) {
				handled = true
			}
		}
		return handled
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case CancelModeCommand:
		a.cancelMode()
		return true
	case SyncCommand:
		a.sync()
		return true
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		if changed {
			a.SetFocus(c.Target)
		}
		return changed
	case ConsumeEventCommand:
		return false
	}

	return false
}

var _ Scheduler = &Application{}
