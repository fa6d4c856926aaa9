package tview

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopTimerDropsQueuedTickAfterCancel(t *testing.T) {
	queue := make(chan func(), 1)
	post := func(f func(), stop <-chan struct{}) bool {
		select {
		case queue <- f:
			return true
		case <-stop:
			return false
		}
	}

	var ticks atomic.Int32
	timer := startLoopTimer(time.Millisecond, post, func() { ticks.Add(1) })

	first := <-queue
	first()
	require.EqualValues(t, 1, ticks.Load())

	queued := <-queue
	timer.Cancel()
	timer.Cancel()
	queued()
	assert.EqualValues(t, 1, ticks.Load())
}

func TestExecuteCommand(t *testing.T) {
	app := NewApplication()
	l := newTestList(10, 1, 10, 5)
	other := NewBox()
	app.SetRoot(l)

	assert.False(t, app.executeCommand(nil))
	assert.True(t, app.executeCommand(RedrawCommand{}))
	assert.False(t, app.executeCommand(ConsumeEventCommand{}))
	assert.False(t, app.executeCommand(SetFocusCommand{Target: l}), "focus unchanged")
	assert.True(t, app.executeCommand(BatchCommand{nil, SetFocusCommand{Target: other}}))
	assert.Same(t, other, app.GetFocus())
	assert.False(t, l.HasFocus())
}

func TestApplicationMouseCapture(t *testing.T) {
	app := NewApplication()
	l := newTestList(10, 1, 10, 5)
	app.SetRoot(l)

	handled, down := app.fireMouseActions(tcell.NewEventMouse(2, 1, tcell.ButtonPrimary, tcell.ModNone))
	assert.True(t, handled)
	assert.True(t, down)
	assert.Same(t, l, app.mouseCapturingPrimitive)
	assert.Equal(t, DragScroll, l.DragMode())
	app.lastMouseButtons = tcell.ButtonPrimary

	assert.True(t, app.executeCommand(CancelModeCommand{}))
	assert.Nil(t, app.mouseCapturingPrimitive)
	assert.Equal(t, DragNone, l.DragMode())
	assert.Zero(t, app.lastMouseButtons)
}

func TestSetRootCancelsOldRoot(t *testing.T) {
	app := NewApplication()
	l := newTestList(10, 1, 10, 5)
	app.SetRoot(l)
	assert.True(t, l.HasFocus())

	app.fireMouseActions(tcell.NewEventMouse(2, 1, tcell.ButtonPrimary, tcell.ModNone))
	require.Equal(t, DragScroll, l.DragMode())

	app.SetRoot(NewBox())
	assert.Equal(t, DragNone, l.DragMode())
	assert.False(t, l.HasFocus())
	assert.Nil(t, app.mouseCapturingPrimitive)
}

// runTestApplication runs app on a simulation screen until the test ends.
func runTestApplication(t *testing.T, app *Application) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	app.SetScreen(screen)

	errs := make(chan error, 1)
	go func() { errs <- app.Run() }()
	// Returns once the event loop runs.
	app.QueueUpdate(func() {})

	t.Cleanup(func() {
		app.Stop()
		select {
		case err := <-errs:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("event loop did not stop")
		}
	})
	return screen
}

// onLoop evaluates f on the event loop.
func onLoop[T any](app *Application, f func() T) T {
	var v T
	app.QueueUpdate(func() { v = f() })
	return v
}

func TestApplicationFocusLossCancelsGesture(t *testing.T) {
	app := NewApplication().EnableMouse(true)
	l := newTestList(10, 1, 10, 5)
	var activated atomic.Int32
	l.SetActivateFunc(func(int) { activated.Add(1) })
	app.SetRoot(l)
	screen := runTestApplication(t, app)

	screen.InjectMouse(2, 0, tcell.ButtonPrimary, tcell.ModNone)
	require.Eventually(t, func() bool {
		return onLoop(app, l.DragMode) == DragPendingCursor
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, screen.PostEvent(tcell.NewEventFocus(false)))
	require.Eventually(t, func() bool {
		return onLoop(app, l.DragMode) == DragNone
	}, time.Second, 5*time.Millisecond)

	screen.InjectMouse(2, 0, tcell.ButtonNone, tcell.ModNone)
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return onLoop(app, l.GetCursorIndex) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, activated.Load())
}

func TestApplicationQueueCommand(t *testing.T) {
	app := NewApplication()
	l := newTestList(10, 1, 10, 5)
	app.SetRoot(l)
	other := NewBox()
	runTestApplication(t, app)

	app.QueueCommand(SetFocusCommand{Target: other})
	require.Eventually(t, func() bool {
		return onLoop(app, app.GetFocus) == Primitive(other)
	}, time.Second, 5*time.Millisecond)
	assert.False(t, onLoop(app, l.HasFocus))
}

func TestApplicationEvery(t *testing.T) {
	app := NewApplication()
	app.SetRoot(NewBox())
	runTestApplication(t, app)

	var ticks int
	timer := app.Every(time.Millisecond, func() { ticks++ })
	require.Eventually(t, func() bool {
		return onLoop(app, func() int { return ticks }) >= 3
	}, time.Second, 5*time.Millisecond)

	stopped := onLoop(app, func() int {
		timer.Cancel()
		return ticks
	})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, onLoop(app, func() int { return ticks }))
}

// syncRoot asks for a screen sync on ctrl+l and counts full repaints.
type syncRoot struct {
	*Box
	invalidated atomic.Int32
}

func (r *syncRoot) InputHandler(event *tcell.EventKey) Command {
	if event.Key() == tcell.KeyCtrlL {
		return SyncCommand{}
	}
	return nil
}

func (r *syncRoot) Invalidate() {
	r.invalidated.Add(1)
}

func TestApplicationSyncInvalidatesRoot(t *testing.T) {
	app := NewApplication()
	root := &syncRoot{Box: NewBox()}
	app.SetRoot(root)
	screen := runTestApplication(t, app)

	// The first frame after SetScreen is a full one.
	base := root.invalidated.Load()
	require.Positive(t, base)

	screen.InjectKey(tcell.KeyCtrlL, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return root.invalidated.Load() > base
	}, time.Second, 5*time.Millisecond)
	assert.False(t, onLoop(app, func() bool { return app.forceRedraw }))
}
