package tview

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mouse(p Primitive, action MouseAction, x, y int) (Primitive, Command) {
	return p.MouseHandler(action, tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

// newGestureList returns a focused list of 100 rows of 5 lines in a 10x20
// box, with the cursor on row 0 and an activation counter.
func newGestureList(t *testing.T) (*List, *[]int) {
	t.Helper()
	l := newTestList(100, 5, 10, 20)
	require.Equal(t, 4, l.ItemsVisible())
	focus(l)
	activated := &[]int{}
	l.SetActivateFunc(func(i int) { *activated = append(*activated, i) })
	return l, activated
}

func hasCommand[T any](cmd Command) bool {
	switch c := cmd.(type) {
	case T:
		return true
	case BatchCommand:
		for _, sub := range c {
			if hasCommand[T](sub) {
				return true
			}
		}
	}
	return false
}

func TestTapOnCursorRowActivatesOnce(t *testing.T) {
	l, activated := newGestureList(t)

	capture, cmd := mouse(l, MouseLeftDown, 2, 1)
	assert.Same(t, l, capture)
	assert.True(t, hasCommand[SetFocusCommand](cmd))
	assert.Equal(t, DragPendingCursor, l.DragMode())
	assert.Empty(t, *activated)

	capture, _ = mouse(l, MouseLeftUp, 2, 1)
	assert.Nil(t, capture)
	assert.Equal(t, []int{0}, *activated)
	assert.Equal(t, DragNone, l.DragMode())
	assert.Equal(t, 0, l.Viewport().PixelOrigin())
}

func TestTapToleratesSmallMovement(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 1)
	capture, _ := mouse(l, MouseMove, 2, 2)
	assert.Same(t, l, capture)
	assert.Equal(t, DragPendingCursor, l.DragMode())
	mouse(l, MouseLeftUp, 2, 2)

	assert.Equal(t, []int{0}, *activated)
	assert.Equal(t, 0, l.Viewport().PixelOrigin())
}

func TestDragBeyondThresholdNeverActivates(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 3)
	mouse(l, MouseMove, 2, 1)
	assert.Equal(t, DragScroll, l.DragMode())
	assert.Equal(t, 2, l.Viewport().PixelOrigin())

	mouse(l, MouseMove, 2, 0)
	assert.Equal(t, 3, l.Viewport().PixelOrigin())

	capture, _ := mouse(l, MouseLeftUp, 2, 0)
	assert.Nil(t, capture)
	assert.Empty(t, *activated)
	assert.Equal(t, 0, l.GetCursorIndex())
}

func TestDragThresholdConfigurable(t *testing.T) {
	l, activated := newGestureList(t)
	l.SetDragThreshold(3)

	mouse(l, MouseLeftDown, 2, 1)
	mouse(l, MouseMove, 2, 4)
	assert.Equal(t, DragPendingCursor, l.DragMode())
	mouse(l, MouseMove, 2, 5)
	assert.Equal(t, DragScroll, l.DragMode())
	mouse(l, MouseLeftUp, 2, 5)

	assert.Empty(t, *activated)
}

func TestPressOnOtherRowSelectsIt(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 11)
	assert.Equal(t, 2, l.GetCursorIndex())
	assert.Equal(t, DragScroll, l.DragMode())
	mouse(l, MouseLeftUp, 2, 11)

	assert.Empty(t, *activated)
}

func TestPressWithoutFocusDoesNotActivate(t *testing.T) {
	l, activated := newGestureList(t)
	l.Blur()

	_, cmd := mouse(l, MouseLeftDown, 2, 1)
	assert.True(t, hasCommand[SetFocusCommand](cmd))
	assert.Equal(t, DragScroll, l.DragMode())
	mouse(l, MouseLeftUp, 2, 1)

	assert.Empty(t, *activated)
}

func TestReleaseOutsideRowsDoesNotActivate(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 1)
	capture, _ := mouse(l, MouseLeftUp, 40, 1)
	assert.Nil(t, capture)

	assert.Empty(t, *activated)
	assert.Equal(t, DragNone, l.DragMode())
}

func TestPressOutsideIsIgnored(t *testing.T) {
	l, _ := newGestureList(t)

	capture, cmd := mouse(l, MouseLeftDown, 30, 30)
	assert.Nil(t, capture)
	assert.Nil(t, cmd)
}

func TestCancelModeDropsPendingTap(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 1)
	l.CancelMode()
	assert.Equal(t, DragNone, l.DragMode())

	mouse(l, MouseLeftUp, 2, 1)
	assert.Empty(t, *activated)

	l.CancelMode()
	assert.Equal(t, DragNone, l.DragMode())
}

func TestBlurCancelsGesture(t *testing.T) {
	l, activated := newGestureList(t)

	mouse(l, MouseLeftDown, 2, 1)
	l.Blur()
	mouse(l, MouseLeftUp, 2, 1)

	assert.Empty(t, *activated)
}

// flingList drags the list of newGestureList by 10 lines in 20ms and
// releases it.
func flingList(t *testing.T, l *List, clock *fakeClock) {
	t.Helper()
	start := l.Viewport().PixelOrigin()
	mouse(l, MouseLeftDown, 2, 15)
	require.Equal(t, DragScroll, l.DragMode())
	clock.Advance(10 * time.Millisecond)
	mouse(l, MouseMove, 2, 10)
	clock.Advance(10 * time.Millisecond)
	mouse(l, MouseMove, 2, 5)
	require.Equal(t, start+10, l.Viewport().PixelOrigin())
	mouse(l, MouseLeftUp, 2, 5)
}

func TestKineticScrollAfterRelease(t *testing.T) {
	l, _ := newGestureList(t)
	clock := newFakeClock()
	l.when = clock.eventTime
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)

	flingList(t, l, clock)
	require.True(t, l.Animating())
	require.Equal(t, 1, scheduler.Live())
	assert.Equal(t, l.Kinetic().Interval(), scheduler.timers[0].interval)

	bound := l.Kinetic().MaxTicks(500)
	last := l.Viewport().PixelOrigin()
	for ticks := 0; l.Animating(); ticks++ {
		require.LessOrEqual(t, ticks, bound)
		scheduler.Fire()
		vp := l.Viewport()
		assert.GreaterOrEqual(t, vp.PixelOrigin(), last)
		assert.LessOrEqual(t, vp.PixelOrigin(), vp.MaxPixelOrigin())
		last = vp.PixelOrigin()
	}
	assert.Greater(t, last, 10)
	assert.Zero(t, scheduler.Live())
}

func TestKineticStopsAtEnd(t *testing.T) {
	l := newTestList(10, 5, 10, 20)
	clock := newFakeClock()
	l.when = clock.eventTime
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)
	require.Equal(t, 30, l.Viewport().MaxPixelOrigin())

	mouse(l, MouseLeftDown, 2, 19)
	clock.Advance(10 * time.Millisecond)
	mouse(l, MouseMove, 2, 9)
	mouse(l, MouseLeftUp, 2, 9)
	require.True(t, l.Animating())

	scheduler.Fire()
	assert.Equal(t, 30, l.Viewport().PixelOrigin())
	assert.False(t, l.Animating())
	assert.True(t, l.Kinetic().IsSteady())
}

func TestKineticNeedsScheduler(t *testing.T) {
	l, _ := newGestureList(t)
	clock := newFakeClock()
	l.when = clock.eventTime

	flingList(t, l, clock)
	assert.False(t, l.Animating())
	assert.True(t, l.Kinetic().IsSteady())
	assert.Equal(t, 10, l.Viewport().PixelOrigin())
}

func TestInputStopsKinetic(t *testing.T) {
	l, _ := newGestureList(t)
	clock := newFakeClock()
	l.when = clock.eventTime
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)

	flingList(t, l, clock)
	require.True(t, l.Animating())

	l.InputHandler(keyEvent(tcell.KeyF1))
	assert.False(t, l.Animating())
	assert.Zero(t, scheduler.Live())
}

func TestCancelModeAndDestroyStopKinetic(t *testing.T) {
	l, _ := newGestureList(t)
	clock := newFakeClock()
	l.when = clock.eventTime
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)

	flingList(t, l, clock)
	require.True(t, l.Animating())
	origin := l.Viewport().PixelOrigin()
	l.CancelMode()
	assert.False(t, l.Animating())
	assert.Equal(t, origin, l.Viewport().PixelOrigin())

	flingList(t, l, clock)
	require.True(t, l.Animating())
	l.Destroy()
	assert.False(t, l.Animating())
	assert.Zero(t, scheduler.Live())
}

func TestNewPressStopsKinetic(t *testing.T) {
	l, _ := newGestureList(t)
	clock := newFakeClock()
	l.when = clock.eventTime
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)

	flingList(t, l, clock)
	require.True(t, l.Animating())

	mouse(l, MouseLeftDown, 2, 2)
	assert.False(t, l.Animating())
}

func TestDragSamplesUseEventTimes(t *testing.T) {
	l, _ := newGestureList(t)
	scheduler := &manualScheduler{}
	l.SetScheduler(scheduler)

	start := newFakeClock().Now()
	stamps := map[tcell.Event]time.Time{}
	event := func(y int, after time.Duration) *tcell.EventMouse {
		ev := tcell.NewEventMouse(2, y, tcell.ButtonNone, tcell.ModNone)
		stamps[ev] = start.Add(after)
		return ev
	}
	// Read 20ms apart, handled in one burst.
	down, move, up := event(15, 0), event(5, 20*time.Millisecond), event(5, 20*time.Millisecond)
	l.when = func(ev tcell.Event) time.Time { return stamps[ev] }

	l.MouseHandler(MouseLeftDown, down)
	l.MouseHandler(MouseMove, move)
	l.MouseHandler(MouseLeftUp, up)

	assert.InDelta(t, 500, l.Kinetic().Velocity(), 1e-6)
	assert.True(t, l.Animating())

	ev := tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)
	assert.Equal(t, ev.When(), NewList().when(ev))
}

func TestStalePressOutsideDoesNotTakeFocus(t *testing.T) {
	l := newTestList(100, 5, 10, 20)

	capture, cmd := mouse(l, MouseLeftDown, 2, 15)
	require.Same(t, l, capture)
	require.True(t, hasCommand[SetFocusCommand](cmd))
	require.Equal(t, DragScroll, l.DragMode())

	// The release got lost; the next press lands outside the list.
	capture, cmd = mouse(l, MouseLeftDown, 30, 5)
	assert.Nil(t, capture)
	assert.False(t, hasCommand[SetFocusCommand](cmd))
	assert.Equal(t, DragNone, l.DragMode())
	assert.False(t, l.HasFocus())
}

func TestWheelScrollsByRows(t *testing.T) {
	l, _ := newGestureList(t)

	_, cmd := mouse(l, MouseScrollUp, 2, 2)
	assert.Nil(t, cmd, "already at the top")

	_, cmd = mouse(l, MouseScrollDown, 2, 2)
	assert.NotNil(t, cmd)
	assert.Equal(t, 5, l.Viewport().PixelOrigin())

	l.SetWheelStep(3)
	mouse(l, MouseScrollDown, 2, 2)
	assert.Equal(t, 20, l.Viewport().PixelOrigin())
	assert.Equal(t, 0, l.GetCursorIndex(), "the wheel does not move the cursor")
}

// newScrollBarList returns 100 one-line rows in a 10x10 box; the scrollbar
// takes column 9 with arrows on rows 0 and 9.
func newScrollBarList(t *testing.T) *List {
	t.Helper()
	l := newTestList(100, 1, 10, 10)
	require.Equal(t, ScrollBarRegionThumb, l.ScrollBar().HitTest(1))
	return l
}

func TestScrollBarThumbDrag(t *testing.T) {
	l := newScrollBarList(t)

	capture, _ := mouse(l, MouseLeftDown, 9, 1)
	assert.Same(t, l, capture)
	assert.Equal(t, DragScrollBar, l.DragMode())

	capture, _ = mouse(l, MouseMove, 30, 8)
	assert.Same(t, l, capture, "capture is kept outside the list")
	assert.Equal(t, 90, l.Viewport().PixelOrigin())

	mouse(l, MouseMove, 9, 1)
	assert.Equal(t, 0, l.Viewport().PixelOrigin())

	capture, _ = mouse(l, MouseLeftUp, 9, 1)
	assert.Nil(t, capture)
	assert.Equal(t, DragNone, l.DragMode())
	assert.False(t, l.ScrollBar().IsDragging())
	assert.Equal(t, 0, l.GetCursorIndex(), "the scrollbar does not move the cursor")
}

func TestScrollBarArrowsAndTrack(t *testing.T) {
	l := newScrollBarList(t)

	capture, _ := mouse(l, MouseLeftDown, 9, 9)
	assert.Nil(t, capture)
	assert.Equal(t, 1, l.Viewport().PixelOrigin())
	mouse(l, MouseLeftUp, 9, 9)

	mouse(l, MouseLeftDown, 9, 0)
	assert.Equal(t, 0, l.Viewport().PixelOrigin())

	mouse(l, MouseLeftDown, 9, 6)
	assert.Equal(t, 10, l.Viewport().PixelOrigin())
}

func TestScrollBarTrackJump(t *testing.T) {
	l := newScrollBarList(t)
	l.ScrollBar().SetTrackClickBehavior(TrackClickBehaviorJumpToClick)

	mouse(l, MouseLeftDown, 9, 8)
	vp := l.Viewport()
	assert.Greater(t, vp.PixelOrigin(), 80)
	assert.LessOrEqual(t, vp.PixelOrigin(), vp.MaxPixelOrigin())
}

func TestKeyCancelsScrollBarDrag(t *testing.T) {
	l := newScrollBarList(t)

	mouse(l, MouseLeftDown, 9, 1)
	require.Equal(t, DragScrollBar, l.DragMode())

	l.InputHandler(keyEvent(tcell.KeyDown))
	assert.Equal(t, DragNone, l.DragMode())
	assert.False(t, l.ScrollBar().IsDragging())
	assert.Equal(t, 1, l.GetCursorIndex())

	_, cmd := mouse(l, MouseMove, 9, 5)
	assert.Nil(t, cmd)
}

func TestDragModeString(t *testing.T) {
	assert.Equal(t, "none", DragNone.String())
	assert.Equal(t, "pending-cursor", DragPendingCursor.String())
	assert.Equal(t, "scroll", DragScroll.String())
	assert.Equal(t, "scrollbar", DragScrollBar.String())
	assert.Equal(t, "unknown", DragMode(42).String())
}
