package tview

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// DragMode is the pointer interaction a List is currently in.
type DragMode uint8

const (
	DragNone DragMode = iota
	// DragPendingCursor is a press on the cursor row that becomes an
	// activation on release or a scroll drag once the pointer moves.
	DragPendingCursor
	// DragScroll drags the content with the pointer.
	DragScroll
	// DragScrollBar drags the scrollbar thumb.
	DragScrollBar
)

func (m DragMode) String() string {
	switch m {
	case DragNone:
		return "none"
	case DragPendingCursor:
		return "pending-cursor"
	case DragScroll:
		return "scroll"
	case DragScrollBar:
		return "scrollbar"
	default:
		return "unknown"
	}
}

// dragSession lives from a pointer press to its release.
type dragSession struct {
	mode DragMode

	anchorPixelOrigin int
	anchorPointerY    int
}

// scrollTo is the content pixel origin that keeps the grabbed line under
// the pointer at screen row y.
func (d dragSession) scrollTo(y int) int {
	return d.anchorPixelOrigin + d.anchorPointerY - y
}

func (l *List) setDragMode(mode DragMode) {
	if l.drag.mode == mode {
		return
	}
	l.logger.Debug().
		Stringer("from", l.drag.mode).
		Stringer("to", mode).
		Msg("drag mode")
	l.drag.mode = mode
}

// dragThresholdLines is the pointer travel that turns a pending tap into a
// scroll drag.
func (l *List) dragThresholdLines() int {
	if l.dragThreshold > 0 {
		return l.dragThreshold
	}
	return l.viewport.ItemHeight() / 5
}

// pointerDown starts a gesture at screen cell (x, y). The returned primitive
// is the pointer capture.
func (l *List) pointerDown(x, y int, at time.Time) (Primitive, Command) {
	hadFocus := l.HasFocus()
	l.cancelGestures()
	if !l.InRect(x, y) {
		// Only reachable through a stale capture; the press just ends it.
		return nil, RedrawCommand{}
	}
	var cmd Command = SetFocusCommand{Target: l}

	if l.scrollBarShown && l.scrollBarRect.Contains(x, y) {
		return l.scrollBarDown(y, cmd)
	}
	if !l.rows.Contains(x, y) {
		return nil, cmd
	}

	index := l.viewport.RowIndexAt(y - l.rows.Y)
	if index < 0 {
		return nil, cmd
	}

	if hadFocus && index == l.cursor && l.activate != nil {
		l.setDragMode(DragPendingCursor)
		l.invalidateRow(l.cursor)
	} else {
		l.SetCursorIndex(index)
		l.setDragMode(DragScroll)
	}
	l.drag.anchorPixelOrigin = l.viewport.PixelOrigin()
	l.drag.anchorPointerY = y
	l.kinetic.MouseDown(l.drag.anchorPixelOrigin, at)
	return l, AppendCommand(cmd, RedrawCommand{})
}

func (l *List) scrollBarDown(y int, cmd Command) (Primitive, Command) {
	var changed bool
	region := l.scrollBar.HitTest(y)
	switch region {
	case ScrollBarRegionThumb:
		l.scrollBar.DragBegin(y)
		l.setDragMode(DragScrollBar)
		return l, AppendCommand(cmd, RedrawCommand{})
	case ScrollBarRegionUpArrow:
		changed = l.moveOrigin(-1)
	case ScrollBarRegionDownArrow:
		changed = l.moveOrigin(1)
	case ScrollBarRegionAboveThumb, ScrollBarRegionBelowThumb:
		if l.scrollBar.TrackClickBehavior() == TrackClickBehaviorJumpToClick {
			changed, _ = l.setPixelOrigin(l.scrollBar.JumpTo(l.viewport.ContentHeight(), l.viewport.ViewHeight(), y))
			break
		}
		page := max(l.viewport.ItemsVisible(), 1)
		if region == ScrollBarRegionAboveThumb {
			page = -page
		}
		changed = l.moveOrigin(page)
	}
	if changed {
		cmd = AppendCommand(cmd, RedrawCommand{})
	}
	return nil, cmd
}

func (l *List) pointerMove(y int, at time.Time) (Primitive, Command) {
	switch l.drag.mode {
	case DragScrollBar:
		changed, _ := l.setPixelOrigin(l.scrollBar.DragMove(l.viewport.ContentHeight(), l.viewport.ViewHeight(), y))
		return l, redrawIf(changed)
	case DragPendingCursor:
		if abs(y-l.drag.anchorPointerY) <= l.dragThresholdLines() {
			return l, nil
		}
		l.setDragMode(DragScroll)
		l.invalidateRow(l.cursor)
		l.dragScrollTo(y, at)
		return l, RedrawCommand{}
	case DragScroll:
		return l, redrawIf(l.dragScrollTo(y, at))
	}
	return nil, nil
}

func (l *List) dragScrollTo(y int, at time.Time) bool {
	changed, _ := l.setPixelOrigin(l.drag.scrollTo(y))
	l.kinetic.MouseMove(l.viewport.PixelOrigin(), at)
	return changed
}

// pointerUp ends the gesture and releases the capture.
func (l *List) pointerUp(x, y int, at time.Time) (Primitive, Command) {
	switch l.drag.mode {
	case DragScrollBar:
		l.scrollBar.DragEnd()
		l.setDragMode(DragNone)
		return nil, RedrawCommand{}
	case DragPendingCursor:
		l.setDragMode(DragNone)
		l.invalidateRow(l.cursor)
		if l.rows.Contains(x, y) && l.activate != nil {
			l.logger.Debug().Int("index", l.cursor).Msg("activate")
			l.activate(l.cursor)
		}
		return nil, RedrawCommand{}
	case DragScroll:
		l.setDragMode(DragNone)
		l.invalidateRow(l.cursor)
		l.kinetic.MouseUp(l.viewport.PixelOrigin(), at)
		l.startKinetic()
		return nil, RedrawCommand{}
	}
	return nil, nil
}

func (l *List) wheel(delta int) Command {
	l.cancelGestures()
	return redrawIf(l.moveOrigin(delta * l.wheelStep))
}

// cancelGestures drops the drag session, the scrollbar drag and any
// animation. It is idempotent.
func (l *List) cancelGestures() {
	switch l.drag.mode {
	case DragScrollBar:
		l.scrollBar.DragEnd()
	case DragPendingCursor, DragScroll:
		l.invalidateRow(l.cursor)
	}
	l.setDragMode(DragNone)
	l.drag = dragSession{}
	l.stopKinetic()
}

// MouseHandler implements the pointer side of the gesture state machine.
// While a gesture is active the list keeps the pointer capture, so moves and
// the release are delivered even outside its rectangle.
func (l *List) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	l.layout()
	if l.drag.mode == DragNone && !l.InRect(x, y) {
		return nil, nil
	}

	at := l.when(event)
	switch action {
	case MouseLeftDown:
		return l.pointerDown(x, y, at)
	case MouseMove:
		return l.pointerMove(y, at)
	case MouseLeftUp:
		return l.pointerUp(x, y, at)
	case MouseScrollUp:
		return nil, l.wheel(-1)
	case MouseScrollDown:
		return nil, l.wheel(1)
	}
	if l.drag.mode != DragNone {
		return l, nil
	}
	return nil, nil
}

func redrawIf(changed bool) Command {
	if changed {
		return RedrawCommand{}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
