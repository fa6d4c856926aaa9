package tview

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/xqrs/tview/keybind"
)

// RowState is the visual state a row is painted in.
type RowState struct {
	// Selected is set for the cursor row.
	Selected bool
	// Focused is set when the list has keyboard focus.
	Focused bool
	// Pressed is set while the cursor row is held down for activation.
	Pressed bool
}

// RowPainter draws the content of row index into rect. The background of the
// row is already filled in the style of state, and screen drops everything
// outside the visible part of the row.
type RowPainter func(screen tcell.Screen, index int, rect Rect, state RowState)

// List is a virtual list of fixed-height rows. It owns only the geometry: the
// number of rows, the cursor and the scroll position. Row content is drawn on
// demand by a RowPainter, so the length may be arbitrarily large.
//
// Content can be dragged with the pointer and keeps moving with decaying
// speed after release when the list has a Scheduler (see SetScheduler).
type List struct {
	*Box

	viewport Viewport
	cursor   int

	painter  RowPainter
	activate func(index int)
	changed  func(index int)

	styles     ListStyles
	keys       ListKeyMap
	hasPointer bool
	wheelStep  int
	// Zero selects a fifth of the row height.
	dragThreshold int

	scrollBar      *ScrollBar
	scrollBarShown bool
	scrollBarRect  Rect
	// Row area of the inner rectangle, left of the scrollbar.
	rows Rect

	drag dragSession

	kinetic   *Kinetic
	scheduler Scheduler
	timer     Timer
	// when stamps drag samples for the kinetic engine.
	when      func(event tcell.Event) time.Time

	// Rows invalidated since the last draw; damageAll covers every row.
	damage    map[int]struct{}
	damageAll bool

	logger zerolog.Logger
}

// NewList returns an empty list with one-line rows.
func NewList() *List {
	l := &List{
		Box:        NewBox(),
		viewport:   NewViewport(1),
		styles:     DefaultListStyles(),
		keys:       DefaultListKeyMap(),
		hasPointer: true,
		wheelStep:  1,
		scrollBar:  NewScrollBar().SetArrows(ScrollBarArrowsBoth),
		kinetic:    NewKinetic(DefaultKineticConfig()),
		when:       tcell.Event.When,
		damage:     make(map[int]struct{}),
		damageAll:  true,
		logger:     zerolog.Nop(),
	}
	l.scrollBar.SetDirtyParent(l.Box)
	return l
}

// SetRowPainter sets the function that draws row content. Without a painter
// only the scrollbar is drawn.
func (l *List) SetRowPainter(painter RowPainter) *List {
	l.painter = painter
	l.invalidateAll()
	return l
}

// SetActivateFunc sets the handler called with the cursor index on Enter or
// on a tap on the cursor row. Without a handler those inputs are not handled.
func (l *List) SetActivateFunc(handler func(index int)) *List {
	l.activate = handler
	return l
}

// SetChangedFunc sets the handler called with the new index whenever the
// cursor moves.
func (l *List) SetChangedFunc(handler func(index int)) *List {
	l.changed = handler
	return l
}

// SetStyles sets the row styles.
func (l *List) SetStyles(styles ListStyles) *List {
	if l.styles != styles {
		l.styles = styles
		l.invalidateAll()
	}
	return l
}

// SetKeyMap replaces the navigation keys.
func (l *List) SetKeyMap(keys ListKeyMap) *List {
	l.keys = keys
	return l
}

// KeyMap returns the navigation keys.
func (l *List) KeyMap() ListKeyMap {
	return l.keys
}

// SetHasPointer tells the list whether the terminal has a pointing device.
// With a pointer Up/Down move by one row and Left/Right by a page; without
// one the roles are swapped.
func (l *List) SetHasPointer(hasPointer bool) *List {
	l.hasPointer = hasPointer
	return l
}

// SetWheelStep sets the number of rows scrolled per wheel notch.
func (l *List) SetWheelStep(rows int) *List {
	l.wheelStep = max(rows, 1)
	return l
}

// SetDragThreshold sets the pointer travel in lines beyond which a press on
// the cursor row scrolls instead of activating. Zero restores the default of
// a fifth of the row height.
func (l *List) SetDragThreshold(lines int) *List {
	l.dragThreshold = max(lines, 0)
	return l
}

// SetScrollBarArrows sets which arrows the scrollbar shows.
func (l *List) SetScrollBarArrows(arrows ScrollBarArrows) *List {
	l.scrollBar.SetArrows(arrows)
	return l
}

// ScrollBar returns the list's scrollbar for styling.
func (l *List) ScrollBar() *ScrollBar {
	return l.scrollBar
}

// SetKinetic replaces the inertial scrolling parameters. A running animation
// is stopped.
func (l *List) SetKinetic(config KineticConfig) *List {
	l.stopKinetic()
	l.kinetic = NewKinetic(config)
	return l
}

// Kinetic returns the inertial scrolling engine.
func (l *List) Kinetic() *Kinetic {
	return l.kinetic
}

// SetScheduler implements SchedulerSetter. With a nil scheduler the list
// stops when the pointer is released.
func (l *List) SetScheduler(scheduler Scheduler) {
	l.stopKinetic()
	l.scheduler = scheduler
}

// SetLogger sets the logger for gesture and animation events.
func (l *List) SetLogger(logger zerolog.Logger) *List {
	l.logger = logger
	return l
}

// DragMode returns the pointer interaction in progress.
func (l *List) DragMode() DragMode {
	return l.drag.mode
}

// Viewport returns a copy of the scroll model.
func (l *List) Viewport() Viewport {
	return l.viewport
}

// GetLength returns the number of rows.
func (l *List) GetLength() int {
	return l.viewport.Length()
}

// SetLength sets the number of rows. The scroll position and the cursor are
// pulled back inside the new bounds; a cursor that moves that way is
// reported to the changed handler.
func (l *List) SetLength(n int) *List {
	n = max(n, 0)
	if !l.viewport.SetLength(n) {
		return l
	}
	l.layout()
	l.invalidateAll()

	if n == 0 {
		l.cancelGestures()
		l.cursor = 0
		return l
	}
	if l.cursor >= n {
		l.setCursor(n - 1)
	}
	return l
}

// GetCursorIndex returns the index of the cursor row.
func (l *List) GetCursorIndex() int {
	return l.cursor
}

// SetCursorIndex moves the cursor to row i and scrolls it into view. It
// returns false and changes nothing if i is not a row.
func (l *List) SetCursorIndex(i int) bool {
	if i < 0 || i >= l.viewport.Length() {
		return false
	}
	if i != l.cursor {
		l.setCursor(i)
	}
	return true
}

func (l *List) setCursor(i int) {
	l.EnsureVisible(i)
	l.invalidateRow(l.cursor)
	l.cursor = i
	l.invalidateRow(i)
	if l.changed != nil {
		l.changed(i)
	}
}

// MoveCursor moves the cursor by delta rows, stopping at the first and last
// row.
func (l *List) MoveCursor(delta int) bool {
	n := l.viewport.Length()
	if n == 0 {
		return false
	}
	return l.SetCursorIndex(min(max(l.cursor+delta, 0), n-1))
}

// EnsureVisible scrolls the least amount that shows row i completely.
func (l *List) EnsureVisible(i int) bool {
	if !l.viewport.EnsureVisible(i) {
		return false
	}
	l.scrolled()
	return true
}

// SetItemHeight sets the number of lines per row.
func (l *List) SetItemHeight(h int) *List {
	if l.viewport.SetItemHeight(h) {
		l.stopKinetic()
		l.layout()
		l.scrolled()
	}
	return l
}

// ItemsVisible returns the number of rows that fit completely.
func (l *List) ItemsVisible() int {
	l.layout()
	return l.viewport.ItemsVisible()
}

func (l *List) setPixelOrigin(p int) (changed, clamped bool) {
	changed, clamped = l.viewport.SetPixelOrigin(p)
	if changed {
		l.scrolled()
	}
	return changed, clamped
}

func (l *List) moveOrigin(delta int) bool {
	if !l.viewport.MoveOrigin(delta) {
		return false
	}
	l.scrolled()
	return true
}

func (l *List) scrolled() {
	l.scrollBar.SetOffset(l.viewport.PixelOrigin())
	l.invalidateAll()
}

func (l *List) startKinetic() {
	if l.kinetic.IsSteady() {
		return
	}
	if l.scheduler == nil {
		l.kinetic.Stop()
		return
	}
	l.logger.Debug().Float64("velocity", l.kinetic.Velocity()).Msg("kinetic start")
	l.timer = l.scheduler.Every(l.kinetic.Interval(), l.kineticTick)
}

func (l *List) kineticTick() {
	position, steady := l.kinetic.Tick()
	_, clamped := l.setPixelOrigin(position)
	if steady || clamped {
		l.stopKinetic()
	}
}

func (l *List) stopKinetic() {
	l.kinetic.Stop()
	if l.timer == nil {
		return
	}
	l.timer.Cancel()
	l.timer = nil
	l.logger.Debug().Int("pixelOrigin", l.viewport.PixelOrigin()).Msg("kinetic stop")
}

// Animating reports whether inertial scrolling is running.
func (l *List) Animating() bool {
	return l.timer != nil
}

// CancelMode ends any pointer gesture and stops the animation. The scroll
// position and the cursor keep their current values.
func (l *List) CancelMode() {
	l.cancelGestures()
}

// Destroy releases the animation timer and detaches the scheduler.
func (l *List) Destroy() {
	l.cancelGestures()
	l.scheduler = nil
}

// SetRect sets the list's position and re-validates the scroll position
// against the new height.
func (l *List) SetRect(x, y, width, height int) {
	l.Box.SetRect(x, y, width, height)
	l.layout()
}

// layout splits the inner rectangle into row area and scrollbar.
func (l *List) layout() {
	x, y, width, height := l.GetInnerRect()
	if l.viewport.Resize(height) {
		l.stopKinetic()
	}

	shown := l.viewport.ScrollbarNeeded() && width > 1
	rows := Rect{X: x, Y: y, Width: width, Height: height}
	if shown {
		rows.Width--
		l.scrollBarRect = Rect{X: x + rows.Width, Y: y, Width: 1, Height: height}
		l.scrollBar.SetRect(l.scrollBarRect.X, y, 1, height)
	}
	if rows != l.rows || shown != l.scrollBarShown {
		l.rows, l.scrollBarShown = rows, shown
		l.invalidateAll()
	}
	l.scrollBar.SetLengths(l.viewport.ContentHeight(), height).SetOffset(l.viewport.PixelOrigin())
}

func (l *List) invalidateRow(i int) {
	if i < 0 || i >= l.viewport.Length() {
		return
	}
	if !l.damageAll {
		l.damage[i] = struct{}{}
	}
	l.MarkDirty()
}

func (l *List) invalidateAll() {
	l.damageAll = true
	clear(l.damage)
	l.MarkDirty()
}

// Invalidate makes the next DrawDamage repaint every row, for when the row
// content changed behind the list's back or the screen was cleared.
func (l *List) Invalidate() {
	l.invalidateAll()
}

// MarkClean marks the list and its scrollbar as drawn.
func (l *List) MarkClean() {
	l.Box.MarkClean()
	l.scrollBar.MarkClean()
}

// Damaged reports whether row i has to be repainted.
func (l *List) Damaged(i int) bool {
	if l.damageAll {
		return i >= 0 && i < l.viewport.Length()
	}
	_, ok := l.damage[i]
	return ok
}

// Focus marks the cursor row for repainting in the focused style.
func (l *List) Focus(delegate func(p Primitive)) {
	l.Box.Focus(delegate)
	l.invalidateRow(l.cursor)
}

// Blur cancels any pointer gesture since focus loss ends pointer capture.
func (l *List) Blur() {
	l.CancelMode()
	l.Box.Blur()
	l.invalidateRow(l.cursor)
}

func (l *List) rowState(i int) RowState {
	selected := i == l.cursor
	return RowState{
		Selected: selected,
		Focused:  l.HasFocus(),
		Pressed:  selected && l.drag.mode == DragPendingCursor,
	}
}

// Draw draws the whole list.
func (l *List) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	l.layout()
	l.drawRows(screen, 0, l.rows.Height)
	if l.scrollBarShown {
		l.scrollBar.Draw(screen)
	}
	l.damageAll = false
	clear(l.damage)
}

// DrawDirty repaints the rows intersecting the viewport lines
// [dirtyTop, dirtyBottom).
func (l *List) DrawDirty(screen tcell.Screen, dirtyTop, dirtyBottom int) {
	l.layout()
	l.drawRows(screen, dirtyTop, dirtyBottom)
}

// DrawDamage repaints only the rows invalidated since the last draw, or the
// whole list when the scroll position or the layout changed. Changes to the
// box itself, like its title, need Draw.
func (l *List) DrawDamage(screen tcell.Screen) {
	l.layout()
	if l.damageAll {
		l.Draw(screen)
		return
	}
	first, end := l.viewport.VisibleRange(0, l.rows.Height)
	for i := range l.damage {
		if i >= first && i < end && l.painter != nil {
			l.paintRow(screen, i, 0, l.rows.Height)
		}
	}
	clear(l.damage)
}

func (l *List) drawRows(screen tcell.Screen, top, bottom int) {
	top, bottom = max(top, 0), min(bottom, l.rows.Height)
	if l.painter == nil || bottom <= top || l.rows.Width <= 0 {
		return
	}

	first, end := l.viewport.VisibleRange(top, bottom)
	for i := first; i < end; i++ {
		l.paintRow(screen, i, top, bottom)
	}

	if rowsEnd := max(l.viewport.RowTop(l.viewport.Length()), top); rowsEnd < bottom {
		fill(screen, Rect{X: l.rows.X, Y: l.rows.Y + rowsEnd, Width: l.rows.Width, Height: bottom - rowsEnd}, ' ', l.styles.Default)
	}
}

// paintRow paints row i, clipped to the viewport lines [top, bottom).
func (l *List) paintRow(screen tcell.Screen, i, top, bottom int) {
	rect := Rect{
		X:      l.rows.X,
		Y:      l.rows.Y + l.viewport.RowTop(i),
		Width:  l.rows.Width,
		Height: max(l.viewport.ItemHeight(), 1),
	}
	clip := intersect(rect, Rect{X: l.rows.X, Y: l.rows.Y + top, Width: l.rows.Width, Height: bottom - top})
	if clip.Width <= 0 || clip.Height <= 0 {
		return
	}
	target := newClippedScreen(screen, clip)
	state := l.rowState(i)
	fill(target, rect, ' ', l.styles.For(state))

	// One column on each side is reserved for the focus markers.
	content := rect
	if content.Width > 2 {
		content.X++
		content.Width -= 2
	}
	l.painter(target, i, content, state)

	if state.Selected && state.Focused && l.drag.mode == DragNone && rect.Width > 2 {
		for y := rect.Y; y < rect.Y+rect.Height; y++ {
			target.SetContent(rect.X, y, l.styles.FocusMarkerLeft, nil, l.styles.FocusMarker)
			target.SetContent(rect.X+rect.Width-1, y, l.styles.FocusMarkerRight, nil, l.styles.FocusMarker)
		}
	}
}

// InputHandler handles the navigation keys. A key that would not move the
// cursor, like Up on the first row, is left unhandled so an enclosing
// primitive can use it.
func (l *List) InputHandler(event *tcell.EventKey) Command {
	if l.drag.mode == DragScrollBar {
		l.scrollBar.DragEnd()
		l.setDragMode(DragNone)
	}
	l.stopKinetic()

	page := max(l.viewport.ItemsVisible(), 1)
	vertical, horizontal := 1, page
	if !l.hasPointer {
		vertical, horizontal = page, 1
	}

	keys := l.keys
	switch {
	case keybind.Matches(event, keys.Activate):
		if l.activate == nil || l.viewport.Length() == 0 {
			return nil
		}
		l.logger.Debug().Int("index", l.cursor).Msg("activate")
		l.activate(l.cursor)
		return RedrawCommand{}
	case keybind.Matches(event, keys.PageUp):
		return l.moveKey(-page)
	case keybind.Matches(event, keys.PageDown):
		return l.moveKey(page)
	case keybind.Matches(event, keys.Up):
		return l.moveKey(-vertical)
	case keybind.Matches(event, keys.Down):
		return l.moveKey(vertical)
	case keybind.Matches(event, keys.Left):
		return l.moveKey(-horizontal)
	case keybind.Matches(event, keys.Right):
		return l.moveKey(horizontal)
	case keybind.Matches(event, keys.Home):
		return l.jumpKey(0)
	case keybind.Matches(event, keys.End):
		return l.jumpKey(l.viewport.Length() - 1)
	}
	return nil
}

func (l *List) moveKey(delta int) Command {
	n := l.viewport.Length()
	if n == 0 {
		return nil
	}
	return l.jumpKey(min(max(l.cursor+delta, 0), n-1))
}

func (l *List) jumpKey(i int) Command {
	if i == l.cursor || !l.SetCursorIndex(i) {
		return nil
	}
	return RedrawCommand{}
}

var (
	_ Primitive   = &List{}
	_ Invalidator = &List{}
)
