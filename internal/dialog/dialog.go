// Package dialog implements the task point editor shown by taskpoints.
package dialog

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/xqrs/tview"
	"github.com/xqrs/tview/help"
	"github.com/xqrs/tview/internal/task"
	"github.com/xqrs/tview/keybind"
)

// storeTimeout bounds every store call made from an input handler.
const storeTimeout = 2 * time.Second

// sizeStep is the change in metres of one grow or shrink key press.
const sizeStep = 500

// minSize keeps zones from collapsing to nothing.
const minSize = 100

// Points is the task point storage used by the dialog.
type Points interface {
	List(ctx context.Context) ([]task.Point, error)
	Append(ctx context.Context, p task.Point) (task.Point, error)
	Delete(ctx context.Context, id int64) error
	UpdateZone(ctx context.Context, id int64, z task.Zone) error
}

// TaskDialog lists the task points with a detail line for the cursor point.
// Enter or a tap on the selected point cycles its zone type.
type TaskDialog struct {
	*tview.Box

	store  Points
	points []task.Point

	list   *tview.List
	help   *help.Help
	keys   KeyMap
	styles tview.ListStyles

	// Text below the list; refreshed when the cursor moves.
	detail string
	status string

	// full repaints the frame, detail line and help on the next Draw.
	// Otherwise only the damaged list rows and a changed detail line are
	// drawn.
	full        bool
	detailDirty bool
	drawnRect   tview.Rect

	guard  refreshGuard
	logger zerolog.Logger
}

// New returns a dialog over store. Call Reload before showing it.
func New(store Points, logger zerolog.Logger) *TaskDialog {
	d := &TaskDialog{
		Box:    tview.NewBox(),
		store:  store,
		list:   tview.NewList(),
		help:   help.New(),
		styles: tview.DefaultListStyles(),
		full:   true,
		logger: logger,
	}
	d.SetBorders(tview.BordersAll).SetBorderSet(tview.BorderSetRound()).SetTitle(" Task points ")

	d.list.SetItemHeight(2).
		SetStyles(d.styles).
		SetRowPainter(d.paintRow).
		SetActivateFunc(d.onActivate).
		SetChangedFunc(d.onCursorChanged).
		SetLogger(logger)
	d.list.SetDirtyParent(d.Box)
	d.help.SetDirtyParent(d.Box)
	d.SetKeyMap(DefaultKeyMap(d.list.KeyMap()))
	return d
}

// List returns the task point list.
func (d *TaskDialog) List() *tview.List {
	return d.list
}

// SetKeyMap replaces the dialog and list keys.
func (d *TaskDialog) SetKeyMap(keys KeyMap) *TaskDialog {
	d.keys = keys
	d.list.SetKeyMap(keys.List)
	d.help.SetKeyMap(keys)
	return d
}

// Points returns the points currently shown.
func (d *TaskDialog) Points() []task.Point {
	return d.points
}

// Detail returns the text of the detail line.
func (d *TaskDialog) Detail() string {
	return d.detail
}

// Status returns the last error message, if any.
func (d *TaskDialog) Status() string {
	return d.status
}

// Reload reads all points from the store. Cursor moves caused by the new
// length are not reported as user navigation.
func (d *TaskDialog) Reload(ctx context.Context) error {
	release := d.guard.begin()
	defer release()

	points, err := d.store.List(ctx)
	if err != nil {
		return fmt.Errorf("reloading task points: %w", err)
	}
	d.points = points
	d.list.SetLength(len(points))
	d.list.Invalidate()
	d.updateDetail()
	d.invalidateDetail()
	return nil
}

func (d *TaskDialog) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	d.report(d.Reload(ctx))
}

func (d *TaskDialog) report(err error) {
	if err == nil {
		d.status = ""
		return
	}
	d.status = err.Error()
	d.logger.Error().Err(err).Msg("task dialog")
	d.invalidateDetail()
}

func (d *TaskDialog) invalidateDetail() {
	d.detailDirty = true
	d.MarkDirty()
}

// Invalidate implements tview.Invalidator.
func (d *TaskDialog) Invalidate() {
	d.full = true
	d.list.Invalidate()
	d.MarkDirty()
}

func (d *TaskDialog) current() (task.Point, bool) {
	i := d.list.GetCursorIndex()
	if i < 0 || i >= len(d.points) {
		return task.Point{}, false
	}
	return d.points[i], true
}

func (d *TaskDialog) updateDetail() {
	p, ok := d.current()
	if !ok {
		d.detail = "no task points"
		return
	}
	d.detail = fmt.Sprintf("%s: %s", p.Kind, p.Zone.Describe())
	if !p.Zone.Editable() {
		d.detail += " (fixed size)"
	}
}

func (d *TaskDialog) onCursorChanged(index int) {
	if d.guard.active() {
		return
	}
	d.logger.Debug().Int("index", index).Msg("cursor changed")
	d.updateDetail()
	d.invalidateDetail()
}

// onActivate cycles the zone type of point index.
func (d *TaskDialog) onActivate(index int) {
	if index < 0 || index >= len(d.points) {
		return
	}
	p := d.points[index]
	zone := task.DefaultZone(p.Zone.Kind.Next())

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := d.store.UpdateZone(ctx, p.ID, zone); err != nil {
		d.report(err)
		return
	}
	d.logger.Info().Str("point", p.Name).Stringer("zone", zone.Kind).Msg("zone changed")
	d.reload()
}

func (d *TaskDialog) insert() {
	p := task.Point{
		Name: fmt.Sprintf("Point %d", len(d.points)+1),
		Kind: task.PointTurn,
		Zone: task.DefaultZone(task.ZoneCylinder),
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := d.store.Append(ctx, p); err != nil {
		d.report(err)
		return
	}
	d.reload()
	d.list.SetCursorIndex(len(d.points) - 1)
}

func (d *TaskDialog) remove() bool {
	p, ok := d.current()
	if !ok {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := d.store.Delete(ctx, p.ID); err != nil {
		d.report(err)
		return true
	}
	d.logger.Info().Str("point", p.Name).Msg("point removed")
	d.reload()
	return true
}

// resize grows the zone of the cursor point by delta metres. Fixed-shape
// zones are left alone and reported in the status line.
func (d *TaskDialog) resize(delta float64) bool {
	p, ok := d.current()
	if !ok {
		return false
	}
	edit := p.Zone
	edit.Radius = max(edit.Radius+delta, minSize)
	edit.Length = max(edit.Length+2*delta, minSize)
	if edit.InnerRadius > 0 {
		edit.InnerRadius = min(edit.InnerRadius, edit.Radius-minSize)
	}

	zone := p.Zone
	if !zone.Apply(edit) {
		if !zone.Editable() {
			d.status = fmt.Sprintf("%s has a fixed size", zone.Kind)
			d.invalidateDetail()
		}
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := d.store.UpdateZone(ctx, p.ID, zone); err != nil {
		d.report(err)
		return true
	}
	d.logger.Debug().Str("point", p.Name).Str("zone", zone.Describe()).Msg("zone resized")
	d.reload()
	return true
}

func (d *TaskDialog) paintRow(screen tcell.Screen, index int, rect tview.Rect, state tview.RowState) {
	if index >= len(d.points) || rect.Width <= 0 {
		return
	}
	p := d.points[index]
	style := d.styles.For(state)

	name := runewidth.Truncate(fmt.Sprintf("%2d %s", index+1, p.Name), rect.Width, "…")
	tview.PrintWithStyle(screen, name, rect.X, rect.Y, rect.Width, tview.AlignmentLeft, style.Bold(state.Selected))
	if rect.Height > 1 {
		zone := runewidth.Truncate("   "+p.Zone.Describe(), rect.Width, "…")
		tview.PrintWithStyle(screen, zone, rect.X, rect.Y+1, rect.Width, tview.AlignmentLeft, style.Dim(true))
	}
}

// Draw lays out the list, the detail line and the help line. After the first
// draw only damaged list rows and a changed detail line are repainted until
// the size changes or Invalidate is called.
func (d *TaskDialog) Draw(screen tcell.Screen) {
	x, y, width, height := d.GetRect()
	rect := tview.Rect{X: x, Y: y, Width: width, Height: height}
	full := d.full || rect != d.drawnRect || d.help.IsDirty()
	if full {
		d.DrawForSubclass(screen, d)
	}

	x, y, width, height = d.GetInnerRect()
	listHeight := max(height-2, 0)
	d.list.SetRect(x, y, width, listHeight)
	if full {
		d.list.Draw(screen)
	} else {
		d.list.DrawDamage(screen)
	}

	if height > 1 && (full || d.detailDirty) {
		d.drawDetail(screen, x, y+listHeight, width)
	}
	if height > 0 && full {
		d.help.SetRect(x, y+height-1, width, 1)
		d.help.Draw(screen)
	}
	d.full, d.detailDirty, d.drawnRect = false, false, rect
}

func (d *TaskDialog) drawDetail(screen tcell.Screen, x, y, width int) {
	background := tcell.StyleDefault.Background(d.GetBackgroundColor())
	for col := x; col < x+width; col++ {
		screen.SetContent(col, y, ' ', nil, background)
	}
	line, style := d.detail, background.Foreground(tview.Styles.SecondaryTextColor)
	if d.status != "" {
		line, style = d.status, background.Foreground(tcell.ColorRed)
	}
	tview.PrintWithStyle(screen, line, x, y, width, tview.AlignmentLeft, style)
}

// MarkClean marks the dialog and its children as drawn.
func (d *TaskDialog) MarkClean() {
	d.Box.MarkClean()
	d.list.MarkClean()
	d.help.MarkClean()
}

// InputHandler offers keys to the list first.
func (d *TaskDialog) InputHandler(event *tcell.EventKey) tview.Command {
	if cmd := d.list.InputHandler(event); cmd != nil {
		return cmd
	}
	switch {
	case keybind.Matches(event, d.keys.Insert):
		d.insert()
		return tview.RedrawCommand{}
	case keybind.Matches(event, d.keys.Delete):
		if d.remove() {
			return tview.RedrawCommand{}
		}
	case keybind.Matches(event, d.keys.Grow):
		if d.resize(sizeStep) {
			return tview.RedrawCommand{}
		}
	case keybind.Matches(event, d.keys.Shrink):
		if d.resize(-sizeStep) {
			return tview.RedrawCommand{}
		}
	case keybind.Matches(event, d.keys.Sync):
		return tview.SyncCommand{}
	case keybind.Matches(event, d.keys.Quit):
		return tview.QuitCommand{}
	}
	return nil
}

// MouseHandler forwards pointer input to the list.
func (d *TaskDialog) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !d.InRect(event.Position()) {
		return nil, nil
	}
	return d.list.MouseHandler(action, event)
}

// Focus passes the focus on to the list.
func (d *TaskDialog) Focus(delegate func(p tview.Primitive)) {
	delegate(d.list)
}

// HasFocus reports whether the list has focus.
func (d *TaskDialog) HasFocus() bool {
	return d.list.HasFocus()
}

// SetScheduler hands the scheduler to the list.
func (d *TaskDialog) SetScheduler(scheduler tview.Scheduler) {
	d.list.SetScheduler(scheduler)
}

// CancelMode cancels pointer gestures of the list.
func (d *TaskDialog) CancelMode() {
	d.list.CancelMode()
}

var (
	_ tview.Primitive       = &TaskDialog{}
	_ tview.SchedulerSetter = &TaskDialog{}
	_ tview.CancelModer     = &TaskDialog{}
	_ tview.Invalidator     = &TaskDialog{}
)
