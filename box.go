package tview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Box implements the Primitive interface with an empty background and an
// optional border and title. Box itself does not hold any content but serves
// as the base of all other primitives, which keep their content within the
// box's inner rectangle.
type Box struct {
	// The position of the rect.
	x, y, width, height int

	// The inner rect reserved for the box's content. If innerX is negative,
	// the rect is undefined and must be calculated.
	innerX, innerY, innerWidth, innerHeight int

	// Border padding.
	paddingTop, paddingBottom, paddingLeft, paddingRight int

	backgroundColor tcell.Color

	// If set to true, the background of this box is not cleared while drawing.
	dontClear bool

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	// Whether or not this box has focus. Container primitives delegate focus
	// to their children and typically ignore this.
	hasFocus bool

	// dirty indicates whether this primitive needs to be redrawn.
	dirty atomic.Bool

	// dirtyParent is notified when this primitive transitions from clean to
	// dirty so containers can be dirtied without scanning all children.
	dirtyParent atomic.Pointer[Box]

	// Optional callback functions invoked when the primitive receives or loses
	// focus.
	focus, blur func()
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		innerX:          -1, // Mark as uninitialized.
		backgroundColor: Styles.PrimitiveBackgroundColor,

		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:   BorderSetPlain(),

		titleStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor).Background(Styles.PrimitiveBackgroundColor),
		titleAlignment: AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

// SetBorderPadding sets the size of the borders around the box content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	if b.paddingTop != top || b.paddingBottom != bottom || b.paddingLeft != left || b.paddingRight != right {
		b.paddingTop, b.paddingBottom, b.paddingLeft, b.paddingRight = top, bottom, left, right
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the position of the inner rectangle (x, y, width,
// height), without the border and without any padding. Width and height values
// will clamp to 0 and thus never be negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.paddingLeft
	y += b.paddingTop
	width = max(width-b.paddingLeft-b.paddingRight, 0)
	height = max(height-b.paddingTop-b.paddingBottom, 0)

	b.innerX, b.innerY, b.innerWidth, b.innerHeight = x, y, width, height
	return x, y, width, height
}

// SetRect sets a new position of the primitive.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x = x
		b.y = y
		b.width = width
		b.height = height
		b.innerX = -1
		b.MarkDirty()
	}
}

// IsDirty returns whether this primitive needs redrawing.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty marks this primitive as needing a redraw.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.dirtyParent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

// MarkClean marks this primitive as clean.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// SetDirtyParent makes parent dirty whenever this box becomes dirty.
func (b *Box) SetDirtyParent(parent *Box) {
	if parent == nil || parent == b {
		return
	}
	b.dirtyParent.Store(parent)
}

// InputHandler ignores all keys.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler focuses the box on a left press inside its rectangle.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	return Rect{b.x, b.y, b.width, b.height}.Contains(x, y)
}

// InInnerRect returns true if the given coordinate is within the bounds of the
// box's inner rectangle (within the border and padding).
func (b *Box) InInnerRect(x, y int) bool {
	ix, iy, iw, ih := b.GetInnerRect()
	return Rect{ix, iy, iw, ih}.Contains(x, y)
}

// SetBackgroundColor sets the box's background color.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

// GetBackgroundColor returns the box's background color.
func (b *Box) GetBackgroundColor() tcell.Color {
	return b.backgroundColor
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetBorderSet sets the runes used for the border.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

// SetBorderStyle sets the box's border style.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	if b.borderStyle != style {
		b.borderStyle = style
		b.MarkDirty()
	}
	return b
}

// GetTitle returns the box's current title.
func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the box's title.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetTitleAlignment sets the alignment of the title.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	if b.titleAlignment != alignment {
		b.titleAlignment = alignment
		b.MarkDirty()
	}
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws this box under the assumption that primitive p is a
// subclass of this box. Only call this function from your own custom
// primitives.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	if !b.dontClear {
		fill(screen, Rect{b.x, b.y, b.width, b.height}, ' ', tcell.StyleDefault.Background(b.backgroundColor))
	}

	borderStyle := b.borderStyle
	if p.HasFocus() {
		borderStyle = borderStyle.Bold(true)
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		right, bottom := b.x+b.width-1, b.y+b.height-1
		if b.borders.Has(BordersTop) {
			fill(screen, Rect{b.x + 1, b.y, b.width - 2, 1}, b.borderSet.Horizontal, borderStyle)
		}
		if b.borders.Has(BordersBottom) {
			fill(screen, Rect{b.x + 1, bottom, b.width - 2, 1}, b.borderSet.Horizontal, borderStyle)
		}
		if b.borders.Has(BordersLeft) {
			fill(screen, Rect{b.x, b.y + 1, 1, b.height - 2}, b.borderSet.Vertical, borderStyle)
		}
		if b.borders.Has(BordersRight) {
			fill(screen, Rect{right, b.y + 1, 1, b.height - 2}, b.borderSet.Vertical, borderStyle)
		}
		if b.borders.Has(BordersTop | BordersLeft) {
			screen.SetContent(b.x, b.y, b.borderSet.TopLeft, nil, borderStyle)
		}
		if b.borders.Has(BordersTop | BordersRight) {
			screen.SetContent(right, b.y, b.borderSet.TopRight, nil, borderStyle)
		}
		if b.borders.Has(BordersBottom | BordersLeft) {
			screen.SetContent(b.x, bottom, b.borderSet.BottomLeft, nil, borderStyle)
		}
		if b.borders.Has(BordersBottom | BordersRight) {
			screen.SetContent(right, bottom, b.borderSet.BottomRight, nil, borderStyle)
		}
	}

	if b.title != "" && b.width >= 4 {
		PrintWithStyle(screen, b.title, b.x+1, b.y, b.width-2, b.titleAlignment, b.titleStyle)
	}

	b.innerX = -1
	b.GetInnerRect()
}

// SetFocusFunc sets a callback function which is invoked when this primitive
// receives focus. Set to nil to remove the callback function.
func (b *Box) SetFocusFunc(callback func()) *Box {
	b.focus = callback
	return b
}

// SetBlurFunc sets a callback function which is invoked when this primitive
// loses focus. Set to nil to remove the callback function.
func (b *Box) SetBlurFunc(callback func()) *Box {
	b.blur = callback
	return b
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
	if b.focus != nil {
		b.focus()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
	if b.blur != nil {
		b.blur()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = &Box{}
