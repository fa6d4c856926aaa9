package tview

// Viewport is the scroll model of a list of fixed-height rows. All lengths
// are in terminal lines.
//
// The scroll position is a single pixel origin (origin*itemHeight+pixelPan);
// origin and pixelPan are only its decomposition and are never set directly.
type Viewport struct {
	length       int
	itemHeight   int
	viewHeight   int
	itemsVisible int

	// Index of the first (possibly partially) visible row.
	origin int
	// Lines of the origin row scrolled off the top, in [0, itemHeight).
	pixelPan int
}

// NewViewport returns an empty viewport with the given row height.
func NewViewport(itemHeight int) Viewport {
	return Viewport{itemHeight: itemHeight}
}

// unit is the row height used for division. Non-positive row heights are a
// programming error; they are treated as one line so nothing divides by zero.
func (v Viewport) unit() int {
	return max(v.itemHeight, 1)
}

func (v Viewport) Length() int { return v.length }
func (v Viewport) ItemHeight() int { return v.itemHeight }
func (v Viewport) ViewHeight() int { return v.viewHeight }
func (v Viewport) ItemsVisible() int { return v.itemsVisible }
func (v Viewport) Origin() int { return v.origin }
func (v Viewport) PixelPan() int { return v.pixelPan }

// PixelOrigin returns the scroll position in lines.
func (v Viewport) PixelOrigin() int {
	return v.origin*v.unit() + v.pixelPan
}

// ContentHeight returns the height of all rows in lines.
func (v Viewport) ContentHeight() int {
	return v.length * v.unit()
}

// MaxPixelOrigin returns the largest valid scroll position.
func (v Viewport) MaxPixelOrigin() int {
	return max(v.ContentHeight()-v.viewHeight, 0)
}

// ScrollbarNeeded reports whether there are more rows than fit.
func (v Viewport) ScrollbarNeeded() bool {
	return v.length > v.itemsVisible
}

func (v *Viewport) updateItemsVisible() {
	if v.itemHeight <= 0 || v.viewHeight <= 0 {
		v.itemsVisible = 0
		return
	}
	v.itemsVisible = v.viewHeight / v.itemHeight
}

// SetPixelOrigin scrolls to p lines from the top of the content. p is clamped
// to [0, MaxPixelOrigin]; clamped reports whether that happened.
func (v *Viewport) SetPixelOrigin(p int) (changed, clamped bool) {
	limit := v.MaxPixelOrigin()
	switch {
	case p < 0:
		p, clamped = 0, true
	case p > limit:
		p, clamped = limit, true
	}
	origin, pan := p/v.unit(), p%v.unit()
	if origin == v.origin && pan == v.pixelPan {
		return false, clamped
	}
	v.origin, v.pixelPan = origin, pan
	return true, clamped
}

// SetOrigin scrolls so row i is the top row, without pixel pan.
func (v *Viewport) SetOrigin(i int) bool {
	if v.length <= v.itemsVisible {
		return false
	}
	changed, _ := v.SetPixelOrigin(i * v.unit())
	return changed
}

// MoveOrigin scrolls by delta rows. It does nothing when every row fits.
func (v *Viewport) MoveOrigin(delta int) bool {
	if v.length <= v.itemsVisible {
		return false
	}
	changed, _ := v.SetPixelOrigin(v.PixelOrigin() + delta*v.unit())
	return changed
}

// SetLength sets the number of rows and pulls the scroll position back
// inside the new bounds. It reports whether anything changed.
func (v *Viewport) SetLength(n int) bool {
	n = max(n, 0)
	if n == v.length {
		return false
	}
	v.length = n
	if n <= v.itemsVisible {
		v.origin, v.pixelPan = 0, 0
	} else if v.origin+v.itemsVisible > n {
		v.origin, v.pixelPan = n-v.itemsVisible, 0
	}
	v.SetPixelOrigin(v.PixelOrigin())
	return true
}

// SetItemHeight changes the row height, keeping the current origin row at
// the top.
func (v *Viewport) SetItemHeight(h int) bool {
	if h == v.itemHeight {
		return false
	}
	origin := v.origin
	v.itemHeight = h
	v.origin, v.pixelPan = 0, 0
	v.updateItemsVisible()
	v.SetPixelOrigin(origin * v.unit())
	return true
}

// Resize sets the viewport height and re-validates the scroll position.
func (v *Viewport) Resize(height int) bool {
	height = max(height, 0)
	if height == v.viewHeight {
		return false
	}
	v.viewHeight = height
	v.updateItemsVisible()
	v.SetPixelOrigin(v.PixelOrigin())
	return true
}

// EnsureVisible scrolls the minimum amount needed to show row i completely.
// A row above the window becomes the top row; a row below it is aligned with
// its bottom edge on the viewport bottom, which sets a pixel pan when the
// viewport height is not a multiple of the row height.
func (v *Viewport) EnsureVisible(i int) bool {
	if i < 0 || i >= v.length {
		return false
	}
	h := v.unit()
	top := i * h
	p := v.PixelOrigin()

	if h > v.viewHeight {
		// The row cannot be shown completely; show its top.
		changed, _ := v.SetPixelOrigin(top)
		return changed
	}
	switch {
	case top < p:
		changed, _ := v.SetPixelOrigin(top)
		return changed
	case top+h > p+v.viewHeight:
		changed, _ := v.SetPixelOrigin(top + h - v.viewHeight)
		return changed
	}
	return false
}

// IsFullyVisible reports whether row i is completely inside the viewport.
func (v Viewport) IsFullyVisible(i int) bool {
	if i < 0 || i >= v.length {
		return false
	}
	top := v.RowTop(i)
	return top >= 0 && top+v.unit() <= v.viewHeight
}

// RowIndexAt returns the row under viewport line y, or -1 for no row.
func (v Viewport) RowIndexAt(y int) int {
	if y < 0 {
		return -1
	}
	i := (v.PixelOrigin() + y) / v.unit()
	if i >= v.length {
		return -1
	}
	return i
}

// RowTop returns the viewport line of the top of row i. It is negative for
// rows scrolled above the viewport.
func (v Viewport) RowTop(i int) int {
	return i*v.unit() - v.PixelOrigin()
}

// VisibleRange returns the half-open range of rows intersecting the viewport
// lines [dirtyTop, dirtyBottom), clipped to the existing rows.
func (v Viewport) VisibleRange(dirtyTop, dirtyBottom int) (first, end int) {
	dirtyTop = max(dirtyTop, 0)
	dirtyBottom = min(dirtyBottom, v.viewHeight)
	if dirtyBottom <= dirtyTop || v.length == 0 {
		return 0, 0
	}
	h := v.unit()
	p := v.PixelOrigin()
	first = (p + dirtyTop) / h
	end = (p + dirtyBottom + h - 1) / h
	first = min(max(first, 0), v.length)
	end = min(max(end, first), v.length)
	return first, end
}
