package tview

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// ScrollBarArrows controls which endcaps are rendered.
type ScrollBarArrows uint8

const (
	ScrollBarArrowsNone ScrollBarArrows = iota
	ScrollBarArrowsStart
	ScrollBarArrowsEnd
	ScrollBarArrowsBoth
)

func (a ScrollBarArrows) hasStart() bool {
	return a == ScrollBarArrowsStart || a == ScrollBarArrowsBoth
}

func (a ScrollBarArrows) hasEnd() bool {
	return a == ScrollBarArrowsEnd || a == ScrollBarArrowsBoth
}

// TrackClickBehavior configures behavior when clicking scrollBar track cells
// outside the thumb.
type TrackClickBehavior uint8

const (
	TrackClickBehaviorPage TrackClickBehavior = iota
	TrackClickBehaviorJumpToClick
)

// ScrollBarRegion is the result of a scrollbar hit test.
type ScrollBarRegion uint8

const (
	ScrollBarRegionNone ScrollBarRegion = iota
	ScrollBarRegionThumb
	ScrollBarRegionUpArrow
	ScrollBarRegionDownArrow
	ScrollBarRegionAboveThumb
	ScrollBarRegionBelowThumb
)

// subcell is the number of thumb positions per cell; the fractional glyphs
// render the thumb edges in eighths of a cell.
const subcell = 8

// GlyphSet defines vertical track, arrow, and fractional thumb glyphs.
type GlyphSet struct {
	TrackVertical rune

	ArrowVerticalStart rune
	ArrowVerticalEnd   rune

	ThumbVerticalLower [8]rune
	ThumbVerticalUpper [8]rune
}

// MinimalGlyphSet returns the minimal glyph set (space track, fractional thumbs).
func MinimalGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.TrackVertical = ' '
	return g
}

// LegacyComputingGlyphSet returns legacy-computing symbols for full 1/8 fractional fidelity.
func LegacyComputingGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.ThumbVerticalUpper = [8]rune{'▔', '🮂', '🮃', '▀', '🮄', '🮅', '🮆', '█'}
	return g
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical: '│',

		ArrowVerticalStart: '▲',
		ArrowVerticalEnd:   '▼',

		ThumbVerticalLower: [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'},
		ThumbVerticalUpper: [8]rune{'▔', '▔', '▀', '▀', '▀', '▀', '█', '█'},
	}
}

// ScrollBarGeometry is the thumb layout of a vertical scrollbar, measured in
// subcells from the top of the bar.
type ScrollBarGeometry struct {
	Visible bool
	// Cells occupied by the start arrow (0 or 1); the track starts below it.
	ArrowCells  int
	TrackCells  int
	TrackLength int
	ThumbOffset int // from the start of the track
	ThumbLength int
}

// Travel returns the distance the thumb can move.
func (g ScrollBarGeometry) Travel() int {
	return max(g.TrackLength-g.ThumbLength, 0)
}

// ComputeScrollBarGeometry lays out a bar of height cells showing viewportLen
// of contentLen units scrolled by offset units. The thumb is at least one
// cell long.
func ComputeScrollBarGeometry(height int, arrows ScrollBarArrows, contentLen, viewportLen, offset int) ScrollBarGeometry {
	arrowStart, arrowEnd := 0, 0
	if arrows.hasStart() {
		arrowStart = 1
	}
	if arrows.hasEnd() {
		arrowEnd = 1
	}
	trackCells := max(height-arrowStart-arrowEnd, 0)
	g := ScrollBarGeometry{
		Visible:     contentLen > viewportLen && trackCells > 0,
		ArrowCells:  arrowStart,
		TrackCells:  trackCells,
		TrackLength: trackCells * subcell,
	}
	if g.TrackLength == 0 {
		return g
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = min(max(offset, 0), maxOffset)

	if maxOffset == 0 {
		g.ThumbLength = g.TrackLength
		return g
	}

	g.ThumbLength = min(max((g.TrackLength*viewportLen)/contentLen, subcell), g.TrackLength)
	g.ThumbOffset = roundDiv(g.Travel()*offset, maxOffset)
	return g
}

// HitTest classifies bar cell y (relative to the bar top). Thumb cells win
// over arrows, arrows over the track.
func (g ScrollBarGeometry) HitTest(y, height int) ScrollBarRegion {
	if !g.Visible || y < 0 || y >= height {
		return ScrollBarRegionNone
	}
	pos := (y-g.ArrowCells)*subcell + subcell/2
	thumbStart := g.ThumbOffset
	thumbEnd := g.ThumbOffset + g.ThumbLength
	switch {
	case y >= g.ArrowCells && y < g.ArrowCells+g.TrackCells && pos >= thumbStart && pos < thumbEnd:
		return ScrollBarRegionThumb
	case g.ArrowCells > 0 && y == 0:
		return ScrollBarRegionUpArrow
	case y >= g.ArrowCells+g.TrackCells:
		return ScrollBarRegionDownArrow
	case pos < thumbStart:
		return ScrollBarRegionAboveThumb
	default:
		return ScrollBarRegionBelowThumb
	}
}

// OffsetFor inverts the thumb placement: it returns the content offset that
// puts the thumb start at thumbPos subcells from the track start.
func (g ScrollBarGeometry) OffsetFor(contentLen, viewportLen, thumbPos int) int {
	maxOffset := max(contentLen-viewportLen, 0)
	travel := g.Travel()
	if travel == 0 || maxOffset == 0 {
		return 0
	}
	thumbPos = min(max(thumbPos, 0), travel)
	return roundDiv(thumbPos*maxOffset, travel)
}

func roundDiv(a, b int) int {
	return int(math.Round(float64(a) / float64(b)))
}

// ScrollBar renders a vertical scrollbar and tracks thumb drags.
type ScrollBar struct {
	*Box

	autoHide    bool
	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style
	arrowStyle tcell.Style

	glyphSet GlyphSet
	arrows   ScrollBarArrows

	trackClickBehavior TrackClickBehavior
	showTrack          bool

	dragging   bool
	dragOffset int // subcells between the pointer and the thumb start
}

// NewScrollBar returns a new vertical scrollBar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:                NewBox(),
		autoHide:           true,
		trackStyle:         tcell.StyleDefault.Dim(true),
		thumbStyle:         tcell.StyleDefault,
		arrowStyle:         tcell.StyleDefault.Dim(true),
		glyphSet:           UnicodeGlyphSet(),
		arrows:             ScrollBarArrowsNone,
		trackClickBehavior: TrackClickBehaviorPage,
		showTrack:          true,
	}
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(contentLen, viewportLen int) *ScrollBar {
	contentLen, viewportLen = max(contentLen, 0), max(viewportLen, 0)
	if s.contentLen != contentLen || s.viewportLen != viewportLen {
		s.contentLen, s.viewportLen = contentLen, viewportLen
		s.MarkDirty()
	}
	return s
}

// SetOffset sets the logical offset.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	offset = max(offset, 0)
	if s.offset != offset {
		s.offset = offset
		s.MarkDirty()
	}
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	if s.glyphSet != g {
		s.glyphSet = g
		s.MarkDirty()
	}
	return s
}

// SetArrows sets which arrow endcaps are rendered.
func (s *ScrollBar) SetArrows(arrows ScrollBarArrows) *ScrollBar {
	if s.arrows != arrows {
		s.arrows = arrows
		s.MarkDirty()
	}
	return s
}

// SetTrackClickBehavior sets behavior used for track clicks.
func (s *ScrollBar) SetTrackClickBehavior(behavior TrackClickBehavior) *ScrollBar {
	s.trackClickBehavior = behavior
	return s
}

// TrackClickBehavior returns the behavior used for track clicks.
func (s *ScrollBar) TrackClickBehavior() TrackClickBehavior {
	return s.trackClickBehavior
}

// SetAutoHide controls whether the scrollBar is hidden when there is nothing to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	if s.autoHide != autoHide {
		s.autoHide = autoHide
		s.MarkDirty()
	}
	return s
}

// SetTrackGlyph sets the track symbol and visibility.
func (s *ScrollBar) SetTrackGlyph(glyph rune, visible bool) *ScrollBar {
	s.glyphSet.TrackVertical = glyph
	s.showTrack = visible
	s.MarkDirty()
	return s
}

// SetStyles sets the track, thumb and arrow styles.
func (s *ScrollBar) SetStyles(track, thumb, arrow tcell.Style) *ScrollBar {
	s.trackStyle, s.thumbStyle, s.arrowStyle = track, thumb, arrow
	s.MarkDirty()
	return s
}

// Geometry returns the current thumb layout.
func (s *ScrollBar) Geometry() ScrollBarGeometry {
	_, _, _, height := s.GetInnerRect()
	return ComputeScrollBarGeometry(height, s.arrows, s.contentLen, s.viewportLen, s.offset)
}

// HitTest classifies screen row y.
func (s *ScrollBar) HitTest(y int) ScrollBarRegion {
	_, top, _, height := s.GetInnerRect()
	return s.Geometry().HitTest(y-top, height)
}

// DragBegin starts a thumb drag with the pointer on screen row y.
func (s *ScrollBar) DragBegin(y int) {
	_, top, _, _ := s.GetInnerRect()
	g := s.Geometry()
	s.dragging = true
	s.dragOffset = s.pointerPos(y-top, g) - g.ThumbOffset
}

// DragMove returns the content offset for the pointer on screen row y,
// keeping the grab point on the thumb under the pointer.
func (s *ScrollBar) DragMove(contentLen, viewportLen, y int) int {
	_, top, _, height := s.GetInnerRect()
	g := ComputeScrollBarGeometry(height, s.arrows, contentLen, viewportLen, s.offset)
	return g.OffsetFor(contentLen, viewportLen, s.pointerPos(y-top, g)-s.dragOffset)
}

// DragMovePosition is DragMove with the thumb start given in subcells from
// the track start.
func (s *ScrollBar) DragMovePosition(contentLen, viewportLen, thumbPos int) int {
	_, _, _, height := s.GetInnerRect()
	g := ComputeScrollBarGeometry(height, s.arrows, contentLen, viewportLen, s.offset)
	return g.OffsetFor(contentLen, viewportLen, thumbPos)
}

// JumpTo returns the content offset that centres the thumb on screen row y.
func (s *ScrollBar) JumpTo(contentLen, viewportLen, y int) int {
	_, top, _, height := s.GetInnerRect()
	g := ComputeScrollBarGeometry(height, s.arrows, contentLen, viewportLen, s.offset)
	return g.OffsetFor(contentLen, viewportLen, s.pointerPos(y-top, g)-g.ThumbLength/2)
}

// DragEnd stops a thumb drag.
func (s *ScrollBar) DragEnd() {
	s.dragging = false
	s.dragOffset = 0
}

// IsDragging reports whether a thumb drag is in progress.
func (s *ScrollBar) IsDragging() bool {
	return s.dragging
}

// pointerPos converts a bar-relative cell row to a track position in
// subcells, using the middle of the cell.
func (s *ScrollBar) pointerPos(y int, g ScrollBarGeometry) int {
	return (y-g.ArrowCells)*subcell + subcell/2
}

func (s *ScrollBar) shouldDraw(g ScrollBarGeometry) bool {
	if g.TrackLength == 0 || s.contentLen <= 0 {
		return false
	}
	return g.Visible || !s.autoHide
}

func cellFill(g ScrollBarGeometry, cellIndex int) (start int, fillLen int) {
	if g.ThumbLength == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := g.ThumbOffset + g.ThumbLength
	start = max(g.ThumbOffset, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	// Convert absolute subcell coverage into cell-local [start,len] used by fractional glyph selection.
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

func (s *ScrollBar) glyphForVertical(start, fillLen int) (rune, tcell.Style) {
	if fillLen <= 0 {
		if !s.showTrack {
			return ' ', s.trackStyle
		}
		return s.glyphSet.TrackVertical, s.trackStyle
	}
	if fillLen >= subcell {
		return s.glyphSet.ThumbVerticalLower[7], s.thumbStyle
	}
	ix := fillLen - 1
	if start == 0 {
		return s.glyphSet.ThumbVerticalUpper[ix], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[ix], s.thumbStyle
}

// Draw draws the scrollBar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, width, height := s.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	g := ComputeScrollBarGeometry(height, s.arrows, s.contentLen, s.viewportLen, s.offset)
	if !s.shouldDraw(g) {
		return
	}

	row := y
	if s.arrows.hasStart() {
		screen.SetContent(x, row, s.glyphSet.ArrowVerticalStart, nil, s.arrowStyle)
		row++
	}
	for cell := 0; cell < g.TrackCells; cell++ {
		glyph, style := s.glyphForVertical(cellFill(g, cell))
		screen.SetContent(x, row, glyph, nil, style)
		row++
	}
	if s.arrows.hasEnd() {
		screen.SetContent(x, row, s.glyphSet.ArrowVerticalEnd, nil, s.arrowStyle)
	}
}

var _ Primitive = &ScrollBar{}
