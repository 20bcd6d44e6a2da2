// Package viewport computes which lines of a document are visible given
// a scroll offset, a viewport height, and a uniform line height, all in
// pixel units. Only the visible slice is ever rendered; the window keeps
// scroll position valid as content and geometry change.
package viewport

import "math"

type Window struct {
	totalLines     int
	viewportHeight float64
	lineHeight     float64
	scrollTop      float64
}

func New(totalLines int, viewportHeight, lineHeight float64) *Window {
	w := &Window{}
	w.SetLineHeight(lineHeight)
	w.SetViewportHeight(viewportHeight)
	w.SetTotalLines(totalLines)
	return w
}

func (w *Window) TotalLines() int         { return w.totalLines }
func (w *Window) ViewportHeight() float64 { return w.viewportHeight }
func (w *Window) LineHeight() float64     { return w.lineHeight }
func (w *Window) ScrollTop() float64      { return w.scrollTop }

// MaxScroll returns the largest valid scroll offset. Content shorter
// than the viewport cannot scroll at all.
func (w *Window) MaxScroll() float64 {
	max := float64(w.totalLines)*w.lineHeight - w.viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// SetScrollTop sets the scroll offset, clamped to [0, MaxScroll].
func (w *Window) SetScrollTop(top float64) {
	if top < 0 {
		top = 0
	}
	if max := w.MaxScroll(); top > max {
		top = max
	}
	w.scrollTop = top
}

// ScrollBy shifts the scroll offset by delta, clamping at both ends.
func (w *Window) ScrollBy(delta float64) {
	w.SetScrollTop(w.scrollTop + delta)
}

// SetTotalLines records a new document length. The scroll offset is
// re-clamped but otherwise preserved, so edits far from the viewport do
// not move it.
func (w *Window) SetTotalLines(n int) {
	if n < 0 {
		n = 0
	}
	w.totalLines = n
	w.SetScrollTop(w.scrollTop)
}

// SetViewportHeight records a resize. Scroll position is preserved up
// to re-clamping, never reset.
func (w *Window) SetViewportHeight(h float64) {
	if h < 0 {
		h = 0
	}
	w.viewportHeight = h
	w.SetScrollTop(w.scrollTop)
}

func (w *Window) SetLineHeight(h float64) {
	if h <= 0 {
		h = 1
	}
	w.lineHeight = h
	w.SetScrollTop(w.scrollTop)
}

// VisibleRange returns the half-open line range [start, end) currently
// visible. One extra line beyond the viewport is included so a
// partially scrolled line at the bottom still renders. An empty
// document yields (0, 0).
func (w *Window) VisibleRange() (start, end int) {
	if w.totalLines == 0 {
		return 0, 0
	}
	start = int(math.Floor(w.scrollTop / w.lineHeight))
	if start < 0 {
		start = 0
	}
	if start > w.totalLines {
		start = w.totalLines
	}
	count := int(math.Ceil(w.viewportHeight/w.lineHeight)) + 1
	end = start + count
	if end > w.totalLines {
		end = w.totalLines
	}
	return start, end
}

// ScrollToReveal scrolls the minimum distance needed to bring line fully
// into view. Lines already visible leave the offset untouched.
func (w *Window) ScrollToReveal(line int) {
	if line < 0 {
		line = 0
	}
	if line >= w.totalLines {
		line = w.totalLines - 1
	}
	if line < 0 {
		return
	}
	top := float64(line) * w.lineHeight
	bottom := top + w.lineHeight
	if top < w.scrollTop {
		w.SetScrollTop(top)
	} else if bottom > w.scrollTop+w.viewportHeight {
		w.SetScrollTop(bottom - w.viewportHeight)
	}
}

// LineAtY maps a y offset within the viewport to a line index, clamped
// to the document.
func (w *Window) LineAtY(y float64) int {
	line := int(math.Floor((w.scrollTop + y) / w.lineHeight))
	if line < 0 {
		return 0
	}
	if line >= w.totalLines {
		line = w.totalLines - 1
	}
	if line < 0 {
		return 0
	}
	return line
}
