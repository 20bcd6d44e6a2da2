package viewport

import "testing"

func TestVisibleRange(t *testing.T) {
	w := New(1000, 400, 20)
	start, end := w.VisibleRange()
	if start != 0 || end != 21 {
		t.Errorf("at top: got [%d, %d)", start, end)
	}

	w.SetScrollTop(250)
	start, end = w.VisibleRange()
	if start != 12 || end != 33 {
		t.Errorf("scrolled: got [%d, %d)", start, end)
	}

	w.SetScrollTop(w.MaxScroll())
	start, end = w.VisibleRange()
	if end != 1000 {
		t.Errorf("at bottom: got [%d, %d)", start, end)
	}
	if start > 980 {
		t.Errorf("bottom start %d leaves viewport underfilled", start)
	}
}

func TestVisibleRangeEmptyDocument(t *testing.T) {
	w := New(0, 400, 20)
	start, end := w.VisibleRange()
	if start != 0 || end != 0 {
		t.Errorf("got [%d, %d)", start, end)
	}
}

func TestContentShorterThanViewport(t *testing.T) {
	w := New(15, 400, 20)
	if got := w.MaxScroll(); got != 0 {
		t.Errorf("maxScroll %v", got)
	}
	w.SetScrollTop(9999)
	if w.ScrollTop() != 0 {
		t.Errorf("scrollTop %v", w.ScrollTop())
	}
	start, end := w.VisibleRange()
	if start != 0 || end != 15 {
		t.Errorf("got [%d, %d)", start, end)
	}
}

func TestScrollClamping(t *testing.T) {
	w := New(100, 400, 20)
	w.SetScrollTop(-50)
	if w.ScrollTop() != 0 {
		t.Errorf("negative: %v", w.ScrollTop())
	}
	w.SetScrollTop(99999)
	if w.ScrollTop() != w.MaxScroll() {
		t.Errorf("overflow: %v vs max %v", w.ScrollTop(), w.MaxScroll())
	}
	w.ScrollBy(-99999)
	if w.ScrollTop() != 0 {
		t.Errorf("scrollBy underflow: %v", w.ScrollTop())
	}
}

func TestResizePreservesScroll(t *testing.T) {
	w := New(1000, 400, 20)
	w.SetScrollTop(5000)

	w.SetViewportHeight(600)
	if w.ScrollTop() != 5000 {
		t.Errorf("resize reset scroll to %v", w.ScrollTop())
	}

	// Shrinking the document re-clamps without jumping to zero.
	w.SetTotalLines(300)
	want := 300*20.0 - 600
	if w.ScrollTop() != want {
		t.Errorf("after shrink: %v want %v", w.ScrollTop(), want)
	}

	w.SetTotalLines(1000)
	if w.ScrollTop() != want {
		t.Errorf("regrow moved scroll to %v", w.ScrollTop())
	}
}

func TestScrollToReveal(t *testing.T) {
	w := New(1000, 400, 20)

	w.ScrollToReveal(10)
	if w.ScrollTop() != 0 {
		t.Errorf("visible line moved scroll to %v", w.ScrollTop())
	}

	w.ScrollToReveal(50)
	if got := w.ScrollTop(); got != 51*20-400 {
		t.Errorf("reveal below: %v", got)
	}

	w.ScrollToReveal(5)
	if got := w.ScrollTop(); got != 100 {
		t.Errorf("reveal above: %v", got)
	}

	w.ScrollToReveal(-10)
	if w.ScrollTop() != 0 {
		t.Errorf("reveal clamped low: %v", w.ScrollTop())
	}
	w.ScrollToReveal(99999)
	if w.ScrollTop() != w.MaxScroll() {
		t.Errorf("reveal clamped high: %v", w.ScrollTop())
	}
}

func TestLineAtY(t *testing.T) {
	w := New(100, 400, 20)
	w.SetScrollTop(45)
	if got := w.LineAtY(0); got != 2 {
		t.Errorf("got %d", got)
	}
	if got := w.LineAtY(30); got != 3 {
		t.Errorf("got %d", got)
	}
	if got := w.LineAtY(99999); got != 99 {
		t.Errorf("beyond end: %d", got)
	}
}
