package metrics

import "testing"

func TestXForColumnMonotonic(t *testing.T) {
	m := New()
	line := "ab\t日本c🎉d"
	prev := -1.0
	for col := 0; col <= 10; col++ {
		x := m.XForColumn(line, col)
		if x < prev {
			t.Fatalf("col %d: x %v < prev %v", col, x, prev)
		}
		prev = x
	}
}

func TestXForColumnWideChars(t *testing.T) {
	m := New()
	line := "a日b"
	cases := []struct {
		col  int
		want float64
	}{
		{0, 0}, {1, 1}, {2, 3}, {3, 4},
		{-5, 0}, {99, 4},
	}
	for _, c := range cases {
		if got := m.XForColumn(line, c.col); got != c.want {
			t.Errorf("col %d: got %v want %v", c.col, got, c.want)
		}
	}
}

func TestColumnForXMidpoint(t *testing.T) {
	m := New()
	line := "abc"
	cases := []struct {
		x    float64
		want int
	}{
		{-1, 0}, {0, 0}, {0.4, 0}, {0.6, 1},
		{1.4, 1}, {1.6, 2}, {2.4, 2}, {2.6, 3},
	}
	for _, c := range cases {
		if got := m.ColumnForX(line, c.x); got != c.want {
			t.Errorf("x=%v: got %d want %d", c.x, got, c.want)
		}
	}
}

func TestColumnForXWideGlyphMidpoint(t *testing.T) {
	m := New()
	line := "日本"
	if got := m.ColumnForX(line, 0.9); got != 0 {
		t.Errorf("inside first half: got %d", got)
	}
	if got := m.ColumnForX(line, 1.1); got != 1 {
		t.Errorf("past first midpoint: got %d", got)
	}
	if got := m.ColumnForX(line, 3.5); got != 2 {
		t.Errorf("past last midpoint: got %d", got)
	}
}

func TestTabStopExpansion(t *testing.T) {
	m := New()
	if got := m.AdvanceWidth('\t'); got != 4 {
		t.Errorf("tab advance %v", got)
	}
	if got := m.XForColumn("\ta", 1); got != 4 {
		t.Errorf("after leading tab: %v", got)
	}
	if got := m.XForColumn("ab\tc", 3); got != 4 {
		t.Errorf("tab mid-line should reach the next stop: %v", got)
	}
	if got := m.LineWidth("\t\t"); got != 8 {
		t.Errorf("two tabs: %v", got)
	}

	m.SetTabWidth(8)
	if got := m.XForColumn("\ta", 1); got != 8 {
		t.Errorf("custom tab width: %v", got)
	}
	m.SetTabWidth(0) // ignored
	if got := m.TabWidth(); got != 8 {
		t.Errorf("tab width %d", got)
	}
}

func TestColumnForXInsideTab(t *testing.T) {
	m := New()
	if got := m.ColumnForX("\ta", 1.4); got != 0 {
		t.Errorf("inside the tab: got %d", got)
	}
	// x inside the glyph right after the tab must land on that glyph's
	// column, not past it.
	if got := m.ColumnForX("\ta", 4.4); got != 1 {
		t.Errorf("inside glyph after tab: got %d", got)
	}
	if got := m.ColumnForX("\ta", 10); got != 2 {
		t.Errorf("past end: got %d", got)
	}
}

func TestColumnForXBeyondLineEnd(t *testing.T) {
	m := New()
	if got := m.ColumnForX("hello", 500); got != 5 {
		t.Errorf("got %d", got)
	}
	if got := m.ColumnForX("", 500); got != 0 {
		t.Errorf("empty line: got %d", got)
	}
}

type fixedMeasurer struct{ w float64 }

func (f fixedMeasurer) Measure(string) float64 { return f.w }

func TestCustomMeasurer(t *testing.T) {
	m := NewWithMeasurer(fixedMeasurer{w: 8})
	if got := m.XForColumn("abc", 2); got != 16 {
		t.Errorf("got %v", got)
	}
	if got := m.ColumnForX("abc", 13); got != 2 {
		t.Errorf("got %d", got)
	}
	if got := m.LineWidth("abc"); got != 24 {
		t.Errorf("got %v", got)
	}
}

func TestNilMeasurerFallsBack(t *testing.T) {
	m := NewWithMeasurer(nil)
	if got := m.AdvanceWidth('a'); got != 1 {
		t.Errorf("got %v", got)
	}
	if got := m.AdvanceWidth('日'); got != 2 {
		t.Errorf("got %v", got)
	}
}
