// Package metrics maps between character columns and horizontal pixel
// offsets. The default measurer treats narrow characters as one unit and
// wide (East Asian, emoji) characters as two, which matches monospace
// cell rendering; hosts with real font metrics supply their own Measurer.
package metrics

import (
	"math"

	"github.com/mattn/go-runewidth"

	"vellum/buffer"
)

// Measurer reports the advance width of a single character. It is called
// with one character at a time; widths accumulate left to right.
type Measurer interface {
	Measure(s string) float64
}

type runeWidthMeasurer struct{}

func (runeWidthMeasurer) Measure(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

const defaultTabWidth = 4

type Metrics struct {
	m        Measurer
	tabWidth float64
}

// New returns metrics backed by the runewidth heuristic.
func New() *Metrics {
	return &Metrics{m: runeWidthMeasurer{}, tabWidth: defaultTabWidth}
}

// NewWithMeasurer returns metrics backed by m. A nil m falls back to the
// default heuristic.
func NewWithMeasurer(m Measurer) *Metrics {
	if m == nil {
		return New()
	}
	return &Metrics{m: m, tabWidth: defaultTabWidth}
}

// SetTabWidth sets the distance between tab stops, in width units.
// Values below 1 are ignored.
func (mt *Metrics) SetTabWidth(w int) {
	if w >= 1 {
		mt.tabWidth = float64(w)
	}
}

func (mt *Metrics) TabWidth() int { return int(mt.tabWidth) }

// AdvanceWidth returns the width of a single character. A tab reports
// the full tab stop distance; its actual width depends on where the tab
// starts, which the scanning functions account for.
func (mt *Metrics) AdvanceWidth(r rune) float64 {
	if r == '\t' {
		return mt.tabWidth
	}
	return mt.m.Measure(string(r))
}

// advanceAt returns the width of r when it starts at offset x. Tabs
// extend to the next tab stop.
func (mt *Metrics) advanceAt(r rune, x float64) float64 {
	if r == '\t' {
		w := mt.tabWidth - math.Mod(x, mt.tabWidth)
		if w <= 0 {
			w = mt.tabWidth
		}
		return w
	}
	return mt.m.Measure(string(r))
}

// LineWidth returns the total width of line.
func (mt *Metrics) LineWidth(line string) float64 {
	var x float64
	for _, r := range line {
		x += mt.advanceAt(r, x)
	}
	return x
}

// XForColumn returns the pixel offset of the left edge of column col on
// line. col clamps to [0, character length]; results are monotonically
// non-decreasing in col.
func (mt *Metrics) XForColumn(line string, col int) float64 {
	if col < 0 {
		return 0
	}
	var x float64
	i := 0
	for _, r := range line {
		if i >= col {
			return x
		}
		x += mt.advanceAt(r, x)
		i++
	}
	return x
}

// ColumnForX returns the column whose left edge is nearest x: a click
// left of a glyph's midpoint lands before it, right of the midpoint
// lands after. Clicks past the last midpoint resolve to end of line, so
// clicking in the empty area right of the text places the cursor at the
// line end rather than on the last character.
func (mt *Metrics) ColumnForX(line string, x float64) int {
	if x <= 0 {
		return 0
	}
	var left float64
	col := 0
	for _, r := range line {
		w := mt.advanceAt(r, left)
		if x < left+w/2 {
			return col
		}
		left += w
		col++
	}
	return buffer.RuneLen(line)
}
