package tui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"vellum/editor"
)

var (
	styleDefault   = tcell.StyleDefault
	styleGutter    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTabBar    = tcell.StyleDefault.Reverse(true)
	styleTabActive = tcell.StyleDefault.Bold(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleScrollbar = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	if h < chromeRows+1 {
		a.screen.Show()
		return
	}

	a.drawTabBar(w)
	a.drawStatusBar(w, h)

	s := a.tabs.Active()
	records := editor.Project(s)
	if s == nil {
		a.screen.HideCursor()
		a.screen.Show()
		return
	}

	gutter := gutterWidth(s.Buf.LenLines())
	textW := w - gutter - 1 // one column reserved for the scrollbar
	a.screen.HideCursor()
	a.tabs.RequestHighlight()

	start, _ := s.View.VisibleRange()
	for _, rec := range records {
		row := rec.Index - start + 1
		if row < 1 || row > h-chromeRows {
			continue
		}
		a.drawLineNumber(rec.Index, gutter, row)
		a.drawLine(rec, gutter, textW, row)
	}
	a.drawScrollbar(s, w-1, h)
	a.screen.Show()
}

func gutterWidth(totalLines int) int {
	w := len(fmt.Sprintf("%d", totalLines)) + 1
	if w < 4 {
		w = 4
	}
	return w
}

func (a *App) drawLineNumber(line, gutter, row int) {
	num := fmt.Sprintf("%*d ", gutter-1, line+1)
	for i, r := range num {
		a.screen.SetContent(i, row, r, nil, styleGutter)
	}
}

// drawLine renders one projected line. Character columns from the
// record are converted to screen cells as we advance, so wide glyphs
// occupy two cells and the cursor lands on the right one.
func (a *App) drawLine(rec editor.LineRecord, gutter, textW, row int) {
	x := gutter
	col := 0
	tabStop := a.tabs.Metrics().TabWidth()
	for _, r := range rec.Text {
		if x-gutter >= textW {
			break
		}
		style := styleForColumn(rec, col)
		if rec.CursorCol == col {
			a.screen.ShowCursor(x, row)
		}
		if r == '\t' {
			// Expand to the next tab stop, matching the metrics the
			// engine used to place the caret.
			width := tabStop - (x-gutter)%tabStop
			for i := 0; i < width; i++ {
				a.screen.SetContent(x+i, row, ' ', nil, style)
			}
			x += width
			col++
			continue
		}
		width := runewidth.RuneWidth(r)
		if width == 0 {
			width = 1
		}
		a.screen.SetContent(x, row, r, nil, style)
		x += width
		col++
	}
	if rec.CursorCol >= col {
		a.screen.ShowCursor(x, row)
	}
	// Selections reaching past the text paint one trailing cell so
	// selected line breaks stay visible.
	if rec.SelStart >= 0 && rec.SelEnd >= col && x-gutter < textW {
		a.screen.SetContent(x, row, ' ', nil, styleDefault.Reverse(true))
	}
}

func styleForColumn(rec editor.LineRecord, col int) tcell.Style {
	style := styleDefault
	for _, sp := range rec.Spans {
		if col >= sp.Start && col < sp.End {
			if sp.Color != "" {
				style = style.Foreground(tcell.GetColor(sp.Color))
			}
			style = style.Bold(sp.Bold).Italic(sp.Italic)
			break
		}
	}
	if rec.SelStart >= 0 && col >= rec.SelStart && col < rec.SelEnd {
		style = style.Reverse(true)
	}
	return style
}

func (a *App) drawTabBar(w int) {
	x := 0
	put := func(text string, style tcell.Style) {
		for _, r := range text {
			if x >= w {
				return
			}
			a.screen.SetContent(x, 0, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
	for i, s := range a.tabs.Sessions() {
		name := filepath.Base(s.Path)
		if s.Path == "" {
			name = "[scratch]"
		}
		if s.Buf.Dirty {
			name += "*"
		}
		style := styleTabBar
		if i == a.tabs.ActiveIndex() {
			style = styleTabActive
		}
		put(" "+name+" ", style)
	}
	for x < w {
		a.screen.SetContent(x, 0, ' ', nil, styleTabBar)
		x++
	}
}

func (a *App) drawStatusBar(w, h int) {
	var left, right string
	if s := a.tabs.Active(); s != nil {
		dirty := ""
		if s.Buf.Dirty {
			dirty = " [+]"
		}
		comp := ""
		if s.Composing() {
			comp = " [IME]"
		}
		left = fmt.Sprintf(" %s%s%s", displayPath(s.Path), dirty, comp)
		right = fmt.Sprintf("%s  %d:%d ", s.Language, s.Cursor.Line+1, s.Cursor.Col+1)
	} else {
		left = " no open files"
	}

	row := h - 1
	x := 0
	for _, r := range left {
		if x >= w {
			break
		}
		a.screen.SetContent(x, row, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
	for x < w-len(right) {
		a.screen.SetContent(x, row, ' ', nil, styleStatus)
		x++
	}
	for _, r := range right {
		if x >= w {
			break
		}
		a.screen.SetContent(x, row, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "[scratch]"
	}
	return path
}

// drawScrollbar marks the visible region's position within the
// document along the right edge.
func (a *App) drawScrollbar(s *editor.Session, x, h int) {
	rows := h - chromeRows
	max := s.View.MaxScroll()
	if max <= 0 || rows < 1 {
		return
	}
	thumb := int(s.View.ScrollTop() / max * float64(rows-1))
	for row := 0; row < rows; row++ {
		r := '│'
		if row == thumb {
			r = '█'
		}
		a.screen.SetContent(x, row+1, r, nil, styleScrollbar)
	}
}
