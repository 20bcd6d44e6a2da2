package editor

import (
	"vellum/buffer"
	"vellum/highlight"
)

// LineRecord is everything a renderer needs to draw one visible line.
// Columns are character indices into Text. CursorCol is -1 when the
// cursor is not on this line; SelStart/SelEnd are -1 when no selection
// touches it.
type LineRecord struct {
	Index     int
	Text      string
	Spans     []highlight.Span
	CursorCol int
	SelStart  int
	SelEnd    int
}

// Project flattens the visible slice of a session into line records.
// An active composition preview is spliced into its anchor line here,
// and only here; the buffer itself holds no preview text. A nil
// session projects to nothing, which is how an editor with every tab
// closed renders.
func Project(s *Session) []LineRecord {
	if s == nil {
		return nil
	}
	start, end := s.View.VisibleRange()
	records := make([]LineRecord, 0, end-start)
	for line := start; line < end; line++ {
		rec := LineRecord{
			Index:     line,
			Text:      s.Buf.Line(line),
			Spans:     s.LineSpans(line),
			CursorCol: -1,
			SelStart:  -1,
			SelEnd:    -1,
		}
		if s.comp.active && line == s.comp.anchor.Line {
			rec.Text, rec.CursorCol = spliceComposition(rec.Text, s.comp)
			rec.Spans = nil
		} else if line == s.Cursor.Line && !s.comp.active {
			rec.CursorCol = s.Cursor.Col
		}
		if s.Sel != nil && !s.Sel.Empty() {
			rec.SelStart, rec.SelEnd = selectionOnLine(*s.Sel, line, buffer.RuneLen(rec.Text))
		}
		records = append(records, rec)
	}
	return records
}

func spliceComposition(text string, c composition) (string, int) {
	r := []rune(text)
	col := c.anchor.Col
	if col > len(r) {
		col = len(r)
	}
	spliced := string(r[:col]) + c.preview + string(r[col:])
	return spliced, col + buffer.RuneLen(c.preview)
}

func selectionOnLine(sel buffer.Selection, line, lineLen int) (start, end int) {
	if line < sel.Start.Line || line > sel.End.Line {
		return -1, -1
	}
	start = 0
	if line == sel.Start.Line {
		start = sel.Start.Col
	}
	end = lineLen
	if line == sel.End.Line {
		end = sel.End.Col
	}
	return start, end
}
