// Package editor ties the text buffer, viewport, metrics, and syntax
// classification together into document sessions and manages the open
// set of sessions as tabs.
package editor

import (
	"vellum/buffer"
	"vellum/highlight"
	"vellum/metrics"
	"vellum/viewport"
)

// Session is one open document: its buffer, cursor and selection, its
// scroll window, and per-line highlight state. All positions are in
// character units.
type Session struct {
	ID       int
	Path     string
	Buf      *buffer.Buffer
	Cursor   buffer.Cursor
	Sel      *buffer.Selection
	View     *viewport.Window
	Language string

	comp composition

	// goalCol preserves the horizontal position across vertical moves
	// through short lines. -1 means the current column is the goal.
	goalCol int

	// lineRev tracks the current revision of each line; highlight
	// results are only accepted when their revision still matches.
	// Lines absent from the map are at their initial revision.
	lineRev map[int]int64
	cache   map[int]cachedLine
	nextRev int64
}

type cachedLine struct {
	rev   int64
	spans []highlight.Span
}

const initialRevision = 1

func newSession(id int, path, content string, opts Options) *Session {
	buf := buffer.FromString(content)
	return &Session{
		ID:       id,
		Path:     path,
		Buf:      buf,
		View:     viewport.New(buf.LenLines(), opts.ViewportHeight, opts.LineHeight),
		Language: highlight.DetectLanguage(path),
		goalCol:  -1,
		lineRev:  make(map[int]int64),
		cache:    make(map[int]cachedLine),
		nextRev:  initialRevision + 1,
	}
}

// Cursor and selection

// MoveTo places the cursor at pos, clamped to the buffer, and clears
// any selection.
func (s *Session) MoveTo(pos buffer.Cursor) {
	s.Cursor = s.Buf.Clamp(pos)
	s.Sel = nil
	s.goalCol = -1
}

func (s *Session) MoveLeft() {
	s.goalCol = -1
	if s.Sel != nil {
		s.Cursor = s.Sel.Start
		s.Sel = nil
		return
	}
	if s.Cursor.Col > 0 {
		s.Cursor.Col--
	} else if s.Cursor.Line > 0 {
		s.Cursor.Line--
		s.Cursor.Col = s.Buf.LineRuneLen(s.Cursor.Line)
	}
}

func (s *Session) MoveRight() {
	s.goalCol = -1
	if s.Sel != nil {
		s.Cursor = s.Sel.End
		s.Sel = nil
		return
	}
	if s.Cursor.Col < s.Buf.LineRuneLen(s.Cursor.Line) {
		s.Cursor.Col++
	} else if s.Cursor.Line < s.Buf.LenLines()-1 {
		s.Cursor.Line++
		s.Cursor.Col = 0
	}
}

func (s *Session) MoveUp()   { s.moveVertical(-1) }
func (s *Session) MoveDown() { s.moveVertical(1) }

func (s *Session) moveVertical(delta int) {
	s.Sel = nil
	if s.goalCol < 0 {
		s.goalCol = s.Cursor.Col
	}
	line := s.Cursor.Line + delta
	if line < 0 || line >= s.Buf.LenLines() {
		return
	}
	s.Cursor.Line = line
	s.Cursor.Col = s.goalCol
	if max := s.Buf.LineRuneLen(line); s.Cursor.Col > max {
		s.Cursor.Col = max
	}
}

// MoveWordLeft and MoveWordRight jump across word boundaries, crossing
// line ends.
func (s *Session) MoveWordLeft() {
	s.MoveTo(s.Buf.PrevWordBoundary(s.Cursor))
}

func (s *Session) MoveWordRight() {
	s.MoveTo(s.Buf.NextWordBoundary(s.Cursor))
}

func (s *Session) MoveLineStart() { s.MoveTo(buffer.Cursor{Line: s.Cursor.Line, Col: 0}) }
func (s *Session) MoveLineEnd() {
	s.MoveTo(buffer.Cursor{Line: s.Cursor.Line, Col: s.Buf.LineRuneLen(s.Cursor.Line)})
}

// ClickToPosition maps viewport pixel coordinates to a buffer position
// and moves the cursor there. Clicks never fail; coordinates outside
// the content clamp to the nearest valid position.
func (s *Session) ClickToPosition(x, y float64, m *metrics.Metrics) buffer.Cursor {
	line := s.View.LineAtY(y)
	col := m.ColumnForX(s.Buf.Line(line), x)
	s.MoveTo(buffer.Cursor{Line: line, Col: col})
	return s.Cursor
}

// SelectTo extends the selection from the current anchor to pos. When
// no selection exists the cursor becomes the anchor.
func (s *Session) SelectTo(pos buffer.Cursor) {
	pos = s.Buf.Clamp(pos)
	anchor := s.Cursor
	if s.Sel != nil {
		if s.Cursor.Equal(s.Sel.End) {
			anchor = s.Sel.Start
		} else {
			anchor = s.Sel.End
		}
	}
	sel := buffer.NewSelection(anchor, pos)
	s.Sel = &sel
	s.Cursor = pos
	s.goalCol = -1
}

func (s *Session) SelectAll() {
	last := s.Buf.LenLines() - 1
	sel := buffer.NewSelection(
		buffer.Cursor{Line: 0, Col: 0},
		buffer.Cursor{Line: last, Col: s.Buf.LineRuneLen(last)},
	)
	s.Sel = &sel
	s.Cursor = sel.End
}

// SelectWord selects the word under the cursor.
func (s *Session) SelectWord() {
	start, end := s.Buf.WordBoundsAt(s.Cursor.Line, s.Cursor.Col)
	sel := buffer.NewSelection(
		buffer.Cursor{Line: s.Cursor.Line, Col: start},
		buffer.Cursor{Line: s.Cursor.Line, Col: end},
	)
	s.Sel = &sel
	s.Cursor = sel.End
}

func (s *Session) ClearSelection() { s.Sel = nil }

// SelectedText returns the selected text, "" when nothing is selected.
func (s *Session) SelectedText() string {
	if s.Sel == nil || s.Sel.Empty() {
		return ""
	}
	return s.Buf.TextInRange(s.Sel.Start, s.Sel.End)
}

// ScrollIntoView scrolls the minimum distance that keeps the cursor at
// least margin lines away from the viewport edges.
func (s *Session) ScrollIntoView(margin int) {
	line := s.Cursor.Line
	s.View.ScrollToReveal(line + margin)
	s.View.ScrollToReveal(line - margin)
	s.View.ScrollToReveal(line)
}

// Editing. Every mutation returns the invalidated line span; callers
// redraw those lines and nothing else.

// InsertText inserts at the cursor, replacing the selection when one
// exists. It reports false without mutating while a composition is
// active; composed text only enters the buffer through
// CommitComposition.
func (s *Session) InsertText(text string) (buffer.Span, bool) {
	if s.comp.active || text == "" {
		return buffer.Span{}, false
	}
	span, ok := s.deleteSelection()
	ins, err := s.Buf.Insert(s.Cursor, text)
	if err != nil {
		return span, ok
	}
	if ok {
		span = span.Union(ins)
	} else {
		span = ins
	}
	s.Cursor = buffer.PosAfterInsert(s.Cursor, text)
	s.goalCol = -1
	s.afterMutation(span)
	return span, true
}

func (s *Session) InsertNewline() (buffer.Span, bool) {
	return s.InsertText("\n")
}

// Backspace deletes the selection, or the character before the cursor.
func (s *Session) Backspace() (buffer.Span, bool) {
	if s.comp.active {
		return buffer.Span{}, false
	}
	if span, ok := s.deleteSelection(); ok {
		s.afterMutation(span)
		return span, true
	}
	if s.Cursor.Col == 0 && s.Cursor.Line == 0 {
		return buffer.Span{}, false
	}
	end := s.Cursor
	var start buffer.Cursor
	if s.Cursor.Col > 0 {
		start = buffer.Cursor{Line: s.Cursor.Line, Col: s.Cursor.Col - 1}
	} else {
		start = buffer.Cursor{Line: s.Cursor.Line - 1, Col: s.Buf.LineRuneLen(s.Cursor.Line - 1)}
	}
	span, err := s.Buf.DeleteRange(start, end)
	if err != nil {
		return buffer.Span{}, false
	}
	s.Cursor = start
	s.goalCol = -1
	s.afterMutation(span)
	return span, true
}

// DeleteForward deletes the selection, or the character after the
// cursor.
func (s *Session) DeleteForward() (buffer.Span, bool) {
	if s.comp.active {
		return buffer.Span{}, false
	}
	if span, ok := s.deleteSelection(); ok {
		s.afterMutation(span)
		return span, true
	}
	start := s.Cursor
	var end buffer.Cursor
	if start.Col < s.Buf.LineRuneLen(start.Line) {
		end = buffer.Cursor{Line: start.Line, Col: start.Col + 1}
	} else if start.Line < s.Buf.LenLines()-1 {
		end = buffer.Cursor{Line: start.Line + 1, Col: 0}
	} else {
		return buffer.Span{}, false
	}
	span, err := s.Buf.DeleteRange(start, end)
	if err != nil {
		return buffer.Span{}, false
	}
	s.goalCol = -1
	s.afterMutation(span)
	return span, true
}

// DeleteSelection removes the selected text, if any.
func (s *Session) DeleteSelection() (buffer.Span, bool) {
	if s.comp.active {
		return buffer.Span{}, false
	}
	span, ok := s.deleteSelection()
	if ok {
		s.afterMutation(span)
	}
	return span, ok
}

func (s *Session) deleteSelection() (buffer.Span, bool) {
	if s.Sel == nil || s.Sel.Empty() {
		s.Sel = nil
		return buffer.Span{}, false
	}
	span, err := s.Buf.DeleteRange(s.Sel.Start, s.Sel.End)
	if err != nil {
		return buffer.Span{}, false
	}
	s.Cursor = s.Sel.Start
	s.Sel = nil
	return span, true
}

// Undo reverts the last edit group and places the cursor where the
// edit happened.
func (s *Session) Undo() (buffer.Span, bool) {
	if s.comp.active {
		return buffer.Span{}, false
	}
	span, cursor, ok := s.Buf.ApplyUndo()
	if !ok {
		return buffer.Span{}, false
	}
	s.Cursor = s.Buf.Clamp(cursor)
	s.Sel = nil
	s.Buf.RecomputeDirty()
	s.afterMutation(span)
	return span, true
}

func (s *Session) Redo() (buffer.Span, bool) {
	if s.comp.active {
		return buffer.Span{}, false
	}
	span, cursor, ok := s.Buf.ApplyRedo()
	if !ok {
		return buffer.Span{}, false
	}
	s.Cursor = s.Buf.Clamp(cursor)
	s.Sel = nil
	s.Buf.RecomputeDirty()
	s.afterMutation(span)
	return span, true
}

// ReplaceContent swaps the whole document, used when the file changed
// on disk. Scroll position and cursor are preserved up to clamping.
func (s *Session) ReplaceContent(content string) buffer.Span {
	s.Buf = buffer.FromString(content)
	s.Cursor = s.Buf.Clamp(s.Cursor)
	s.Sel = nil
	s.comp = composition{}
	span := buffer.Span{Start: 0, End: s.Buf.LenLines() - 1}
	s.afterMutation(span)
	return span
}

// FinalizeSave applies the save normalization to the live buffer and
// marks it clean. Unlike ReplaceContent it keeps the undo history;
// undo of an edit the normalization erased replays as a clamped no-op.
func (s *Session) FinalizeSave(trimTrailing, insertFinalNewline bool) buffer.Span {
	span, changed := s.Buf.Normalize(trimTrailing, insertFinalNewline)
	if changed {
		s.Cursor = s.Buf.Clamp(s.Cursor)
		s.Sel = nil
		s.afterMutation(span)
	}
	s.Buf.MarkSaved()
	return span
}

func (s *Session) afterMutation(span buffer.Span) {
	s.View.SetTotalLines(s.Buf.LenLines())
	s.InvalidateLines(span)
}

// Highlight state

func (s *Session) revision(line int) int64 {
	if rev, ok := s.lineRev[line]; ok {
		return rev
	}
	return initialRevision
}

// InvalidateLines bumps the revision of every line in span, so cached
// highlights stop matching and in-flight results for old text are
// rejected on arrival.
func (s *Session) InvalidateLines(span buffer.Span) {
	rev := s.nextRev
	s.nextRev++
	for line := span.Start; line <= span.End && line < s.Buf.LenLines(); line++ {
		s.lineRev[line] = rev
	}
	for line := range s.cache {
		if line >= s.Buf.LenLines() {
			delete(s.cache, line)
			delete(s.lineRev, line)
		}
	}
}

// ApplyHighlight stores a classification result. Results whose
// revision no longer matches the line are dropped; applying the same
// result twice, or results out of order, converges to the same state.
func (s *Session) ApplyHighlight(res highlight.Result) bool {
	if res.Line < 0 || res.Line >= s.Buf.LenLines() {
		return false
	}
	if res.Revision != s.revision(res.Line) {
		return false
	}
	s.cache[res.Line] = cachedLine{rev: res.Revision, spans: res.Spans}
	return true
}

// LineSpans returns the cached spans for a line, nil when none are
// current.
func (s *Session) LineSpans(line int) []highlight.Span {
	c, ok := s.cache[line]
	if !ok || c.rev != s.revision(line) {
		return nil
	}
	return c.spans
}

// RequestHighlight submits classification requests for every visible
// line whose cache is missing or stale. Requests the classifier drops
// are picked up by a later call.
func (s *Session) RequestHighlight(c *highlight.Classifier) {
	if c == nil || s.Language == "" {
		return
	}
	start, end := s.View.VisibleRange()
	for line := start; line < end; line++ {
		rev := s.revision(line)
		if cached, ok := s.cache[line]; ok && cached.rev == rev {
			continue
		}
		c.Submit(highlight.Request{
			Session:  s.ID,
			Line:     line,
			Revision: rev,
			Text:     s.Buf.Line(line),
			Language: s.Language,
		})
	}
}
