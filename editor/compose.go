package editor

import "vellum/buffer"

// composition holds in-progress IME input. The preview text is never
// written to the buffer; it is overlaid at the anchor during render and
// becomes a single buffer insertion only on commit. A crash or cancel
// mid-composition therefore leaves the document exactly as it was.
type composition struct {
	active  bool
	anchor  buffer.Cursor
	preview string
}

// Composing reports whether an IME composition is in progress.
func (s *Session) Composing() bool { return s.comp.active }

// CompositionPreview returns the anchor and current preview text, with
// active false when no composition is running.
func (s *Session) CompositionPreview() (anchor buffer.Cursor, preview string, active bool) {
	return s.comp.anchor, s.comp.preview, s.comp.active
}

// StartComposition begins IME input at the cursor. An existing
// selection is deleted first, the way typing over a selection would.
// Starting while already composing restarts at the same anchor.
func (s *Session) StartComposition() buffer.Span {
	if s.comp.active {
		s.comp.preview = ""
		return lineSpanOf(s.comp.anchor.Line)
	}
	span, deleted := s.deleteSelection()
	if deleted {
		s.afterMutation(span)
	}
	s.comp = composition{active: true, anchor: s.Cursor}
	if !deleted {
		span = lineSpanOf(s.Cursor.Line)
	}
	return span
}

// UpdateComposition replaces the preview text. Each update supersedes
// the previous one; nothing accumulates in the buffer.
func (s *Session) UpdateComposition(preview string) (buffer.Span, bool) {
	if !s.comp.active {
		return buffer.Span{}, false
	}
	s.comp.preview = preview
	return lineSpanOf(s.comp.anchor.Line), true
}

// CommitComposition ends the composition, inserting text at the anchor
// as one atomic edit. The committed text may differ from the last
// preview; an empty commit behaves like cancel.
func (s *Session) CommitComposition(text string) (buffer.Span, bool) {
	if !s.comp.active {
		return buffer.Span{}, false
	}
	anchor := s.comp.anchor
	s.comp = composition{}
	if text == "" {
		return lineSpanOf(anchor.Line), true
	}
	span, err := s.Buf.Insert(anchor, text)
	if err != nil {
		return lineSpanOf(anchor.Line), false
	}
	s.Cursor = buffer.PosAfterInsert(anchor, text)
	s.goalCol = -1
	s.afterMutation(span)
	return span, true
}

// CancelComposition discards the preview and returns to the state
// before StartComposition.
func (s *Session) CancelComposition() (buffer.Span, bool) {
	if !s.comp.active {
		return buffer.Span{}, false
	}
	line := s.comp.anchor.Line
	s.comp = composition{}
	return lineSpanOf(line), true
}

func lineSpanOf(line int) buffer.Span {
	return buffer.Span{Start: line, End: line}
}
