// Package buffer implements a line-indexed mutable text container. All
// positions are (line, column) pairs in character units; lines are split
// on \n and the buffer always holds at least one line.
package buffer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is an inclusive range of line indices invalidated by a mutation.
// Mutations that change the line count extend the span to the last line,
// since every following line shifted position.
type Span struct {
	Start, End int
}

func lineSpan(i int) Span { return Span{Start: i, End: i} }

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	if o.Start < s.Start {
		s.Start = o.Start
	}
	if o.End > s.End {
		s.End = o.End
	}
	return s
}

// RuneLen returns the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

type Buffer struct {
	Lines []string
	Dirty bool
	Undo  *UndoStack

	savedSnapshot string
}

func New() *Buffer {
	return &Buffer{
		Lines: []string{""},
		Undo:  NewUndoStack(),
	}
}

// FromString builds a buffer whose String() round-trips s exactly,
// including a trailing newline and the empty string (one empty line).
func FromString(s string) *Buffer {
	b := New()
	b.Lines = strings.Split(s, "\n")
	b.savedSnapshot = s
	return b
}

func (b *Buffer) LenLines() int { return len(b.Lines) }

// Line returns the text of line i, or "" when i is out of range. Read
// paths never fail.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.Lines) {
		return ""
	}
	return b.Lines[i]
}

// LineRuneLen returns the character length of line i, 0 when out of range.
func (b *Buffer) LineRuneLen(i int) int {
	return RuneLen(b.Line(i))
}

func (b *Buffer) String() string {
	return strings.Join(b.Lines, "\n")
}

// CharCount returns the total number of characters including the newline
// between each pair of lines.
func (b *Buffer) CharCount() int {
	n := len(b.Lines) - 1
	for _, line := range b.Lines {
		n += RuneLen(line)
	}
	return n
}

func (b *Buffer) validate(pos Cursor) error {
	if pos.Line < 0 || pos.Line >= len(b.Lines) {
		return fmt.Errorf("%w: line %d of %d", ErrOutOfRange, pos.Line, len(b.Lines))
	}
	if pos.Col < 0 || pos.Col > RuneLen(b.Lines[pos.Line]) {
		return fmt.Errorf("%w: column %d on line %d (length %d)",
			ErrOutOfRange, pos.Col, pos.Line, RuneLen(b.Lines[pos.Line]))
	}
	return nil
}

// Clamp returns pos pulled into the valid range for this buffer. It is
// the read-path counterpart of the strict validation done by mutations.
func (b *Buffer) Clamp(pos Cursor) Cursor {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(b.Lines) {
		pos.Line = len(b.Lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if max := RuneLen(b.Lines[pos.Line]); pos.Col > max {
		pos.Col = max
	}
	return pos
}

// splitLine splits s at character index col, clamped to the rune
// length. Undo replay can reference positions on lines that have since
// shrunk, so the clamp matters here, not just in Clamp.
func splitLine(s string, col int) (head, tail string) {
	r := []rune(s)
	if col < 0 {
		col = 0
	}
	if col > len(r) {
		col = len(r)
	}
	return string(r[:col]), string(r[col:])
}

// Insert places text at pos. Text containing \n splits the line. Returns
// the span of invalidated lines, or ErrOutOfRange without mutating.
func (b *Buffer) Insert(pos Cursor, text string) (Span, error) {
	if err := b.validate(pos); err != nil {
		return Span{}, err
	}
	span := b.insertAt(pos, text)
	b.Dirty = true
	b.Undo.Push(Operation{Type: OpInsert, Pos: pos, Text: text})
	return span, nil
}

func (b *Buffer) insertAt(pos Cursor, text string) Span {
	head, tail := splitLine(b.Lines[pos.Line], pos.Col)
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.Lines[pos.Line] = head + text + tail
		return lineSpan(pos.Line)
	}

	middle := make([]string, len(parts)-1)
	copy(middle, parts[1:])
	middle[len(middle)-1] += tail
	b.Lines[pos.Line] = head + parts[0]

	rest := make([]string, len(b.Lines)-pos.Line-1)
	copy(rest, b.Lines[pos.Line+1:])
	b.Lines = append(b.Lines[:pos.Line+1], middle...)
	b.Lines = append(b.Lines, rest...)
	return Span{Start: pos.Line, End: len(b.Lines) - 1}
}

// DeleteRange removes the text between start and end (exclusive of the
// character at end). Deleting across a line boundary merges lines. The
// arguments may arrive in either order. Returns ErrOutOfRange without
// mutating when either position is invalid.
func (b *Buffer) DeleteRange(start, end Cursor) (Span, error) {
	if err := b.validate(start); err != nil {
		return Span{}, err
	}
	if err := b.validate(end); err != nil {
		return Span{}, err
	}
	sel := NewSelection(start, end)
	if sel.Empty() {
		return lineSpan(sel.Start.Line), nil
	}
	deleted := b.TextInRange(sel.Start, sel.End)
	span := b.removeAt(sel.Start, deleted)
	b.Dirty = true
	b.Undo.Push(Operation{Type: OpDelete, Pos: sel.Start, Text: deleted})
	return span, nil
}

func (b *Buffer) removeAt(pos Cursor, text string) Span {
	parts := strings.Split(text, "\n")
	head, _ := splitLine(b.Lines[pos.Line], pos.Col)
	if len(parts) == 1 {
		_, tail := splitLine(b.Lines[pos.Line], pos.Col+RuneLen(text))
		b.Lines[pos.Line] = head + tail
		return lineSpan(pos.Line)
	}
	lastLine := pos.Line + len(parts) - 1
	if lastLine >= len(b.Lines) {
		lastLine = len(b.Lines) - 1
	}
	_, tail := splitLine(b.Lines[lastLine], RuneLen(parts[len(parts)-1]))
	b.Lines[pos.Line] = head + tail
	b.Lines = append(b.Lines[:pos.Line+1], b.Lines[lastLine+1:]...)
	return Span{Start: pos.Line, End: len(b.Lines) - 1}
}

// TextInRange returns the text between two positions, clamped to the
// buffer. Positions may arrive in either order.
func (b *Buffer) TextInRange(start, end Cursor) string {
	sel := NewSelection(b.Clamp(start), b.Clamp(end))
	if sel.Start.Line == sel.End.Line {
		r := []rune(b.Lines[sel.Start.Line])
		return string(r[sel.Start.Col:sel.End.Col])
	}
	var sb strings.Builder
	first := []rune(b.Lines[sel.Start.Line])
	sb.WriteString(string(first[sel.Start.Col:]))
	for i := sel.Start.Line + 1; i < sel.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	last := []rune(b.Lines[sel.End.Line])
	sb.WriteString(string(last[:sel.End.Col]))
	return sb.String()
}

// PosAfterInsert returns where a cursor sitting at pos lands after text
// is inserted there.
func PosAfterInsert(pos Cursor, text string) Cursor {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return Cursor{Line: pos.Line, Col: pos.Col + RuneLen(text)}
	}
	return Cursor{
		Line: pos.Line + len(parts) - 1,
		Col:  RuneLen(parts[len(parts)-1]),
	}
}

// Undo / redo

// ApplyUndo reverts the most recent operation group. It reports the
// invalidated span, the position the cursor should take, and whether
// anything was undone.
func (b *Buffer) ApplyUndo() (Span, Cursor, bool) {
	ops := b.Undo.PopUndo()
	if len(ops) == 0 {
		return Span{}, Cursor{}, false
	}
	var span Span
	var cursor Cursor
	// Ops arrive most-recent-first, which is the order inversion needs.
	for i, o := range ops {
		s, c := b.applyInverse(o)
		if i == 0 {
			span = s
		} else {
			span = span.Union(s)
		}
		cursor = c
	}
	b.Dirty = true
	return span, cursor, true
}

// ApplyRedo re-applies the most recently undone operation group.
func (b *Buffer) ApplyRedo() (Span, Cursor, bool) {
	ops := b.Undo.PopRedo()
	if len(ops) == 0 {
		return Span{}, Cursor{}, false
	}
	var span Span
	var cursor Cursor
	for i, o := range ops {
		s, c := b.applyForward(o)
		if i == 0 {
			span = s
		} else {
			span = span.Union(s)
		}
		cursor = c
	}
	b.Dirty = true
	return span, cursor, true
}

func (b *Buffer) applyInverse(op Operation) (Span, Cursor) {
	pos := b.Clamp(op.Pos)
	switch op.Type {
	case OpInsert:
		return b.removeAt(pos, op.Text), pos
	default:
		return b.insertAt(pos, op.Text), PosAfterInsert(pos, op.Text)
	}
}

func (b *Buffer) applyForward(op Operation) (Span, Cursor) {
	pos := b.Clamp(op.Pos)
	switch op.Type {
	case OpInsert:
		return b.insertAt(pos, op.Text), PosAfterInsert(pos, op.Text)
	default:
		return b.removeAt(pos, op.Text), pos
	}
}

// Save bookkeeping. The buffer never touches the filesystem itself;
// hosts serialize with BuildSaveContent and call MarkSaved on success.

func (b *Buffer) MarkSaved() {
	b.savedSnapshot = b.String()
	b.Dirty = false
}

func (b *Buffer) RecomputeDirty() {
	b.Dirty = b.String() != b.savedSnapshot
}

// Normalize applies the save normalization to the live buffer in
// place, so the buffer matches what BuildSaveContent wrote to disk.
// Unlike rebuilding via FromString this keeps the undo history; old
// operations replay with clamped positions. Reports whether anything
// changed.
func (b *Buffer) Normalize(trimTrailing, insertFinalNewline bool) (Span, bool) {
	content := b.BuildSaveContent(trimTrailing, insertFinalNewline)
	if content == b.String() {
		return Span{}, false
	}
	b.Lines = strings.Split(content, "\n")
	return Span{Start: 0, End: len(b.Lines) - 1}, true
}

// BuildSaveContent serializes the buffer for writing to disk. When
// insertFinalNewline is set, output is normalized to exactly one
// trailing newline.
func (b *Buffer) BuildSaveContent(trimTrailing, insertFinalNewline bool) string {
	lines := make([]string, len(b.Lines))
	copy(lines, b.Lines)

	if trimTrailing {
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}
	if insertFinalNewline {
		for len(lines) > 1 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		if lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// Word boundaries

// charClass buckets runes for word motion: 0 whitespace, 1 word
// characters, 2 everything else.
func charClass(r rune) int {
	if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
		return 0
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return 1
	}
	return 2
}

// WordBoundsAt returns the character range of the word containing column
// col on the given line, or (col, col) when there is no word there.
func (b *Buffer) WordBoundsAt(line, col int) (start, end int) {
	r := []rune(b.Line(line))
	if col < 0 || col >= len(r) {
		return len(r), len(r)
	}
	if charClass(r[col]) != 1 {
		return col, col + 1
	}
	start, end = col, col
	for start > 0 && charClass(r[start-1]) == 1 {
		start--
	}
	for end < len(r) && charClass(r[end]) == 1 {
		end++
	}
	return start, end
}

// PrevWordBoundary returns the position of the previous word start
// relative to c, crossing line boundaries.
func (b *Buffer) PrevWordBoundary(c Cursor) Cursor {
	c = b.Clamp(c)
	if c.Col == 0 {
		if c.Line == 0 {
			return c
		}
		return Cursor{Line: c.Line - 1, Col: b.LineRuneLen(c.Line - 1)}
	}
	r := []rune(b.Lines[c.Line])
	col := c.Col - 1
	for col > 0 && charClass(r[col]) == 0 {
		col--
	}
	cls := charClass(r[col])
	for col > 0 && charClass(r[col-1]) == cls {
		col--
	}
	return Cursor{Line: c.Line, Col: col}
}

// NextWordBoundary returns the position after the current word relative
// to c, crossing line boundaries.
func (b *Buffer) NextWordBoundary(c Cursor) Cursor {
	c = b.Clamp(c)
	r := []rune(b.Lines[c.Line])
	if c.Col >= len(r) {
		if c.Line >= len(b.Lines)-1 {
			return c
		}
		return Cursor{Line: c.Line + 1, Col: 0}
	}
	col := c.Col
	cls := charClass(r[col])
	if cls == 0 {
		for col < len(r) && charClass(r[col]) == 0 {
			col++
		}
		if col < len(r) {
			cls = charClass(r[col])
			for col < len(r) && charClass(r[col]) == cls {
				col++
			}
		}
	} else {
		for col < len(r) && charClass(r[col]) == cls {
			col++
		}
		for col < len(r) && charClass(r[col]) == 0 {
			col++
		}
	}
	return Cursor{Line: c.Line, Col: col}
}
