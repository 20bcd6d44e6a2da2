package buffer

// Cursor is a position in character units: Line indexes a buffer line,
// Col indexes a rune within that line (0..RuneLen, inclusive at the end).
// Byte offsets never appear in the public API.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

// Selection is an ordered pair of positions. Start never comes after End,
// regardless of which direction the user dragged.
type Selection struct {
	Start, End Cursor
}

// NewSelection orders a and b so the result holds Start <= End.
func NewSelection(a, b Cursor) Selection {
	if a.Before(b) {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Contains(c Cursor) bool {
	if c.Before(s.Start) || s.End.Before(c) {
		return false
	}
	return true
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}
