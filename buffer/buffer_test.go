package buffer

import (
	"errors"
	"testing"
)

func TestFromStringRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"hello\nworld",
		"\n",
		"\n\n\n",
		"trailing newline\n",
		"héllo wörld",
		"日本語のテキスト\nsecond line",
		"emoji 🎉🚀 line\nmore 🦀",
	}
	for _, s := range cases {
		if got := FromString(s).String(); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestNewHasOneEmptyLine(t *testing.T) {
	b := New()
	if b.LenLines() != 1 || b.Line(0) != "" {
		t.Fatalf("new buffer: lines=%d line0=%q", b.LenLines(), b.Line(0))
	}
}

func TestInsertSingleLine(t *testing.T) {
	b := FromString("hello world")
	span, err := b.Insert(Cursor{Line: 0, Col: 5}, ",")
	if err != nil {
		t.Fatal(err)
	}
	if b.Line(0) != "hello, world" {
		t.Errorf("got %q", b.Line(0))
	}
	if span != (Span{Start: 0, End: 0}) {
		t.Errorf("span %+v", span)
	}
	if !b.Dirty {
		t.Error("expected dirty")
	}
}

func TestInsertSplitsLines(t *testing.T) {
	b := FromString("one two")
	span, err := b.Insert(Cursor{Line: 0, Col: 3}, "\nand\n")
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "one\nand\n two" {
		t.Errorf("got %q", b.String())
	}
	if span.Start != 0 || span.End != 2 {
		t.Errorf("span %+v", span)
	}
}

func TestInsertAtWideGlyphColumn(t *testing.T) {
	b := FromString("日本語")
	if _, err := b.Insert(Cursor{Line: 0, Col: 2}, "X"); err != nil {
		t.Fatal(err)
	}
	if b.Line(0) != "日本X語" {
		t.Errorf("got %q", b.Line(0))
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := FromString("ab\ncd")
	cases := []Cursor{
		{Line: -1, Col: 0},
		{Line: 2, Col: 0},
		{Line: 0, Col: 3},
		{Line: 1, Col: -1},
	}
	for _, pos := range cases {
		if _, err := b.Insert(pos, "x"); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("insert at %+v: err=%v", pos, err)
		}
	}
	if b.String() != "ab\ncd" {
		t.Errorf("failed insert mutated buffer: %q", b.String())
	}
}

func TestDeleteRangeSingleLine(t *testing.T) {
	b := FromString("hello, world")
	span, err := b.DeleteRange(Cursor{0, 5}, Cursor{0, 7})
	if err != nil {
		t.Fatal(err)
	}
	if b.Line(0) != "helloworld" {
		t.Errorf("got %q", b.Line(0))
	}
	if span != (Span{0, 0}) {
		t.Errorf("span %+v", span)
	}
}

func TestDeleteRangeMergesLines(t *testing.T) {
	b := FromString("one\ntwo\nthree")
	span, err := b.DeleteRange(Cursor{0, 2}, Cursor{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if b.String() != "onee" {
		t.Errorf("got %q", b.String())
	}
	if span.Start != 0 || span.End != b.LenLines()-1 {
		t.Errorf("span %+v", span)
	}
	if b.LenLines() != 1 {
		t.Errorf("lines=%d", b.LenLines())
	}
}

func TestDeleteRangeReversedArguments(t *testing.T) {
	b := FromString("abcdef")
	if _, err := b.DeleteRange(Cursor{0, 4}, Cursor{0, 2}); err != nil {
		t.Fatal(err)
	}
	if b.Line(0) != "abef" {
		t.Errorf("got %q", b.Line(0))
	}
}

func TestDeleteRangeOutOfRange(t *testing.T) {
	b := FromString("ab")
	if _, err := b.DeleteRange(Cursor{0, 0}, Cursor{0, 9}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err=%v", err)
	}
}

func TestDeleteAllKeepsOneLine(t *testing.T) {
	b := FromString("a\nb\nc")
	if _, err := b.DeleteRange(Cursor{0, 0}, Cursor{2, 1}); err != nil {
		t.Fatal(err)
	}
	if b.LenLines() != 1 || b.Line(0) != "" {
		t.Errorf("lines=%d line0=%q", b.LenLines(), b.Line(0))
	}
}

func TestTextInRange(t *testing.T) {
	b := FromString("one\ntwo\nthree")
	if got := b.TextInRange(Cursor{0, 1}, Cursor{2, 2}); got != "ne\ntwo\nth" {
		t.Errorf("got %q", got)
	}
	if got := b.TextInRange(Cursor{1, 0}, Cursor{1, 3}); got != "two" {
		t.Errorf("got %q", got)
	}
}

func TestCharCount(t *testing.T) {
	b := FromString("ab\ncd")
	if got := b.CharCount(); got != 5 {
		t.Errorf("got %d", got)
	}
	if got := FromString("🎉").CharCount(); got != 1 {
		t.Errorf("emoji count %d", got)
	}
}

func TestClamp(t *testing.T) {
	b := FromString("ab\ncdef")
	cases := []struct {
		in, want Cursor
	}{
		{Cursor{-3, -3}, Cursor{0, 0}},
		{Cursor{0, 99}, Cursor{0, 2}},
		{Cursor{9, 1}, Cursor{1, 1}},
		{Cursor{9, 99}, Cursor{1, 4}},
	}
	for _, c := range cases {
		if got := b.Clamp(c.in); got != c.want {
			t.Errorf("clamp %+v: got %+v want %+v", c.in, got, c.want)
		}
	}
}

func TestBuildSaveContent(t *testing.T) {
	b := FromString("code  \nmore\t\n\n\n")
	got := b.BuildSaveContent(true, true)
	if got != "code\nmore\n" {
		t.Errorf("got %q", got)
	}

	b2 := FromString("no newline")
	if got := b2.BuildSaveContent(false, true); got != "no newline\n" {
		t.Errorf("got %q", got)
	}
	if got := b2.BuildSaveContent(false, false); got != "no newline" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeKeepsUndoHistory(t *testing.T) {
	b := FromString("code")
	if _, err := b.Insert(Cursor{0, 4}, "!"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Insert(Cursor{0, 5}, "  "); err != nil {
		t.Fatal(err)
	}

	span, changed := b.Normalize(true, true)
	if !changed {
		t.Fatal("normalize reported no change")
	}
	if span.Start != 0 || span.End != b.LenLines()-1 {
		t.Errorf("span = %+v", span)
	}
	if got := b.String(); got != "code!\n" {
		t.Fatalf("after normalize: %q", got)
	}
	if !b.Undo.CanUndo() {
		t.Fatal("undo history lost")
	}

	// Undoing the trailing-space insert replays against a line that no
	// longer holds it; the position clamps and the text stays put.
	if _, _, ok := b.ApplyUndo(); !ok {
		t.Fatal("first undo failed")
	}
	if _, _, ok := b.ApplyUndo(); !ok {
		t.Fatal("second undo failed")
	}
	if got := b.String(); got != "code\n" {
		t.Errorf("after undo: %q", got)
	}

	if _, changed := b.Normalize(true, true); changed {
		t.Error("normalize of clean content reported a change")
	}
}

func TestMarkSavedRecomputeDirty(t *testing.T) {
	b := FromString("x")
	if _, err := b.Insert(Cursor{0, 1}, "y"); err != nil {
		t.Fatal(err)
	}
	b.MarkSaved()
	if b.Dirty {
		t.Error("dirty after save")
	}
	if _, err := b.Insert(Cursor{0, 2}, "z"); err != nil {
		t.Fatal(err)
	}
	b.RecomputeDirty()
	if !b.Dirty {
		t.Error("expected dirty")
	}
	if _, err := b.DeleteRange(Cursor{0, 2}, Cursor{0, 3}); err != nil {
		t.Fatal(err)
	}
	b.RecomputeDirty()
	if b.Dirty {
		t.Error("content matches snapshot, should be clean")
	}
}

func TestWordBoundsAt(t *testing.T) {
	b := FromString("foo bar_baz qux")
	start, end := b.WordBoundsAt(0, 5)
	if start != 4 || end != 11 {
		t.Errorf("got %d,%d", start, end)
	}
	start, end = b.WordBoundsAt(0, 3) // the space
	if start != 3 || end != 4 {
		t.Errorf("non-word: got %d,%d", start, end)
	}
}

func TestWordBoundaries(t *testing.T) {
	b := FromString("foo  bar\nbaz")
	if got := b.NextWordBoundary(Cursor{0, 0}); got != (Cursor{0, 5}) {
		t.Errorf("next from start: %+v", got)
	}
	if got := b.NextWordBoundary(Cursor{0, 8}); got != (Cursor{1, 0}) {
		t.Errorf("next at eol: %+v", got)
	}
	if got := b.PrevWordBoundary(Cursor{0, 8}); got != (Cursor{0, 5}) {
		t.Errorf("prev from eol: %+v", got)
	}
	if got := b.PrevWordBoundary(Cursor{1, 0}); got != (Cursor{0, 8}) {
		t.Errorf("prev at bol: %+v", got)
	}
	if got := b.PrevWordBoundary(Cursor{0, 0}); got != (Cursor{0, 0}) {
		t.Errorf("prev at origin: %+v", got)
	}
}
