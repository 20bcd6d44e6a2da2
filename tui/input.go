package tui

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"vellum/buffer"
	"vellum/editor"
)

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		a.quit = true
		return
	case tcell.KeyCtrlS:
		a.save()
		return
	case tcell.KeyCtrlW:
		a.closeActive()
		return
	}

	s := a.tabs.Active()
	if s == nil {
		return
	}
	shift := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	margin := a.cfg.Editor.ScrollMargin

	switch ev.Key() {
	case tcell.KeyLeft:
		a.withSelection(s, shift, func() {
			if ctrl {
				s.MoveWordLeft()
			} else {
				s.MoveLeft()
			}
		})
	case tcell.KeyRight:
		a.withSelection(s, shift, func() {
			if ctrl {
				s.MoveWordRight()
			} else {
				s.MoveRight()
			}
		})
	case tcell.KeyUp:
		a.withSelection(s, shift, s.MoveUp)
	case tcell.KeyDown:
		a.withSelection(s, shift, s.MoveDown)
	case tcell.KeyHome:
		a.withSelection(s, shift, s.MoveLineStart)
	case tcell.KeyEnd:
		a.withSelection(s, shift, s.MoveLineEnd)
	case tcell.KeyPgUp:
		if ctrl {
			a.tabs.PrevTab()
			return
		}
		a.withSelection(s, shift, func() { a.movePage(s, -1) })
	case tcell.KeyPgDn:
		if ctrl {
			a.tabs.NextTab()
			return
		}
		a.withSelection(s, shift, func() { a.movePage(s, 1) })
	case tcell.KeyEnter:
		s.InsertNewline()
	case tcell.KeyTab:
		s.InsertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.Backspace()
	case tcell.KeyDelete:
		s.DeleteForward()
	case tcell.KeyEscape:
		if s.Composing() {
			s.CancelComposition()
		} else {
			s.ClearSelection()
		}
	case tcell.KeyCtrlZ:
		s.Undo()
	case tcell.KeyCtrlY:
		s.Redo()
	case tcell.KeyCtrlA:
		s.SelectAll()
	case tcell.KeyCtrlC:
		a.copySelection(s)
	case tcell.KeyCtrlX:
		if a.copySelection(s) {
			s.DeleteSelection()
		}
	case tcell.KeyCtrlV:
		if text := clipboardRead(); text != "" {
			s.InsertText(strings.ReplaceAll(text, "\r\n", "\n"))
		}
	case tcell.KeyRune:
		s.InsertText(string(ev.Rune()))
	default:
		return
	}
	s.ScrollIntoView(margin)
}

// withSelection runs a cursor movement, extending the selection to the
// new position when shift is held.
func (a *App) withSelection(s *editor.Session, shift bool, move func()) {
	anchor := s.Cursor
	if s.Sel != nil {
		if s.Cursor.Equal(s.Sel.End) {
			anchor = s.Sel.Start
		} else {
			anchor = s.Sel.End
		}
	}
	move()
	if shift && !anchor.Equal(s.Cursor) {
		sel := buffer.NewSelection(anchor, s.Cursor)
		s.Sel = &sel
	}
}

func (a *App) movePage(s *editor.Session, dir int) {
	_, h := a.screen.Size()
	page := h - chromeRows
	if page < 1 {
		page = 1
	}
	s.MoveTo(buffer.Cursor{Line: s.Cursor.Line + dir*page, Col: s.Cursor.Col})
	s.View.ScrollBy(float64(dir * page))
}

func (a *App) copySelection(s *editor.Session) bool {
	text := s.SelectedText()
	if text == "" {
		return false
	}
	clipboardWrite(text)
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	s := a.tabs.Active()
	x, y := ev.Position()

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		if s != nil {
			s.View.ScrollBy(-3)
		}
	case ev.Buttons()&tcell.WheelDown != 0:
		if s != nil {
			s.View.ScrollBy(3)
		}
	case ev.Buttons()&tcell.Button1 != 0:
		if y == 0 {
			if idx := a.tabIndexAt(x); idx >= 0 {
				a.tabs.ActivateIndex(idx)
			}
			a.dragging = false
			return
		}
		if s == nil {
			return
		}
		gutter := gutterWidth(s.Buf.LenLines())
		fx := float64(x - gutter)
		if fx < 0 {
			fx = 0
		}
		fy := float64(y - 1)
		if a.dragging {
			line := s.View.LineAtY(fy)
			col := a.tabs.Metrics().ColumnForX(s.Buf.Line(line), fx)
			s.SelectTo(buffer.Cursor{Line: line, Col: col})
		} else {
			s.ClickToPosition(fx, fy, a.tabs.Metrics())
			a.dragging = true
		}
	default:
		a.dragging = false
	}
}

// tabIndexAt maps an x position on the tab bar to a tab index, -1 for
// the empty area. Widths mirror drawTabBar.
func (a *App) tabIndexAt(x int) int {
	pos := 0
	for i, s := range a.tabs.Sessions() {
		name := filepath.Base(s.Path)
		if s.Path == "" {
			name = "[scratch]"
		}
		if s.Buf.Dirty {
			name += "*"
		}
		pos += runewidth.StringWidth(" " + name + " ")
		if x < pos {
			return i
		}
	}
	return -1
}
