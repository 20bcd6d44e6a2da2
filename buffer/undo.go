package buffer

import "time"

type OpType int

const (
	OpInsert OpType = iota
	OpDelete
)

// Operation records one insert or delete for undo. Positions and text
// follow the buffer's character-unit convention.
type Operation struct {
	Type  OpType
	Pos   Cursor
	Text  string
	Time  time.Time
	Group int // group ID for batched undo (0 = ungrouped)
}

type UndoStack struct {
	undos     []Operation
	redos     []Operation
	nextGroup int
}

const undoGroupInterval = 300 * time.Millisecond

func NewUndoStack() *UndoStack {
	return &UndoStack{nextGroup: 1}
}

// Push records an operation and clears the redo stack. Sequential
// single-character inserts/deletes within the time window are grouped
// so a typed word undoes as one step.
func (u *UndoStack) Push(op Operation) {
	op.Time = time.Now()

	if len(u.undos) > 0 {
		prev := &u.undos[len(u.undos)-1]
		if prev.Type == op.Type && RuneLen(op.Text) == 1 && RuneLen(prev.Text) == 1 &&
			op.Time.Sub(prev.Time) < undoGroupInterval &&
			!isGroupBreak(prev, &op) {
			if prev.Group == 0 {
				prev.Group = u.nextGroup
				u.nextGroup++
			}
			op.Group = prev.Group
		}
	}

	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

// PushGrouped records an operation under an explicit group ID, for
// atomic multi-part edits like paste or workspace-wide replaces.
func (u *UndoStack) PushGrouped(op Operation, groupID int) {
	op.Time = time.Now()
	op.Group = groupID
	u.undos = append(u.undos, op)
	u.redos = u.redos[:0]
}

// NewGroup returns a fresh group ID.
func (u *UndoStack) NewGroup() int {
	id := u.nextGroup
	u.nextGroup++
	return id
}

// isGroupBreak reports whether consecutive ops must not be grouped:
// whitespace ends a word group, and inserts must be adjacent.
func isGroupBreak(prev, cur *Operation) bool {
	ch := []rune(cur.Text)[0]
	if ch == ' ' || ch == '\n' || ch == '\t' {
		return true
	}
	prevCh := []rune(prev.Text)[0]
	if prevCh == ' ' || prevCh == '\n' || prevCh == '\t' {
		return true
	}
	if cur.Type == OpInsert {
		if cur.Pos.Line != prev.Pos.Line || cur.Pos.Col != prev.Pos.Col+1 {
			return true
		}
	}
	return false
}

func (u *UndoStack) CanUndo() bool { return len(u.undos) > 0 }
func (u *UndoStack) CanRedo() bool { return len(u.redos) > 0 }

// PopUndo moves the top operation group to the redo stack and returns
// it most-recent-first, the order inversion is applied in. Returns nil
// when there is nothing to undo.
func (u *UndoStack) PopUndo() []Operation {
	if len(u.undos) == 0 {
		return nil
	}
	var ops []Operation
	op := u.pop(&u.undos, &u.redos)
	ops = append(ops, op)
	if op.Group != 0 {
		for len(u.undos) > 0 && u.undos[len(u.undos)-1].Group == op.Group {
			ops = append(ops, u.pop(&u.undos, &u.redos))
		}
	}
	return ops
}

// PopRedo moves the top operation group back to the undo stack and
// returns it in chronological order for forward replay.
func (u *UndoStack) PopRedo() []Operation {
	if len(u.redos) == 0 {
		return nil
	}
	var ops []Operation
	op := u.pop(&u.redos, &u.undos)
	ops = append(ops, op)
	if op.Group != 0 {
		for len(u.redos) > 0 && u.redos[len(u.redos)-1].Group == op.Group {
			ops = append(ops, u.pop(&u.redos, &u.undos))
		}
	}
	return ops
}

func (u *UndoStack) pop(from, to *[]Operation) Operation {
	op := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, op)
	return op
}
