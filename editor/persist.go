package editor

import (
	"vellum/buffer"
)

// State captures which files are open and where, for restoring a
// workspace across runs. Scratch documents have no path and are not
// captured. All disk I/O stays with the host; this layer only
// snapshots and replays.
type State struct {
	Files  []FileState `json:"files"`
	Active int         `json:"active"`
}

type FileState struct {
	Path      string  `json:"path"`
	Line      int     `json:"line"`
	Col       int     `json:"col"`
	ScrollTop float64 `json:"scroll_top"`
}

// Snapshot records the current tab set.
func Snapshot(tm *TabManager) State {
	st := State{Active: -1}
	for i, s := range tm.Sessions() {
		if s.Path == "" {
			continue
		}
		if i == tm.ActiveIndex() {
			st.Active = len(st.Files)
		}
		st.Files = append(st.Files, FileState{
			Path:      s.Path,
			Line:      s.Cursor.Line,
			Col:       s.Cursor.Col,
			ScrollTop: s.View.ScrollTop(),
		})
	}
	return st
}

// Restore reopens every file in st through open, which loads content
// from wherever the host keeps it. Files that fail to load are skipped
// rather than aborting the whole restore.
func Restore(tm *TabManager, st State, open func(path string) (string, error)) {
	var activeID int
	for i, f := range st.Files {
		content, err := open(f.Path)
		if err != nil {
			continue
		}
		s := tm.Open(f.Path, content)
		s.MoveTo(buffer.Cursor{Line: f.Line, Col: f.Col})
		s.View.SetScrollTop(f.ScrollTop)
		if i == st.Active {
			activeID = s.ID
		}
	}
	if activeID != 0 {
		tm.Activate(activeID)
	}
}
