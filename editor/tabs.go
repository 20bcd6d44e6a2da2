package editor

import (
	"errors"

	"github.com/rs/zerolog"

	"vellum/highlight"
	"vellum/metrics"
)

// Options configures a TabManager and the sessions it creates.
type Options struct {
	Logger         zerolog.Logger
	Classifier     *highlight.Classifier
	Metrics        *metrics.Metrics
	ViewportHeight float64
	LineHeight     float64
	ScrollMargin   int
}

// TabManager owns the open sessions in tab order. Sessions are
// addressed by ID; indices are only meaningful for display.
type TabManager struct {
	opts     Options
	log      zerolog.Logger
	sessions []*Session
	active   int // index into sessions, -1 when none
	nextID   int
}

func NewTabManager(opts Options) *TabManager {
	if opts.LineHeight <= 0 {
		opts.LineHeight = 1
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	return &TabManager{
		opts:   opts,
		log:    opts.Logger,
		active: -1,
		nextID: 1,
	}
}

func (tm *TabManager) Len() int             { return len(tm.sessions) }
func (tm *TabManager) Sessions() []*Session { return tm.sessions }
func (tm *TabManager) ActiveIndex() int     { return tm.active }
func (tm *TabManager) Metrics() *metrics.Metrics {
	return tm.opts.Metrics
}
func (tm *TabManager) ScrollMargin() int { return tm.opts.ScrollMargin }

// Active returns the active session, nil when no tabs are open.
func (tm *TabManager) Active() *Session {
	if tm.active < 0 || tm.active >= len(tm.sessions) {
		return nil
	}
	return tm.sessions[tm.active]
}

// Open creates a session for path with the given content and activates
// it. Opening a path that is already open activates the existing tab
// instead of creating a duplicate. An empty path is a scratch document
// and never deduplicates.
func (tm *TabManager) Open(path, content string) *Session {
	if path != "" {
		for i, s := range tm.sessions {
			if s.Path == path {
				tm.active = i
				tm.log.Debug().Str("path", path).Msg("tab already open, activating")
				return s
			}
		}
	}
	s := newSession(tm.nextID, path, content, tm.opts)
	tm.nextID++
	tm.sessions = append(tm.sessions, s)
	tm.active = len(tm.sessions) - 1
	tm.log.Debug().Str("path", path).Int("id", s.ID).Msg("opened tab")
	s.RequestHighlight(tm.opts.Classifier)
	return s
}

// FindByPath returns the open session for path, nil when none.
func (tm *TabManager) FindByPath(path string) *Session {
	if path == "" {
		return nil
	}
	for _, s := range tm.sessions {
		if s.Path == path {
			return s
		}
	}
	return nil
}

// Close removes the session with the given ID. When the active tab
// closes, its previous sibling becomes active; with no previous
// sibling the next one does; closing the last tab leaves no active
// session.
func (tm *TabManager) Close(id int) bool {
	idx := -1
	for i, s := range tm.sessions {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	tm.log.Debug().Int("id", id).Str("path", tm.sessions[idx].Path).Msg("closed tab")
	tm.sessions = append(tm.sessions[:idx], tm.sessions[idx+1:]...)

	switch {
	case len(tm.sessions) == 0:
		tm.active = -1
	case idx < tm.active:
		tm.active--
	case idx == tm.active:
		if idx > 0 {
			tm.active = idx - 1
		} else {
			tm.active = 0
		}
	}
	return true
}

// Activate makes the session with the given ID active.
func (tm *TabManager) Activate(id int) bool {
	for i, s := range tm.sessions {
		if s.ID == id {
			tm.active = i
			return true
		}
	}
	return false
}

// ActivateIndex makes the tab at display index i active.
func (tm *TabManager) ActivateIndex(i int) bool {
	if i < 0 || i >= len(tm.sessions) {
		return false
	}
	tm.active = i
	return true
}

// NextTab and PrevTab cycle the active tab.
func (tm *TabManager) NextTab() {
	if len(tm.sessions) > 0 {
		tm.active = (tm.active + 1) % len(tm.sessions)
	}
}

func (tm *TabManager) PrevTab() {
	if len(tm.sessions) > 0 {
		tm.active = (tm.active + len(tm.sessions) - 1) % len(tm.sessions)
	}
}

// ApplyHighlight routes an async classification result to its session.
// Results for sessions that closed while the work was in flight are
// dropped.
func (tm *TabManager) ApplyHighlight(res highlight.Result) bool {
	for _, s := range tm.sessions {
		if s.ID == res.Session {
			return s.ApplyHighlight(res)
		}
	}
	return false
}

// RequestHighlight submits classification work for the active
// session's visible lines.
func (tm *TabManager) RequestHighlight() {
	if s := tm.Active(); s != nil {
		s.RequestHighlight(tm.opts.Classifier)
	}
}

// GoToDefinition asks p for the definition of the symbol under the
// active cursor. Same-file jumps move the cursor directly; the
// returned location lets the caller open other files. On ErrNotFound
// the cursor does not move.
func (tm *TabManager) GoToDefinition(p DefinitionProvider) (Location, error) {
	s := tm.Active()
	if s == nil {
		return Location{}, ErrNoSession
	}
	if p == nil {
		return Location{}, ErrNotFound
	}
	loc, err := p.Definition(s.Path, s.Cursor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			tm.log.Debug().Str("path", s.Path).Msg("no definition at cursor")
		}
		return Location{}, err
	}
	if loc.Path == "" || loc.Path == s.Path {
		s.MoveTo(loc.Pos)
		s.ScrollIntoView(tm.opts.ScrollMargin)
		loc.Path = s.Path
	}
	return loc, nil
}
