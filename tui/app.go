// Package tui hosts the editing engine on a terminal screen. The
// terminal grid maps onto the engine's pixel units with a line height
// of one cell and runewidth cell advances, so all geometry decisions
// stay inside the engine.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"vellum/config"
	"vellum/editor"
	"vellum/highlight"
	"vellum/metrics"
)

const chromeRows = 2 // tab bar above, status bar below

type App struct {
	screen     tcell.Screen
	tabs       *editor.TabManager
	classifier *highlight.Classifier
	cfg        *config.Config
	log        zerolog.Logger
	watcher    *fsnotify.Watcher

	quit     bool
	dragging bool
}

// highlightEvent carries an async classification result into the
// event loop so all state changes happen on one goroutine.
type highlightEvent struct {
	tcell.EventTime
	result highlight.Result
}

// fileChangeEvent reports an external modification to an open file.
type fileChangeEvent struct {
	tcell.EventTime
	path string
	op   fsnotify.Op
}

func New(cfg *config.Config, logger zerolog.Logger) *App {
	classifier := highlight.New(cfg.Highlight.Theme, cfg.Highlight.Workers)
	m := metrics.New()
	m.SetTabWidth(cfg.Editor.TabSize)
	tabs := editor.NewTabManager(editor.Options{
		Logger:       logger,
		Classifier:   classifier,
		Metrics:      m,
		LineHeight:   1, // one terminal row per line
		ScrollMargin: cfg.Editor.ScrollMargin,
	})
	return &App{
		tabs:       tabs,
		classifier: classifier,
		cfg:        cfg,
		log:        logger,
	}
}

// Run owns the terminal until the user quits. Previously open files
// are restored when no paths are given on the command line.
func (a *App) Run(paths []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	screen.EnableMouse()
	defer screen.Fini()
	defer a.classifier.Close()

	a.setupWatcher()
	if a.watcher != nil {
		defer a.watcher.Close()
	}

	go a.pumpHighlights()

	if len(paths) > 0 {
		for _, p := range paths {
			a.openFile(p)
		}
	} else {
		a.restoreState()
	}
	a.syncViewportSize()

	for !a.quit {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			a.syncViewportSize()
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *highlightEvent:
			a.tabs.ApplyHighlight(ev.result)
		case *fileChangeEvent:
			a.handleFileChange(ev)
		}
	}

	a.saveState()
	return nil
}

// pumpHighlights forwards classifier results into the tcell event
// queue. It exits when the classifier closes its results channel.
func (a *App) pumpHighlights() {
	for res := range a.classifier.Results() {
		ev := &highlightEvent{result: res}
		ev.SetEventNow()
		if err := a.screen.PostEvent(ev); err != nil {
			// Queue full; the result will be re-requested on next draw.
			a.log.Debug().Err(err).Msg("dropped highlight event")
		}
	}
}

func (a *App) syncViewportSize() {
	_, h := a.screen.Size()
	text := h - chromeRows
	if text < 1 {
		text = 1
	}
	for _, s := range a.tabs.Sessions() {
		s.View.SetViewportHeight(float64(text))
	}
	a.tabs.RequestHighlight()
}

// openFile loads path from disk into a tab. Missing files open as a
// new empty document saved to that path later.
func (a *App) openFile(path string) *editor.Session {
	if s := a.tabs.FindByPath(path); s != nil {
		a.tabs.Activate(s.ID)
		return s
	}
	content := ""
	data, err := os.ReadFile(path)
	if err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		a.log.Error().Err(err).Str("path", path).Msg("open failed")
		return nil
	}
	s := a.tabs.Open(path, content)
	a.watchFile(path)
	a.syncViewportSize()
	return s
}

// save writes the active buffer with the configured normalization and
// marks it clean.
func (a *App) save() {
	s := a.tabs.Active()
	if s == nil || s.Path == "" {
		return
	}
	content := s.Buf.BuildSaveContent(a.cfg.Editor.TrimTrailingSpace, a.cfg.Editor.InsertFinalNewline)
	if err := os.WriteFile(s.Path, []byte(content), 0o644); err != nil {
		a.log.Error().Err(err).Str("path", s.Path).Msg("save failed")
		return
	}
	// Normalization may have changed the text on disk relative to the
	// buffer; fold it into the live lines so what you see is what was
	// written, without losing the undo history.
	s.FinalizeSave(a.cfg.Editor.TrimTrailingSpace, a.cfg.Editor.InsertFinalNewline)
	a.log.Info().Str("path", s.Path).Msg("saved")
}

func (a *App) closeActive() {
	s := a.tabs.Active()
	if s == nil {
		return
	}
	a.tabs.Close(s.ID)
}

// File watching. Each open file's path is watched directly; events are
// debounced in the watcher goroutine so a burst of writes reloads once.

func (a *App) setupWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		a.log.Warn().Err(err).Msg("file watching disabled")
		return
	}
	a.watcher = watcher

	go func() {
		debounce := time.NewTimer(100 * time.Millisecond)
		debounce.Stop()
		var pending []fsnotify.Event

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				pending = append(pending, event)
				debounce.Reset(100 * time.Millisecond)
			case <-debounce.C:
				for _, event := range pending {
					ev := &fileChangeEvent{path: event.Name, op: event.Op}
					ev.SetEventNow()
					a.screen.PostEvent(ev)
				}
				pending = nil
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Debug().Err(err).Msg("watcher error")
			}
		}
	}()
}

func (a *App) watchFile(path string) {
	if a.watcher == nil || path == "" {
		return
	}
	if err := a.watcher.Add(path); err != nil {
		a.log.Debug().Err(err).Str("path", path).Msg("watch failed")
	}
}

// handleFileChange reloads a session whose file changed on disk, but
// only while the buffer has no unsaved edits. A dirty buffer wins over
// the disk copy; the conflict surfaces in the status bar instead.
func (a *App) handleFileChange(ev *fileChangeEvent) {
	s := a.tabs.FindByPath(ev.path)
	if s == nil {
		return
	}
	if ev.op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if s.Buf.Dirty {
		a.log.Warn().Str("path", ev.path).Msg("file changed on disk, buffer has unsaved edits")
		return
	}
	data, err := os.ReadFile(ev.path)
	if err != nil {
		return
	}
	if string(data) == s.Buf.String() {
		return
	}
	s.ReplaceContent(string(data))
	s.Buf.MarkSaved()
	s.RequestHighlight(a.classifier)
	a.log.Info().Str("path", ev.path).Msg("reloaded after external change")
}
