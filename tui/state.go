package tui

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vellum/editor"
)

// Workspace state is keyed by working directory, so each project gets
// its own tab set back when the editor restarts there.

type workspaceState struct {
	WorkingDir string       `json:"working_dir"`
	State      editor.State `json:"state"`
}

func stateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vellum", "sessions")
}

func statePath(dir, workDir string) string {
	hash := sha256.Sum256([]byte(workDir))
	return filepath.Join(dir, fmt.Sprintf("%x.json", hash[:8]))
}

func (a *App) saveState() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	saveStateTo(statePath(stateDir(), wd), wd, editor.Snapshot(a.tabs))
}

func saveStateTo(path, workDir string, st editor.State) {
	if path == "" {
		return
	}
	if len(st.Files) == 0 {
		// No file-backed tabs: clear any stale state so closed tabs
		// don't come back next run.
		os.Remove(path)
		return
	}
	data, err := json.MarshalIndent(workspaceState{WorkingDir: workDir, State: st}, "", "  ")
	if err != nil {
		return
	}
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, data, 0o644)
}

func (a *App) restoreState() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	st, ok := loadStateFrom(statePath(stateDir(), wd), wd)
	if !ok {
		return
	}
	editor.Restore(a.tabs, st, func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	for _, s := range a.tabs.Sessions() {
		a.watchFile(s.Path)
	}
}

func loadStateFrom(path, workDir string) (editor.State, bool) {
	if path == "" {
		return editor.State{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return editor.State{}, false
	}
	var ws workspaceState
	if err := json.Unmarshal(data, &ws); err != nil {
		return editor.State{}, false
	}
	if ws.WorkingDir != workDir {
		return editor.State{}, false
	}
	return ws.State, true
}
