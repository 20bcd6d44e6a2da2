package tui

import (
	"os"
	"path/filepath"
	"testing"

	"vellum/editor"
)

func TestStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := statePath(dir, "/work")

	st := editor.State{
		Files: []editor.FileState{
			{Path: "/work/a.go", Line: 3, Col: 7, ScrollTop: 40},
		},
		Active: 0,
	}
	saveStateTo(path, "/work", st)

	got, ok := loadStateFrom(path, "/work")
	if !ok {
		t.Fatal("load failed")
	}
	if len(got.Files) != 1 || got.Files[0] != st.Files[0] || got.Active != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestStateWorkspaceMismatch(t *testing.T) {
	dir := t.TempDir()
	path := statePath(dir, "/work")
	saveStateTo(path, "/work", editor.State{
		Files: []editor.FileState{{Path: "/work/a.go"}},
	})

	if _, ok := loadStateFrom(path, "/elsewhere"); ok {
		t.Error("state for another workspace loaded")
	}
}

func TestEmptyStateRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := statePath(dir, "/work")
	saveStateTo(path, "/work", editor.State{
		Files: []editor.FileState{{Path: "/work/a.go"}},
	})
	if _, err := os.Stat(path); err != nil {
		t.Fatal("state file not written")
	}

	saveStateTo(path, "/work", editor.State{})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("stale state file should be removed")
	}
}

func TestStatePathPerWorkspace(t *testing.T) {
	dir := t.TempDir()
	a := statePath(dir, "/projects/a")
	b := statePath(dir, "/projects/b")
	if a == b {
		t.Error("workspaces share a state file")
	}
	if filepath.Dir(a) != dir {
		t.Errorf("path %q outside dir", a)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	if _, ok := loadStateFrom(filepath.Join(t.TempDir(), "none.json"), "/work"); ok {
		t.Error("missing file loaded")
	}
}
