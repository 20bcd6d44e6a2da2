package editor

import "vellum/buffer"

// Location names a position in a document, possibly one that is not
// open yet.
type Location struct {
	Path string
	Pos  buffer.Cursor
}

// DefinitionProvider resolves a symbol position to its definition site.
// Implementations return ErrNotFound when nothing is known for pos.
type DefinitionProvider interface {
	Definition(path string, pos buffer.Cursor) (Location, error)
}
