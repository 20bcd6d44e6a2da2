package tui

import "github.com/atotto/clipboard"

// internalClipboard backs copy/paste when no system clipboard is
// reachable, common over SSH or in minimal containers.
var internalClipboard string

func clipboardWrite(text string) {
	internalClipboard = text
	// Best effort; the internal fallback already has the text.
	_ = clipboard.WriteAll(text)
}

func clipboardRead() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	return internalClipboard
}
