package tui

import (
	"testing"

	"github.com/rs/zerolog"

	"vellum/config"
)

func TestNewWiresEditorConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabSize = 8
	cfg.Editor.ScrollMargin = 3

	a := New(cfg, zerolog.Nop())
	defer a.classifier.Close()

	if got := a.tabs.Metrics().TabWidth(); got != 8 {
		t.Errorf("tab width %d not taken from config", got)
	}
	if got := a.tabs.ScrollMargin(); got != 3 {
		t.Errorf("scroll margin %d not taken from config", got)
	}
}
