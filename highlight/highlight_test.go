package highlight

import (
	"testing"
	"unicode/utf8"
)

func TestClassifyLineSpanBounds(t *testing.T) {
	c := New("monokai", 1)
	defer c.Close()

	text := `x := "héllo wörld" // комментарий`
	spans := c.classifyLine(text, "Go")
	max := utf8.RuneCountInString(text)
	prevEnd := 0
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > max || sp.Start >= sp.End {
			t.Errorf("bad span %+v (line length %d)", sp, max)
		}
		if sp.Start < prevEnd {
			t.Errorf("span %+v overlaps previous ending at %d", sp, prevEnd)
		}
		prevEnd = sp.End
	}
}

func TestClassifyLineStylesKeyword(t *testing.T) {
	c := New("monokai", 1)
	defer c.Close()

	spans := c.classifyLine("return nil", "Go")
	if len(spans) == 0 {
		t.Fatal("expected spans for Go keywords")
	}
	if spans[0].Start != 0 || spans[0].Color == "" {
		t.Errorf("keyword span %+v", spans[0])
	}
}

func TestClassifyLineEmptyInputs(t *testing.T) {
	c := New("monokai", 1)
	defer c.Close()

	if spans := c.classifyLine("", "Go"); spans != nil {
		t.Errorf("empty text: %v", spans)
	}
	if spans := c.classifyLine("plain text", ""); spans != nil {
		t.Errorf("no language: %v", spans)
	}
}

func TestSubmitEchoesRevision(t *testing.T) {
	c := New("monokai", 2)
	defer c.Close()

	req := Request{Session: 7, Line: 42, Revision: 3, Text: "func main() {}", Language: "Go"}
	if !c.Submit(req) {
		t.Fatal("submit dropped")
	}
	res := <-c.Results()
	if res.Session != 7 || res.Line != 42 || res.Revision != 3 {
		t.Errorf("result %+v", res)
	}
}

func TestSubmitAfterClose(t *testing.T) {
	c := New("monokai", 1)
	c.Close()
	if c.Submit(Request{Text: "x", Language: "Go"}) {
		t.Error("submit should report drop after close")
	}
	if _, ok := <-c.Results(); ok {
		t.Error("results channel should be closed")
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	c := New("no-such-theme", 1)
	defer c.Close()
	if c.style == nil {
		t.Fatal("nil style")
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := DetectLanguage("main.go"); got != "Go" {
		t.Errorf("got %q", got)
	}
	if got := DetectLanguage("notes.unknownext"); got != "" {
		t.Errorf("got %q", got)
	}
}
