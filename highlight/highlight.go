// Package highlight classifies single lines of source text into colored
// spans using chroma lexers. Work runs on a small worker pool; results
// carry the session, line, and revision of the request so callers can
// discard answers that arrived after the line changed again.
package highlight

import (
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Span colors the half-open character range [Start, End) of one line.
// Color is a hex string like "#7fd962"; empty means the default
// foreground.
type Span struct {
	Start  int
	End    int
	Color  string
	Bold   bool
	Italic bool
}

// Request asks for one line to be classified. Revision is an opaque
// counter the caller bumps whenever the line changes; it is echoed back
// unmodified in the Result.
type Request struct {
	Session  int
	Line     int
	Revision int64
	Text     string
	Language string
}

type Result struct {
	Session  int
	Line     int
	Revision int64
	Spans    []Span
}

// Classifier runs line classification on background workers. Submit
// never blocks; when the queue is full the request is dropped and the
// caller is expected to re-request visible lines later.
type Classifier struct {
	style    *chroma.Style
	requests chan Request
	results  chan Result
	wg       sync.WaitGroup
	closed   atomic.Bool

	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

func New(theme string, workers int) *Classifier {
	if workers < 1 {
		workers = 1
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	c := &Classifier{
		style:    style,
		requests: make(chan Request, 256),
		results:  make(chan Result, 256),
		lexers:   make(map[string]chroma.Lexer),
	}
	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
	return c
}

// Submit enqueues a request. It reports false when the request was
// dropped because the queue is full or the classifier is closed.
func (c *Classifier) Submit(req Request) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.requests <- req:
		return true
	default:
		return false
	}
}

// Results returns the channel classification answers arrive on. It is
// closed after Close once the workers drain.
func (c *Classifier) Results() <-chan Result {
	return c.results
}

// Close stops the workers. Pending requests are still processed.
func (c *Classifier) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.requests)
		c.wg.Wait()
		close(c.results)
	}
}

func (c *Classifier) worker() {
	defer c.wg.Done()
	for req := range c.requests {
		res := Result{
			Session:  req.Session,
			Line:     req.Line,
			Revision: req.Revision,
			Spans:    c.classifyLine(req.Text, req.Language),
		}
		select {
		case c.results <- res:
		default:
			// Receiver is behind; stale results are re-requested anyway.
		}
	}
}

func (c *Classifier) lexer(language string) chroma.Lexer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lx, ok := c.lexers[language]; ok {
		return lx
	}
	lx := lexers.Get(language)
	if lx == nil {
		lx = lexers.Fallback
	}
	lx = chroma.Coalesce(lx)
	c.lexers[language] = lx
	return lx
}

func (c *Classifier) classifyLine(text, language string) []Span {
	if text == "" || language == "" {
		return nil
	}
	iter, err := c.lexer(language).Tokenise(nil, text)
	if err != nil {
		return nil
	}
	var spans []Span
	col := 0
	for _, tok := range iter.Tokens() {
		n := utf8.RuneCountInString(tok.Value)
		if n == 0 {
			continue
		}
		entry := c.style.Get(tok.Type)
		sp := Span{Start: col, End: col + n}
		if entry.Colour.IsSet() {
			sp.Color = entry.Colour.String()
		}
		sp.Bold = entry.Bold == chroma.Yes
		sp.Italic = entry.Italic == chroma.Yes
		if sp.Color != "" || sp.Bold || sp.Italic {
			spans = append(spans, sp)
		}
		col += n
	}
	return spans
}

// DetectLanguage maps a file name to a chroma lexer name, or "" when
// nothing matches.
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}
