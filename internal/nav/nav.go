// Package nav tracks the operator's position in a compiled runbook: which
// step is current and how far the rendered document is scrolled. Navigation
// never fails; out-of-range requests are clamped.
package nav

import (
	"strings"
	"time"

	"github.com/runbook-sh/runbook/internal/document"
)

const (
	// DefaultContextLines is how many rendered lines of preceding context
	// are kept above the current step after a scroll sync.
	DefaultContextLines = 5

	// NoticeTTL is how long a transient notice stays visible.
	NoticeTTL = 4 * time.Second

	// headerLines is the rendered footprint of a section header:
	// blank line, header line, blank line.
	headerLines = 3
)

// Notice is a short-lived message surfaced to the operator without
// changing the layout.
type Notice struct {
	Message string
	At      time.Time
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithContextLines overrides the scroll lookback.
func WithContextLines(n int) Option {
	return func(nv *Navigator) {
		if n >= 0 {
			nv.context = n
		}
	}
}

// withClock overrides the time source, for tests.
func withClock(now func() time.Time) Option {
	return func(nv *Navigator) {
		nv.now = now
	}
}

// Navigator is the step-position state machine over a document's steps.
// Current step 0 means "before the first step"; StepCount() means every
// step has been walked.
type Navigator struct {
	doc     *document.Document
	current int
	scroll  int
	context int
	notice  *Notice
	// atEnd suppresses repeated end-of-runbook notices until the
	// operator moves off the terminal state.
	atEnd bool
	now   func() time.Time
}

// New creates a Navigator positioned before the first step.
func New(doc *document.Document, opts ...Option) *Navigator {
	nv := &Navigator{
		doc:     doc,
		context: DefaultContextLines,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(nv)
	}
	return nv
}

// Document returns the navigated document.
func (nv *Navigator) Document() *document.Document {
	return nv.doc
}

// Current returns the current step, in 0..=StepCount().
func (nv *Navigator) Current() int {
	return nv.current
}

// StepCount returns the number of steps in the document.
func (nv *Navigator) StepCount() int {
	return nv.doc.StepCount()
}

// Scroll returns the current scroll offset in rendered lines.
func (nv *Navigator) Scroll() int {
	return nv.scroll
}

// Advance moves to the next step and scrolls it into view. Advancing past
// the last step is absorbed: the position stays put and a transient notice
// is raised once per arrival at the end.
func (nv *Navigator) Advance() {
	total := nv.doc.StepCount()
	if nv.current < total {
		nv.current++
		nv.atEnd = false
		nv.syncScroll()
		return
	}
	if total > 0 && !nv.atEnd {
		nv.atEnd = true
		nv.notice = &Notice{
			Message: "Final step reached. Press q to quit or p to review.",
			At:      nv.now(),
		}
	}
}

// Retreat moves to the previous step and scrolls it into view. Retreating
// before step 0 is a no-op.
func (nv *Navigator) Retreat() {
	nv.atEnd = false
	if nv.current == 0 {
		return
	}
	nv.current--
	nv.syncScroll()
}

// JumpTo sets the scroll offset directly, for manual scrolling. The current
// step does not change. Negative offsets clamp to zero.
func (nv *Navigator) JumpTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	nv.scroll = offset
}

// Notice returns the active transient notice, or "" if none is live.
// Expired notices are cleared on read.
func (nv *Navigator) Notice() string {
	if nv.notice == nil {
		return ""
	}
	if nv.now().Sub(nv.notice.At) >= NoticeTTL {
		nv.notice = nil
		return ""
	}
	return nv.notice.Message
}

// SetDocument swaps in a freshly compiled document, clamping the current
// step to the new step count. Used by live reload.
func (nv *Navigator) SetDocument(doc *document.Document) {
	nv.doc = doc
	if total := doc.StepCount(); nv.current > total {
		nv.current = total
	}
	nv.atEnd = false
	if nv.current > 0 {
		nv.syncScroll()
	} else {
		nv.scroll = 0
	}
}

// syncScroll replays the rendered layout from the top until it reaches the
// current step, then positions the viewport so the step sits a few lines
// below the top edge. The replay is O(document size) on every step change,
// which is fine for operator-authored documents and keeps the offset
// correct under any change to the layout rules.
func (nv *Navigator) syncScroll() {
	steps := nv.doc.Steps()
	if nv.current == 0 || nv.current > len(steps) {
		return
	}
	target := steps[nv.current-1]

	lines := 0
	for i := range nv.doc.Sections {
		section := &nv.doc.Sections[i]
		if section.HasHeader() {
			lines += headerLines
		}
		for _, b := range section.Blocks {
			switch block := b.(type) {
			case document.TextBlock:
				lines += countLines(block.Content) + 1
			case *document.CodeBlock:
				if block == target {
					nv.scroll = max(0, lines-nv.context)
					return
				}
				lines += 1 + countLines(block.Content) + 1
			}
		}
	}
}

// LayoutLines returns the total rendered line count of the document under
// the replay rules. The renderer must agree with this exactly.
func LayoutLines(doc *document.Document) int {
	lines := 0
	for i := range doc.Sections {
		section := &doc.Sections[i]
		if section.HasHeader() {
			lines += headerLines
		}
		for _, b := range section.Blocks {
			switch block := b.(type) {
			case document.TextBlock:
				lines += countLines(block.Content) + 1
			case *document.CodeBlock:
				lines += 1 + countLines(block.Content) + 1
			}
		}
	}
	return lines
}

// countLines counts content lines, treating the empty string as zero.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(s, "\n"), "\n"))
}
