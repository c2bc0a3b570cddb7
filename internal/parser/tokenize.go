package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenize parses markdown source with goldmark and flattens its AST into
// the structural event stream consumed by Compile. Fenced and indented code
// blocks are emitted as a start event, one text + soft-break pair per
// source line, and an end event, so the compiler sees the same shape for
// code content as for prose.
func Tokenize(source []byte) []Event {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var events []Event
	emit := func(ev Event) {
		events = append(events, ev)
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading:
			if entering {
				emit(Event{Kind: EventHeadingStart, Level: node.Level})
			} else {
				emit(Event{Kind: EventHeadingEnd})
			}

		case *ast.FencedCodeBlock:
			if entering {
				lang := ""
				if l := node.Language(source); l != nil {
					lang = string(l)
				}
				emit(Event{Kind: EventCodeBlockStart, Language: lang})
				emitCodeLines(emit, node.Lines(), source)
				return ast.WalkSkipChildren, nil
			}
			emit(Event{Kind: EventCodeBlockEnd})

		case *ast.CodeBlock:
			// Indented code block: no language tag.
			if entering {
				emit(Event{Kind: EventCodeBlockStart})
				emitCodeLines(emit, node.Lines(), source)
				return ast.WalkSkipChildren, nil
			}
			emit(Event{Kind: EventCodeBlockEnd})

		case *ast.CodeSpan:
			if entering {
				emit(Event{Kind: EventInlineCode, Text: codeSpanText(node, source)})
				return ast.WalkSkipChildren, nil
			}

		case *ast.Text:
			if entering {
				emit(Event{Kind: EventText, Text: string(node.Segment.Value(source))})
				if node.HardLineBreak() {
					emit(Event{Kind: EventHardBreak})
				} else if node.SoftLineBreak() {
					emit(Event{Kind: EventSoftBreak})
				}
			}

		case *ast.Paragraph:
			if entering {
				emit(Event{Kind: EventParagraphStart})
			} else {
				emit(Event{Kind: EventParagraphEnd})
			}

		case *ast.List:
			if entering {
				emit(Event{Kind: EventListStart})
			} else {
				emit(Event{Kind: EventListEnd})
			}

		case *ast.ListItem:
			if entering {
				emit(Event{Kind: EventItemStart})
			} else {
				emit(Event{Kind: EventItemEnd})
			}

		case *ast.Emphasis:
			kind := EventEmphasisStart
			if node.Level >= 2 {
				kind = EventStrongStart
			}
			if !entering {
				kind = EventEmphasisEnd
				if node.Level >= 2 {
					kind = EventStrongEnd
				}
			}
			emit(Event{Kind: kind})
		}

		return ast.WalkContinue, nil
	})

	return events
}

// emitCodeLines turns the raw lines of a code block node into text events,
// each followed by a soft break standing in for the line's newline.
func emitCodeLines(emit func(Event), lines *text.Segments, source []byte) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimSuffix(string(seg.Value(source)), "\n")
		emit(Event{Kind: EventText, Text: line})
		emit(Event{Kind: EventSoftBreak})
	}
}

// codeSpanText concatenates the text segments of an inline code span.
func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}
