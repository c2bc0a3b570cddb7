// Package parser turns markdown source into a document.Document. Goldmark
// supplies the structural events; Compile folds them into sections, text
// blocks and executable code blocks. The fold never fails: malformed or
// truncated event streams produce a degenerate but well-formed document.
package parser

import (
	"strings"

	"github.com/runbook-sh/runbook/internal/document"
)

// parseMode is the compiler's accumulation mode. Heading and code mode are
// mutually exclusive by construction.
type parseMode int

const (
	modeNeutral parseMode = iota
	modeHeading
	modeCode
)

// Parse compiles markdown source into a document.
func Parse(source []byte) *document.Document {
	return Compile(Tokenize(source))
}

// Compile folds a structural event stream into a document. It tolerates any
// event ordering, including unmatched start/end pairs: an unterminated code
// block contributes nothing, a heading with no text yields an empty header.
func Compile(events []Event) *document.Document {
	doc := document.New()
	var current document.Section

	var textBuf, codeBuf strings.Builder
	mode := modeNeutral
	headingLevel := 1
	codeLang := ""
	codeLine := 1
	line := 1

	// flushText moves non-blank accumulated text into the current section.
	flushText := func() {
		if strings.TrimSpace(textBuf.String()) != "" {
			current.Blocks = append(current.Blocks, document.TextBlock{Content: textBuf.String()})
		}
		textBuf.Reset()
	}

	// pushSection emits the current section if it has a header or content.
	pushSection := func() {
		if len(current.Blocks) > 0 || current.HasHeader() {
			doc.Sections = append(doc.Sections, current)
		}
	}

	for _, ev := range events {
		switch ev.Kind {
		case EventHeadingStart:
			flushText()
			mode = modeHeading
			headingLevel = ev.Level
			if headingLevel < 1 {
				headingLevel = 1
			}

		case EventHeadingEnd:
			mode = modeNeutral
			pushSection()
			current = document.Section{
				Header:      strings.TrimSpace(textBuf.String()),
				HeaderLevel: headingLevel,
			}
			textBuf.Reset()

		case EventCodeBlockStart:
			flushText()
			mode = modeCode
			codeLang = ev.Language
			codeLine = line

		case EventCodeBlockEnd:
			mode = modeNeutral
			if codeLang != "" {
				current.Blocks = append(current.Blocks, &document.CodeBlock{
					Language: codeLang,
					Content:  strings.TrimRight(codeBuf.String(), " \t\r\n"),
					Line:     codeLine,
				})
			} else if strings.TrimSpace(codeBuf.String()) != "" {
				// Untagged blocks stay visible as documentation but are
				// not executable: re-wrap them in fence markers.
				textBuf.WriteString("```\n")
				textBuf.WriteString(codeBuf.String())
				textBuf.WriteString("```\n")
			}
			codeBuf.Reset()
			codeLang = ""

		case EventText:
			if mode == modeCode {
				codeBuf.WriteString(ev.Text)
			} else {
				textBuf.WriteString(ev.Text)
			}

		case EventInlineCode:
			if mode != modeCode {
				textBuf.WriteString("`")
				textBuf.WriteString(ev.Text)
				textBuf.WriteString("`")
			}

		case EventSoftBreak:
			switch mode {
			case modeCode:
				codeBuf.WriteByte('\n')
				line++
			case modeNeutral:
				// Markdown reflow: a soft break is a space.
				textBuf.WriteByte(' ')
			}
			// Heading text stays on one line.

		case EventHardBreak:
			if mode == modeCode {
				codeBuf.WriteByte('\n')
			} else {
				textBuf.WriteByte('\n')
			}
			line++

		case EventParagraphStart:
			if s := textBuf.String(); s != "" && !strings.HasSuffix(s, "\n") {
				textBuf.WriteByte('\n')
			}

		case EventParagraphEnd, EventListStart, EventListEnd:
			textBuf.WriteByte('\n')

		case EventItemStart:
			textBuf.WriteString("• ")

		case EventItemEnd:
			textBuf.WriteByte('\n')

		case EventEmphasisStart, EventEmphasisEnd:
			textBuf.WriteByte('*')

		case EventStrongStart, EventStrongEnd:
			textBuf.WriteString("**")
		}
	}

	// End of stream. A code block that never closed drops its buffered
	// content; pending text is flushed as usual.
	if mode != modeCode {
		flushText()
	}
	pushSection()

	return doc
}
