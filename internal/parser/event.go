package parser

// EventKind identifies one kind of structural event in the tokenizer stream.
type EventKind int

const (
	EventText EventKind = iota
	EventInlineCode
	EventSoftBreak
	EventHardBreak
	EventHeadingStart
	EventHeadingEnd
	EventCodeBlockStart
	EventCodeBlockEnd
	EventParagraphStart
	EventParagraphEnd
	EventListStart
	EventListEnd
	EventItemStart
	EventItemEnd
	EventEmphasisStart
	EventEmphasisEnd
	EventStrongStart
	EventStrongEnd
)

// Event is a single structural event produced by the tokenizer.
// Level is set for EventHeadingStart, Language for EventCodeBlockStart
// (empty means an untagged or indented block), Text for EventText and
// EventInlineCode.
type Event struct {
	Kind     EventKind
	Level    int
	Language string
	Text     string
}
