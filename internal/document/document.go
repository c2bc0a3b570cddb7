// Package document holds the passive data model for a compiled runbook:
// an ordered list of sections, each an ordered list of text and code
// blocks. Executable steps are a derived view over that tree.
package document

// Block is one unit of section content, either a TextBlock or a *CodeBlock.
type Block interface {
	isBlock()
}

// TextBlock is documentation prose, already reflowed by the compiler.
type TextBlock struct {
	Content string
}

func (TextBlock) isBlock() {}

// CodeBlock is an executable step: a fenced code block that carried a
// language tag in the source.
type CodeBlock struct {
	Language string // fence tag, never empty once materialized
	Content  string // trailing whitespace trimmed
	Line     int    // source line where the fence was opened
}

func (*CodeBlock) isBlock() {}

// Interpreter returns the command used to run this block's language.
func (c *CodeBlock) Interpreter() string {
	switch c.Language {
	case "bash":
		return "bash"
	case "sh":
		return "sh"
	case "python", "python3":
		return "python3"
	case "ruby":
		return "ruby"
	case "perl":
		return "perl"
	case "zsh":
		return "zsh"
	case "fish":
		return "fish"
	default:
		return "bash"
	}
}

// IsShell reports whether the block's language is a shell dialect.
func (c *CodeBlock) IsShell() bool {
	switch c.Language {
	case "bash", "sh", "zsh", "fish":
		return true
	}
	return false
}

// Section is a contiguous run of blocks starting at a heading (or at the
// start of the document). HeaderLevel is 0 when the section has no header.
// Sections form a flat list; the level is display metadata, not nesting.
type Section struct {
	Header      string
	HeaderLevel int
	Blocks      []Block
}

// HasHeader reports whether the section starts at a heading.
func (s *Section) HasHeader() bool {
	return s.HeaderLevel > 0
}

// Document is an ordered sequence of sections in source order.
type Document struct {
	Sections []Section
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Steps returns every code block across all sections, in document order.
// It is recomputed on each call; step N is Steps()[N-1].
func (d *Document) Steps() []*CodeBlock {
	var steps []*CodeBlock
	for i := range d.Sections {
		for _, b := range d.Sections[i].Blocks {
			if code, ok := b.(*CodeBlock); ok {
				steps = append(steps, code)
			}
		}
	}
	return steps
}

// StepCount returns the number of executable steps in the document.
func (d *Document) StepCount() int {
	n := 0
	for i := range d.Sections {
		for _, b := range d.Sections[i].Blocks {
			if _, ok := b.(*CodeBlock); ok {
				n++
			}
		}
	}
	return n
}
