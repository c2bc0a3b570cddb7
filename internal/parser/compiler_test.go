package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runbook-sh/runbook/internal/document"
)

func TestParseSimpleDocument(t *testing.T) {
	content := `# Test Document

This is some text.

` + "```bash" + `
echo "hello world"
` + "```" + `

More text here.
`

	doc := Parse([]byte(content))
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Test Document", doc.Sections[0].Header)
	assert.Equal(t, 1, doc.Sections[0].HeaderLevel)

	steps := doc.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, `echo "hello world"`, steps[0].Content)
	assert.Equal(t, "bash", steps[0].Language)
}

func TestParseMultipleSections(t *testing.T) {
	content := `# Section One

Text in section one.

` + "```bash" + `
ls -la
` + "```" + `

## Section Two

Text in section two.

` + "```python" + `
print("hello")
` + "```" + `
`

	doc := Parse([]byte(content))
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Section One", doc.Sections[0].Header)
	assert.Equal(t, 1, doc.Sections[0].HeaderLevel)
	assert.Equal(t, "Section Two", doc.Sections[1].Header)
	assert.Equal(t, 2, doc.Sections[1].HeaderLevel)
	assert.Equal(t, 2, doc.StepCount())
}

func TestParseUntaggedCodeBlock(t *testing.T) {
	content := `# Test

Some text.

` + "```" + `
not executable
` + "```" + `

More text.
`

	doc := Parse([]byte(content))
	assert.Zero(t, doc.StepCount(), "untagged fences are not steps")

	// The content stays visible as documentation, re-wrapped in fences.
	var text strings.Builder
	for _, s := range doc.Sections {
		for _, b := range s.Blocks {
			if tb, ok := b.(document.TextBlock); ok {
				text.WriteString(tb.Content)
			}
		}
	}
	assert.Contains(t, text.String(), "not executable")
	assert.Contains(t, text.String(), "```")
}

func TestParseIndentedCodeBlockIsNotAStep(t *testing.T) {
	content := `# Test

Some text.

    echo "hello"
    echo "world"

More text.
`

	doc := Parse([]byte(content))
	assert.Zero(t, doc.StepCount())
}

func TestParseEmptyDocument(t *testing.T) {
	doc := Parse(nil)
	assert.Empty(t, doc.Sections)
	assert.Zero(t, doc.StepCount())
}

func TestParseWhitespaceOnlyDocument(t *testing.T) {
	doc := Parse([]byte("  \n\n   \t\n"))
	assert.Empty(t, doc.Sections)
}

func TestParseBasicExampleScenario(t *testing.T) {
	content := `# Basic Example

` + "```bash\nstep one\n```\n\n```bash\nstep two\n```\n\n```bash\nstep three\n```\n\n```bash\nstep four\n```\n\n```python\nprint(5)\n```\n"

	doc := Parse([]byte(content))
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Basic Example", doc.Sections[0].Header)

	steps := doc.Steps()
	require.Len(t, steps, 5)
	assert.Equal(t, "bash", steps[0].Language)
	assert.Equal(t, "python", steps[4].Language)
}

func TestParseHeadingRunRegardlessOfLevel(t *testing.T) {
	content := `# H1 Header

Some text.

## H2 Header

More text.

### H3 Header

` + "```bash" + `
echo "hello"
` + "```" + `

#### H4 Header

More text.

` + "```bash" + `
echo "world"
` + "```" + `
`

	doc := Parse([]byte(content))
	// Every heading starts a new section; levels never nest.
	assert.Len(t, doc.Sections, 4)
	assert.Equal(t, 2, doc.StepCount())
}

func TestParseComplexRunbook(t *testing.T) {
	content := `# Database Migration

Before starting, ensure:
- You have production database credentials
- A tested backup exists from the last hour

## Steps

### Verify backup exists

Check that the automated backup completed successfully:

` + "```bash" + `
ssh backuphost 'ls -lh /var/backups/db/latest.sql.gz'
` + "```" + `

### Stop application servers

This prevents new writes during migration:

` + "```bash" + `
kubectl scale deployment/api-server --replicas=0
` + "```" + `
`

	doc := Parse([]byte(content))
	assert.Len(t, doc.Sections, 4)

	steps := doc.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "ssh backuphost 'ls -lh /var/backups/db/latest.sql.gz'", steps[0].Content)
}

func TestParseInlineCodeKeptInText(t *testing.T) {
	doc := Parse([]byte("# T\n\nRun `ls -la` first.\n"))
	require.Len(t, doc.Sections, 1)
	require.NotEmpty(t, doc.Sections[0].Blocks)

	tb, ok := doc.Sections[0].Blocks[0].(document.TextBlock)
	require.True(t, ok)
	assert.Contains(t, tb.Content, "`ls -la`")
	assert.Zero(t, doc.StepCount())
}

func TestParseListItemsGetBulletMarkers(t *testing.T) {
	doc := Parse([]byte("# T\n\n- first\n- second\n"))
	require.Len(t, doc.Sections, 1)

	tb, ok := doc.Sections[0].Blocks[0].(document.TextBlock)
	require.True(t, ok)
	assert.Contains(t, tb.Content, "• first")
	assert.Contains(t, tb.Content, "• second")
}

func TestParseEmphasisMarkers(t *testing.T) {
	doc := Parse([]byte("# T\n\nthis is *important* and **critical**\n"))
	tb, ok := doc.Sections[0].Blocks[0].(document.TextBlock)
	require.True(t, ok)
	assert.Contains(t, tb.Content, "*important*")
	assert.Contains(t, tb.Content, "**critical**")
}

func TestParseUnicodeContent(t *testing.T) {
	content := "# Unicode Test\n\n```bash\necho \"Hello, 世界! @#$%^&*()\"\n```\n"
	doc := Parse([]byte(content))
	steps := doc.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, `echo "Hello, 世界! @#$%^&*()"`, steps[0].Content)
}

func TestParseCodeBlockLineNumbers(t *testing.T) {
	content := "```bash\nfirst\n```\n\n```bash\nsecond\n```\n"
	doc := Parse([]byte(content))
	steps := doc.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Line)
	assert.Greater(t, steps[1].Line, steps[0].Line)
}

func TestParseTrailingWhitespaceTrimmed(t *testing.T) {
	content := "```bash\necho hi   \n\n\n```\n"
	doc := Parse([]byte(content))
	steps := doc.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "echo hi", steps[0].Content)
}

// ---------------------------------------------------------------------------
// Synthetic event streams: orderings goldmark itself never produces.
// ---------------------------------------------------------------------------

func TestCompileUnterminatedCodeBlockDropsContent(t *testing.T) {
	events := []Event{
		{Kind: EventHeadingStart, Level: 1},
		{Kind: EventText, Text: "Setup"},
		{Kind: EventHeadingEnd},
		{Kind: EventCodeBlockStart, Language: "bash"},
		{Kind: EventText, Text: "echo partial"},
		{Kind: EventSoftBreak},
		// End event never arrives.
	}

	doc := Compile(events)
	require.Len(t, doc.Sections, 1, "the section with the header is still produced")
	assert.Equal(t, "Setup", doc.Sections[0].Header)
	assert.Zero(t, doc.StepCount(), "the unterminated block contributes no steps")
}

func TestCompileEmptyHeadingRun(t *testing.T) {
	events := []Event{
		{Kind: EventHeadingStart, Level: 2},
		{Kind: EventHeadingEnd},
	}

	doc := Compile(events)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "", doc.Sections[0].Header)
	assert.Equal(t, 2, doc.Sections[0].HeaderLevel)
}

func TestCompileUnmatchedEndEvents(t *testing.T) {
	doc := Compile([]Event{
		{Kind: EventCodeBlockEnd},
		{Kind: EventHeadingEnd},
		{Kind: EventItemEnd},
	})
	// Degenerate but well-formed: one empty-headered section from the
	// stray heading end, nothing else.
	assert.Zero(t, doc.StepCount())
	for _, s := range doc.Sections {
		assert.Empty(t, s.Blocks)
	}
}

func TestCompileEmptyStream(t *testing.T) {
	doc := Compile(nil)
	assert.Empty(t, doc.Sections)
}

func TestCompileInlineCodeIgnoredInCodeMode(t *testing.T) {
	events := []Event{
		{Kind: EventCodeBlockStart, Language: "bash"},
		{Kind: EventInlineCode, Text: "ignored"},
		{Kind: EventText, Text: "echo hi"},
		{Kind: EventSoftBreak},
		{Kind: EventCodeBlockEnd},
	}

	doc := Compile(events)
	steps := doc.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, "echo hi", steps[0].Content)
}

func TestCompileHeadingTextStaysOnOneLine(t *testing.T) {
	events := []Event{
		{Kind: EventHeadingStart, Level: 1},
		{Kind: EventText, Text: "first"},
		{Kind: EventSoftBreak},
		{Kind: EventText, Text: "second"},
		{Kind: EventHeadingEnd},
		{Kind: EventParagraphStart},
		{Kind: EventText, Text: "body"},
		{Kind: EventParagraphEnd},
	}

	doc := Compile(events)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "firstsecond", doc.Sections[0].Header)
}
