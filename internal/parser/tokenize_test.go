package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestTokenizeHeading(t *testing.T) {
	events := Tokenize([]byte("## Setup\n"))
	require.NotEmpty(t, events)
	assert.Equal(t, EventHeadingStart, events[0].Kind)
	assert.Equal(t, 2, events[0].Level)
	assert.Equal(t, EventText, events[1].Kind)
	assert.Equal(t, "Setup", events[1].Text)
	assert.Equal(t, EventHeadingEnd, events[2].Kind)
}

func TestTokenizeFencedCodeBlock(t *testing.T) {
	events := Tokenize([]byte("```bash\necho one\necho two\n```\n"))
	assert.Equal(t, []EventKind{
		EventCodeBlockStart,
		EventText, EventSoftBreak,
		EventText, EventSoftBreak,
		EventCodeBlockEnd,
	}, kinds(events))
	assert.Equal(t, "bash", events[0].Language)
	assert.Equal(t, "echo one", events[1].Text)
	assert.Equal(t, "echo two", events[3].Text)
}

func TestTokenizeUntaggedFenceHasEmptyLanguage(t *testing.T) {
	events := Tokenize([]byte("```\nraw\n```\n"))
	require.NotEmpty(t, events)
	assert.Equal(t, EventCodeBlockStart, events[0].Kind)
	assert.Equal(t, "", events[0].Language)
}

func TestTokenizeIndentedCodeBlock(t *testing.T) {
	events := Tokenize([]byte("para\n\n    indented code\n"))
	var starts []Event
	for _, ev := range events {
		if ev.Kind == EventCodeBlockStart {
			starts = append(starts, ev)
		}
	}
	require.Len(t, starts, 1)
	assert.Equal(t, "", starts[0].Language)
}

func TestTokenizeInlineCode(t *testing.T) {
	events := Tokenize([]byte("run `ls -la` now\n"))
	var inline []Event
	for _, ev := range events {
		if ev.Kind == EventInlineCode {
			inline = append(inline, ev)
		}
	}
	require.Len(t, inline, 1)
	assert.Equal(t, "ls -la", inline[0].Text)
}

func TestTokenizeSoftAndHardBreaks(t *testing.T) {
	soft := Tokenize([]byte("one\ntwo\n"))
	assert.Contains(t, kinds(soft), EventSoftBreak)

	hard := Tokenize([]byte("one  \ntwo\n"))
	assert.Contains(t, kinds(hard), EventHardBreak)
}

func TestTokenizeListEvents(t *testing.T) {
	events := Tokenize([]byte("- a\n- b\n"))
	ks := kinds(events)
	assert.Contains(t, ks, EventListStart)
	assert.Contains(t, ks, EventItemStart)
	assert.Contains(t, ks, EventItemEnd)
	assert.Contains(t, ks, EventListEnd)
}

func TestTokenizeEmphasisLevels(t *testing.T) {
	events := Tokenize([]byte("*a* **b**\n"))
	ks := kinds(events)
	assert.Contains(t, ks, EventEmphasisStart)
	assert.Contains(t, ks, EventEmphasisEnd)
	assert.Contains(t, ks, EventStrongStart)
	assert.Contains(t, ks, EventStrongEnd)
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(nil))
	assert.Empty(t, Tokenize([]byte("")))
}
