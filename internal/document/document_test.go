package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyDocument(t *testing.T) {
	doc := New()
	assert.Empty(t, doc.Sections)
	assert.Zero(t, doc.StepCount())
	assert.Empty(t, doc.Steps())
}

func TestStepsExtraction(t *testing.T) {
	doc := New()
	doc.Sections = append(doc.Sections, Section{
		Header:      "Setup",
		HeaderLevel: 1,
		Blocks: []Block{
			TextBlock{Content: "Some text"},
			&CodeBlock{Language: "bash", Content: "echo hello", Line: 5},
			TextBlock{Content: "More text"},
		},
	})

	steps := doc.Steps()
	assert.Len(t, steps, 1)
	assert.Equal(t, "echo hello", steps[0].Content)
	assert.Equal(t, 1, doc.StepCount())
}

func TestStepsPreserveDocumentOrder(t *testing.T) {
	doc := New()
	doc.Sections = []Section{
		{
			Header:      "One",
			HeaderLevel: 1,
			Blocks: []Block{
				&CodeBlock{Language: "bash", Content: "first"},
				&CodeBlock{Language: "python", Content: "second"},
			},
		},
		{
			Header:      "Two",
			HeaderLevel: 2,
			Blocks: []Block{
				&CodeBlock{Language: "sh", Content: "third"},
			},
		},
	}

	steps := doc.Steps()
	assert.Len(t, steps, 3)
	assert.Equal(t, "first", steps[0].Content)
	assert.Equal(t, "second", steps[1].Content)
	assert.Equal(t, "third", steps[2].Content)
}

func TestInterpreterMapping(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"bash", "bash"},
		{"sh", "sh"},
		{"python", "python3"},
		{"python3", "python3"},
		{"ruby", "ruby"},
		{"zsh", "zsh"},
		{"fish", "fish"},
		{"sql", "bash"}, // unknown languages fall back to bash
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			code := &CodeBlock{Language: tt.language}
			assert.Equal(t, tt.want, code.Interpreter())
		})
	}
}

func TestIsShell(t *testing.T) {
	assert.True(t, (&CodeBlock{Language: "bash"}).IsShell())
	assert.True(t, (&CodeBlock{Language: "fish"}).IsShell())
	assert.False(t, (&CodeBlock{Language: "python"}).IsShell())
	assert.False(t, (&CodeBlock{Language: ""}).IsShell())
}

func TestHasHeader(t *testing.T) {
	assert.False(t, (&Section{}).HasHeader())
	assert.True(t, (&Section{Header: "X", HeaderLevel: 3}).HasHeader())
}
