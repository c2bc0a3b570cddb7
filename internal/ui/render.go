package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runbook-sh/runbook/internal/document"
)

// Step markers by state.
const (
	markDone    = "✔"
	markCurrent = "➜"
	markPending = "○"
	markDanger  = "!"
)

// renderLines renders the whole document into one styled line per rendered
// layout line. The line layout here must agree exactly with the navigator's
// replay rules: a header is three lines, a text block is its content lines
// plus one separator, a code block is one step-header line, its content
// lines and one separator. Scroll synchronization depends on that
// agreement.
func renderLines(doc *document.Document, currentStep int) []string {
	var lines []string
	stepNum := 0

	for i := range doc.Sections {
		section := &doc.Sections[i]

		if section.HasHeader() {
			lines = append(lines, "")
			lines = append(lines, renderHeader(section))
			lines = append(lines, "")
		}

		for _, b := range section.Blocks {
			switch block := b.(type) {
			case document.TextBlock:
				for _, line := range splitLines(block.Content) {
					lines = append(lines, renderTextLine(line))
				}
				lines = append(lines, "")

			case *document.CodeBlock:
				stepNum++
				lines = append(lines, renderStepHeader(block, stepNum, currentStep))
				lines = append(lines, renderStepBody(block, stepNum, currentStep)...)
				lines = append(lines, "")
			}
		}
	}

	return lines
}

// renderHeader styles a section header line, echoing the markdown level.
func renderHeader(section *document.Section) string {
	text := strings.Repeat("#", section.HeaderLevel) + " " + section.Header
	switch section.HeaderLevel {
	case 1:
		return styles.Header1.Render(text)
	case 2:
		return styles.Header2.Render(text)
	default:
		return styles.HeaderN.Render(text)
	}
}

// renderTextLine styles one documentation line, surfacing operator
// call-outs.
func renderTextLine(line string) string {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "DANGER") || strings.Contains(upper, "CRITICAL"):
		return styles.Danger.Render(line)
	case strings.Contains(upper, "WARNING"):
		return styles.Warning.Render(line)
	case strings.Contains(upper, "INFO") || strings.Contains(upper, "NOTE"):
		return styles.Info.Render(line)
	default:
		return line
	}
}

// renderStepHeader renders the "Step N [lang]:" line with a state marker.
func renderStepHeader(code *document.CodeBlock, stepNum, currentStep int) string {
	marker, style := stepState(stepNum, currentStep)
	header := fmt.Sprintf("%s Step %d [%s]:", marker, stepNum, code.Language)
	if isDangerous(code.Content) {
		return style.Render(header) + " " + styles.Danger.Render(markDanger)
	}
	return style.Render(header)
}

// renderStepBody renders the code content with a gutter and per-state style.
func renderStepBody(code *document.CodeBlock, stepNum, currentStep int) []string {
	gutter := "│ "
	codeStyle := styles.CodePending
	switch {
	case stepNum == currentStep:
		codeStyle = styles.CodeCurrent
		gutter = "┃ "
	case stepNum < currentStep:
		codeStyle = styles.CodeDone
	}

	contentLines := splitLines(code.Content)
	out := make([]string, 0, len(contentLines))
	for _, line := range contentLines {
		out = append(out, styles.Border.Render(gutter)+highlightCodeLine(line, code.Language, codeStyle))
	}
	return out
}

func stepState(stepNum, currentStep int) (string, lipgloss.Style) {
	switch {
	case stepNum < currentStep:
		return markDone, styles.StepDone
	case stepNum == currentStep:
		return markCurrent, styles.StepCurrent
	default:
		return markPending, styles.StepPending
	}
}

// highlightCodeLine applies lightweight shell-aware styling: comments,
// dangerous fragments and $variables. Other languages get the base style.
func highlightCodeLine(line, language string, base lipgloss.Style) string {
	if language != "bash" && language != "sh" && language != "zsh" {
		return base.Render(line)
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	if trimmed == "" {
		return indent
	}

	if strings.HasPrefix(trimmed, "#") {
		return indent + styles.Comment.Render(trimmed)
	}
	if isDangerous(trimmed) {
		return indent + styles.Danger.Render(trimmed)
	}
	if strings.ContainsRune(trimmed, '$') {
		return indent + highlightVariables(trimmed, base)
	}
	return indent + base.Render(trimmed)
}

// highlightVariables styles $name references within a shell line.
func highlightVariables(s string, base lipgloss.Style) string {
	var b strings.Builder
	rest := s
	for {
		idx := strings.IndexByte(rest, '$')
		if idx < 0 {
			if rest != "" {
				b.WriteString(base.Render(rest))
			}
			return b.String()
		}
		if idx > 0 {
			b.WriteString(base.Render(rest[:idx]))
		}

		after := rest[idx+1:]
		end := 0
		for end < len(after) && (isWordByte(after[end]) || after[end] == '_') {
			end++
		}
		b.WriteString(styles.Variable.Render("$" + after[:end]))
		rest = after[end:]
	}
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// isDangerous flags commands that deserve a second look before running.
func isDangerous(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "rm -rf") ||
		strings.Contains(lower, "drop table") ||
		strings.Contains(lower, "drop database") ||
		strings.Contains(lower, "delete ") ||
		strings.Contains(lower, "--force")
}

// splitLines splits block content into rendered lines. The empty string is
// zero lines; a single trailing newline does not create a final empty line.
// This mirrors the navigator's line counting.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
