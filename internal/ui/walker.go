package ui

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/runbook-sh/runbook/internal/document"
	"github.com/runbook-sh/runbook/internal/executor"
)

// RunWalker walks a runbook top to bottom on a plain terminal, pausing at
// every executable step until the operator presses Enter. Ctrl+C exits
// immediately with the interrupt status.
func RunWalker(doc *document.Document) error {
	RefreshStyles()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	go func() {
		<-interrupt
		fmt.Println()
		fmt.Println("Interrupted.")
		os.Exit(executor.InterruptExitCode)
	}()

	rule := ""
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			rule = styles.Border.Render(strings.Repeat("─", w))
		}
	}

	reader := bufio.NewReader(os.Stdin)
	prompting := true
	total := doc.StepCount()
	step := 0

	for _, section := range doc.Sections {
		if section.HasHeader() {
			fmt.Println()
			fmt.Println(renderHeader(&section))
			if rule != "" {
				fmt.Println(rule)
			}
		}
		for _, block := range section.Blocks {
			switch b := block.(type) {
			case document.TextBlock:
				for _, line := range splitLines(b.Content) {
					fmt.Println(renderTextLine(line))
				}
			case *document.CodeBlock:
				step++
				fmt.Println()
				fmt.Println(walkerStepHeader(b, step, total))
				printStepBody(b)
				if prompting {
					prompting = promptEnter(reader, step, total)
				}
			}
		}
	}

	fmt.Println()
	if total > 0 {
		fmt.Println(styles.StepDone.Render(fmt.Sprintf("✔ All %d steps walked.", total)))
	} else {
		fmt.Println(styles.Dim.Render("No executable steps."))
	}
	return nil
}

func walkerStepHeader(b *document.CodeBlock, step, total int) string {
	header := fmt.Sprintf("Step %d/%d [%s]:", step, total, b.Language)
	if isDangerous(b.Content) {
		return styles.StepCurrent.Render(header) + " " + styles.Danger.Render(markDanger)
	}
	return styles.StepCurrent.Render(header)
}

func printStepBody(b *document.CodeBlock) {
	for _, line := range splitLines(b.Content) {
		fmt.Println(styles.Border.Render("│ ") + highlightCodeLine(line, b.Language, styles.CodeCurrent))
	}
}

// promptEnter blocks until the operator presses Enter. When stdin closes
// the walk keeps printing but stops pausing, so piped input drains cleanly.
func promptEnter(reader *bufio.Reader, step, total int) bool {
	if step >= total {
		return true
	}
	fmt.Print(styles.Dim.Render("  press Enter to continue..."))
	_, err := reader.ReadString('\n')
	fmt.Println()
	return err == nil
}
