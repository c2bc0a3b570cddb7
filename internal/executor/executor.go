package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/runbook-sh/runbook/internal/config"
	"github.com/runbook-sh/runbook/internal/document"
)

// InterruptExitCode is the process exit status reserved for an operator
// interrupt, matching the conventional SIGINT status.
const InterruptExitCode = 130

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard copies through the system clipboard
type systemClipboard struct{}

func (systemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// ============================================================================
// Executor
// ============================================================================

// Executor owns the sub-shell and clipboard interactions for a runbook
// session. Step contents are never executed by the tool itself; the
// operator runs them in the shell the executor drops them into.
type Executor struct {
	shell     string
	clipboard Clipboard
}

// New creates an executor using the configured shell
func New() *Executor {
	return &Executor{
		shell:     config.GetShell(),
		clipboard: systemClipboard{},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (e *Executor) WithClipboard(c Clipboard) *Executor {
	e.clipboard = c
	return e
}

// Shell returns the configured shell
func (e *Executor) Shell() string {
	return e.shell
}

// ShellCommand builds the interactive sub-shell command with inherited
// stdio, ready for the caller to run (or hand to tea.ExecProcess).
func (e *Executor) ShellCommand() *exec.Cmd {
	cmd := exec.Command(e.shell)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd
}

// CopyStep puts a step's content on the clipboard
func (e *Executor) CopyStep(code *document.CodeBlock) error {
	if code == nil {
		return fmt.Errorf("no step selected")
	}
	if err := e.clipboard.Copy(code.Content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// ExitCode extracts the sub-shell's exit status from its wait error.
// A clean exit returns 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
