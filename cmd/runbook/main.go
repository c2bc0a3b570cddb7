package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/runbook-sh/runbook/internal/config"
	"github.com/runbook-sh/runbook/internal/document"
	"github.com/runbook-sh/runbook/internal/executor"
	"github.com/runbook-sh/runbook/internal/parser"
	"github.com/runbook-sh/runbook/internal/ui"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "runbook [file]",
	Short: "Step through Markdown runbooks",
	Long: `Operational runbook viewer for plain Markdown files.

Tagged code fences become numbered steps. Walk them one at a
time with the position always in view, drop to a shell to run
the current command, and pick up where you left off.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runViewer,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Open the interactive viewer (default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runViewer,
}

var walkCmd = &cobra.Command{
	Use:   "walk [file]",
	Short: "Walk the runbook linearly, pausing at each step",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

var stepsCmd = &cobra.Command{
	Use:   "steps [file]",
	Short: "List the executable steps without running anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runSteps,
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Pretty-print the runbook to the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(viewCmd)

	rootCmd.PersistentFlags().Bool("no-watch", false, "Disable live reload on file change")
	rootCmd.PersistentFlags().IntP("context", "C", 0, "Lines of lookback kept above the current step")

	viper.BindPFlag("context_lines", rootCmd.PersistentFlags().Lookup("context"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// loadDocument reads and compiles a runbook file.
func loadDocument(path string) (*document.Document, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("error resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, "", fmt.Errorf("read error: %w", err)
	}

	return parser.Parse(data), absPath, nil
}

func applyFlags(cmd *cobra.Command) {
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		config.SetWatch(false)
	}
	if cmd.Flags().Changed("context") {
		n, _ := cmd.Flags().GetInt("context")
		config.SetContextLines(n)
	}
}

func runViewer(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	doc, path, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	return ui.RunViewer(doc, path)
}

func runWalk(cmd *cobra.Command, args []string) error {
	applyFlags(cmd)

	doc, _, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	return ui.RunWalker(doc)
}

func runSteps(cmd *cobra.Command, args []string) error {
	doc, path, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	steps := doc.Steps()
	if len(steps) == 0 {
		fmt.Printf("No executable steps in %s\n", path)
		return nil
	}

	for i, step := range steps {
		fmt.Printf("Step %d [%s]:\n", i+1, step.Language)
		fmt.Println(step.Content)
	}
	fmt.Printf("%d steps total.\n", len(steps))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("error resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}

	width := 100
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("renderer error: %w", err)
	}

	out, err := renderer.RenderBytes(data)
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}

	fmt.Print(string(out))
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ui.ErrInterrupted) {
			os.Exit(executor.InterruptExitCode)
		}
		os.Exit(1)
	}
}
