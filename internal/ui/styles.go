package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runbook-sh/runbook/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// Section headers by level
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	HeaderN lipgloss.Style

	// Step header styles by state
	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepPending lipgloss.Style

	// Code content styles by state
	CodeDone    lipgloss.Style
	CodeCurrent lipgloss.Style
	CodePending lipgloss.Style

	// Text call-outs
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style

	// Inline code fragments
	Variable lipgloss.Style
	Comment  lipgloss.Style

	// Chrome
	Dim    lipgloss.Style
	Border lipgloss.Style
	Status lipgloss.Style
	Notice lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header1:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Underline(true),
		Header2:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		HeaderN:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		StepDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		StepCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		StepPending: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CodeDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Faint(true),
		CodeCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		CodePending: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Danger:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Variable:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Comment:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:      lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")).Bold(true),
		Notice:      lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("15")).Bold(true),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := parseANSIColor(config.GetColorHeader())
	currentColor := parseANSIColor(config.GetColorCurrent())
	doneColor := parseANSIColor(config.GetColorDone())
	pendingColor := parseANSIColor(config.GetColorPending())
	dangerColor := parseANSIColor(config.GetColorDanger())
	dimColor := lipgloss.Color(config.GetColorDim())
	borderColor := lipgloss.Color(config.GetColorBorder())
	statusBg := lipgloss.Color(config.GetColorStatus())

	s.Header1 = lipgloss.NewStyle().Foreground(headerColor).Bold(true).Underline(true)
	s.Header2 = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	s.HeaderN = lipgloss.NewStyle().Foreground(dimColor).Bold(true)

	s.StepDone = lipgloss.NewStyle().Foreground(doneColor).Bold(true)
	s.StepCurrent = lipgloss.NewStyle().Foreground(currentColor).Bold(true)
	s.StepPending = lipgloss.NewStyle().Foreground(pendingColor)

	s.CodeDone = lipgloss.NewStyle().Foreground(doneColor).Faint(true)
	s.CodeCurrent = lipgloss.NewStyle().Foreground(currentColor).Bold(true)
	s.CodePending = lipgloss.NewStyle().Foreground(pendingColor)

	s.Danger = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Border = lipgloss.NewStyle().Foreground(borderColor)
	s.Status = lipgloss.NewStyle().Background(statusBg).Foreground(lipgloss.Color("15")).Bold(true)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
