package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Shell        string `mapstructure:"shell"`
	Watch        bool   `mapstructure:"watch"`
	ContextLines int    `mapstructure:"context_lines"`
	ColorHeader  string `mapstructure:"color_header"`
	ColorCurrent string `mapstructure:"color_current"`
	ColorDone    string `mapstructure:"color_done"`
	ColorPending string `mapstructure:"color_pending"`
	ColorDanger  string `mapstructure:"color_danger"`
	ColorDim     string `mapstructure:"color_dim"`
	ColorBorder  string `mapstructure:"color_border"`
	ColorStatus  string `mapstructure:"color_status"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("shell", getDefaultShell())
	viper.SetDefault("watch", true)
	viper.SetDefault("context_lines", 5)    // lines of context above the current step
	viper.SetDefault("color_header", "36")  // Cyan
	viper.SetDefault("color_current", "33") // Yellow
	viper.SetDefault("color_done", "32")    // Green
	viper.SetDefault("color_pending", "90") // Gray
	viper.SetDefault("color_danger", "31")  // Red
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_status", "4") // Blue status bar background

	viper.SetConfigName("runbook")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "runbook"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("RUNBOOK")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetShell returns the shell used for the drop-in sub-shell
func GetShell() string {
	if s := viper.GetString("shell"); s != "" {
		return s
	}
	return getDefaultShell()
}

// GetWatch returns whether the viewer reloads the file on change
func GetWatch() bool {
	return viper.GetBool("watch")
}

// GetContextLines returns the scroll lookback above the current step
func GetContextLines() int {
	return viper.GetInt("context_lines")
}

// GetColorHeader returns ANSI color code for section headers
func GetColorHeader() string {
	return viper.GetString("color_header")
}

// GetColorCurrent returns ANSI color code for the current step
func GetColorCurrent() string {
	return viper.GetString("color_current")
}

// GetColorDone returns ANSI color code for completed steps
func GetColorDone() string {
	return viper.GetString("color_done")
}

// GetColorPending returns ANSI color code for upcoming steps
func GetColorPending() string {
	return viper.GetString("color_pending")
}

// GetColorDanger returns ANSI color code for dangerous commands
func GetColorDanger() string {
	return viper.GetString("color_danger")
}

// GetColorDim returns ANSI color code for de-emphasized text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns the border color
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorStatus returns the status bar background color
func GetColorStatus() string {
	return viper.GetString("color_status")
}

// SetWatch sets watch mode at runtime
func SetWatch(on bool) {
	viper.Set("watch", on)
	C.Watch = on
}

// SetContextLines sets the scroll lookback at runtime
func SetContextLines(n int) {
	viper.Set("context_lines", n)
	C.ContextLines = n
}

func getDefaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}
