// Package config loads panebar configuration from YAML files and the
// environment.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
)

// AppName is used for config search paths and the env prefix.
const AppName = "panebar"

// LogConfig controls where and how log records are written.
type LogConfig struct {
	Level        string `mapstructure:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `mapstructure:"format" yaml:"format"`               // text, json, pretty
	Output       string `mapstructure:"output" yaml:"output"`               // stdout, stderr, a file path, or empty
	FilePath     string `mapstructure:"file_path" yaml:"file_path"`         // rotated log file, in addition to output
	MaxSizeMB    int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`     // rotation size
	MaxBackups   int    `mapstructure:"max_backups" yaml:"max_backups"`     // rotated files kept
	MaxAgeDays   int    `mapstructure:"max_age_days" yaml:"max_age_days"`   // rotated file retention
	EnableCaller bool   `mapstructure:"enable_caller" yaml:"enable_caller"` // include source location
	NoColor      bool   `mapstructure:"no_color" yaml:"no_color"`           // pretty format only
}

// DiagnosticsConfig holds the verbosity of recovered-error reports.
// 0 is silent, 1 reports every recovered error.
type DiagnosticsConfig struct {
	Level int `mapstructure:"level" yaml:"level"`
}

// PanesConfig locates pane definition resources.
type PanesConfig struct {
	// Dir holds <resource>.yaml files. Empty uses the built-in panes.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Resource overrides the resource name the manager would derive.
	Resource string `mapstructure:"resource" yaml:"resource"`
}

// ToolbarConfig holds display hints applied through the demo delegate.
type ToolbarConfig struct {
	Theme            string `mapstructure:"theme" yaml:"theme"`
	Center           bool   `mapstructure:"center" yaml:"center"`
	DefaultPane      string `mapstructure:"default_pane" yaml:"default_pane"`
	TransitionFrames int    `mapstructure:"transition_frames" yaml:"transition_frames"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// SSHConfig holds settings for `panebar serve`.
type SSHConfig struct {
	Host        string `mapstructure:"host" yaml:"host"`
	Port        int    `mapstructure:"port" yaml:"port"`
	HostKeyPath string `mapstructure:"host_key_path" yaml:"host_key_path"`
	// SessionRate limits new sessions per second. 0 disables the limit.
	SessionRate  float64 `mapstructure:"session_rate" yaml:"session_rate"`
	SessionBurst int     `mapstructure:"session_burst" yaml:"session_burst"`
}

// Config is the complete panebar configuration.
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics"`
	Panes       PanesConfig       `mapstructure:"panes" yaml:"panes"`
	Toolbar     ToolbarConfig     `mapstructure:"toolbar" yaml:"toolbar"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	SSH         SSHConfig         `mapstructure:"ssh" yaml:"ssh"`
}

// DefaultConfig returns the built-in defaults. The TUI owns the terminal, so
// logs go to a file under the user's state directory.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			FilePath:   DefaultLogPath(),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Diagnostics: DiagnosticsConfig{Level: 1},
		Toolbar: ToolbarConfig{
			Theme:            "dark",
			TransitionFrames: 6,
		},
		SSH: SSHConfig{
			Host:         "localhost",
			Port:         23234,
			HostKeyPath:  filepath.Join(stateDir(), "ssh_host_ed25519"),
			SessionRate:  5,
			SessionBurst: 10,
		},
	}
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	return filepath.Join(stateDir(), "panebar.log")
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", AppName)
	}
	return filepath.Join(os.TempDir(), AppName)
}

// Address returns host:port for the SSH server.
func (c SSHConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
