package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration that loaded but failed validation.
var ErrInvalid = errors.New("invalid configuration")

// searchPaths returns config directories in increasing priority.
func searchPaths(appName string) []string {
	paths := []string{filepath.Join("/etc", appName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	return paths
}

// UserConfigDir returns the per-user config directory.
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range searchPaths(AppName) {
		v.AddConfigPath(path)
	}

	// PANEBAR_TOOLBAR_THEME overrides toolbar.theme
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key so AutomaticEnv can override it even when
// no file mentions it.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.output", c.Log.Output)
	v.SetDefault("log.file_path", c.Log.FilePath)
	v.SetDefault("log.max_size_mb", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age_days", c.Log.MaxAgeDays)
	v.SetDefault("log.enable_caller", c.Log.EnableCaller)
	v.SetDefault("log.no_color", c.Log.NoColor)
	v.SetDefault("diagnostics.level", c.Diagnostics.Level)
	v.SetDefault("panes.dir", c.Panes.Dir)
	v.SetDefault("panes.resource", c.Panes.Resource)
	v.SetDefault("toolbar.theme", c.Toolbar.Theme)
	v.SetDefault("toolbar.center", c.Toolbar.Center)
	v.SetDefault("toolbar.default_pane", c.Toolbar.DefaultPane)
	v.SetDefault("toolbar.transition_frames", c.Toolbar.TransitionFrames)
	v.SetDefault("metrics.addr", c.Metrics.Addr)
	v.SetDefault("ssh.host", c.SSH.Host)
	v.SetDefault("ssh.port", c.SSH.Port)
	v.SetDefault("ssh.host_key_path", c.SSH.HostKeyPath)
	v.SetDefault("ssh.session_rate", c.SSH.SessionRate)
	v.SetDefault("ssh.session_burst", c.SSH.SessionBurst)
}

// readConfig reads cfgFile, or searches the default paths when it is empty.
// A missing file in the search paths is not an error.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration from cfgFile or the search paths, applies
// PANEBAR_* environment overrides and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := newViper()
	if err := readConfig(v, cfgFile); err != nil {
		return nil, err
	}
	return decode(v)
}

// FileUsed returns the config file Load would read, or "".
func FileUsed(cfgFile string) string {
	v := newViper()
	if err := readConfig(v, cfgFile); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Diagnostics.Level < 0 || c.Diagnostics.Level > 1 {
		return fmt.Errorf("%w: diagnostics.level must be 0 or 1, got %d", ErrInvalid, c.Diagnostics.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "pretty":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if c.Toolbar.TransitionFrames < 0 {
		return fmt.Errorf("%w: toolbar.transition_frames must not be negative", ErrInvalid)
	}
	if c.SSH.Port < 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("%w: ssh.port %d out of range", ErrInvalid, c.SSH.Port)
	}
	if c.SSH.SessionRate < 0 || c.SSH.SessionBurst < 0 {
		return fmt.Errorf("%w: ssh session limits must not be negative", ErrInvalid)
	}
	return nil
}
