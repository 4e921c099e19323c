package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// floats to make TOML friendly.
type FileConfig struct {
	Port         string `toml:"port"`
	BaudRate     int    `toml:"baud_rate"`
	OutputDir    string `toml:"output_dir"`
	OutputFile   string `toml:"output_file"`
	ChartPath    string `toml:"chart_path"`
	SettingsDir  string `toml:"settings_dir"`
	PollInterval string `toml:"poll_interval"`

	Chart ChartFileConfig `toml:"chart"`
}

// ChartFileConfig holds the operator-set axis limits. All fields are
// optional; absent values keep the defaults (0-60 minutes, 0-14 pH).
type ChartFileConfig struct {
	XMin *float64 `toml:"x_min"`
	XMax *float64 `toml:"x_max"`
	YMin *float64 `toml:"y_min"`
	YMax *float64 `toml:"y_max"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.phlog/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".phlog", "config.toml")
	}
	return ""
}

// DefaultSettingsDir returns the default directory for the persisted
// operator settings, next to the default config file.
func DefaultSettingsDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".phlog")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", fc.Port, &cfg.Port)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("output-file", fc.OutputFile, &cfg.OutputFile)
	s.setString("chart", fc.ChartPath, &cfg.ChartPath)
	s.setString("settings-dir", fc.SettingsDir, &cfg.SettingsDir)

	s.setInt("baud", fc.BaudRate, &cfg.BaudRate)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setFloat("x-min", fc.Chart.XMin, &cfg.XMin)
	s.setFloat("x-max", fc.Chart.XMax, &cfg.XMax)
	s.setFloat("y-min", fc.Chart.YMin, &cfg.YMin)
	s.setFloat("y-max", fc.Chart.YMax, &cfg.YMax)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
