package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names. They override file config but are overridden
// by explicitly set flags.
const (
	envPort         = "PHLOG_PORT"
	envBaudRate     = "PHLOG_BAUD_RATE"
	envOutputDir    = "PHLOG_OUTPUT_DIR"
	envOutputFile   = "PHLOG_OUTPUT_FILE"
	envChartPath    = "PHLOG_CHART_PATH"
	envSettingsDir  = "PHLOG_SETTINGS_DIR"
	envPollInterval = "PHLOG_POLL_INTERVAL"
)

// ApplyEnvConfig applies PHLOG_* environment variables to the Config.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv(envPort), &cfg.Port)
	s.setString("output-dir", os.Getenv(envOutputDir), &cfg.OutputDir)
	s.setString("output-file", os.Getenv(envOutputFile), &cfg.OutputFile)
	s.setString("chart", os.Getenv(envChartPath), &cfg.ChartPath)
	s.setString("settings-dir", os.Getenv(envSettingsDir), &cfg.SettingsDir)

	if v := os.Getenv(envBaudRate); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.setInt("baud", n, &cfg.BaudRate)
		}
	}

	_ = s.setDuration("poll", os.Getenv(envPollInterval), &cfg.PollInterval)
}
