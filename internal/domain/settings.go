package domain

// Settings holds operator settings that persist across runs.
// Only the last-used port is remembered; everything else is supplied
// per-run via flags or the config file.
type Settings struct {
	// Port is the last serial port the operator read from.
	Port string `json:"com_port"`
}

// IsEmpty returns true if no settings have been saved yet.
func (s Settings) IsEmpty() bool {
	return s.Port == ""
}
