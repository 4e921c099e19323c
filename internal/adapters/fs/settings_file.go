// Package fs contains file-system adapters.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bench-labs/phlog/internal/domain"
	"github.com/bench-labs/phlog/internal/ports"
)

const settingsFileName = "settings.json"

// SettingsFileRepository implements ports.SettingsRepository using a JSON file.
type SettingsFileRepository struct {
	dir string
}

// NewSettingsFileRepository creates a new SettingsFileRepository for the
// given directory.
func NewSettingsFileRepository(dir string) *SettingsFileRepository {
	return &SettingsFileRepository{dir: dir}
}

// Load retrieves the saved settings from disk.
// Returns empty settings and nil error if no settings file exists.
func (r *SettingsFileRepository) Load(ctx context.Context) (domain.Settings, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Settings{}, nil
		}
		return domain.Settings{}, err
	}

	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, err
	}

	return settings, nil
}

// Save persists the settings atomically.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *SettingsFileRepository) Save(ctx context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Path returns the full path to the settings file.
func (r *SettingsFileRepository) Path() string {
	return filepath.Join(r.dir, settingsFileName)
}

var _ ports.SettingsRepository = (*SettingsFileRepository)(nil)
