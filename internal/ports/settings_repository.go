package ports

import (
	"context"

	"github.com/bench-labs/phlog/internal/domain"
)

// SettingsRepository persists operator settings across runs.
// Implementations persist to disk (or other storage) atomically.
type SettingsRepository interface {
	// Load retrieves the saved settings.
	// Returns empty settings and nil error if none have been saved yet.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) (domain.Settings, error)

	// Save persists the settings atomically.
	// The implementation should use atomic writes (e.g., write to temp file,
	// then rename) to prevent corruption on crash.
	Save(ctx context.Context, settings domain.Settings) error
}
