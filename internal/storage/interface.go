package storage

import "github.com/julianstephens/timecompass/internal/models"

// Provider persists the single settings record.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}

// Inspector is implemented by backends that can report on their own state.
// doctor and init use it when available.
type Inspector interface {
	HasSettings() (bool, error)
}

// SchemaReporter is implemented by backends with versioned SQL schemas.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
