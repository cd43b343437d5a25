package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/storage/record"
)

// GetSettings returns the stored record merged over the defaults. A missing
// record yields the defaults.
func (s *Store) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, errors.ErrNotInitialized
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", constants.SettingsKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("No stored settings record, using defaults", "path", s.path)
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	return record.Decode([]byte(value), backendName), nil
}

// SaveSettings replaces the stored record.
func (s *Store) SaveSettings(settings models.Settings) error {
	if s.db == nil {
		return errors.ErrNotInitialized
	}
	return s.saveSettings(context.Background(), settings)
}

func (s *Store) saveSettings(ctx context.Context, settings models.Settings) error {
	data, err := record.Encode(settings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		constants.SettingsKey, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// HasSettings reports whether a settings record has been written.
func (s *Store) HasSettings() (bool, error) {
	if s.db == nil {
		return false, errors.ErrNotInitialized
	}
	var count int
	if err := s.db.QueryRow("SELECT count(*) FROM settings WHERE key = ?", constants.SettingsKey).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check settings: %w", err)
	}
	return count > 0, nil
}

func (s *Store) ensureDefaults(ctx context.Context) error {
	exists, err := s.HasSettings()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := s.saveSettings(ctx, models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}
