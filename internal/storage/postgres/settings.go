package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/storage/record"
)

func (s *Store) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, errors.ErrNotInitialized
	}

	var value []byte
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", constants.SettingsKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return record.Decode(value, backendName), nil
}

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
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		constants.SettingsKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Store) HasSettings() (bool, error) {
	if s.db == nil {
		return false, errors.ErrNotInitialized
	}
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM settings WHERE key = $1)", constants.SettingsKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check settings: %w", err)
	}
	return exists, nil
}

func (s *Store) ensureDefaults(ctx context.Context) error {
	exists, err := s.HasSettings()
	if err != nil || exists {
		return err
	}
	if err := s.saveSettings(ctx, models.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	return nil
}
