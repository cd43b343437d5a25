package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timecompass/internal/errors"
	"github.com/julianstephens/timecompass/internal/models"
	"github.com/julianstephens/timecompass/internal/storage/record"
	"github.com/julianstephens/timecompass/internal/utils"
)

const jsonBackend = "json"

// JSONStore keeps the settings record as a bare JSON file.
type JSONStore struct {
	path   string
	loaded bool
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

// Init creates the file with default settings unless it already exists.
func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.loaded = true
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.SaveSettings(models.DefaultSettings())
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no settings file at %s: %w", s.path, errors.ErrNotInitialized)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	s.loaded = false
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if !s.loaded {
		return models.Settings{}, errors.ErrNotInitialized
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, fmt.Errorf("failed to read storage: %w", err)
	}
	return record.Decode(data, jsonBackend), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if !s.loaded {
		return errors.ErrNotInitialized
	}
	data, err := record.Encode(settings)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) HasSettings() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
