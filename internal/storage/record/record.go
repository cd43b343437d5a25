// Package record converts between the persisted settings blob and
// models.Settings for every storage backend.
package record

import (
	"github.com/julianstephens/timecompass/internal/logger"
	"github.com/julianstephens/timecompass/internal/models"
)

// Decode merges a stored blob over the defaults. Fields that fail to decode
// are logged and fall back to their default; Decode never fails.
func Decode(data []byte, backend string) models.Settings {
	settings, errs := models.DecodeSettings(data)
	for _, err := range errs {
		logger.Warn("Ignoring invalid stored setting", "backend", backend, "error", err)
	}
	return settings
}

// Encode serialises settings for storage.
func Encode(settings models.Settings) ([]byte, error) {
	return models.EncodeSettings(settings)
}
