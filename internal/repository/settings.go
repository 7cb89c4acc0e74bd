package repository

import (
	"context"

	"github.com/securepass/securepass-go/internal/model"
)

// SettingsFile persists settings as a flat JSON object.
type SettingsFile struct {
	path string
}

// NewSettingsFile creates a SettingsFile at path.
func NewSettingsFile(path string) *SettingsFile {
	return &SettingsFile{path: path}
}

// Load reads the settings, starting from the defaults so that keys absent
// from the file keep their default value. A missing file is not an error.
func (s *SettingsFile) Load(_ context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()
	if _, err := readJSONFile(s.path, &settings); err != nil {
		return model.DefaultSettings(), err
	}
	return settings, nil
}

// Save writes the whole settings object.
func (s *SettingsFile) Save(_ context.Context, settings model.Settings) error {
	return writeJSONFile(s.path, settings)
}
