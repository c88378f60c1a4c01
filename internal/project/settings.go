package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are per-project constraints consumed by generation and
// validation; the engine never mutates them.
type Settings struct {
	MaxCharsPerLine int     `yaml:"max_chars_per_line"`
	MinDuration     float64 `yaml:"min_duration_seconds"`
	MaxDuration     float64 `yaml:"max_duration_seconds"`
	TargetLanguage  string  `yaml:"target_language"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxCharsPerLine: 42, // standard subtitle line length
		MinDuration:     1,
		MaxDuration:     7,
	}
}

// LoadSettings reads a YAML settings file over the defaults; missing keys
// keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	return settings, nil
}
