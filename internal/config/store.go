package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
)

// Store persists Settings to a file. The format follows the file
// extension. A Store is not safe for concurrent use.
type Store struct {
	path     string
	format   Format
	settings Settings
}

// NewStore returns a Store for path holding the default settings. Nothing
// is read or written until Load or Save.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		format:   FormatFor(path),
		settings: DefaultSettings(),
	}
}

// Open returns a Store for path with its settings loaded.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing file is created with defaults.
// A file that cannot be parsed is replaced by defaults. Keys absent from
// the file keep their default values.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.settings = DefaultSettings()
		return s.Save()
	}
	if err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to read %s", s.path), err)
	}

	loaded := DefaultSettings()
	if err := decode(s.format, data, &loaded); err != nil {
		logging.Warn("settings file unreadable, restoring defaults", "path", s.path, "error", err)
		s.settings = DefaultSettings()
		return s.Save()
	}

	s.settings = loaded
	return nil
}

// Save writes the current settings to the file, creating parent
// directories as needed.
func (s *Store) Save() error {
	data, err := encode(s.format, s.settings)
	if err != nil {
		return errors.ConfigError("failed to encode settings", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.ConfigError(fmt.Sprintf("failed to create %s", dir), err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to write %s", s.path), err)
	}
	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings { return s.settings }

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, error) {
	v, err := s.settings.Get(key)
	if err != nil {
		return nil, errors.ConfigError("get failed", err)
	}
	return v, nil
}

// Set stores value under key and saves.
func (s *Store) Set(key, value string) error {
	return s.Update(map[string]string{key: value})
}

// Update stores every key in values and saves once. Nothing is applied
// if any value fails to parse.
func (s *Store) Update(values map[string]string) error {
	next := s.settings
	for _, key := range Keys() {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := next.Set(key, value); err != nil {
			return errors.ConfigError("update failed", err)
		}
	}
	for key := range values {
		if _, err := next.Get(key); err != nil {
			return errors.ConfigError("update failed", err)
		}
	}
	s.settings = next
	return s.Save()
}

// Validate checks the current settings.
func (s *Store) Validate() error {
	if err := s.settings.Validate(); err != nil {
		return errors.ConfigError("invalid settings", err)
	}
	return nil
}

// Reset restores the defaults and saves them.
func (s *Store) Reset() error {
	s.settings = DefaultSettings()
	return s.Save()
}

// Show renders the current settings as indented JSON.
func (s *Store) Show() (string, error) {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return "", errors.ConfigError("failed to render settings", err)
	}
	return string(data), nil
}

// ToConfig builds the runtime Config from the current settings.
func (s *Store) ToConfig() (*Config, error) {
	return New(s.settings)
}
