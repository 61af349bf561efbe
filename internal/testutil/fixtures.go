package testutil

import (
	"embed"
	"encoding/json"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadSettingsFixture loads a settings fixture over the defaults, the same
// way config.Store does.
func LoadSettingsFixture(name string) (config.Settings, error) {
	s := config.DefaultSettings()
	data, err := LoadFixture(name)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}

// ValidSettings returns the valid settings fixture.
func ValidSettings() (config.Settings, error) {
	return LoadSettingsFixture("valid_settings.json")
}

// InvalidSettings returns the invalid settings fixture.
func InvalidSettings() (config.Settings, error) {
	return LoadSettingsFixture("invalid_settings.json")
}

// PartialSettings returns a fixture that only sets command_timeout.
func PartialSettings() (config.Settings, error) {
	return LoadSettingsFixture("partial_settings.json")
}
