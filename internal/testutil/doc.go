// Package testutil provides test fixtures and a temporary workspace
// environment.
//
// # Fixtures
//
// JSON settings fixtures are embedded using go:embed:
//
//	fixtures/valid_settings.json
//	fixtures/invalid_settings.json
//	fixtures/partial_settings.json
//
// They are decoded over config.DefaultSettings, so absent keys keep their
// defaults:
//
//	s, err := testutil.ValidSettings()
//	s, err := testutil.PartialSettings()
//
// # Test Environment
//
// NewTestEnv builds a workspace under t.TempDir and a Config with
// sandboxing disabled:
//
//	func TestRead(t *testing.T) {
//	    env := testutil.NewTestEnv(t, func(s *config.Settings) {
//	        s.MaxFileSize = 16
//	    })
//	    env.WriteFile("notes.txt", []byte("hello"))
//	    ops := fileops.New(env.Config, nil)
//	    ...
//	}
package testutil
