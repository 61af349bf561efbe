// Package app wires the settings store, the runtime configuration and the
// toolkit together for the CLI.
//
// There is no process-wide instance: the caller builds one App and passes
// it down.
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a, err := app.New(app.WithConfigPath("config.toml"))
//
//	// Testing without a settings file
//	a, err := app.New(
//	    app.WithSettings(settings),
//	    app.WithToolkitOptions(tools.WithFileSystem(faultFS)),
//	)
//
// # Available Options
//
//	WithConfigPath(path)        // Settings file to load (default config.DefaultPath())
//	WithSettings(settings)      // Use settings directly, no file
//	WithOverrides(fn)           // Adjust settings for this run only
//	WithToolkitOptions(opts...) // Passed through to tools.New
package app
