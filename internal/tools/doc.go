// Package tools is the public surface of the toolkit: the operations an
// agent calls, each returning plain text.
//
// A Toolkit is built once from an immutable config.Config and passed to
// whoever needs it; there is no package-level instance.
//
//	cfg, err := config.New(settings)
//	tk := tools.New(cfg)
//	out := tk.WriteFile(ctx, "src/main.py", "print('hi')")
//	out = tk.Execute(ctx, "python src/main.py")
//
// # Results
//
// Operations never return errors. Failures are rendered as text starting
// with errors.Marker ("Error: ") so an agent can read them and continue its
// loop. Callers that need the typed error use the fileops and process
// packages directly.
//
// # Concurrency
//
// Every method blocks until its I/O or child process completes and is safe
// to call from many goroutines at once. The Toolkit holds no mutable
// state; concurrent writes to the same file are last-writer-wins.
package tools
