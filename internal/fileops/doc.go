// Package fileops implements the workspace file operations: directory
// creation, write, append, read and listing.
//
// Every path is resolved through pathguard before any filesystem call, so a
// path that escapes the workspace fails with a path escape error and
// touches nothing. Operations return a result message or a typed error from
// internal/errors; rendering errors as text is left to the caller.
//
// Reads are capped at the configured max file size. Bytes that do not
// decode in the configured encoding are dropped rather than failing the
// read.
package fileops
