// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts the file operations behind the toolkit's file tools.
type FileSystem interface {
	// Stat returns file info for the named file, following symlinks.
	Stat(path string) (fs.FileInfo, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// ReadDir reads the named directory, returning all its directory entries.
	ReadDir(path string) ([]fs.DirEntry, error)

	// WriteFile writes data to the named file, truncating it first.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// AppendFile appends data to the named file, creating it if necessary.
	AppendFile(path string, data []byte, perm fs.FileMode) error

	// ReadFileLimit reads at most limit bytes from the start of the named file.
	ReadFileLimit(path string, limit int64) ([]byte, error)
}

// OS returns the FileSystem backed by the real operating system.
func OS() FileSystem {
	return osFileSystem{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (osFileSystem) AppendFile(path string, data []byte, perm fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (osFileSystem) ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	return io.ReadAll(r)
}
