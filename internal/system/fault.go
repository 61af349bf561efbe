package system

import "io/fs"

// FaultFS wraps a FileSystem and fails selected operations. It is used in
// tests to simulate permission and disk errors.
type FaultFS struct {
	FileSystem

	// Error injection
	StatErr          error
	MkdirAllErr      error
	ReadDirErr       error
	WriteFileErr     error
	AppendFileErr    error
	ReadFileLimitErr error
}

// NewFaultFS wraps base, or the OS filesystem when base is nil.
func NewFaultFS(base FileSystem) *FaultFS {
	if base == nil {
		base = OS()
	}
	return &FaultFS{FileSystem: base}
}

func (f *FaultFS) Stat(path string) (fs.FileInfo, error) {
	if f.StatErr != nil {
		return nil, f.StatErr
	}
	return f.FileSystem.Stat(path)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if f.MkdirAllErr != nil {
		return f.MkdirAllErr
	}
	return f.FileSystem.MkdirAll(path, perm)
}

func (f *FaultFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if f.ReadDirErr != nil {
		return nil, f.ReadDirErr
	}
	return f.FileSystem.ReadDir(path)
}

func (f *FaultFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if f.WriteFileErr != nil {
		return f.WriteFileErr
	}
	return f.FileSystem.WriteFile(path, data, perm)
}

func (f *FaultFS) AppendFile(path string, data []byte, perm fs.FileMode) error {
	if f.AppendFileErr != nil {
		return f.AppendFileErr
	}
	return f.FileSystem.AppendFile(path, data, perm)
}

func (f *FaultFS) ReadFileLimit(path string, limit int64) ([]byte, error) {
	if f.ReadFileLimitErr != nil {
		return nil, f.ReadFileLimitErr
	}
	return f.FileSystem.ReadFileLimit(path, limit)
}

var _ FileSystem = (*FaultFS)(nil)
