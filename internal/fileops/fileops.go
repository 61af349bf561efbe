package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/pathguard"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/system"
)

// Result messages.
const (
	EmptyDirectory = "Directory is empty."

	truncatedFileFmt = "\n... (file too large, showing first %d bytes)"
)

const (
	dirPerm  fs.FileMode = 0755
	filePerm fs.FileMode = 0644
)

// Ops performs file operations confined to the configured workspace.
type Ops struct {
	cfg *config.Config
	fs  system.FileSystem
}

// New returns Ops for cfg. A nil fsys uses the real filesystem.
func New(cfg *config.Config, fsys system.FileSystem) *Ops {
	if fsys == nil {
		fsys = system.OS()
	}
	return &Ops{cfg: cfg, fs: fsys}
}

func (o *Ops) resolve(path string) (string, error) {
	return pathguard.New(o.cfg.Workspace()).Resolve(path)
}

// MakeDirectory creates path and any missing parents. An existing
// directory is not an error.
func (o *Ops) MakeDirectory(path string) (string, error) {
	target, err := o.resolve(path)
	if err != nil {
		return "", err
	}
	logging.Debug("make directory", "path", path, "resolved", target)

	if err := o.fs.MkdirAll(target, dirPerm); err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot create directory %s", path), err)
	}
	return fmt.Sprintf("Directory %s created.", target), nil
}

// WriteFile replaces the contents of path with content, creating parent
// directories as needed.
func (o *Ops) WriteFile(path, content string) (string, error) {
	target, data, err := o.prepareWrite(path, content)
	if err != nil {
		return "", err
	}
	logging.Debug("write file", "path", path, "bytes", len(data))

	if err := o.fs.WriteFile(target, data, filePerm); err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot write %s", path), err)
	}
	return fmt.Sprintf("File %s written.", target), nil
}

// AppendFile adds content to the end of path, creating the file and its
// parent directories as needed.
func (o *Ops) AppendFile(path, content string) (string, error) {
	target, data, err := o.prepareWrite(path, content)
	if err != nil {
		return "", err
	}
	logging.Debug("append file", "path", path, "bytes", len(data))

	if err := o.fs.AppendFile(target, data, filePerm); err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot append to %s", path), err)
	}
	return fmt.Sprintf("Appended content to %s.", target), nil
}

func (o *Ops) prepareWrite(path, content string) (string, []byte, error) {
	target, err := o.resolve(path)
	if err != nil {
		return "", nil, err
	}
	data, err := o.cfg.Encoding().Encode(content)
	if err != nil {
		return "", nil, errors.IOFailure(fmt.Sprintf("cannot encode content for %s", path), err)
	}
	if err := o.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return "", nil, errors.IOFailure(fmt.Sprintf("cannot create parent directory of %s", path), err)
	}
	return target, data, nil
}

// ReadFile returns the decoded contents of path. Files larger than the
// configured max file size are cut at that many bytes and a notice naming
// the cap is appended.
func (o *Ops) ReadFile(path string) (string, error) {
	target, err := o.resolve(path)
	if err != nil {
		return "", err
	}

	info, err := o.fs.Stat(target)
	if os.IsNotExist(err) {
		return "", errors.NotFound("file", path)
	}
	if err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot read %s", path), err)
	}
	if info.IsDir() {
		return "", errors.IOFailure(fmt.Sprintf("%s is a directory, use list_directory to view it", path), nil)
	}

	limit := o.cfg.MaxFileSize()
	data, err := o.fs.ReadFileLimit(target, limit+1)
	if err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot read %s", path), err)
	}
	logging.Debug("read file", "path", path, "bytes", len(data))

	truncated := int64(len(data)) > limit
	if truncated {
		data = data[:limit]
	}
	content := o.cfg.Encoding().DecodeDropping(data)
	if truncated {
		content += fmt.Sprintf(truncatedFileFmt, limit)
	}
	return content, nil
}

// entry is one line of a directory listing.
type entry struct {
	name  string
	dir   bool
	size  int64
	sized bool
}

func (e entry) String() string {
	switch {
	case e.dir:
		return "[DIR]  " + e.name
	case e.sized:
		return fmt.Sprintf("[FILE] %s (%d bytes)", e.name, e.size)
	default:
		return "[FILE] " + e.name
	}
}

// ListDirectory lists path, directories first, each group sorted by name.
// An empty path lists the workspace root.
func (o *Ops) ListDirectory(path string) (string, error) {
	target, err := o.resolve(path)
	if err != nil {
		return "", err
	}

	info, err := o.fs.Stat(target)
	if os.IsNotExist(err) {
		return "", errors.NotFound("directory", displayPath(path))
	}
	if err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot list %s", displayPath(path)), err)
	}
	if !info.IsDir() {
		return "", errors.IOFailure(fmt.Sprintf("%s is not a directory", displayPath(path)), nil)
	}

	dirEntries, err := o.fs.ReadDir(target)
	if err != nil {
		return "", errors.IOFailure(fmt.Sprintf("cannot list %s", displayPath(path)), err)
	}
	logging.Debug("list directory", "path", path, "entries", len(dirEntries))

	if len(dirEntries) == 0 {
		return EmptyDirectory, nil
	}

	var dirs, files []entry
	for _, de := range dirEntries {
		e := entry{name: de.Name()}
		// Stat follows symlinks; a dangling link is listed as a file
		// without a size.
		if fi, err := o.fs.Stat(filepath.Join(target, de.Name())); err == nil {
			e.dir = fi.IsDir()
			e.size = fi.Size()
			e.sized = !e.dir
		}
		if e.dir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	byName := func(list []entry) {
		sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	}
	byName(dirs)
	byName(files)

	lines := make([]string, 0, len(dirEntries))
	for _, e := range append(dirs, files...) {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n"), nil
}

func displayPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}
