package tools

import (
	"context"
	"log/slog"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/fileops"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/pkgname"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/process"
	"github.com/firefly-engineering/firefly-forage/packages/forage-tools/internal/system"
)

// InstallerArgv is the installer invocation; the package name is appended.
var InstallerArgv = []string{"uv", "pip", "install", "-q"}

// Toolkit composes the file and process operations over one Config.
type Toolkit struct {
	cfg    *config.Config
	fs     system.FileSystem
	files  *fileops.Ops
	runner *process.Runner
	audit  *audit.Logger
	logger *slog.Logger
}

// Option is a function that configures the Toolkit
type Option func(*Toolkit)

// WithFileSystem sets the filesystem used by file operations
func WithFileSystem(fs system.FileSystem) Option {
	return func(t *Toolkit) {
		t.fs = fs
	}
}

// WithAudit sets the audit logger, overriding the configured audit_log
func WithAudit(l *audit.Logger) Option {
	return func(t *Toolkit) {
		t.audit = l
	}
}

// WithLogger sets the structured logger for operation traces
func WithLogger(l *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = l
	}
}

// New creates a Toolkit for cfg. When the config names an audit log and
// WithAudit is not given, every operation is recorded there.
func New(cfg *config.Config, opts ...Option) *Toolkit {
	t := &Toolkit{cfg: cfg}
	if cfg.AuditLog() != "" {
		t.audit = audit.NewLogger(cfg.AuditLog())
	}

	for _, opt := range opts {
		opt(t)
	}

	t.files = fileops.New(cfg, t.fs)
	t.runner = process.New(cfg)
	return t
}

// Config returns the configuration the Toolkit was built with.
func (t *Toolkit) Config() *config.Config {
	return t.cfg
}

// Audit returns the audit logger, or nil when auditing is off.
func (t *Toolkit) Audit() *audit.Logger {
	return t.audit
}

func (t *Toolkit) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return logging.Logger
}

// MakeDirectory creates a directory and its parents inside the workspace.
func (t *Toolkit) MakeDirectory(ctx context.Context, path string) string {
	return t.do(ctx, audit.OpMakeDirectory, path, func() (string, error) {
		return t.files.MakeDirectory(path)
	})
}

// WriteFile replaces a file's contents, creating parent directories.
func (t *Toolkit) WriteFile(ctx context.Context, path, content string) string {
	return t.do(ctx, audit.OpWriteFile, path, func() (string, error) {
		return t.files.WriteFile(path, content)
	})
}

// AppendFile appends to a file, creating it and its parent directories.
func (t *Toolkit) AppendFile(ctx context.Context, path, content string) string {
	return t.do(ctx, audit.OpAppendFile, path, func() (string, error) {
		return t.files.AppendFile(path, content)
	})
}

// ReadFile returns a file's contents, capped at the configured size.
func (t *Toolkit) ReadFile(ctx context.Context, path string) string {
	return t.do(ctx, audit.OpReadFile, path, func() (string, error) {
		return t.files.ReadFile(path)
	})
}

// ListDirectory lists a directory; an empty path lists the workspace root.
func (t *Toolkit) ListDirectory(ctx context.Context, path string) string {
	return t.do(ctx, audit.OpListDirectory, path, func() (string, error) {
		return t.files.ListDirectory(path)
	})
}

// Execute runs a shell command in the workspace.
func (t *Toolkit) Execute(ctx context.Context, command string) string {
	return t.do(ctx, audit.OpExecute, command, func() (string, error) {
		return t.runner.Execute(ctx, command)
	})
}

// InstallPackage installs a package with the fixed installer command. The
// name is validated before any command is built.
func (t *Toolkit) InstallPackage(ctx context.Context, name string) string {
	return t.do(ctx, audit.OpInstallPackage, name, func() (string, error) {
		command, err := InstallCommand(name)
		if err != nil {
			return "", err
		}
		return t.runner.Execute(ctx, command)
	})
}

// InstallCommand returns the installer command line for name, or an
// InvalidPackageName error.
func InstallCommand(name string) (string, error) {
	if err := pkgname.Validate(name); err != nil {
		return "", err
	}
	argv := append(append([]string(nil), InstallerArgv...), name)
	return shellquote.Join(argv...), nil
}

// do runs one operation and converts its outcome to result text.
func (t *Toolkit) do(ctx context.Context, op audit.Op, target string, fn func() (string, error)) string {
	var (
		out string
		err error
	)
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.ExecutionFailure("operation cancelled", ctxErr)
	} else {
		out, err = fn()
	}

	log := t.log().With("op", string(op), "target", target)
	switch {
	case err == nil:
		log.Debug("operation succeeded")
	case errors.Is(err, errors.ErrPathEscape), errors.Is(err, errors.ErrInvalidPackageName):
		log.Warn("operation rejected", "error", err)
	default:
		log.Debug("operation failed", "kind", errors.GetKind(err), "error", err)
	}

	if t.audit != nil {
		details := ""
		if err != nil {
			details = err.Error()
		}
		if auditErr := t.audit.LogOp(op, target, err == nil, details); auditErr != nil {
			log.Warn("failed to write audit event", "error", auditErr)
		}
	}

	if err != nil {
		return errors.Render(err)
	}
	return out
}
