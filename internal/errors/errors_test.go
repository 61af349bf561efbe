package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestToolError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ToolError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, KindGeneral, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, KindGeneral, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestToolError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, KindGeneral, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, KindGeneral, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		wantCode int
		wantKind Kind
		sentinel error
	}{
		{"path escape", PathEscape("../x"), ExitPathEscape, KindPathEscape, ErrPathEscape},
		{"invalid package", InvalidPackageName("a;b"), ExitInvalidPackageName, KindInvalidPackageName, ErrInvalidPackageName},
		{"timeout", ExecutionTimeout(5), ExitExecutionTimeout, KindExecutionTimeout, ErrExecutionTimeout},
		{"execution failure", ExecutionFailure("spawn failed", fmt.Errorf("enoent")), ExitExecutionFailure, KindExecutionFailure, ErrExecutionFailure},
		{"io failure", IOFailure("write failed", fmt.Errorf("eperm")), ExitIOFailure, KindIOFailure, ErrIOFailure},
		{"not found", NotFound("file", "a.txt"), ExitIOFailure, KindIOFailure, ErrIOFailure},
		{"config", ConfigError("bad config", nil), ExitConfigError, KindConfig, ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.wantKind)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
			if errors.Is(tt.err, ErrConfig) && tt.wantKind != KindConfig {
				t.Errorf("errors.Is matched the wrong sentinel")
			}
		})
	}
}

func TestPathEscapeMessage(t *testing.T) {
	err := PathEscape("../etc/passwd")
	want := "illegal path access: ../etc/passwd (outside workspace)"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestRender(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}

	got := Render(InvalidPackageName("x y"))
	if !strings.HasPrefix(got, Marker) {
		t.Errorf("Render() = %q, want %q prefix", got, Marker)
	}
	if !strings.Contains(got, "x y") {
		t.Errorf("Render() = %q, want package name in message", got)
	}

	if got := Render(fmt.Errorf("plain")); got != "Error: plain" {
		t.Errorf("Render(plain) = %q", got)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"ToolError", PathEscape("x"), ExitPathEscape},
		{"wrapped ToolError", fmt.Errorf("outer: %w", ConfigError("bad", nil)), ExitConfigError},
		{"regular error", fmt.Errorf("some error"), ExitGeneralError},
		{"nil error", nil, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(fmt.Errorf("wrap: %w", ExecutionTimeout(1))); got != KindExecutionTimeout {
		t.Errorf("GetKind() = %q, want %q", got, KindExecutionTimeout)
	}
	if got := GetKind(fmt.Errorf("plain")); got != KindGeneral {
		t.Errorf("GetKind() = %q, want %q", got, KindGeneral)
	}
}

func TestAs(t *testing.T) {
	toolErr := NotFound("file", "a.txt")
	wrapped := fmt.Errorf("wrapped: %w", toolErr)

	var target *ToolError
	if !As(wrapped, &target) {
		t.Fatal("As() should return true for wrapped ToolError")
	}
	if target.Code != ExitIOFailure {
		t.Errorf("target.Code = %d, want %d", target.Code, ExitIOFailure)
	}

	regularErr := fmt.Errorf("regular error")
	if As(regularErr, &target) {
		t.Error("As() should return false for non-ToolError")
	}
}

func TestErrorChaining(t *testing.T) {
	root := fmt.Errorf("root cause")
	middle := IOFailure("read failed", root)
	outer := fmt.Errorf("operation failed: %w", middle)

	if !Is(outer, root) {
		t.Error("Is should find root cause")
	}
	if !Is(outer, ErrIOFailure) {
		t.Error("Is should match the kind sentinel")
	}
	if Is(outer, ErrPathEscape) {
		t.Error("Is should not match a different kind")
	}
}
