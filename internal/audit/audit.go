// Package audit records toolkit operations as JSON Lines (JSONL), one
// event per line, in a single append-only file.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Op names a toolkit operation.
type Op string

const (
	OpMakeDirectory  Op = "make_directory"
	OpWriteFile      Op = "write_file"
	OpAppendFile     Op = "append_file"
	OpReadFile       Op = "read_file"
	OpListDirectory  Op = "list_directory"
	OpExecute        Op = "execute"
	OpInstallPackage Op = "install_package"
)

// Event represents a single audit log entry.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Op        Op        `json:"op"`
	Target    string    `json:"target"`
	OK        bool      `json:"ok"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads events in one JSONL file. Each event is written
// with a single append, so concurrent callers do not interleave lines.
type Logger struct {
	path string
}

// NewLogger creates an audit logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event, filling in the ID and timestamp when unset.
func (l *Logger) Log(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogOp is a convenience method that creates and logs an event.
func (l *Logger) LogOp(op Op, target string, ok bool, details string) error {
	return l.Log(Event{
		Op:      op,
		Target:  target,
		OK:      ok,
		Details: details,
	})
}

// Events reads all events in the order they were written.
func (l *Logger) Events() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Tail returns the last n events, or all of them when n <= 0.
func (l *Logger) Tail(n int) ([]Event, error) {
	events, err := l.Events()
	if err != nil || n <= 0 || len(events) <= n {
		return events, err
	}
	return events[len(events)-n:], nil
}

// Remove deletes the audit log.
func (l *Logger) Remove() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
