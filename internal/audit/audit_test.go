package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLogger_LogAndEvents(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "audit", "events.jsonl"))

	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Op: OpMakeDirectory, Target: "src", OK: true},
		{Timestamp: now.Add(time.Second), Op: OpWriteFile, Target: "src/main.py", OK: true},
		{Timestamp: now.Add(2 * time.Second), Op: OpReadFile, Target: "../etc/passwd", Details: "illegal path access"},
		{Timestamp: now.Add(3 * time.Second), Op: OpExecute, Target: "python src/main.py", OK: true},
	}

	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	result, err := logger.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != len(events) {
		t.Fatalf("got %d events, want %d", len(result), len(events))
	}

	for i, e := range result {
		if e.Op != events[i].Op {
			t.Errorf("event %d: op = %q, want %q", i, e.Op, events[i].Op)
		}
		if e.Target != events[i].Target {
			t.Errorf("event %d: target = %q, want %q", i, e.Target, events[i].Target)
		}
		if e.OK != events[i].OK {
			t.Errorf("event %d: ok = %v, want %v", i, e.OK, events[i].OK)
		}
		if e.Details != events[i].Details {
			t.Errorf("event %d: details = %q, want %q", i, e.Details, events[i].Details)
		}
		if _, err := uuid.Parse(e.ID); err != nil {
			t.Errorf("event %d: id %q is not a uuid: %v", i, e.ID, err)
		}
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "missing.jsonl"))

	result, err := logger.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_LogOp(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "events.jsonl"))

	before := time.Now()
	if err := logger.LogOp(OpInstallPackage, "requests", true, ""); err != nil {
		t.Fatalf("LogOp failed: %v", err)
	}

	result, err := logger.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("got %d events, want 1", len(result))
	}
	if result[0].Timestamp.Before(before.Add(-time.Second)) {
		t.Errorf("timestamp %v not set", result[0].Timestamp)
	}
	if result[0].ID == "" {
		t.Error("ID should be generated")
	}
}

func TestLogger_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	logger := NewLogger(path)

	if err := logger.LogOp(OpExecute, "ls", true, ""); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n\n")
	f.Close()
	if err := logger.LogOp(OpExecute, "pwd", true, ""); err != nil {
		t.Fatal(err)
	}

	result, err := logger.Events()
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("got %d events, want 2", len(result))
	}
}

func TestLogger_Tail(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "events.jsonl"))
	for i := 0; i < 5; i++ {
		if err := logger.LogOp(OpExecute, fmt.Sprintf("cmd-%d", i), true, ""); err != nil {
			t.Fatal(err)
		}
	}

	tail, err := logger.Tail(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(tail) != 2 || tail[0].Target != "cmd-3" || tail[1].Target != "cmd-4" {
		t.Errorf("Tail(2) = %+v", tail)
	}

	all, _ := logger.Tail(0)
	if len(all) != 5 {
		t.Errorf("Tail(0) returned %d events, want 5", len(all))
	}
}

func TestLogger_ConcurrentWriters(t *testing.T) {
	logger := NewLogger(filepath.Join(t.TempDir(), "events.jsonl"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := logger.LogOp(OpWriteFile, fmt.Sprintf("f%d", i), true, ""); err != nil {
				t.Errorf("LogOp failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	result, err := logger.Events()
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 20 {
		t.Errorf("got %d events, want 20", len(result))
	}
}

func TestLogger_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	logger := NewLogger(path)

	if err := logger.LogOp(OpExecute, "ls", true, ""); err != nil {
		t.Fatal(err)
	}
	if err := logger.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("audit log should be removed")
	}
	if err := logger.Remove(); err != nil {
		t.Errorf("Remove of missing log should succeed: %v", err)
	}
}
