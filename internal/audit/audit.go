// Package audit records one entry per dispatched warehouse command to a
// rotating JSONL file. The audit trail answers "who moved that pallet"
// after the fact; it is separate from the operational log.
package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a single audit record.
type Entry struct {
	Timestamp  time.Time `json:"ts"`
	EndpointID string    `json:"endpointId,omitempty"`
	Command    string    `json:"command"`
	Item       string    `json:"item,omitempty"`
	Location   string    `json:"location,omitempty"`
	Outcome    string    `json:"outcome"`
	Speech     string    `json:"speech"`
	Directive  string    `json:"directive,omitempty"`
}

// Logger writes audit entries to a size-rotated file.
type Logger struct {
	mu  sync.Mutex
	out *lumberjack.Logger
}

// NewLogger creates an audit logger writing to path. Files rotate at
// 10 MB and the last five rotations are kept.
func NewLogger(path string) *Logger {
	return &Logger{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			Compress:   true,
		},
	}
}

// Record appends one entry. Audit failures are reported but must never
// fail the command that triggered them; callers log and continue.
func (l *Logger) Record(e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("audit: marshal entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}
