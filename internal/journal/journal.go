// Package journal records schema edits as JSON Lines.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sadopc/schemasketch/internal/schema"
)

// Action names a kind of schema edit.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is a single journal record.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      Action    `json:"action"`
	TableID     string    `json:"table_id"`
	TableName   string    `json:"table_name"`
	ColumnCount int       `json:"column_count"`
	Columns     []string  `json:"columns,omitempty"`
}

// Logger appends entries to a file, rotating it once it grows past the
// configured size.
type Logger struct {
	mu       sync.Mutex
	f        *os.File
	enc      *json.Encoder
	path     string
	maxBytes int64
	now      func() time.Time
}

// New opens path in append mode (0o600), creating parent directories (0o700).
// If maxSizeMB > 0 the file is rotated to path+".1" when it exceeds that size.
func New(path string, maxSizeMB int) (*Logger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("journal: open file: %w", err)
	}

	return &Logger{
		f:        f,
		enc:      json.NewEncoder(f),
		path:     path,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		now:      time.Now,
	}, nil
}

// Record writes an entry describing action applied to t. It is safe for
// concurrent use; a nil Logger ignores the call.
func (l *Logger) Record(action Action, t schema.Table) error {
	if l == nil {
		return nil
	}
	e := Entry{
		Action:      action,
		TableID:     t.ID,
		TableName:   t.Name,
		ColumnCount: len(t.Columns),
	}
	if action != ActionDelete {
		for _, c := range t.Columns {
			e.Columns = append(e.Columns, c.Name+" "+string(c.Type))
		}
	}
	return l.Log(e)
}

// Log writes e as one JSON line. A zero Timestamp is set to the current time.
func (l *Logger) Log(e Entry) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}
	if err := l.enc.Encode(e); err != nil {
		return fmt.Errorf("journal: write: %w", err)
	}

	if l.maxBytes > 0 {
		l.rotateIfNeeded()
	}
	return nil
}

// Path returns the file the journal writes to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the underlying file. Calling Close on a nil Logger is a no-op.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

func (l *Logger) rotateIfNeeded() {
	info, err := l.f.Stat()
	if err != nil || info.Size() < l.maxBytes {
		return
	}

	_ = l.f.Close()
	_ = os.Rename(l.path, l.path+".1")

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	l.f = f
	l.enc = json.NewEncoder(f)
}
