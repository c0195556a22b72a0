package auditlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recorder captures the audit trail of the bridge: one line per accepted
// alarm and one line per record delivered to Fireplan.
type Recorder interface {
	Received(ctx context.Context, entry string) error
	Submitted(ctx context.Context, entry string) error
}

// FileRecorder appends timestamped audit lines to two plain text files.
// The files double as a quick operator reference for what was alerted and when.
type FileRecorder struct {
	// receivedPath is the file receiving one line per accepted alarm.
	receivedPath string
	// submittedPath is the file receiving one line per delivered record.
	submittedPath string
	// mu serializes appends across both files.
	mu sync.Mutex
	// now provides timestamps and is swappable in tests.
	now func() time.Time
}

// filePermissions applies to audit files created by the recorder.
const filePermissions = 0o644

// NewFileRecorder creates a recorder appending to the provided paths.
func NewFileRecorder(receivedPath, submittedPath string) *FileRecorder {
	return &FileRecorder{
		receivedPath:  filepath.Clean(receivedPath),
		submittedPath: filepath.Clean(submittedPath),
		now:           time.Now,
	}
}

// Received appends the entry to the received audit file.
func (r *FileRecorder) Received(_ context.Context, entry string) error {
	return r.append(r.receivedPath, entry)
}

// Submitted appends the entry to the submitted audit file.
func (r *FileRecorder) Submitted(_ context.Context, entry string) error {
	return r.append(r.submittedPath, entry)
}

// append writes "<timestamp>\t<entry>\n" to the audit file at path,
// creating the file on first use.
func (r *FileRecorder) append(path, entry string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}

	_, err = fmt.Fprintf(f, "%s\t%s\n", r.now().UTC().Format(time.RFC3339), entry)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}

	return nil
}
