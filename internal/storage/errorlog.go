package storage

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const errorLogBanner = "===== scrape error log =====\n"

// ErrorLog is the persistent diagnostic log: truncated with a banner line
// at run start, then append-only timestamped lines.
type ErrorLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewErrorLog truncates the log file and writes the banner.
func NewErrorLog(path string) (*ErrorLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create error log: %w", err)
	}
	if _, err := f.WriteString(errorLogBanner); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write error log banner: %w", err)
	}
	return &ErrorLog{path: path, file: f}, nil
}

// Logf appends one "[timestamp] message" line. Write failures are swallowed:
// the diagnostic log must never take the run down with it.
func (l *ErrorLog) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(l.file, "[%s] %s\n", ts, fmt.Sprintf(format, args...))
}

// Close releases the log file.
func (l *ErrorLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
