package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestErrorLogBannerAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")

	l, err := NewErrorLog(path)
	if err != nil {
		t.Fatalf("create error log: %v", err)
	}
	l.Logf("category %s failed: %v", "cold-brew", "timeout")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected banner + 1 entry, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "=====") {
		t.Errorf("banner line = %q", lines[0])
	}

	entry := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] category cold-brew failed: timeout$`)
	if !entry.MatchString(lines[1]) {
		t.Errorf("entry line = %q", lines[1])
	}
}

func TestErrorLogTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	if err := os.WriteFile(path, []byte("old entry\nanother old entry\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	l, err := NewErrorLog(path)
	if err != nil {
		t.Fatalf("create error log: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "old entry") {
		t.Error("previous run's entries survived truncation")
	}
}
