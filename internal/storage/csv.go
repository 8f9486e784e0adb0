package storage

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"menuscrape/internal/types"
)

// CSVWriter writes records as CSV rows. The file is truncated and the
// header written at open; everything after is append-only.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewCSVWriter creates the output file, truncating any previous run's data,
// and writes the header row.
func NewCSVWriter(outputPath string, logger *slog.Logger) (*CSVWriter, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := &CSVWriter{
		path:   outputPath,
		file:   f,
		writer: csv.NewWriter(f),
		logger: logger.With("component", "csv_writer"),
	}

	if err := w.writer.Write(types.Header()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write CSV header: %w", err)
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("flush CSV header: %w", err)
	}

	return w, nil
}

func (w *CSVWriter) Name() string { return "csv" }

// Append writes one record and flushes, so rows survive an abrupt exit.
func (w *CSVWriter) Append(rec types.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Write(rec.Row()); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	w.count++
	return nil
}

func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.Info("CSV written", "path", w.path, "records", w.count)
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// Path returns the output file location.
func (w *CSVWriter) Path() string { return w.path }
