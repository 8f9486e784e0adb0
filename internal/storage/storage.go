package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"menuscrape/internal/types"
)

// Writer is the interface for record sinks. Records are appended one at a
// time as extraction produces them, so a mid-run failure loses nothing
// already written.
type Writer interface {
	// Append persists a single record.
	Append(rec types.Record) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the sink identifier.
	Name() string
}

// New creates the appropriate record sink by type.
func New(storageType, outputDir, filename, mongoURI, mongoDB, mongoColl string, logger *slog.Logger) (Writer, error) {
	switch storageType {
	case "csv":
		return NewCSVWriter(filepath.Join(outputDir, filename), logger)
	case "mongodb":
		return NewMongoWriter(mongoURI, mongoDB, mongoColl, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
