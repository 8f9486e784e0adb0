package storage

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"menuscrape/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestCSVWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := NewCSVWriter(path, testLogger)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}

	rec := types.Record{
		Category:    "Cold Coffee/Cold Brew",
		ProductName: "Cold Brew",
		Size:        "Grande",
		Calories:    "5 calories",
		Price:       "$4.95",
		URL:         "https://example.com/menu/product/cold-brew/iced",
	}
	if err := w.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}

	wantHeader := []string{"category", "product_name", "size", "calories", "price", "url"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != rec.Category || rows[1][4] != rec.Price {
		t.Errorf("row = %v", rows[1])
	}
}

func TestCSVWriterTruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale,data,from,a,previous,run\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := NewCSVWriter(path, testLogger)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only after truncation, got %d rows", len(rows))
	}
	if rows[0][0] != "category" {
		t.Errorf("first cell = %q, want %q", rows[0][0], "category")
	}
}
