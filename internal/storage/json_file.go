package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmynk/grocer/internal/models"
)

// Ensure JSONFileDocument implements Document
var _ Document[models.Item] = (*JSONFileDocument[models.Item])(nil)

// JSONFileDocument stores a document as a pretty-printed JSON array in data_dir/<name>.json.
type JSONFileDocument[T any] struct {
	name string
	path string
}

// NewJSONFileDocument creates the data directory if needed and returns the document handle.
// The file itself is created on the first Save.
func NewJSONFileDocument[T any](dir, name string) (*JSONFileDocument[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONFileDocument[T]{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}, nil
}

// NewJSONFileStore opens users.json, items.json and bills.json under dir.
func NewJSONFileStore(dir string) (*Store, error) {
	users, err := NewJSONFileDocument[models.User](dir, UsersDocument)
	if err != nil {
		return nil, err
	}
	items, err := NewJSONFileDocument[models.Item](dir, ItemsDocument)
	if err != nil {
		return nil, err
	}
	bills, err := NewJSONFileDocument[models.LedgerEntry](dir, BillsDocument)
	if err != nil {
		return nil, err
	}
	return &Store{Users: users, Items: items, Bills: bills}, nil
}

func (d *JSONFileDocument[T]) Name() string {
	return d.name
}

// Path returns the file backing the document.
func (d *JSONFileDocument[T]) Path() string {
	return d.path
}

func (d *JSONFileDocument[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s document: %w", d.name, err)
	}
	return decodeRecords[T](d.name, data), nil
}

func (d *JSONFileDocument[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", d.name, err)
	}
	if err := os.WriteFile(d.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s document: %w", d.name, err)
	}
	return nil
}

// decodeRecords parses a JSON array, downgrading malformed content to an empty collection.
func decodeRecords[T any](name string, data []byte) []T {
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("Malformed document, treating as empty", "document", name, "error", err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

func encodeRecords[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.MarshalIndent(records, "", "    ")
}
