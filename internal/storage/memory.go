package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/grocer/internal/models"
)

// Ensure MemoryDocument implements Document
var _ Document[models.Item] = (*MemoryDocument[models.Item])(nil)

// MemoryDocument keeps a document in memory. Data is lost on restart.
// Records are kept in their encoded form so callers never share slices with the store.
type MemoryDocument[T any] struct {
	mu   sync.Mutex
	name string
	data []byte
}

// NewMemoryDocument returns an in-memory document seeded with records.
func NewMemoryDocument[T any](name string, records ...T) *MemoryDocument[T] {
	d := &MemoryDocument[T]{name: name}
	if len(records) > 0 {
		// Seed records are plain structs; encoding cannot fail.
		d.data, _ = encodeRecords(records)
	}
	return d
}

// NewMemoryStore returns a Store backed entirely by memory.
func NewMemoryStore() *Store {
	return &Store{
		Users: NewMemoryDocument[models.User](UsersDocument),
		Items: NewMemoryDocument[models.Item](ItemsDocument),
		Bills: NewMemoryDocument[models.LedgerEntry](BillsDocument),
	}
}

func (d *MemoryDocument[T]) Name() string {
	return d.name
}

func (d *MemoryDocument[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return decodeRecords[T](d.name, d.data), nil
}

func (d *MemoryDocument[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", d.name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = b
	return nil
}

// Raw returns the encoded document as it would appear on disk.
func (d *MemoryDocument[T]) Raw() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.data...)
}

// SetRaw replaces the encoded document, malformed content included.
func (d *MemoryDocument[T]) SetRaw(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = append([]byte(nil), data...)
}
