// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/grocer/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("record with the same key already exists")
)

// Document is one named, persisted collection of records.
// The whole collection is read and written at once; there are no partial updates.
type Document[T any] interface {
	// Name identifies the document (e.g. "users").
	Name() string

	// Load returns every record in the document.
	// A missing or malformed document yields an empty slice and no error.
	Load(ctx context.Context) ([]T, error)

	// Save replaces the document contents with records.
	// Writes are not atomic: an interrupted save can leave the document truncated.
	Save(ctx context.Context, records []T) error
}

// Store groups the three documents the application works on.
// It is constructed once per process and handed to the services.
type Store struct {
	Users Document[models.User]
	Items Document[models.Item]
	Bills Document[models.LedgerEntry]
}

// Document names.
const (
	UsersDocument = "users"
	ItemsDocument = "items"
	BillsDocument = "bills"
)
