package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/grocer/internal/models"
	"github.com/mmynk/grocer/internal/storage"
)

// loadCatalog loads the items document, assigning IDs to records written without one.
func loadCatalog(ctx context.Context, doc storage.Document[models.Item]) ([]models.Item, error) {
	items, err := doc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	backfilled := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
			backfilled++
		}
	}
	if backfilled > 0 {
		if err := doc.Save(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to persist backfilled item IDs: %w", err)
		}
		slog.Info("Assigned IDs to legacy catalog items", "count", backfilled)
	}

	return items, nil
}

// itemAt resolves a 1-based catalog index.
func itemAt(items []models.Item, index int) (int, error) {
	if index < 1 || index > len(items) {
		return 0, fmt.Errorf("%w: index %d not in 1-%d", ErrItemNotFound, index, len(items))
	}
	return index - 1, nil
}
