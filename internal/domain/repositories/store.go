package repositories

import (
	"context"

	"beacon/internal/domain/models"
)

// ContentStore resolves document keys to source documents. Implementations
// are read-only at request time: lookups never mutate the store, and a
// reload swaps in a fresh snapshot atomically.
type ContentStore interface {
	// Get returns the document for an exact key.
	// Returns domain.ErrNotFound if no file backs the key.
	Get(ctx context.Context, key models.DocumentKey) (*models.Document, error)

	// Locales returns the locales available for the unit addressed by key
	// (key's own Locale field is ignored), sorted ascending.
	Locales(ctx context.Context, key models.DocumentKey) ([]string, error)

	// ListCollection returns every document of a collection, ordered by
	// slug, then topic, then locale.
	ListCollection(ctx context.Context, collection models.Collection) ([]*models.Document, error)

	// Reload rescans the backing files and atomically replaces the index.
	Reload(ctx context.Context) error
}
