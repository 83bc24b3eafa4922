package services

import (
	"context"

	"beacon/internal/domain/models"
)

// TreeService defines operations for building collection navigation trees
type TreeService interface {
	// GetCollectionTree builds the nested unit/topic tree for a collection.
	// Draft units are omitted unless includeDrafts is set.
	GetCollectionTree(ctx context.Context, collection models.Collection, includeDrafts bool) (*models.CollectionTree, error)
}
