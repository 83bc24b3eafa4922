package handler

import (
	"log/slog"
	"net/http"

	"beacon/internal/domain/models"
	"beacon/internal/domain/services"
	"beacon/internal/httputil"
)

// TreeHandler handles collection navigation tree requests
type TreeHandler struct {
	treeService services.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService services.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the unit/topic navigation tree of a collection
// GET /api/collections/{collection}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	collection := models.Collection(r.PathValue("collection"))

	tree, err := h.treeService.GetCollectionTree(r.Context(), collection, httputil.IsPreview(r))
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
