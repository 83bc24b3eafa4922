package services

import (
	"context"

	"beacon/internal/domain/models"
)

// RenderRequest identifies the page a caller wants rendered.
type RenderRequest struct {
	Collection models.Collection
	Slug       string
	Topic      string // empty for challenges

	// Locales is the caller's preference list, strongest first. It is
	// negotiated against the locales actually present for the unit; empty
	// means "use the fallback policy".
	Locales []string

	// IncludeDrafts exposes draft documents to authorized preview requests.
	// Public lookups leave it false and see NotFound for drafts.
	IncludeDrafts bool
}

// DocumentService is the rendering boundary: it resolves a request to a
// source document and compiles it to a rendered page.
type DocumentService interface {
	// RenderDocument resolves the request against the content store and
	// compiles the document. Returns domain.ErrNotFound when no variant
	// satisfies the request and domain.CompileError for malformed markup.
	RenderDocument(ctx context.Context, req *RenderRequest) (*models.RenderedPage, error)

	// TableOfContents returns only the ordered section list of a page.
	TableOfContents(ctx context.Context, req *RenderRequest) ([]models.TOCEntry, error)
}

// Renderer compiles one source document into a rendered page.
// Implementations must be deterministic: the same document always yields
// byte-identical output.
type Renderer interface {
	Render(doc *models.Document) (*models.RenderedPage, error)
}
