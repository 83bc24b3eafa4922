package docsite

import (
	"context"
	"fmt"
	"log/slog"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/domain/services"
	"beacon/internal/httputil"
)

// documentService implements the DocumentService interface
type documentService struct {
	store         repositories.ContentStore
	renderer      services.Renderer
	analyzer      services.ContentAnalyzer
	defaultLocale string
	logger        *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	store repositories.ContentStore,
	renderer services.Renderer,
	analyzer services.ContentAnalyzer,
	defaultLocale string,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		store:         store,
		renderer:      renderer,
		analyzer:      analyzer,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// RenderDocument resolves a request to a source document and compiles it
func (s *documentService) RenderDocument(ctx context.Context, req *services.RenderRequest) (*models.RenderedPage, error) {
	doc, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	page, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error("document failed to compile",
			"source", doc.SourcePath,
			"error", err,
		)
		return nil, err
	}

	page.WordCount = s.analyzer.CountWords(doc.Body)
	page.ReadingTime = s.analyzer.ReadingTime(page.WordCount)

	return page, nil
}

// TableOfContents returns only the ordered section list of a page
func (s *documentService) TableOfContents(ctx context.Context, req *services.RenderRequest) ([]models.TOCEntry, error) {
	doc, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	page, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}
	return page.TOC, nil
}

// resolve validates the request, applies the locale fallback policy and
// the draft visibility rule, and returns the backing source document.
func (s *documentService) resolve(ctx context.Context, req *services.RenderRequest) (*models.Document, error) {
	if err := validateRenderRequest(req); err != nil {
		return nil, err
	}

	unit := models.DocumentKey{
		Collection: req.Collection,
		Slug:       req.Slug,
		Topic:      req.Topic,
	}

	available, err := s.store.Locales(ctx, unit)
	if err != nil {
		return nil, err
	}

	locale, err := s.pickLocale(req.Locales, available)
	if err != nil {
		return nil, err
	}

	key := unit
	key.Locale = locale
	doc, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Drafts are indistinguishable from missing content for public
	// readers; only authorized previews see them.
	if doc.Frontmatter.Draft && !req.IncludeDrafts {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("no document for %s/%s", key.Collection, key.Slug),
		}
	}

	return doc, nil
}

// pickLocale applies the fallback policy: the preference list is negotiated
// against the unit's available locales, then the configured default locale
// applies, then NotFound.
func (s *documentService) pickLocale(preferred []string, available []string) (string, error) {
	if locale := httputil.NegotiateLocale(preferred, available); locale != "" {
		return locale, nil
	}
	if contains(available, s.defaultLocale) {
		return s.defaultLocale, nil
	}
	if len(preferred) == 0 && len(available) > 0 {
		// Unit exists but has no default-locale variant: serve the first
		// available locale rather than hiding existing content.
		return available[0], nil
	}
	return "", &domain.NotFoundError{
		Message: fmt.Sprintf("no %v or fallback %q variant available", preferred, s.defaultLocale),
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
