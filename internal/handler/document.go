package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/domain/services"
	"beacon/internal/httputil"
)

// DocumentHandler handles rendered-page HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// GetChallenge returns a rendered challenge page
// GET /api/challenges/{slug}
func (h *DocumentHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, models.CollectionChallenges, r.PathValue("slug"), "")
}

// GetCourseTopic returns a rendered course topic page
// GET /api/courses/{slug}/{topic}
func (h *DocumentHandler) GetCourseTopic(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, models.CollectionCourses, r.PathValue("slug"), r.PathValue("topic"))
}

// GetChallengeTOC returns the ordered section list of a challenge
// GET /api/challenges/{slug}/toc
func (h *DocumentHandler) GetChallengeTOC(w http.ResponseWriter, r *http.Request) {
	h.renderTOC(w, r, models.CollectionChallenges, r.PathValue("slug"), "")
}

// GetCourseTopicTOC returns the ordered section list of a course topic
// GET /api/courses/{slug}/{topic}/toc
func (h *DocumentHandler) GetCourseTopicTOC(w http.ResponseWriter, r *http.Request) {
	h.renderTOC(w, r, models.CollectionCourses, r.PathValue("slug"), r.PathValue("topic"))
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func (h *DocumentHandler) renderPage(w http.ResponseWriter, r *http.Request, collection models.Collection, slug, topic string) {
	req, err := h.buildRequest(r, collection, slug, topic)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	page, err := h.docService.RenderDocument(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	// Browsers hitting the API directly get the bare page body; the site
	// shell consumes the JSON form.
	if wantsHTML(r) {
		httputil.RespondHTML(w, http.StatusOK, page.HTML)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

func (h *DocumentHandler) renderTOC(w http.ResponseWriter, r *http.Request, collection models.Collection, slug, topic string) {
	req, err := h.buildRequest(r, collection, slug, topic)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	toc, err := h.docService.TableOfContents(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"toc": toc,
	})
}

// buildRequest assembles a render request from the route and the locale
// preferences carried by the query string or Accept-Language header.
func (h *DocumentHandler) buildRequest(r *http.Request, collection models.Collection, slug, topic string) (*services.RenderRequest, error) {
	locales, err := httputil.RequestedLocales(r)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	return &services.RenderRequest{
		Collection:    collection,
		Slug:          slug,
		Topic:         topic,
		Locales:       locales,
		IncludeDrafts: httputil.IsPreview(r),
	}, nil
}

// wantsHTML reports whether the client prefers an HTML response.
func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
