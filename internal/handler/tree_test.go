package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
	"beacon/internal/httputil"
)

type stubTreeService struct {
	tree       *models.CollectionTree
	err        error
	lastDrafts bool
}

func (s *stubTreeService) GetCollectionTree(ctx context.Context, collection models.Collection, includeDrafts bool) (*models.CollectionTree, error) {
	s.lastDrafts = includeDrafts
	if s.err != nil {
		return nil, s.err
	}
	return s.tree, nil
}

func newTreeMux(svc *stubTreeService) *http.ServeMux {
	h := NewTreeHandler(svc, handlerLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/collections/{collection}/tree", h.GetTree)
	return mux
}

func TestGetTree(t *testing.T) {
	svc := &stubTreeService{tree: &models.CollectionTree{
		Collection: models.CollectionCourses,
		Units: []*models.UnitTreeNode{
			{
				Slug:  "anchor-basics",
				Title: "Accounts",
				Topics: []*models.TopicTreeNode{
					{Topic: "accounts", Title: "Accounts", Locales: []string{"en", "fr"}},
				},
			},
		},
	}}
	mux := newTreeMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/courses/tree", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastDrafts {
		t.Error("includeDrafts = true for a public request")
	}

	var tree models.CollectionTree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if tree.Collection != models.CollectionCourses {
		t.Errorf("Collection = %q", tree.Collection)
	}
	if len(tree.Units) != 1 || tree.Units[0].Slug != "anchor-basics" {
		t.Errorf("Units = %+v", tree.Units)
	}
}

func TestGetTree_Preview(t *testing.T) {
	svc := &stubTreeService{tree: &models.CollectionTree{Collection: models.CollectionChallenges}}
	mux := newTreeMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/challenges/tree", nil)
	req = httputil.WithPreview(req)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.lastDrafts {
		t.Error("includeDrafts = false for a preview request")
	}
}

func TestGetTree_UnknownCollection(t *testing.T) {
	svc := &stubTreeService{err: &domain.ValidationError{Message: `unknown collection "posts"`}}
	mux := newTreeMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/posts/tree", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
