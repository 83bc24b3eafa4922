package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDoc writes one source file under root, creating parent directories.
func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func minimalDoc(title string) string {
	return "---\ntitle: " + title + "\n---\n\nSome prose.\n"
}

func seedContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeDoc(t, root, "challenges/anchor-vault/en/challenge.mdx", minimalDoc("Anchor Vault"))
	writeDoc(t, root, "challenges/anchor-vault/es/challenge.mdx", minimalDoc("Anchor Vault ES"))
	writeDoc(t, root, "challenges/pinocchio-vault/en/challenge.mdx", "---\ntitle: Pinocchio Vault\ndraft: true\n---\nbody\n")
	writeDoc(t, root, "courses/anchor-basics/accounts/en.mdx", minimalDoc("Accounts"))
	writeDoc(t, root, "courses/anchor-basics/accounts/fr.mdx", minimalDoc("Comptes"))
	writeDoc(t, root, "courses/anchor-basics/pdas/en.mdx", minimalDoc("PDAs"))
	return root
}

func TestFSStore_Get(t *testing.T) {
	s, err := NewFSStore(seedContent(t), testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	key := models.DocumentKey{
		Collection: models.CollectionChallenges,
		Slug:       "anchor-vault",
		Locale:     "en",
	}
	doc, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Frontmatter.Title != "Anchor Vault" {
		t.Errorf("Title = %q", doc.Frontmatter.Title)
	}
	if doc.Key != key {
		t.Errorf("Key = %+v", doc.Key)
	}
	if doc.SourcePath != filepath.FromSlash("challenges/anchor-vault/en/challenge.mdx") {
		t.Errorf("SourcePath = %q", doc.SourcePath)
	}
	if doc.BodyLine != 4 {
		t.Errorf("BodyLine = %d, want 4", doc.BodyLine)
	}
}

func TestFSStore_GetMissing(t *testing.T) {
	s, err := NewFSStore(seedContent(t), testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	tests := []struct {
		name string
		key  models.DocumentKey
	}{
		{
			name: "unknown slug",
			key:  models.DocumentKey{Collection: models.CollectionChallenges, Slug: "no-such", Locale: "en"},
		},
		{
			name: "unknown locale",
			key:  models.DocumentKey{Collection: models.CollectionChallenges, Slug: "anchor-vault", Locale: "de"},
		},
		{
			name: "course without topic",
			key:  models.DocumentKey{Collection: models.CollectionCourses, Slug: "anchor-basics", Locale: "en"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Get(context.Background(), tt.key)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestFSStore_Locales(t *testing.T) {
	s, err := NewFSStore(seedContent(t), testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	locales, err := s.Locales(context.Background(), models.DocumentKey{
		Collection: models.CollectionChallenges,
		Slug:       "anchor-vault",
	})
	if err != nil {
		t.Fatalf("Locales() error = %v", err)
	}
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es" {
		t.Errorf("locales = %v, want [en es]", locales)
	}

	// The unit is addressed with the locale zeroed; a key carrying a
	// locale still resolves the same unit.
	withLocale, err := s.Locales(context.Background(), models.DocumentKey{
		Collection: models.CollectionCourses,
		Slug:       "anchor-basics",
		Topic:      "accounts",
		Locale:     "fr",
	})
	if err != nil {
		t.Fatalf("Locales() error = %v", err)
	}
	if len(withLocale) != 2 || withLocale[0] != "en" || withLocale[1] != "fr" {
		t.Errorf("locales = %v, want [en fr]", withLocale)
	}

	_, err = s.Locales(context.Background(), models.DocumentKey{
		Collection: models.CollectionChallenges,
		Slug:       "missing",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Locales() error = %v, want ErrNotFound", err)
	}
}

func TestFSStore_ListCollection(t *testing.T) {
	s, err := NewFSStore(seedContent(t), testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	docs, err := s.ListCollection(context.Background(), models.CollectionCourses)
	if err != nil {
		t.Fatalf("ListCollection() error = %v", err)
	}

	want := []models.DocumentKey{
		{Collection: models.CollectionCourses, Slug: "anchor-basics", Topic: "accounts", Locale: "en"},
		{Collection: models.CollectionCourses, Slug: "anchor-basics", Topic: "accounts", Locale: "fr"},
		{Collection: models.CollectionCourses, Slug: "anchor-basics", Topic: "pdas", Locale: "en"},
	}
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for i, key := range want {
		if docs[i].Key != key {
			t.Errorf("docs[%d].Key = %+v, want %+v", i, docs[i].Key, key)
		}
	}

	if _, err := s.ListCollection(context.Background(), models.Collection("posts")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ListCollection(posts) error = %v, want ErrValidation", err)
	}
}

func TestFSStore_Reload(t *testing.T) {
	root := seedContent(t)
	s, err := NewFSStore(root, testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	key := models.DocumentKey{
		Collection: models.CollectionChallenges,
		Slug:       "native-vault",
		Locale:     "en",
	}
	if _, err := s.Get(context.Background(), key); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() before reload error = %v, want ErrNotFound", err)
	}

	writeDoc(t, root, "challenges/native-vault/en/challenge.mdx", minimalDoc("Native Vault"))
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	doc, err := s.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() after reload error = %v", err)
	}
	if doc.Frontmatter.Title != "Native Vault" {
		t.Errorf("Title = %q", doc.Frontmatter.Title)
	}
}

func TestFSStore_ReloadKeepsIndexOnFailure(t *testing.T) {
	root := seedContent(t)
	s, err := NewFSStore(root, testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	writeDoc(t, root, "challenges/broken/en/challenge.mdx", "no frontmatter at all\n")
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("Reload() expected error for broken document")
	}

	// Previous snapshot must still serve.
	doc, err := s.Get(context.Background(), models.DocumentKey{
		Collection: models.CollectionChallenges,
		Slug:       "anchor-vault",
		Locale:     "en",
	})
	if err != nil {
		t.Fatalf("Get() after failed reload error = %v", err)
	}
	if doc.Frontmatter.Title != "Anchor Vault" {
		t.Errorf("Title = %q", doc.Frontmatter.Title)
	}
}

func TestNewFSStore_ScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(t *testing.T, root string)
		wantErr error
	}{
		{
			name: "two documents in one challenge locale",
			seed: func(t *testing.T, root string) {
				writeDoc(t, root, "challenges/anchor-vault/en/challenge.mdx", minimalDoc("A"))
				writeDoc(t, root, "challenges/anchor-vault/en/extra.mdx", minimalDoc("B"))
			},
			wantErr: domain.ErrCompile,
		},
		{
			name: "uppercase slug",
			seed: func(t *testing.T, root string) {
				writeDoc(t, root, "challenges/Anchor-Vault/en/challenge.mdx", minimalDoc("A"))
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "invalid locale filename",
			seed: func(t *testing.T, root string) {
				writeDoc(t, root, "courses/anchor-basics/accounts/EN.mdx", minimalDoc("A"))
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "broken frontmatter",
			seed: func(t *testing.T, root string) {
				writeDoc(t, root, "challenges/anchor-vault/en/challenge.mdx", "---\ndescription: untitled\n---\nbody\n")
			},
			wantErr: domain.ErrCompile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.seed(t, root)

			_, err := NewFSStore(root, testLogger())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFSStore() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFSStore_EmptyRoot(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewFSStore() error = %v", err)
	}

	docs, err := s.ListCollection(context.Background(), models.CollectionChallenges)
	if err != nil {
		t.Fatalf("ListCollection() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}
