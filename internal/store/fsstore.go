// Package store implements the filesystem content store.
//
// The on-disk layout is the addressing scheme:
//
//	content/challenges/<slug>/<locale>/<doc>.mdx
//	content/courses/<slug>/<topic>/<locale>.mdx
//
// A scan loads every document eagerly into an immutable in-memory index;
// lookups never touch the filesystem, and a reload swaps the whole index
// atomically. The store is policy-free: draft filtering and locale
// fallback belong to the services on top of it.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"beacon/internal/config"
	"beacon/internal/domain"
	"beacon/internal/domain/models"
)

const sourceExtension = ".mdx"

// FSStore is a filesystem-backed content store.
type FSStore struct {
	root   string
	logger *slog.Logger

	mu  sync.RWMutex
	idx *index
}

// index is one immutable snapshot of the scanned content tree.
type index struct {
	docs map[models.DocumentKey]*models.Document
	// ordered keys per collection: slug, then topic, then locale
	order map[models.Collection][]models.DocumentKey
	// locales available per unit (key with Locale zeroed), sorted
	locales map[models.DocumentKey][]string
}

// NewFSStore creates a store rooted at dir and performs the initial scan.
// Scan failures are returned eagerly so broken content is caught at
// startup or build time, never on a reader's request.
func NewFSStore(dir string, logger *slog.Logger) (*FSStore, error) {
	s := &FSStore{
		root:   dir,
		logger: logger,
	}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the document for an exact key.
func (s *FSStore) Get(ctx context.Context, key models.DocumentKey) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.idx.docs[key]
	if !ok {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("no document for %s/%s", key.Collection, keyPath(key)),
		}
	}
	return doc, nil
}

// Locales returns the locales available for the unit addressed by key.
func (s *FSStore) Locales(ctx context.Context, key models.DocumentKey) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locales, ok := s.idx.locales[key.Unit()]
	if !ok {
		return nil, &domain.NotFoundError{
			Message: fmt.Sprintf("no unit %s/%s", key.Collection, keyPath(key)),
		}
	}
	return locales, nil
}

// ListCollection returns every document of a collection in index order.
func (s *FSStore) ListCollection(ctx context.Context, collection models.Collection) ([]*models.Document, error) {
	if !collection.Valid() {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("unknown collection %q", collection),
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.idx.order[collection]
	docs := make([]*models.Document, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, s.idx.docs[key])
	}
	return docs, nil
}

// Reload rescans the content root and atomically replaces the index.
// On failure the previous index stays in place.
func (s *FSStore) Reload(ctx context.Context) error {
	idx, err := s.scan()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()

	s.logger.Info("content store loaded",
		"root", s.root,
		"documents", len(idx.docs),
	)
	return nil
}

// scan walks the content tree and builds a fresh index.
func (s *FSStore) scan() (*index, error) {
	idx := &index{
		docs:    make(map[models.DocumentKey]*models.Document),
		order:   make(map[models.Collection][]models.DocumentKey),
		locales: make(map[models.DocumentKey][]string),
	}

	for _, collection := range []models.Collection{models.CollectionChallenges, models.CollectionCourses} {
		dir := filepath.Join(s.root, string(collection))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := s.scanCollection(idx, collection, dir); err != nil {
			return nil, err
		}
	}

	// Deterministic ordering: slug, then topic, then locale
	for collection := range idx.order {
		keys := idx.order[collection]
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.Slug != b.Slug {
				return a.Slug < b.Slug
			}
			if a.Topic != b.Topic {
				return a.Topic < b.Topic
			}
			return a.Locale < b.Locale
		})
	}
	for unit, locales := range idx.locales {
		sort.Strings(locales)
		idx.locales[unit] = locales
	}

	return idx, nil
}

// scanCollection indexes one collection directory.
func (s *FSStore) scanCollection(idx *index, collection models.Collection, dir string) error {
	slugEntries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read collection %s: %w", collection, err)
	}

	for _, slugEntry := range slugEntries {
		if !slugEntry.IsDir() {
			s.logger.Warn("ignoring stray file in collection root",
				"collection", collection, "name", slugEntry.Name())
			continue
		}
		slug := slugEntry.Name()
		if err := validateSegment("slug", slug); err != nil {
			return err
		}

		slugDir := filepath.Join(dir, slug)
		switch collection {
		case models.CollectionChallenges:
			if err := s.scanChallenge(idx, slug, slugDir); err != nil {
				return err
			}
		case models.CollectionCourses:
			if err := s.scanCourse(idx, slug, slugDir); err != nil {
				return err
			}
		}
	}
	return nil
}

// scanChallenge indexes challenges/<slug>/<locale>/<doc>.mdx
func (s *FSStore) scanChallenge(idx *index, slug, slugDir string) error {
	localeEntries, err := os.ReadDir(slugDir)
	if err != nil {
		return fmt.Errorf("read challenge %s: %w", slug, err)
	}

	for _, localeEntry := range localeEntries {
		if !localeEntry.IsDir() {
			continue
		}
		locale := localeEntry.Name()
		if err := validateSegment("locale", locale); err != nil {
			return err
		}

		localeDir := filepath.Join(slugDir, locale)
		files, err := sourceFiles(localeDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			continue
		}
		if len(files) > 1 {
			rel, _ := filepath.Rel(s.root, localeDir)
			return &domain.CompileError{
				File:    rel,
				Message: fmt.Sprintf("locale directory holds %d documents, expected one", len(files)),
			}
		}

		key := models.DocumentKey{
			Collection: models.CollectionChallenges,
			Slug:       slug,
			Locale:     locale,
		}
		if err := s.loadDocument(idx, key, filepath.Join(localeDir, files[0])); err != nil {
			return err
		}
	}
	return nil
}

// scanCourse indexes courses/<slug>/<topic>/<locale>.mdx
func (s *FSStore) scanCourse(idx *index, slug, slugDir string) error {
	topicEntries, err := os.ReadDir(slugDir)
	if err != nil {
		return fmt.Errorf("read course %s: %w", slug, err)
	}

	for _, topicEntry := range topicEntries {
		if !topicEntry.IsDir() {
			continue
		}
		topic := topicEntry.Name()
		if err := validateSegment("topic", topic); err != nil {
			return err
		}

		topicDir := filepath.Join(slugDir, topic)
		files, err := sourceFiles(topicDir)
		if err != nil {
			return err
		}

		for _, file := range files {
			locale := strings.TrimSuffix(file, sourceExtension)
			if err := validateSegment("locale", locale); err != nil {
				return err
			}

			key := models.DocumentKey{
				Collection: models.CollectionCourses,
				Slug:       slug,
				Topic:      topic,
				Locale:     locale,
			}
			if err := s.loadDocument(idx, key, filepath.Join(topicDir, file)); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadDocument reads and parses one source file into the index.
func (s *FSStore) loadDocument(idx *index, key models.DocumentKey, path string) error {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.Size() > config.MaxDocumentSize {
		return &domain.CompileError{
			File:    rel,
			Message: fmt.Sprintf("document is %d bytes, limit is %d", info.Size(), config.MaxDocumentSize),
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}

	fm, body, bodyLine, err := parseFrontmatter(rel, string(raw))
	if err != nil {
		return err
	}

	idx.docs[key] = &models.Document{
		Key:         key,
		Frontmatter: fm,
		Body:        body,
		SourcePath:  rel,
		BodyLine:    bodyLine,
		ModTime:     info.ModTime(),
	}
	idx.order[key.Collection] = append(idx.order[key.Collection], key)

	unit := key.Unit()
	idx.locales[unit] = append(idx.locales[unit], key.Locale)
	return nil
}

// sourceFiles lists the .mdx files directly inside dir, sorted by name.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), sourceExtension) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateSegment enforces the addressing charset on a path segment.
// Segments become URL path components, so the rules are strict: lowercase
// letters, digits, hyphens and underscores only.
func validateSegment(kind, segment string) error {
	if segment == "" {
		return &domain.ValidationError{Message: kind + " cannot be empty"}
	}
	if len(segment) > config.MaxSlugLength {
		return &domain.ValidationError{
			Message: fmt.Sprintf("%s %q exceeds maximum length of %d", kind, segment, config.MaxSlugLength),
		}
	}
	for _, char := range segment {
		if !unicode.IsLower(char) && !unicode.IsDigit(char) && char != '-' && char != '_' {
			return &domain.ValidationError{
				Message: fmt.Sprintf("%s %q contains invalid character: %c", kind, segment, char),
			}
		}
	}
	return nil
}

// keyPath renders a key's addressing path for error messages.
func keyPath(key models.DocumentKey) string {
	parts := []string{key.Slug}
	if key.Topic != "" {
		parts = append(parts, key.Topic)
	}
	if key.Locale != "" {
		parts = append(parts, key.Locale)
	}
	return strings.Join(parts, "/")
}
