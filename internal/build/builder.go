// Package build renders the whole content tree to a static output
// directory. It is the publishing gate: any compile error fails the build
// before broken content can reach readers.
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/domain/services"
)

// Builder renders every published document of every locale to disk.
type Builder struct {
	store    repositories.ContentStore
	renderer services.Renderer
	analyzer services.ContentAnalyzer
	outDir   string
	logger   *slog.Logger
}

// NewBuilder creates a builder writing into outDir.
func NewBuilder(
	store repositories.ContentStore,
	renderer services.Renderer,
	analyzer services.ContentAnalyzer,
	outDir string,
	logger *slog.Logger,
) *Builder {
	return &Builder{
		store:    store,
		renderer: renderer,
		analyzer: analyzer,
		outDir:   outDir,
		logger:   logger,
	}
}

// Run renders the full content tree. Documents are independent, so they
// render in parallel; the first failure cancels the rest and is returned.
func (b *Builder) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	total := 0
	for _, collection := range []models.Collection{models.CollectionChallenges, models.CollectionCourses} {
		docs, err := b.store.ListCollection(ctx, collection)
		if err != nil {
			return err
		}

		for _, doc := range docs {
			if doc.Frontmatter.Draft {
				b.logger.Debug("skipping draft", "source", doc.SourcePath)
				continue
			}
			total++
			group.Go(func() error {
				return b.renderOne(ctx, doc)
			})
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}

	b.logger.Info("build complete", "documents", total, "out", b.outDir)
	return nil
}

// renderOne compiles a single document and writes its page artifacts.
func (b *Builder) renderOne(ctx context.Context, doc *models.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	page, err := b.renderer.Render(doc)
	if err != nil {
		return err
	}
	page.WordCount = b.analyzer.CountWords(doc.Body)
	page.ReadingTime = b.analyzer.ReadingTime(page.WordCount)

	dir := filepath.Join(b.outDir, b.pagePath(doc.Key))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page.HTML), 0644); err != nil {
		return fmt.Errorf("write page html: %w", err)
	}

	meta, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("encode page metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "page.json"), meta, 0644); err != nil {
		return fmt.Errorf("write page metadata: %w", err)
	}

	b.logger.Debug("rendered", "source", doc.SourcePath)
	return nil
}

// pagePath maps a document key to its output directory.
func (b *Builder) pagePath(key models.DocumentKey) string {
	parts := []string{string(key.Collection), key.Slug}
	if key.Topic != "" {
		parts = append(parts, key.Topic)
	}
	parts = append(parts, key.Locale)
	return filepath.Join(parts...)
}
