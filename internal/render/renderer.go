// Package render compiles document markup into HTML.
//
// A document body is standard markdown interleaved with two components:
//
//	<ArticleSection name="Installation" id="installation" level="h2" />
//
//	<Codeblock lang="rust" title="lib.rs">
//	...verbatim code...
//	</Codeblock>
//
// Markdown is delegated to goldmark and highlighting to chroma; only the
// two-tag component grammar is parsed here. Rendering is deterministic:
// the same document always produces byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"beacon/internal/domain"
	"beacon/internal/domain/models"
)

// Pipeline implements services.Renderer.
type Pipeline struct {
	md   goldmark.Markdown
	code *codeRenderer
}

// NewPipeline creates the markup pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Content is authored in-repo, not user-submitted: inline HTML
			// in prose passes through.
			goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
		),
		code: newCodeRenderer(),
	}
}

// Render compiles one document to a rendered page.
// All failure modes are CompileErrors attributed to the source file.
func (p *Pipeline) Render(doc *models.Document) (*models.RenderedPage, error) {
	segments, err := scanSegments(doc.Body)
	if err != nil {
		return nil, p.compileError(doc, err)
	}

	var sb strings.Builder
	toc := make([]models.TOCEntry, 0, len(segments))
	seenIDs := make(map[string]int)

	for _, seg := range segments {
		switch seg.kind {
		case markdownSegment:
			if err := p.md.Convert([]byte(seg.text), &sb); err != nil {
				return nil, p.compileError(doc, scanErrorf(seg.line, "markdown: %v", err))
			}

		case sectionSegment:
			if firstLine, dup := seenIDs[seg.section.ID]; dup {
				return nil, p.compileError(doc, scanErrorf(seg.line,
					"duplicate section id %q (first used on line %d)", seg.section.ID, firstLine))
			}
			seenIDs[seg.section.ID] = seg.line

			sb.WriteString(renderSection(seg.section))
			toc = append(toc, models.TOCEntry{
				Name:  seg.section.Name,
				ID:    seg.section.ID,
				Level: seg.section.Level,
			})

		case codeSegment:
			block, err := p.code.render(seg.code)
			if err != nil {
				return nil, p.compileError(doc, scanErrorf(seg.line, "codeblock: %v", err))
			}
			sb.WriteString(block)
		}
	}

	return &models.RenderedPage{
		Key:         doc.Key,
		Title:       doc.Frontmatter.Title,
		Banner:      doc.Frontmatter.Banner,
		Description: doc.Frontmatter.Description,
		Tags:        doc.Frontmatter.Tags,
		Draft:       doc.Frontmatter.Draft,
		HTML:        sb.String(),
		TOC:         toc,
	}, nil
}

// compileError attributes a body-relative scan error to the source file.
func (p *Pipeline) compileError(doc *models.Document, err error) error {
	if scanErr, ok := err.(*scanError); ok {
		line := scanErr.line
		if doc.BodyLine > 0 {
			line += doc.BodyLine - 1
		}
		return &domain.CompileError{
			File:    doc.SourcePath,
			Line:    line,
			Message: scanErr.msg,
		}
	}
	return &domain.CompileError{
		File:    doc.SourcePath,
		Message: fmt.Sprintf("%v", err),
	}
}
