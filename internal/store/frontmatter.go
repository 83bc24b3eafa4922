package store

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"beacon/internal/config"
	"beacon/internal/domain"
	"beacon/internal/domain/models"
)

const frontmatterDelimiter = "---"

// splitFrontmatter splits a source file into its YAML frontmatter block and
// the markup body. The frontmatter block is mandatory: it must start on the
// first line and be closed by a matching delimiter line.
// bodyLine is the 1-based line number the body starts on.
func splitFrontmatter(src string) (meta string, body string, bodyLine int, err error) {
	lines := strings.SplitAfter(src, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontmatterDelimiter {
		return "", "", 0, fmt.Errorf("document must start with a %q frontmatter block", frontmatterDelimiter)
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontmatterDelimiter {
			meta = strings.Join(lines[1:i], "")
			body = strings.Join(lines[i+1:], "")
			return meta, body, i + 2, nil
		}
	}

	return "", "", 0, fmt.Errorf("unterminated frontmatter block")
}

// parseFrontmatter decodes and validates a document's frontmatter.
// Any failure is a CompileError attributed to the source file, so broken
// metadata blocks publishing the same way broken markup does.
func parseFrontmatter(sourcePath, src string) (models.Frontmatter, string, int, error) {
	meta, body, bodyLine, err := splitFrontmatter(src)
	if err != nil {
		return models.Frontmatter{}, "", 0, &domain.CompileError{
			File:    sourcePath,
			Line:    1,
			Message: err.Error(),
		}
	}

	var fm models.Frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return models.Frontmatter{}, "", 0, &domain.CompileError{
			File:    sourcePath,
			Line:    1,
			Message: fmt.Sprintf("invalid frontmatter: %v", err),
		}
	}

	if err := validateFrontmatter(&fm); err != nil {
		return models.Frontmatter{}, "", 0, &domain.CompileError{
			File:    sourcePath,
			Line:    1,
			Message: fmt.Sprintf("invalid frontmatter: %v", err),
		}
	}

	return fm, body, bodyLine, nil
}

// validateFrontmatter enforces the metadata contract shared by all documents
func validateFrontmatter(fm *models.Frontmatter) error {
	return validation.ValidateStruct(fm,
		validation.Field(&fm.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&fm.Description,
			validation.Length(0, config.MaxDescriptionLength),
		),
		validation.Field(&fm.Banner,
			validation.Length(0, config.MaxDescriptionLength),
		),
	)
}
