package docsite

import (
	"strings"
	"unicode"

	"beacon/internal/domain/services"
)

// wordsPerMinute is the assumed reading speed for the estimate.
const wordsPerMinute = 200

type contentAnalyzerService struct{}

// NewContentAnalyzer creates a new content analyzer service
func NewContentAnalyzer() services.ContentAnalyzer {
	return &contentAnalyzerService{}
}

// CountWords counts the prose words in document markup. Component tags
// and code contents are stripped first - code samples are read, not
// "read", and would wildly inflate the estimate.
func (s *contentAnalyzerService) CountWords(markup string) int {
	text := s.cleanMarkup(markup)

	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	count := 0
	for _, word := range words {
		if len(strings.TrimSpace(word)) > 0 {
			count++
		}
	}
	return count
}

// ReadingTime estimates reading time in whole minutes, never below 1.
func (s *contentAnalyzerService) ReadingTime(wordCount int) int {
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// cleanMarkup removes component blocks and markdown syntax from text
func (s *contentAnalyzerService) cleanMarkup(markup string) string {
	text := s.removeComponents(markup)

	// Remove fenced code blocks
	text = s.removeDelimitedBlocks(text, "```", "```")

	// Remove inline code and emphasis markers
	text = strings.ReplaceAll(text, "`", "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "_", "")
	text = strings.ReplaceAll(text, "~~", "")

	// Remove heading markers
	text = strings.ReplaceAll(text, "#", "")

	// Remove list markers
	lines := strings.Split(text, "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			line = strings.TrimPrefix(line, "- ")
		} else if strings.HasPrefix(line, "* ") {
			line = strings.TrimPrefix(line, "* ")
		}
		// Remove numbered list markers (e.g., "1. ", "2. ")
		if len(line) > 2 && unicode.IsDigit(rune(line[0])) && line[1] == '.' {
			line = line[2:]
		}
		cleanedLines = append(cleanedLines, line)
	}
	text = strings.Join(cleanedLines, " ")

	// Remove blockquote markers and horizontal rules
	text = strings.ReplaceAll(text, ">", "")
	text = strings.ReplaceAll(text, "---", "")
	text = strings.ReplaceAll(text, "***", "")

	return text
}

// removeDelimitedBlocks removes open...close delimited blocks from text
func (s *contentAnalyzerService) removeDelimitedBlocks(text, open, close string) string {
	for {
		start := strings.Index(text, open)
		if start == -1 {
			break
		}
		end := strings.Index(text[start+len(open):], close)
		if end == -1 {
			break
		}
		text = text[:start] + text[start+len(open)+end+len(close):]
	}
	return text
}

// removeComponents strips ArticleSection lines (keeping their display
// name, which is prose) and whole Codeblock blocks.
func (s *contentAnalyzerService) removeComponents(markup string) string {
	lines := strings.Split(markup, "\n")
	var kept []string
	inCode := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case inCode:
			if trimmed == "</Codeblock>" {
				inCode = false
			}
		case strings.HasPrefix(trimmed, "<Codeblock"):
			inCode = true
		case strings.HasPrefix(trimmed, "<ArticleSection"):
			// A section heading is prose: keep the name prop's words
			if name, ok := extractAttr(trimmed, "name"); ok {
				kept = append(kept, name)
			}
		default:
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// extractAttr pulls one double-quoted attribute value out of a tag line.
func extractAttr(line, key string) (string, bool) {
	marker := key + `="`
	start := strings.Index(line, marker)
	if start < 0 {
		return "", false
	}
	rest := line[start+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
