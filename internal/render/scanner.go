package render

import (
	"fmt"
	"strings"
	"unicode"
)

// The document body is a sequence of three block kinds: standard markdown,
// ArticleSection tags and Codeblock tags. The scanner splits a body into
// that sequence with a strict grammar - any malformed component usage is
// an error here, before rendering, so it surfaces as a compile failure.

type segmentKind int

const (
	markdownSegment segmentKind = iota
	sectionSegment
	codeSegment
)

const (
	sectionTag   = "ArticleSection"
	codeblockTag = "Codeblock"
)

// sectionProps are the parsed props of an ArticleSection tag.
type sectionProps struct {
	Name  string
	ID    string // empty means "derive from Name"
	Level int    // heading level 1-4, default 2
}

// codeProps are the parsed props of a Codeblock tag plus its literal body.
type codeProps struct {
	Lang    string
	Title   string
	Literal string
}

// segment is one block of the scanned body.
type segment struct {
	kind    segmentKind
	line    int    // 1-based line within the body where the segment starts
	text    string // raw markdown, for markdownSegment
	section sectionProps
	code    codeProps
}

// scanError reports a grammar violation at a body line. The renderer
// translates it into a CompileError attributed to the source file.
type scanError struct {
	line int
	msg  string
}

func (e *scanError) Error() string {
	return fmt.Sprintf("line %d: %s", e.line, e.msg)
}

func scanErrorf(line int, format string, args ...any) *scanError {
	return &scanError{line: line, msg: fmt.Sprintf(format, args...)}
}

// scanSegments splits a document body into its segment sequence.
func scanSegments(body string) ([]segment, error) {
	lines := strings.Split(body, "\n")

	var segments []segment
	var md strings.Builder
	mdStart := 1

	flushMarkdown := func() {
		if md.Len() == 0 {
			return
		}
		segments = append(segments, segment{
			kind: markdownSegment,
			line: mdStart,
			text: md.String(),
		})
		md.Reset()
	}

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case strings.HasPrefix(trimmed, "<"+sectionTag):
			flushMarkdown()
			props, err := parseSectionTag(trimmed, lineNo)
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{
				kind:    sectionSegment,
				line:    lineNo,
				section: *props,
			})

		case strings.HasPrefix(trimmed, "<"+codeblockTag):
			flushMarkdown()
			props, consumed, err := parseCodeblock(trimmed, lines[i+1:], lineNo)
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{
				kind: codeSegment,
				line: lineNo,
				code: *props,
			})
			i += consumed

		case strings.HasPrefix(trimmed, "</"+sectionTag) || strings.HasPrefix(trimmed, "</"+codeblockTag):
			return nil, scanErrorf(lineNo, "unexpected closing tag %s", trimmed)

		default:
			if md.Len() == 0 {
				mdStart = lineNo
			}
			md.WriteString(lines[i])
			md.WriteString("\n")
		}
	}
	flushMarkdown()

	return segments, nil
}

// parseSectionTag parses a single-line self-closing ArticleSection tag.
func parseSectionTag(line string, lineNo int) (*sectionProps, error) {
	inner, ok := cutTag(line, sectionTag, true)
	if !ok {
		return nil, scanErrorf(lineNo, "%s tag must be self-closing on one line: <%s ... />", sectionTag, sectionTag)
	}

	attrs, err := parseAttrs(inner, lineNo)
	if err != nil {
		return nil, err
	}

	props := &sectionProps{Level: 2}
	for key, value := range attrs {
		switch key {
		case "name":
			props.Name = value
		case "id":
			props.ID = value
		case "level":
			level, err := parseLevel(value)
			if err != nil {
				return nil, scanErrorf(lineNo, "%v", err)
			}
			props.Level = level
		default:
			return nil, scanErrorf(lineNo, "unknown %s prop %q", sectionTag, key)
		}
	}

	if props.Name == "" {
		return nil, scanErrorf(lineNo, "%s requires a non-empty name prop", sectionTag)
	}
	if props.ID == "" {
		props.ID = Slugify(props.Name)
	}
	if props.ID == "" {
		return nil, scanErrorf(lineNo, "%s name %q yields an empty anchor id; set an explicit id prop", sectionTag, props.Name)
	}
	return props, nil
}

// parseCodeblock parses an opening Codeblock tag and consumes its literal
// body up to the closing tag. Returns the number of extra lines consumed.
func parseCodeblock(openLine string, rest []string, lineNo int) (*codeProps, int, error) {
	inner, ok := cutTag(openLine, codeblockTag, false)
	if !ok {
		return nil, 0, scanErrorf(lineNo, "%s opening tag must be complete on one line: <%s ...>", codeblockTag, codeblockTag)
	}

	attrs, err := parseAttrs(inner, lineNo)
	if err != nil {
		return nil, 0, err
	}

	props := &codeProps{}
	for key, value := range attrs {
		switch key {
		case "lang":
			props.Lang = value
		case "title":
			props.Title = value
		default:
			return nil, 0, scanErrorf(lineNo, "unknown %s prop %q", codeblockTag, key)
		}
	}

	closing := "</" + codeblockTag + ">"
	for i, line := range rest {
		if strings.TrimSpace(line) == closing {
			props.Literal = strings.Join(rest[:i], "\n")
			return props, i + 1, nil
		}
	}
	return nil, 0, scanErrorf(lineNo, "unterminated %s: missing %s", codeblockTag, closing)
}

// cutTag strips "<Tag" and the closing bracket from a tag line, returning
// the attribute region. selfClosing selects between "/>" and ">".
func cutTag(line, tag string, selfClosing bool) (string, bool) {
	inner, ok := strings.CutPrefix(line, "<"+tag)
	if !ok {
		return "", false
	}
	suffix := ">"
	if selfClosing {
		suffix = "/>"
	}
	inner, ok = strings.CutSuffix(inner, suffix)
	if !ok {
		return "", false
	}
	// "<ArticleSectionX" must not parse as an ArticleSection tag
	if inner != "" && inner[0] != ' ' && inner[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// parseAttrs parses a `key="value"` attribute list. Quoting is mandatory
// and values cannot contain double quotes - component props are plain
// display strings, anything fancier is an authoring error.
func parseAttrs(s string, lineNo int) (map[string]string, error) {
	attrs := make(map[string]string)
	rest := strings.TrimSpace(s)

	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, scanErrorf(lineNo, "malformed prop near %q, expected key=\"value\"", rest)
		}
		key := strings.TrimSpace(rest[:eq])
		if !isIdent(key) {
			return nil, scanErrorf(lineNo, "invalid prop name %q", key)
		}
		if _, dup := attrs[key]; dup {
			return nil, scanErrorf(lineNo, "duplicate prop %q", key)
		}

		rest = strings.TrimSpace(rest[eq+1:])
		if len(rest) == 0 || rest[0] != '"' {
			return nil, scanErrorf(lineNo, "prop %q value must be double-quoted", key)
		}
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return nil, scanErrorf(lineNo, "unterminated value for prop %q", key)
		}

		attrs[key] = rest[1 : end+1]
		rest = strings.TrimSpace(rest[end+2:])
	}

	return attrs, nil
}

// parseLevel converts a level prop ("h1".."h4") to its numeric level.
func parseLevel(value string) (int, error) {
	switch value {
	case "h1":
		return 1, nil
	case "h2":
		return 2, nil
	case "h3":
		return 3, nil
	case "h4":
		return 4, nil
	default:
		return 0, fmt.Errorf("invalid level %q, expected h1-h4", value)
	}
}

// isIdent reports whether s is a valid prop name (ASCII letters only).
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Slugify derives a stable anchor id from a section name: lowercased,
// spaces collapsed to hyphens, everything outside [a-z0-9-] dropped.
func Slugify(name string) string {
	var sb strings.Builder
	lastHyphen := true // Suppress leading hyphens
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
