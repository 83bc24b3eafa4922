package models

import "time"

// Collection identifies a top-level content grouping.
type Collection string

const (
	CollectionChallenges Collection = "challenges"
	CollectionCourses    Collection = "courses"
)

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	return c == CollectionChallenges || c == CollectionCourses
}

// DocumentKey addresses exactly one locale variant of one logical content
// unit. Topic is empty for challenges and required for courses.
type DocumentKey struct {
	Collection Collection `json:"collection"`
	Slug       string     `json:"slug"`
	Topic      string     `json:"topic,omitempty"`
	Locale     string     `json:"locale"`
}

// Unit returns the key with the locale stripped: the identity of the
// logical content unit shared by all of its locale variants.
func (k DocumentKey) Unit() DocumentKey {
	k.Locale = ""
	return k
}

// Frontmatter is the YAML metadata block that opens every document.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Banner      string   `yaml:"banner"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

// Document is a single source file resolved from the content store:
// parsed frontmatter plus the raw markup body, not yet compiled.
type Document struct {
	Key         DocumentKey
	Frontmatter Frontmatter
	Body        string // markup after the frontmatter block
	SourcePath  string // path relative to the content root, for error reporting
	BodyLine    int    // 1-based line the body starts on in the source file
	ModTime     time.Time
}

// TOCEntry is one entry of a page's table of contents, in source order.
type TOCEntry struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Level int    `json:"level"` // heading level, 1-4
}

// RenderedPage is the output of the rendering boundary: compiled HTML
// plus everything the page shell needs to assemble the final page.
type RenderedPage struct {
	Key         DocumentKey `json:"key"`
	Title       string      `json:"title"`
	Banner      string      `json:"banner,omitempty"`
	Description string      `json:"description,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Draft       bool        `json:"draft,omitempty"`
	HTML        string      `json:"html"`
	TOC         []TOCEntry  `json:"toc"`
	WordCount   int         `json:"word_count"`
	ReadingTime int         `json:"reading_time_minutes"`
}
