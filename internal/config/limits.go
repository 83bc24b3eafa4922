package config

const (
	// MaxTitleLength is the maximum length for document titles.
	// Titles render in navigation sidebars and browser tabs, so anything
	// longer is an authoring mistake rather than a real title.
	MaxTitleLength = 255

	// MaxDescriptionLength is the maximum length for document descriptions.
	// Descriptions feed meta tags and link previews.
	MaxDescriptionLength = 500

	// MaxSlugLength is the maximum length for slugs and topic segments.
	MaxSlugLength = 100

	// MaxDocumentSize is the maximum size in bytes of a single source
	// file the store will load. Documents near this size indicate content
	// that should be split into topics.
	MaxDocumentSize = 1 << 20

	// MaxSectionNameLength is the maximum length for a section display name.
	MaxSectionNameLength = 200
)
