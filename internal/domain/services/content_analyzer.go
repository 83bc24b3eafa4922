package services

// ContentAnalyzer computes reading statistics from raw document markup
type ContentAnalyzer interface {
	// CountWords counts prose words, ignoring markup syntax, component
	// tags and code block contents.
	CountWords(markup string) int

	// ReadingTime estimates reading time in whole minutes for a word
	// count, never returning less than 1.
	ReadingTime(wordCount int) int
}
