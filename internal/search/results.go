/*
Package search implements full-text search over the static tool catalog.

This package indexes the tool descriptors (name, description, category,
usage notes, example queries) into an in-memory Bleve index so callers
can find the right tool from a natural-language phrase.
*/
package search

// Result is a single catalog search hit with relevance score.
type Result struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}
