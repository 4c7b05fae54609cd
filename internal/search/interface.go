package search

import "github.com/quillbox/quill/internal/storage"

// Searcher is the minimal search API the CLI consumes. Two engines
// implement it: a substring scan over the cache and a Bleve index.
type Searcher interface {
	Search(query string, limit int) ([]*Hit, error)
}

// UpdateListener is implemented by engines that maintain an external
// index and need to hear about cache changes.
type UpdateListener interface {
	OnStoriesUpdated(stories []*storage.Story) error
}

// DebugStatser reports index document counts for diagnostics.
type DebugStatser interface {
	DocCount() (uint64, error)
}

// Hit is a single search match.
type Hit struct {
	Story *storage.Story
	Score float64
	// Fields that matched, e.g. "title", "content".
	Fields []string
}
