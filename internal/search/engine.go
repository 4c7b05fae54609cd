package search

import (
	"sort"
	"strings"

	"github.com/quillbox/quill/internal/storage"
)

// Engine is the no-index fallback: a weighted substring scan over the
// cached stories. Matching semantics are the same case-insensitive
// containment the filter pipeline uses; the weights only order results.
type Engine struct {
	store *storage.Store
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Search(query string, limit int) ([]*Hit, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if len(term) < 2 {
		return []*Hit{}, nil
	}

	stories, err := e.store.GetStories(0)
	if err != nil {
		return nil, err
	}

	var hits []*Hit
	for _, story := range stories {
		if hit := scoreStory(story, term); hit != nil {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Story.EffectiveDate().After(hits[j].Story.EffectiveDate())
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func scoreStory(story *storage.Story, term string) *Hit {
	var score float64
	var fields []string

	addField := func(name, text string, weight float64) {
		if text != "" && strings.Contains(strings.ToLower(text), term) {
			score += weight
			fields = append(fields, name)
		}
	}

	addField("title", story.Title, 3.0)
	addField("excerpt", story.Excerpt, 1.5)
	addField("content", story.Content, 1.0)
	if a := story.Author; a != nil {
		addField("author", a.FirstName+" "+a.LastName+" "+a.Username, 0.5)
	}
	if c := story.Category; c != nil {
		addField("category", c.Name, 0.5)
	}

	if score == 0 {
		return nil
	}
	return &Hit{Story: story, Score: score, Fields: fields}
}
