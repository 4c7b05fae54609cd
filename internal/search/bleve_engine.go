package search

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/quillbox/quill/internal/storage"
)

type bleveEngine struct {
	store *storage.Store
	idx   bleve.Index
}

// NewBleveEngine opens or creates a Bleve index at indexPath and indexes
// the current cache contents.
func NewBleveEngine(store *storage.Store, indexPath string) (Searcher, error) {
	// Open/Create below surfaces the real failure if this cannot be made.
	_ = os.MkdirAll(filepath.Dir(indexPath), 0o755)

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, err
		}
	}

	be := &bleveEngine{store: store, idx: idx}
	stories, err := store.GetStories(0)
	if err != nil {
		return nil, err
	}
	if err := be.OnStoriesUpdated(stories); err != nil {
		return nil, err
	}
	return be, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	excerpt := bleve.NewTextFieldMapping()
	excerpt.Analyzer = standard.Name
	excerpt.Store = true

	content := bleve.NewTextFieldMapping()
	content.Analyzer = standard.Name
	content.Store = false

	author := bleve.NewTextFieldMapping()
	author.Analyzer = standard.Name
	author.Store = true

	category := bleve.NewTextFieldMapping()
	category.Analyzer = standard.Name
	category.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("excerpt", excerpt)
	dm.AddFieldMappingsAt("content", content)
	dm.AddFieldMappingsAt("author", author)
	dm.AddFieldMappingsAt("category", category)

	im.DefaultMapping = dm
	return im
}

// OnStoriesUpdated (re)indexes the given stories.
func (b *bleveEngine) OnStoriesUpdated(stories []*storage.Story) error {
	batch := b.idx.NewBatch()
	for _, s := range stories {
		batch.Index(docID(s.ID), storyDoc(s))
	}
	return b.idx.Batch(batch)
}

// OnStoryDeleted removes a story from the index.
func (b *bleveEngine) OnStoryDeleted(id int64) error {
	return b.idx.Delete(docID(id))
}

func storyDoc(s *storage.Story) map[string]any {
	doc := map[string]any{
		"title":   s.Title,
		"excerpt": s.Excerpt,
		"content": s.Content,
	}
	if s.Author != nil {
		doc["author"] = strings.TrimSpace(s.Author.FirstName + " " + s.Author.LastName + " " + s.Author.Username)
	}
	if s.Category != nil {
		doc["category"] = s.Category.Name
	}
	return doc
}

func (b *bleveEngine) Search(query string, limit int) ([]*Hit, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Hit{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		for field, boost := range map[string]float64{
			"title":    4.0,
			"excerpt":  2.0,
			"content":  1.0,
			"author":   0.8,
			"category": 0.8,
		} {
			mq := bleve.NewMatchQuery(tok)
			mq.SetField(field)
			mq.SetBoost(boost)
			qs = append(qs, mq)

			pq := bleve.NewPrefixQuery(tok)
			pq.SetField(field)
			pq.SetBoost(boost * 0.8)
			qs = append(qs, pq)
		}
	}
	if len(qs) == 0 {
		return []*Hit{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]*Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		id, err := strconv.ParseInt(h.ID, 10, 64)
		if err != nil {
			continue
		}
		story, err := b.store.GetStory(id)
		if err != nil {
			// Indexed but no longer cached; skip rather than fail the search.
			continue
		}
		out = append(out, &Hit{Story: story, Score: h.Score})
	}
	return out, nil
}

func (b *bleveEngine) DocCount() (uint64, error) {
	return b.idx.DocCount()
}

// Close releases the underlying index files.
func (b *bleveEngine) Close() error {
	return b.idx.Close()
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
