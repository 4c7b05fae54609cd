package search

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbox/quill/internal/flexdate"
	"github.com/quillbox/quill/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)
	store, err := storage.NewStore(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(dir)
	})
	return store
}

func seedStories(t *testing.T, store *storage.Store) {
	t.Helper()
	stories := []*storage.Story{
		{
			ID:        1,
			Title:     "Ocean Tale",
			Content:   "a story about the deep sea",
			Status:    storage.StatusPublished,
			CreatedAt: flexdate.At(time.Now().Add(-48 * time.Hour)),
			Author:    &storage.Author{FirstName: "Mona", LastName: "Writer", Username: "mwriter"},
			Category:  &storage.Category{ID: 3, Name: "Fiction"},
		},
		{
			ID:        2,
			Title:     "Mountain Trek",
			Content:   "hiking the high ocean of clouds",
			Excerpt:   "alpine journal",
			Status:    storage.StatusDraft,
			CreatedAt: flexdate.At(time.Now().Add(-24 * time.Hour)),
		},
	}
	require.NoError(t, store.SaveStories(stories))
}

func TestEngine_SearchMinLength(t *testing.T) {
	engine := NewEngine(newTestStore(t))

	tests := []struct {
		name  string
		query string
	}{
		{name: "empty query", query: ""},
		{name: "single character", query: "a"},
		{name: "whitespace only", query: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := engine.Search(tt.query, 10)
			assert.NoError(t, err)
			assert.Empty(t, hits, "short queries should return no hits")
		})
	}
}

func TestEngine_TitleOutranksContent(t *testing.T) {
	store := newTestStore(t)
	seedStories(t, store)
	engine := NewEngine(store)

	hits, err := engine.Search("ocean", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, int64(1), hits[0].Story.ID, "title match scores above content match")
	assert.Contains(t, hits[0].Fields, "title")
	assert.Contains(t, hits[1].Fields, "content")
}

func TestEngine_SearchesAuthorAndCategory(t *testing.T) {
	store := newTestStore(t)
	seedStories(t, store)
	engine := NewEngine(store)

	hits, err := engine.Search("mwriter", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(1), hits[0].Story.ID)

	hits, err = engine.Search("fiction", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestEngine_Limit(t *testing.T) {
	store := newTestStore(t)
	seedStories(t, store)
	engine := NewEngine(store)

	hits, err := engine.Search("ocean", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}
