package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	storiesBucket    = []byte("stories")
	categoriesBucket = []byte("categories")
	metaBucket       = []byte("metadata")
)

var lastSyncKey = []byte("last_sync")

// Store is the local cache of stories and categories fetched from the
// platform. The backend stays the source of truth; the cache exists so
// listing and search work offline and so the search index has something
// to build from.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{storiesBucket, categoriesBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveStories(stories []*Story) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(storiesBucket)
		for _, story := range stories {
			data, err := json.Marshal(story)
			if err != nil {
				return err
			}
			if err := b.Put(itob(story.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceStories drops every cached story and writes the given set. Used
// by sync so stories deleted on the server disappear locally too.
func (s *Store) ReplaceStories(stories []*Story) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(storiesBucket); err != nil {
			return err
		}
		b, err := tx.CreateBucket(storiesBucket)
		if err != nil {
			return err
		}
		for _, story := range stories {
			data, err := json.Marshal(story)
			if err != nil {
				return err
			}
			if err := b.Put(itob(story.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetStory(id int64) (*Story, error) {
	var story Story
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(storiesBucket).Get(itob(id))
		if data == nil {
			return fmt.Errorf("story %d not found", id)
		}
		return json.Unmarshal(data, &story)
	})
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// GetStories returns cached stories, newest first by effective date.
// A limit of 0 means no limit.
func (s *Store) GetStories(limit int) ([]*Story, error) {
	var stories []*Story
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(storiesBucket).ForEach(func(_ []byte, v []byte) error {
			var story Story
			if err := json.Unmarshal(v, &story); err != nil {
				return nil
			}
			stories = append(stories, &story)
			return nil
		})
	})
	sort.Slice(stories, func(i, j int) bool {
		return stories[i].EffectiveDate().After(stories[j].EffectiveDate())
	})
	if limit > 0 && len(stories) > limit {
		stories = stories[:limit]
	}
	return stories, err
}

func (s *Store) DeleteStory(id int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storiesBucket).Delete(itob(id))
	})
}

func (s *Store) SaveCategories(categories []*Category) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(categoriesBucket)
		for _, cat := range categories {
			data, err := json.Marshal(cat)
			if err != nil {
				return err
			}
			if err := b.Put(itob(cat.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCategories returns cached categories sorted by name.
func (s *Store) GetCategories() ([]*Category, error) {
	var categories []*Category
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(categoriesBucket).ForEach(func(_ []byte, v []byte) error {
			var cat Category
			if err := json.Unmarshal(v, &cat); err != nil {
				return err
			}
			categories = append(categories, &cat)
			return nil
		})
	})
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, err
}

func (s *Store) SetLastSync(t time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := t.MarshalText()
		if err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put(lastSyncKey, data)
	})
}

// LastSync returns the zero time when no sync has happened yet.
func (s *Store) LastSync() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(metaBucket).Get(lastSyncKey)
		if data == nil {
			return nil
		}
		return t.UnmarshalText(data)
	})
	return t, err
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
