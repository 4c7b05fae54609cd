package storage

import (
	"time"

	"github.com/quillbox/quill/internal/flexdate"
)

// StoryStatus is the lifecycle state of a story on the platform.
type StoryStatus string

const (
	StatusDraft     StoryStatus = "DRAFT"
	StatusPublished StoryStatus = "PUBLISHED"
	StatusArchived  StoryStatus = "ARCHIVED"
)

// Privacy controls who can read a story.
type Privacy string

const (
	PrivacyPublic  Privacy = "PUBLIC"
	PrivacyPrivate Privacy = "PRIVATE"
)

type Author struct {
	ID              int64         `json:"id"`
	Username        string        `json:"username"`
	Email           string        `json:"email"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	Bio             string        `json:"bio,omitempty"`
	ProfileImageURL string        `json:"profileImageUrl,omitempty"`
	CreatedAt       flexdate.Time `json:"createdAt"`
	UpdatedAt       flexdate.Time `json:"updatedAt"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type Story struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Slug          string        `json:"slug,omitempty"`
	Status        StoryStatus   `json:"status"`
	Privacy       Privacy       `json:"privacy"`
	CoverImageURL string        `json:"coverImageUrl,omitempty"`
	Author        *Author       `json:"author,omitempty"`
	Category      *Category     `json:"category,omitempty"`
	ReadTime      int           `json:"readTime"`
	ViewCount     int           `json:"viewCount"`
	LikeCount     int           `json:"likeCount"`
	CommentCount  int           `json:"commentCount"`
	CreatedAt     flexdate.Time `json:"createdAt"`
	UpdatedAt     flexdate.Time `json:"updatedAt"`
	PublishedAt   flexdate.Time `json:"publishedAt,omitempty"`
}

// EffectiveDate is the canonical instant for chronological comparison:
// the publish time for published stories that have one, otherwise the
// creation time. Range filtering and date sorting must both go through
// this method.
func (s *Story) EffectiveDate() time.Time {
	if s.Status == StatusPublished && !s.PublishedAt.IsZero() {
		return s.PublishedAt.Time
	}
	return s.CreatedAt.Time
}
