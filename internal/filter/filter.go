// Package filter implements the client-side story pipeline: a conjunctive
// predicate filter (search text, category, date range) followed by a sort.
// All functions are pure; input slices are never mutated.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/quillbox/quill/internal/storage"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortMostViewed SortKey = "mostViewed"
	SortMostLiked  SortKey = "mostLiked"
	SortTitle      SortKey = "title"
)

// DateRange selects the window tested against a story's effective date.
type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeToday  DateRange = "today"
	RangeWeek   DateRange = "week"
	RangeMonth  DateRange = "month"
	RangeYear   DateRange = "year"
	RangeCustom DateRange = "custom"
)

// Options is the filter specification driving the pipeline. The zero value
// matches everything and applies no reordering.
type Options struct {
	Search     string
	CategoryID *int64
	SortBy     SortKey
	DateRange  DateRange
	// Custom range bounds, used only when DateRange is RangeCustom.
	// A zero value means unbounded on that side. CustomEnd is extended
	// to the end of its calendar day.
	CustomStart time.Time
	CustomEnd   time.Time
}

// Apply returns the stories matching every active predicate in opts.
func Apply(stories []*storage.Story, opts Options) []*storage.Story {
	return applyAt(stories, opts, time.Now())
}

func applyAt(stories []*storage.Story, opts Options, now time.Time) []*storage.Story {
	kept := make([]*storage.Story, 0, len(stories))
	term := strings.ToLower(opts.Search)
	for _, story := range stories {
		if term != "" && !matchesSearch(story, term) {
			continue
		}
		if opts.CategoryID != nil {
			if story.Category == nil || story.Category.ID != *opts.CategoryID {
				continue
			}
		}
		if opts.DateRange != "" && opts.DateRange != RangeAll {
			if !inDateRange(story.EffectiveDate(), opts, now) {
				continue
			}
		}
		kept = append(kept, story)
	}
	return kept
}

// matchesSearch reports whether the lowercased term occurs in any of the
// searchable fields. Absent author or category simply does not match.
func matchesSearch(story *storage.Story, term string) bool {
	if strings.Contains(strings.ToLower(story.Title), term) ||
		strings.Contains(strings.ToLower(story.Content), term) ||
		strings.Contains(strings.ToLower(story.Excerpt), term) {
		return true
	}
	if a := story.Author; a != nil {
		if strings.Contains(strings.ToLower(a.FirstName), term) ||
			strings.Contains(strings.ToLower(a.LastName), term) ||
			strings.Contains(strings.ToLower(a.Username), term) {
			return true
		}
	}
	if c := story.Category; c != nil && strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	return false
}

func inDateRange(date time.Time, opts Options, now time.Time) bool {
	today := midnight(now)

	switch opts.DateRange {
	case RangeToday:
		return midnight(date).Equal(today)
	case RangeWeek:
		return !date.Before(today.AddDate(0, 0, -7))
	case RangeMonth:
		return !date.Before(today.AddDate(0, -1, 0))
	case RangeYear:
		return !date.Before(today.AddDate(-1, 0, 0))
	case RangeCustom:
		if opts.CustomStart.IsZero() && opts.CustomEnd.IsZero() {
			return true
		}
		start := opts.CustomStart
		end := now
		if !opts.CustomEnd.IsZero() {
			end = endOfDay(opts.CustomEnd)
		}
		return !date.Before(start) && !date.After(end)
	default:
		return true
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// SortStories returns a new slice ordered by key. Ties keep their input
// order, so repeated sorts of the same input are stable. An unknown key
// returns the stories unreordered.
func SortStories(stories []*storage.Story, key SortKey) []*storage.Story {
	sorted := make([]*storage.Story, len(stories))
	copy(sorted, stories)

	switch key {
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectiveDate().After(sorted[j].EffectiveDate())
		})
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectiveDate().Before(sorted[j].EffectiveDate())
		})
	case SortMostViewed:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ViewCount > sorted[j].ViewCount
		})
	case SortMostLiked:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LikeCount > sorted[j].LikeCount
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	}

	return sorted
}

// Process runs the full pipeline: filter, then sort. It is re-run whole
// whenever the story set or the options change, and is idempotent.
func Process(stories []*storage.Story, opts Options) []*storage.Story {
	return SortStories(Apply(stories, opts), opts.SortBy)
}
