package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillbox/quill/internal/flexdate"
	"github.com/quillbox/quill/internal/storage"
)

func story(id int64, title string, created time.Time) *storage.Story {
	return &storage.Story{
		ID:        id,
		Title:     title,
		Content:   "content of " + title,
		Status:    storage.StatusDraft,
		CreatedAt: flexdate.At(created),
	}
}

func ids(stories []*storage.Story) []int64 {
	out := make([]int64, len(stories))
	for i, s := range stories {
		out[i] = s.ID
	}
	return out
}

func TestApply_Search(t *testing.T) {
	now := time.Now()
	ocean := story(1, "Ocean Tale", now)
	mountain := story(2, "Mountain Trek", now)

	got := Apply([]*storage.Story{ocean, mountain}, Options{Search: "ocean"})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApply_SearchFields(t *testing.T) {
	now := time.Now()
	s := story(1, "Untitled", now)
	s.Excerpt = "a voyage through the fjords"
	s.Author = &storage.Author{FirstName: "Greta", LastName: "Holm", Username: "gholm"}
	s.Category = &storage.Category{ID: 4, Name: "Travel"}
	stories := []*storage.Story{s}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"matches excerpt", "fjords", 1},
		{"matches author first name", "greta", 1},
		{"matches author last name", "holm", 1},
		{"matches username", "gholm", 1},
		{"matches category name", "travel", 1},
		{"case-insensitive", "TRAVEL", 1},
		{"no match", "desert", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(stories, Options{Search: tt.search})
			assert.Len(t, got, tt.want)
		})
	}
}

func TestApply_SearchAbsentFieldsDoNotMatch(t *testing.T) {
	s := story(1, "Plain", time.Now())
	// No author, no category, no excerpt: must not match, must not panic.
	got := Apply([]*storage.Story{s}, Options{Search: "anything"})
	assert.Empty(t, got)
}

func TestApply_Category(t *testing.T) {
	now := time.Now()
	fiction := story(1, "A", now)
	fiction.Category = &storage.Category{ID: 3, Name: "Fiction"}
	travel := story(2, "B", now)
	travel.Category = &storage.Category{ID: 4, Name: "Travel"}
	uncategorized := story(3, "C", now)

	catID := int64(3)
	got := Apply([]*storage.Story{fiction, travel, uncategorized}, Options{CategoryID: &catID})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApply_DateRanges(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

	todayStory := story(1, "today", now.Add(-2*time.Hour))
	threeDaysAgo := story(2, "3d", now.AddDate(0, 0, -3))
	threeWeeksAgo := story(3, "3w", now.AddDate(0, 0, -21))
	sixMonthsAgo := story(4, "6mo", now.AddDate(0, -6, 0))
	twoYearsAgo := story(5, "2y", now.AddDate(-2, 0, 0))
	all := []*storage.Story{todayStory, threeDaysAgo, threeWeeksAgo, sixMonthsAgo, twoYearsAgo}

	tests := []struct {
		name  string
		r     DateRange
		want  []int64
	}{
		{"all", RangeAll, []int64{1, 2, 3, 4, 5}},
		{"today", RangeToday, []int64{1}},
		{"week", RangeWeek, []int64{1, 2}},
		{"month", RangeMonth, []int64{1, 2, 3}},
		{"year", RangeYear, []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyAt(all, Options{DateRange: tt.r}, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_CustomRange(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	jan5 := story(1, "jan", time.Date(2024, time.January, 5, 9, 0, 0, 0, time.Local))
	feb10 := story(2, "feb", time.Date(2024, time.February, 10, 9, 0, 0, 0, time.Local))
	all := []*storage.Story{jan5, feb10}

	opts := Options{
		DateRange:   RangeCustom,
		CustomStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		CustomEnd:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local),
	}
	got := applyAt(all, opts, now)
	assert.Equal(t, []int64{1}, ids(got))
}

func TestApply_CustomRangeEndIsInclusiveEndOfDay(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	lastMoment := story(1, "late", time.Date(2024, time.January, 31, 23, 30, 0, 0, time.Local))

	opts := Options{
		DateRange: RangeCustom,
		CustomEnd: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local),
	}
	got := applyAt([]*storage.Story{lastMoment}, opts, now)
	assert.Len(t, got, 1, "a story late on the end day still falls inside the range")
}

func TestApply_CustomRangeUnbounded(t *testing.T) {
	now := time.Now()
	s := story(1, "any", now.AddDate(-5, 0, 0))
	got := applyAt([]*storage.Story{s}, Options{DateRange: RangeCustom}, now)
	assert.Len(t, got, 1, "custom range with no bounds passes everything")
}

func TestApply_EffectiveDateRule(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

	// Published 2023-01-01, created 2024-01-01: range checks must see 2023.
	s := story(1, "back-dated", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
	s.Status = storage.StatusPublished
	s.PublishedAt = flexdate.At(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local))

	opts := Options{
		DateRange:   RangeCustom,
		CustomStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		CustomEnd:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local),
	}
	got := applyAt([]*storage.Story{s}, opts, now)
	assert.Empty(t, got, "published stories filter on their publish date, not creation date")
}

// Conjunction: combined filters equal the intersection of individual ones.
func TestApply_FiltersAreConjunctive(t *testing.T) {
	now := time.Now()
	catID := int64(3)

	match := story(1, "Ocean Tale", now)
	match.Category = &storage.Category{ID: 3, Name: "Fiction"}
	wrongCategory := story(2, "Ocean View", now)
	wrongCategory.Category = &storage.Category{ID: 4, Name: "Travel"}
	wrongSearch := story(3, "Mountain Trek", now)
	wrongSearch.Category = &storage.Category{ID: 3, Name: "Fiction"}
	all := []*storage.Story{match, wrongCategory, wrongSearch}

	combined := Apply(all, Options{Search: "ocean", CategoryID: &catID})

	bySearch := Apply(all, Options{Search: "ocean"})
	byCategory := Apply(all, Options{CategoryID: &catID})
	var intersection []int64
	for _, s := range bySearch {
		for _, c := range byCategory {
			if s.ID == c.ID {
				intersection = append(intersection, s.ID)
			}
		}
	}

	assert.Equal(t, intersection, ids(combined))
	assert.Equal(t, []int64{1}, ids(combined))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	all := []*storage.Story{story(2, "B", now), story(1, "A", now)}

	Apply(all, Options{Search: "a"})
	assert.Equal(t, []int64{2, 1}, ids(all))
}

func TestSortStories(t *testing.T) {
	t1 := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	t2 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local)
	t3 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)

	a := story(1, "Banana", t2)
	a.ViewCount, a.LikeCount = 10, 1
	b := story(2, "apple", t3)
	b.ViewCount, b.LikeCount = 10, 9
	c := story(3, "Cherry", t1)
	c.ViewCount, c.LikeCount = 5, 4
	all := []*storage.Story{a, b, c}

	tests := []struct {
		name string
		key  SortKey
		want []int64
	}{
		{"newest", SortNewest, []int64{2, 1, 3}},
		{"oldest", SortOldest, []int64{3, 1, 2}},
		{"most viewed keeps ties in input order", SortMostViewed, []int64{1, 2, 3}},
		{"most liked", SortMostLiked, []int64{2, 3, 1}},
		{"title is case-insensitive", SortTitle, []int64{2, 1, 3}},
		{"unknown key is identity", SortKey("shuffled"), []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortStories(all, tt.key)
			assert.Equal(t, tt.want, ids(got))
			// Input untouched.
			assert.Equal(t, []int64{1, 2, 3}, ids(all))
		})
	}
}

func TestSortStories_NewestUsesEffectiveDate(t *testing.T) {
	published := story(1, "published", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
	published.Status = storage.StatusPublished
	published.PublishedAt = flexdate.At(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local))

	draft := story(2, "draft", time.Date(2023, time.June, 1, 0, 0, 0, 0, time.Local))

	got := SortStories([]*storage.Story{published, draft}, SortNewest)
	assert.Equal(t, []int64{2, 1}, ids(got), "publish date 2023-01 sorts behind creation date 2023-06")
}

func TestSortStories_RepeatedSortIsStable(t *testing.T) {
	a := story(1, "A", time.Now())
	a.ViewCount = 10
	b := story(2, "B", time.Now())
	b.ViewCount = 10
	c := story(3, "C", time.Now())
	c.ViewCount = 5

	once := SortStories([]*storage.Story{a, b, c}, SortMostViewed)
	twice := SortStories(once, SortMostViewed)

	require.Equal(t, int64(3), once[2].ID, "lowest view count sorts last")
	assert.Equal(t, ids(once), ids(twice))
}

func TestProcess_Idempotent(t *testing.T) {
	now := time.Now()
	catID := int64(3)

	var all []*storage.Story
	for i := int64(1); i <= 6; i++ {
		s := story(i, "Story", now.AddDate(0, 0, -int(i)))
		s.ViewCount = int(i % 3)
		if i%2 == 0 {
			s.Category = &storage.Category{ID: 3, Name: "Fiction"}
		}
		all = append(all, s)
	}

	cases := []Options{
		{},
		{SortBy: SortNewest},
		{Search: "story", SortBy: SortMostViewed},
		{CategoryID: &catID, SortBy: SortTitle, DateRange: RangeYear},
	}

	for _, opts := range cases {
		once := Process(all, opts)
		twice := Process(once, opts)
		assert.Equal(t, ids(once), ids(twice))
	}
}
