package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillbox/quill/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F87171"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ADE80"))

	draftBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA86B")).
			Render("[draft]")

	publishedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ADE80")).
			Render("[published]")

	archivedBadge = mutedStyle.Render("[archived]")
)

func renderError(err error) string {
	return errorStyle.Render("Error: ") + err.Error()
}

func renderSuccess(msg string) string {
	return successStyle.Render("✓ ") + msg
}

func statusBadge(status storage.StoryStatus) string {
	switch status {
	case storage.StatusPublished:
		return publishedBadge
	case storage.StatusArchived:
		return archivedBadge
	default:
		return draftBadge
	}
}

// renderStoryLine is the one-line list representation: id, badge, title,
// author and date in muted trim.
func renderStoryLine(s *storage.Story) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", mutedStyle.Render(fmt.Sprintf("#%-5d", s.ID)), statusBadge(s.Status), titleStyle.Render(s.Title))

	var trim []string
	if s.Author != nil && s.Author.Username != "" {
		trim = append(trim, "@"+s.Author.Username)
	}
	if s.Category != nil && s.Category.Name != "" {
		trim = append(trim, s.Category.Name)
	}
	if date := s.EffectiveDate(); !date.IsZero() {
		trim = append(trim, date.Format("2006-01-02"))
	}
	if s.ViewCount > 0 || s.LikeCount > 0 {
		trim = append(trim, fmt.Sprintf("%d views, %d likes", s.ViewCount, s.LikeCount))
	}
	if len(trim) > 0 {
		b.WriteString(mutedStyle.Render("  (" + strings.Join(trim, " · ") + ")"))
	}
	return b.String()
}

func renderStoryList(stories []*storage.Story) string {
	if len(stories) == 0 {
		return mutedStyle.Render("no stories")
	}
	lines := make([]string, 0, len(stories))
	for _, s := range stories {
		lines = append(lines, renderStoryLine(s))
	}
	return strings.Join(lines, "\n")
}

// renderProgressBar draws a fixed-width bar for a 0-100 percentage.
func renderProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(float64(width) * percent / 100)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %5.1f%%", lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Render(bar), percent)
}

func renderLastSync(t time.Time) string {
	if t.IsZero() {
		return mutedStyle.Render("never synced")
	}
	return mutedStyle.Render("last synced " + t.Format(time.RFC1123))
}
