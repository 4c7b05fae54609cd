package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/filter"
	"github.com/quillbox/quill/internal/storage"
)

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Browse and manage stories",
}

var storiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories with optional filtering and sorting",
	Long: "Lists stories from the backend (or the local cache with --local),\n" +
		"applying text search, category and date-range filters before sorting.",
	RunE: runStoriesList,
}

var (
	listSearch    string
	listCategory  int64
	listSort      string
	listDateRange string
	listFrom      string
	listTo        string
	listMine      bool
	listLocal     bool
	listLimit     int
	listPage      int
)

func init() {
	flags := storiesListCmd.Flags()
	flags.StringVarP(&listSearch, "search", "s", "", "Match stories containing this text")
	flags.Int64VarP(&listCategory, "category", "c", 0, "Only stories in this category ID")
	flags.StringVar(&listSort, "sort", "newest", "Sort order: newest, oldest, mostViewed, mostLiked, title")
	flags.StringVar(&listDateRange, "date-range", "all", "Date window: all, today, week, month, year, custom")
	flags.StringVar(&listFrom, "from", "", "Custom range start (YYYY-MM-DD)")
	flags.StringVar(&listTo, "to", "", "Custom range end, inclusive (YYYY-MM-DD)")
	flags.BoolVar(&listMine, "mine", false, "Only the logged-in user's stories")
	flags.BoolVar(&listLocal, "local", false, "Read from the local cache instead of the backend")
	flags.IntVarP(&listLimit, "limit", "n", 0, "Maximum stories to show (0 = all)")
	flags.IntVar(&listPage, "page", 0, "Backend page number")

	storiesCmd.AddCommand(storiesListCmd)
	rootCmd.AddCommand(storiesCmd)
}

func runStoriesList(cmd *cobra.Command, _ []string) error {
	opts, err := buildFilterOptions()
	if err != nil {
		return err
	}

	stories, err := loadStories(cmd.Context())
	if err != nil {
		return err
	}

	result := filter.Process(stories, opts)
	if listLimit > 0 && len(result) > listLimit {
		result = result[:listLimit]
	}

	fmt.Println(renderStoryList(result))
	if len(result) != len(stories) {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d of %d stories", len(result), len(stories))))
	}
	return nil
}

func buildFilterOptions() (filter.Options, error) {
	opts := filter.Options{
		Search:    listSearch,
		SortBy:    filter.SortKey(listSort),
		DateRange: filter.DateRange(listDateRange),
	}
	if listCategory != 0 {
		id := listCategory
		opts.CategoryID = &id
	}

	if listFrom != "" || listTo != "" {
		opts.DateRange = filter.RangeCustom
	}
	if listFrom != "" {
		start, err := time.ParseInLocation("2006-01-02", listFrom, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --from date %q: %w", listFrom, err)
		}
		opts.CustomStart = start
	}
	if listTo != "" {
		end, err := time.ParseInLocation("2006-01-02", listTo, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --to date %q: %w", listTo, err)
		}
		opts.CustomEnd = end
	}
	return opts, nil
}

func loadStories(ctx context.Context) ([]*storage.Story, error) {
	if listLocal {
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.GetStories(0)
	}

	client := newAPIClient()
	if listMine {
		if err := requireLogin(); err != nil {
			return nil, err
		}
		return client.MyStories(ctx, cfg.API.PageSize)
	}

	page, err := client.ListStories(ctx, listPage, cfg.API.PageSize)
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}
