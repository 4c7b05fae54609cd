package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/applog"
	"github.com/quillbox/quill/internal/search"
	"github.com/quillbox/quill/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the local cache and search index from the backend",
	RunE:  runSync,
}

var syncPages int

func init() {
	syncCmd.Flags().IntVar(&syncPages, "pages", 5, "Maximum backend pages to fetch")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	client := newAPIClient()

	var stories []*storage.Story
	for page := 0; page < syncPages; page++ {
		result, err := client.ListStories(cmd.Context(), page, cfg.API.PageSize)
		if err != nil {
			return err
		}
		stories = append(stories, result.Content...)
		if result.Last || len(result.Content) == 0 {
			break
		}
	}

	categories, err := client.ListCategories(cmd.Context())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceStories(stories); err != nil {
		return err
	}
	if err := store.SaveCategories(categories); err != nil {
		return err
	}
	if err := store.SetLastSync(time.Now()); err != nil {
		return err
	}

	if engine, err := search.NewBleveEngine(store, cfg.Database.SearchIndex); err != nil {
		// Cache refresh succeeded; a broken index only degrades search.
		applog.Warnf("search index unavailable: %v", err)
	} else {
		if listener, ok := engine.(search.UpdateListener); ok {
			if err := listener.OnStoriesUpdated(stories); err != nil {
				applog.Warnf("indexing stories: %v", err)
			}
		}
		if closer, ok := engine.(interface{ Close() error }); ok {
			closer.Close()
		}
	}

	applog.WithFields(map[string]any{
		"stories":    len(stories),
		"categories": len(categories),
	}).Infof("cache refreshed")

	fmt.Println(renderSuccess(fmt.Sprintf("synced %d stories, %d categories", len(stories), len(categories))))
	return nil
}
