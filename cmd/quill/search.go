package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/search"
	"github.com/quillbox/quill/internal/storage"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over the locally cached stories",
	Long: "Searches the local cache populated by 'quill sync'. Uses the bleve\n" +
		"index when available and falls back to substring matching.",
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	searcher := openSearcher(store)
	hits, err := searcher.Search(query, searchLimit)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println(mutedStyle.Render("no matches"))
		return nil
	}
	for _, hit := range hits {
		fmt.Println(renderStoryLine(hit.Story))
	}
	return nil
}

func openSearcher(store *storage.Store) search.Searcher {
	engine, err := search.NewBleveEngine(store, cfg.Database.SearchIndex)
	if err != nil {
		return search.NewEngine(store)
	}
	return engine
}
