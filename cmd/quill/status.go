package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/search"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, cache and search index state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	if sess.LoggedIn() {
		fmt.Println(renderSuccess("logged in as " + sess.Username()))
	} else {
		fmt.Println(mutedStyle.Render("not logged in"))
	}
	fmt.Println(mutedStyle.Render("backend " + cfg.API.BaseURL))

	store, err := openStore()
	if err != nil {
		fmt.Println(errorStyle.Render("cache unavailable: ") + err.Error())
		return nil
	}
	defer store.Close()

	stories, err := store.GetStories(0)
	if err != nil {
		return err
	}
	categories, err := store.GetCategories()
	if err != nil {
		return err
	}
	fmt.Printf("%d cached stories, %d categories\n", len(stories), len(categories))

	lastSync, err := store.LastSync()
	if err == nil {
		fmt.Println(renderLastSync(lastSync))
	}

	if engine, err := search.NewBleveEngine(store, cfg.Database.SearchIndex); err == nil {
		if statser, ok := engine.(search.DebugStatser); ok {
			if count, cerr := statser.DocCount(); cerr == nil {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("%d documents indexed", count)))
			}
		}
		if closer, ok := engine.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
	return nil
}
