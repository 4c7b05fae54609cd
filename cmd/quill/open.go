package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/browser"
)

var storiesOpenCmd = &cobra.Command{
	Use:   "open <story-id>",
	Short: "Open a story in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesOpen,
}

var openCover bool

func init() {
	storiesOpenCmd.Flags().BoolVar(&openCover, "cover", false, "Open the cover image instead of the story page")
	storiesCmd.AddCommand(storiesOpenCmd)
}

func runStoriesOpen(cmd *cobra.Command, args []string) error {
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	story, err := newAPIClient().GetStory(cmd.Context(), id)
	if err != nil {
		return err
	}

	var url string
	if openCover {
		if story.CoverImageURL == "" {
			return fmt.Errorf("story #%d has no cover image", id)
		}
		url = story.CoverImageURL
	} else {
		base := strings.TrimRight(cfg.API.WebURL, "/")
		if story.Slug != "" {
			url = base + "/stories/" + story.Slug
		} else {
			url = base + "/stories/" + strconv.FormatInt(id, 10)
		}
	}

	if err := browser.NewOpener(cfg.API.Opener).Open(url); err != nil {
		return err
	}
	fmt.Println(mutedStyle.Render("opened " + url))
	return nil
}
