package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/storage"
)

var storiesReadCmd = &cobra.Command{
	Use:   "read <story-id>",
	Short: "Render a story's content in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesRead,
}

var (
	readLocal bool
	readWidth int
	readRaw   bool
)

func init() {
	storiesReadCmd.Flags().BoolVar(&readLocal, "local", false, "Read from the local cache instead of the backend")
	storiesReadCmd.Flags().IntVar(&readWidth, "width", 100, "Word wrap width")
	storiesReadCmd.Flags().BoolVar(&readRaw, "raw", false, "Print the raw content without markdown rendering")
	storiesCmd.AddCommand(storiesReadCmd)
}

func runStoriesRead(cmd *cobra.Command, args []string) error {
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	var story *storage.Story
	if readLocal {
		store, serr := openStore()
		if serr != nil {
			return serr
		}
		defer store.Close()
		story, err = store.GetStory(id)
	} else {
		story, err = newAPIClient().GetStory(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	fmt.Println(renderStoryLine(story))
	if story.Excerpt != "" {
		fmt.Println(mutedStyle.Render(story.Excerpt))
	}
	fmt.Println()

	if readRaw {
		fmt.Println(story.Content)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(readWidth),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := renderer.Render(story.Content)
	if err != nil {
		// Markdown rendering is cosmetic; fall back to the raw text.
		fmt.Println(story.Content)
		return nil
	}
	fmt.Print(out)
	return nil
}

func parseStoryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid story id %q", arg)
	}
	return id, nil
}
