package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storiesPublishCmd = &cobra.Command{
	Use:   "publish <story-id>",
	Short: "Publish a draft story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesPublish,
}

var storiesUnpublishCmd = &cobra.Command{
	Use:   "unpublish <story-id>",
	Short: "Revert a published story to draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesUnpublish,
}

var storiesSetCategoryCmd = &cobra.Command{
	Use:   "set-category <story-id>",
	Short: "Assign a story to a category, or clear it",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesSetCategory,
}

var (
	setCategoryID    int64
	setCategoryClear bool
)

func init() {
	storiesSetCategoryCmd.Flags().Int64VarP(&setCategoryID, "category", "c", 0, "Category ID to assign")
	storiesSetCategoryCmd.Flags().BoolVar(&setCategoryClear, "clear", false, "Remove the story's category")

	storiesCmd.AddCommand(storiesPublishCmd, storiesUnpublishCmd, storiesSetCategoryCmd)
}

func runStoriesPublish(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	story, err := newAPIClient().PublishStory(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Println(renderSuccess(fmt.Sprintf("published story #%d", story.ID)))
	fmt.Println(renderStoryLine(story))
	return nil
}

func runStoriesUnpublish(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	story, err := newAPIClient().UnpublishStory(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Println(renderSuccess(fmt.Sprintf("story #%d is a draft again", story.ID)))
	return nil
}

func runStoriesSetCategory(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	var categoryID *int64
	switch {
	case setCategoryClear && setCategoryID != 0:
		return fmt.Errorf("--category and --clear are mutually exclusive")
	case setCategoryClear:
		// nil clears the assignment
	case setCategoryID != 0:
		categoryID = &setCategoryID
	default:
		return fmt.Errorf("pass --category <id> or --clear")
	}

	story, err := newAPIClient().SetStoryCategory(cmd.Context(), id, categoryID)
	if err != nil {
		return err
	}
	if story.Category != nil {
		fmt.Println(renderSuccess(fmt.Sprintf("story #%d is now in %q", story.ID, story.Category.Name)))
	} else {
		fmt.Println(renderSuccess(fmt.Sprintf("story #%d has no category", story.ID)))
	}
	return nil
}
