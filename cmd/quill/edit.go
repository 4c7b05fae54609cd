package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/api"
	"github.com/quillbox/quill/internal/storage"
)

var storiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new story",
	RunE:  runStoriesCreate,
}

var storiesUpdateCmd = &cobra.Command{
	Use:   "update <story-id>",
	Short: "Update fields of an existing story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesUpdate,
}

var storiesDeleteCmd = &cobra.Command{
	Use:   "delete <story-id>",
	Short: "Delete a story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoriesDelete,
}

var (
	createTitle       string
	createContentFile string
	createContent     string
	createDraft       bool
	createPrivate     bool
	createCoverURL    string

	updateTitle       string
	updateContentFile string
	updatePrivacy     string
	updateCoverURL    string

	deleteYes bool
)

func init() {
	cf := storiesCreateCmd.Flags()
	cf.StringVarP(&createTitle, "title", "t", "", "Story title (required)")
	cf.StringVarP(&createContentFile, "file", "f", "", "Read content from this file, or - for stdin")
	cf.StringVar(&createContent, "content", "", "Inline story content")
	cf.BoolVar(&createDraft, "draft", false, "Create as draft instead of publishing")
	cf.BoolVar(&createPrivate, "private", false, "Make the story private")
	cf.StringVar(&createCoverURL, "cover", "", "Cover image URL")
	if err := storiesCreateCmd.MarkFlagRequired("title"); err != nil {
		panic(fmt.Sprintf("failed to mark title flag as required: %v", err))
	}

	uf := storiesUpdateCmd.Flags()
	uf.StringVarP(&updateTitle, "title", "t", "", "New title")
	uf.StringVarP(&updateContentFile, "file", "f", "", "Read new content from this file, or - for stdin")
	uf.StringVar(&updatePrivacy, "privacy", "", "New privacy: PUBLIC or PRIVATE")
	uf.StringVar(&updateCoverURL, "cover", "", "New cover image URL")

	storiesDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	storiesCmd.AddCommand(storiesCreateCmd, storiesUpdateCmd, storiesDeleteCmd)
}

func runStoriesCreate(cmd *cobra.Command, _ []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	content := createContent
	if createContentFile != "" {
		data, err := readContentSource(createContentFile)
		if err != nil {
			return err
		}
		content = data
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("story content is empty, pass --content or --file")
	}

	req := api.CreateStoryRequest{
		Title:         createTitle,
		Content:       content,
		Status:        storage.StatusPublished,
		Privacy:       storage.PrivacyPublic,
		CoverImageURL: createCoverURL,
	}
	if createDraft {
		req.Status = storage.StatusDraft
	}
	if createPrivate {
		req.Privacy = storage.PrivacyPrivate
	}

	story, err := newAPIClient().CreateStory(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Println(renderSuccess(fmt.Sprintf("created story #%d", story.ID)))
	fmt.Println(renderStoryLine(story))
	return nil
}

func runStoriesUpdate(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	var req api.UpdateStoryRequest
	changed := false
	if updateTitle != "" {
		req.Title = &updateTitle
		changed = true
	}
	if updateContentFile != "" {
		content, rerr := readContentSource(updateContentFile)
		if rerr != nil {
			return rerr
		}
		req.Content = &content
		changed = true
	}
	if updatePrivacy != "" {
		privacy := storage.Privacy(strings.ToUpper(updatePrivacy))
		if privacy != storage.PrivacyPublic && privacy != storage.PrivacyPrivate {
			return fmt.Errorf("invalid privacy %q, want PUBLIC or PRIVATE", updatePrivacy)
		}
		req.Privacy = &privacy
		changed = true
	}
	if updateCoverURL != "" {
		req.CoverImageURL = &updateCoverURL
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to update, pass at least one field flag")
	}

	story, err := newAPIClient().UpdateStory(cmd.Context(), id, req)
	if err != nil {
		return err
	}
	fmt.Println(renderSuccess(fmt.Sprintf("updated story #%d", story.ID)))
	return nil
}

func runStoriesDelete(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	id, err := parseStoryID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		fmt.Printf("Delete story #%d? [y/N] ", id)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println(mutedStyle.Render("aborted"))
			return nil
		}
	}

	if err := newAPIClient().DeleteStory(cmd.Context(), id); err != nil {
		return err
	}

	// Drop it from the local cache too if present; the next sync would do
	// the same.
	if store, serr := openStore(); serr == nil {
		_ = store.DeleteStory(id)
		store.Close()
	}

	fmt.Println(renderSuccess(fmt.Sprintf("deleted story #%d", id)))
	return nil
}

func readContentSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content file: %w", err)
	}
	return string(data), nil
}
