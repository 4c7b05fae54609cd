package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quillbox/quill/internal/storage"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the platform's categories",
	RunE:  runCategories,
}

var categoriesLocal bool

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesLocal, "local", false, "Read from the local cache instead of the backend")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	var (
		categories []*storage.Category
		err        error
	)
	if categoriesLocal {
		store, serr := openStore()
		if serr != nil {
			return serr
		}
		defer store.Close()
		categories, err = store.GetCategories()
	} else {
		categories, err = newAPIClient().ListCategories(cmd.Context())
	}
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println(mutedStyle.Render("no categories"))
		return nil
	}
	for _, c := range categories {
		name := c.Name
		if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(name)
		}
		line := fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("#%-4d", c.ID)), name)
		if c.Description != "" {
			line += mutedStyle.Render("  " + c.Description)
		}
		fmt.Println(line)
	}
	return nil
}
